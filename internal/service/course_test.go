package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"mneme/internal/domain"
	"mneme/internal/domain/models"
	"mneme/internal/domain/repositories"
	"mneme/internal/domain/services"
)

// fakeCourseRepo is an in-memory CourseRepository for service tests
type fakeCourseRepo struct {
	courses map[string]*models.Course
}

func newFakeCourseRepo(courses ...*models.Course) *fakeCourseRepo {
	r := &fakeCourseRepo{courses: make(map[string]*models.Course)}
	for _, c := range courses {
		r.courses[c.ID] = c
	}
	return r
}

func (r *fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	r.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) GetByID(ctx context.Context, id string) (*models.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCourseRepo) Update(ctx context.Context, course *models.Course) error {
	if _, ok := r.courses[course.ID]; !ok {
		return domain.ErrNotFound
	}
	r.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.courses[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.courses, id)
	return nil
}

func (r *fakeCourseRepo) ListReadable(ctx context.Context, principal *models.Principal) ([]models.Course, error) {
	var out []models.Course
	for _, c := range r.courses {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCourseRepo) ParentEdges(ctx context.Context, courseID string) ([]string, error) {
	c, ok := r.courses[courseID]
	if !ok {
		return nil, nil
	}
	return c.ParentCourseIDs, nil
}

func (r *fakeCourseRepo) PrerequisiteEdges(ctx context.Context, courseID string) ([]string, error) {
	c, ok := r.courses[courseID]
	if !ok {
		return nil, nil
	}
	return c.PrerequisiteCourseIDs(), nil
}

// fakeTxManager runs the function directly without a transaction
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func ownedCourse(id, owner string) *models.Course {
	return &models.Course{ID: id, Name: id, CreatedBy: owner}
}

func TestUpdateCourseRejectsParentCycle(t *testing.T) {
	// b already has a as parent; making b a parent of a closes a cycle
	a := ownedCourse("a", "alice")
	b := ownedCourse("b", "alice")
	b.ParentCourseIDs = []string{"a"}

	repo := newFakeCourseRepo(a, b)
	svc := NewCourseService(repo, fakeTxManager{}, nil, testLogger())
	alice := &models.Principal{ID: "alice"}

	_, err := svc.UpdateCourse(context.Background(), alice, "a", &services.UpdateCourseRequest{
		Name:            "a",
		ParentCourseIDs: []string{"b"},
	})
	if !errors.Is(err, domain.ErrCyclic) {
		t.Fatalf("UpdateCourse() error = %v, want ErrCyclic", err)
	}

	var cycleErr *domain.CyclicRelationshipError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("UpdateCourse() error = %T, want *CyclicRelationshipError", err)
	}
	if cycleErr.Kind != "parent" {
		t.Errorf("Kind = %q, want %q", cycleErr.Kind, "parent")
	}

	// Nothing persisted
	stored, _ := repo.GetByID(context.Background(), "a")
	if len(stored.ParentCourseIDs) != 0 {
		t.Errorf("rejected edge was persisted: %v", stored.ParentCourseIDs)
	}
}

func TestUpdateCourseRejectsSelfReference(t *testing.T) {
	a := ownedCourse("a", "alice")
	repo := newFakeCourseRepo(a)
	svc := NewCourseService(repo, fakeTxManager{}, nil, testLogger())
	alice := &models.Principal{ID: "alice"}

	_, err := svc.UpdateCourse(context.Background(), alice, "a", &services.UpdateCourseRequest{
		Name:          "a",
		Prerequisites: []models.Prerequisite{{CourseID: "a", RequiredAverageLevel: 1}},
	})
	if !errors.Is(err, domain.ErrCyclic) {
		t.Fatalf("UpdateCourse() error = %v, want ErrCyclic", err)
	}
}

func TestUpdateCourseAllowsDiamond(t *testing.T) {
	// a -> b -> d and a -> c -> d share the ancestor d; no cycle
	b := ownedCourse("b", "alice")
	b.ParentCourseIDs = []string{"d"}
	c := ownedCourse("c", "alice")
	c.ParentCourseIDs = []string{"d"}
	d := ownedCourse("d", "alice")
	a := ownedCourse("a", "alice")

	repo := newFakeCourseRepo(a, b, c, d)
	svc := NewCourseService(repo, fakeTxManager{}, nil, testLogger())
	alice := &models.Principal{ID: "alice"}

	got, err := svc.UpdateCourse(context.Background(), alice, "a", &services.UpdateCourseRequest{
		Name:            "a",
		ParentCourseIDs: []string{"b", "c"},
	})
	if err != nil {
		t.Fatalf("UpdateCourse() error = %v", err)
	}
	if len(got.ParentCourseIDs) != 2 {
		t.Errorf("ParentCourseIDs = %v, want [b c]", got.ParentCourseIDs)
	}
}

func TestCourseGraphsAreIndependent(t *testing.T) {
	// b is a parent of a; a prerequisite edge a -> b in the other
	// relation touches a different graph and must be allowed
	a := ownedCourse("a", "alice")
	a.ParentCourseIDs = []string{"b"}
	b := ownedCourse("b", "alice")

	repo := newFakeCourseRepo(a, b)
	svc := NewCourseService(repo, fakeTxManager{}, nil, testLogger())
	alice := &models.Principal{ID: "alice"}

	_, err := svc.UpdateCourse(context.Background(), alice, "b", &services.UpdateCourseRequest{
		Name:          "b",
		Prerequisites: []models.Prerequisite{{CourseID: "a", RequiredAverageLevel: 1}},
	})
	if err != nil {
		t.Fatalf("UpdateCourse() error = %v, want nil (graphs are independent)", err)
	}
}

func TestCreateCourseRequiresPrincipal(t *testing.T) {
	repo := newFakeCourseRepo()
	svc := NewCourseService(repo, fakeTxManager{}, nil, testLogger())

	_, err := svc.CreateCourse(context.Background(), nil, &services.CreateCourseRequest{Name: "x"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("CreateCourse() error = %v, want ErrUnauthorized", err)
	}
}

func TestUpdateCourseForbiddenForNonWriter(t *testing.T) {
	a := ownedCourse("a", "alice")
	repo := newFakeCourseRepo(a)
	svc := NewCourseService(repo, fakeTxManager{}, nil, testLogger())
	bob := &models.Principal{ID: "bob"}

	_, err := svc.UpdateCourse(context.Background(), bob, "a", &services.UpdateCourseRequest{Name: "a"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("UpdateCourse() error = %v, want ErrForbidden", err)
	}
}

func TestCreateCourseDedupesContentLists(t *testing.T) {
	repo := newFakeCourseRepo()
	svc := NewCourseService(repo, fakeTxManager{}, nil, testLogger())
	alice := &models.Principal{ID: "alice"}

	got, err := svc.CreateCourse(context.Background(), alice, &services.CreateCourseRequest{
		Name:      "dup",
		SourceIDs: []string{"s1", "s2", "s1"},
		Prerequisites: []models.Prerequisite{
			{CourseID: "p1", RequiredAverageLevel: 1},
			{CourseID: "p1", RequiredAverageLevel: 2},
		},
	})
	if err != nil {
		t.Fatalf("CreateCourse() error = %v", err)
	}
	if len(got.SourceIDs) != 2 {
		t.Errorf("SourceIDs = %v, want 2 entries", got.SourceIDs)
	}
	if len(got.Prerequisites) != 1 {
		t.Errorf("Prerequisites = %v, want 1 entry", got.Prerequisites)
	}
}
