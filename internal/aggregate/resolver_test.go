package aggregate

import (
	"context"
	"errors"
	"testing"

	"mneme/internal/domain/models"
)

// fakeFetcher serves resolver lookups from in-memory maps and counts
// calls so tests can assert lookups stay batched.
type fakeFetcher struct {
	sources map[string]*models.Source
	notes   map[string]*models.Note
	quizzes map[string]*models.Quiz

	calls map[string]int
	err   error
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		sources: make(map[string]*models.Source),
		notes:   make(map[string]*models.Note),
		quizzes: make(map[string]*models.Quiz),
		calls:   make(map[string]int),
	}
}

func (f *fakeFetcher) SourcesByID(_ context.Context, ids []string) (map[string]*models.Source, error) {
	f.calls["SourcesByID"]++
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]*models.Source)
	for _, id := range ids {
		if s, ok := f.sources[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func (f *fakeFetcher) NotesByID(_ context.Context, ids []string) (map[string]*models.Note, error) {
	f.calls["NotesByID"]++
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]*models.Note)
	for _, id := range ids {
		if n, ok := f.notes[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

func (f *fakeFetcher) QuizzesByID(_ context.Context, ids []string) (map[string]*models.Quiz, error) {
	f.calls["QuizzesByID"]++
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]*models.Quiz)
	for _, id := range ids {
		if q, ok := f.quizzes[id]; ok {
			out[id] = q
		}
	}
	return out, nil
}

func (f *fakeFetcher) NotesBySources(_ context.Context, sourceIDs []string) ([]*models.Note, error) {
	f.calls["NotesBySources"]++
	var out []*models.Note
	for _, n := range f.notes {
		if n.SourceID == nil {
			continue
		}
		for _, id := range sourceIDs {
			if *n.SourceID == id {
				out = append(out, n)
			}
		}
	}
	return out, nil
}

func (f *fakeFetcher) QuizzesBySources(_ context.Context, sourceIDs []string) ([]*models.Quiz, error) {
	f.calls["QuizzesBySources"]++
	var out []*models.Quiz
	for _, q := range f.quizzes {
		if q.SourceID == nil {
			continue
		}
		for _, id := range sourceIDs {
			if *q.SourceID == id {
				out = append(out, q)
			}
		}
	}
	return out, nil
}

func (f *fakeFetcher) QuizzesByNotes(_ context.Context, noteIDs []string) ([]*models.Quiz, error) {
	f.calls["QuizzesByNotes"]++
	var out []*models.Quiz
	for _, q := range f.quizzes {
		if q.NoteID == nil {
			continue
		}
		for _, id := range noteIDs {
			if *q.NoteID == id {
				out = append(out, q)
			}
		}
	}
	return out, nil
}

func strPtr(s string) *string { return &s }

func publicGrant() models.Grant { return models.Grant{IsPublic: true} }

func userGrant(ids ...string) models.Grant { return models.Grant{ReadUsers: ids} }

// Course pulling from a public source: a note private to X stays
// invisible to Y but appears for X.
func TestResolvePullThroughRespectsVisibility(t *testing.T) {
	fetch := newFakeFetcher()
	fetch.sources["s1"] = &models.Source{ID: "s1", CreatedBy: "owner", Permissions: publicGrant()}
	fetch.notes["n1"] = &models.Note{ID: "n1", SourceID: strPtr("s1"), CreatedBy: "owner", Permissions: userGrant("x")}

	course := &models.Course{
		ID:                "c1",
		SourceIDs:         []string{"s1"},
		AddAllFromSources: true,
	}

	// Principal Y: source only.
	got, err := Resolve(context.Background(), course, &models.Principal{ID: "y"}, fetch)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(got.Sources) != 1 || got.Sources[0].ID != "s1" {
		t.Errorf("expected sources [s1], got %v", got.Sources)
	}
	if len(got.Notes) != 0 || len(got.Quizzes) != 0 {
		t.Errorf("expected no notes or quizzes for y, got %d notes %d quizzes", len(got.Notes), len(got.Quizzes))
	}

	// Principal X: note pulled in, still no quizzes.
	got, err = Resolve(context.Background(), course, &models.Principal{ID: "x"}, fetch)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(got.Notes) != 1 || got.Notes[0].ID != "n1" {
		t.Errorf("expected notes [n1] for x, got %v", got.Notes)
	}
	if len(got.Quizzes) != 0 {
		t.Errorf("expected no quizzes without add_all_from_notes, got %v", got.Quizzes)
	}
}

// A public note back-referencing a listed source is never pulled in
// when the flag is off.
func TestResolveNoPullThroughWithoutFlag(t *testing.T) {
	fetch := newFakeFetcher()
	fetch.sources["s1"] = &models.Source{ID: "s1", CreatedBy: "owner", Permissions: publicGrant()}
	fetch.notes["n2"] = &models.Note{ID: "n2", SourceID: strPtr("s1"), CreatedBy: "owner", Permissions: publicGrant()}

	course := &models.Course{ID: "d1"}

	got, err := Resolve(context.Background(), course, &models.Principal{ID: "y"}, fetch)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(got.Sources)+len(got.Notes)+len(got.Quizzes) != 0 {
		t.Errorf("expected empty content, got %+v", got)
	}
}

func TestResolveAddAllFromNotes(t *testing.T) {
	fetch := newFakeFetcher()
	fetch.sources["s1"] = &models.Source{ID: "s1", CreatedBy: "owner", Permissions: publicGrant()}
	fetch.notes["n1"] = &models.Note{ID: "n1", SourceID: strPtr("s1"), CreatedBy: "owner", Permissions: publicGrant()}
	fetch.notes["n2"] = &models.Note{ID: "n2", CreatedBy: "owner", Permissions: publicGrant()}
	fetch.quizzes["q1"] = &models.Quiz{ID: "q1", NoteID: strPtr("n1"), CreatedBy: "owner", Permissions: publicGrant()}
	fetch.quizzes["q2"] = &models.Quiz{ID: "q2", NoteID: strPtr("n2"), CreatedBy: "owner", Permissions: userGrant("x")}

	course := &models.Course{
		ID:                "c1",
		SourceIDs:         []string{"s1"},
		NoteIDs:           []string{"n2"},
		AddAllFromSources: true,
		AddAllFromNotes:   true,
	}

	// Quizzes from both the transitively pulled note (n1) and the
	// explicitly listed note (n2), filtered by visibility.
	got, err := Resolve(context.Background(), course, &models.Principal{ID: "y"}, fetch)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(got.Notes) != 2 {
		t.Errorf("expected 2 notes, got %d", len(got.Notes))
	}
	if len(got.Quizzes) != 1 || got.Quizzes[0].ID != "q1" {
		t.Errorf("expected quizzes [q1] for y, got %v", got.Quizzes)
	}
}

// A note reachable both explicitly and transitively appears once.
func TestResolveDeduplicates(t *testing.T) {
	fetch := newFakeFetcher()
	fetch.sources["s1"] = &models.Source{ID: "s1", CreatedBy: "owner", Permissions: publicGrant()}
	fetch.notes["n1"] = &models.Note{ID: "n1", SourceID: strPtr("s1"), CreatedBy: "owner", Permissions: publicGrant()}

	course := &models.Course{
		ID:                "c1",
		SourceIDs:         []string{"s1"},
		NoteIDs:           []string{"n1"},
		AddAllFromSources: true,
	}

	got, err := Resolve(context.Background(), course, nil, fetch)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(got.Notes) != 1 {
		t.Errorf("expected note n1 exactly once, got %v", got.Notes)
	}
}

// Deleted or absent ids are skipped silently.
func TestResolveSkipsAbsentResources(t *testing.T) {
	fetch := newFakeFetcher()
	course := &models.Course{
		ID:      "c1",
		NoteIDs: []string{"gone"},
		QuizIDs: []string{"also-gone"},
	}

	got, err := Resolve(context.Background(), course, &models.Principal{ID: "x"}, fetch)
	if err != nil {
		t.Fatalf("expected absent ids to be skipped, got error %v", err)
	}
	if len(got.Notes) != 0 || len(got.Quizzes) != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}
}

// Permuting the id lists must not change the result set.
func TestResolveOrderIndependent(t *testing.T) {
	fetch := newFakeFetcher()
	for _, id := range []string{"s1", "s2", "s3"} {
		fetch.sources[id] = &models.Source{ID: id, CreatedBy: "owner", Permissions: publicGrant()}
	}
	fetch.notes["n1"] = &models.Note{ID: "n1", SourceID: strPtr("s2"), CreatedBy: "owner", Permissions: publicGrant()}
	fetch.quizzes["q1"] = &models.Quiz{ID: "q1", NoteID: strPtr("n1"), CreatedBy: "owner", Permissions: publicGrant()}

	orderings := [][]string{
		{"s1", "s2", "s3"},
		{"s3", "s1", "s2"},
		{"s2", "s3", "s1"},
	}

	var first *Content
	for _, ids := range orderings {
		course := &models.Course{
			ID:                "c1",
			SourceIDs:         ids,
			AddAllFromSources: true,
			AddAllFromNotes:   true,
		}
		got, err := Resolve(context.Background(), course, nil, fetch)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if first == nil {
			first = got
			continue
		}
		if len(got.Sources) != len(first.Sources) || len(got.Notes) != len(first.Notes) || len(got.Quizzes) != len(first.Quizzes) {
			t.Fatalf("result size changed with ordering %v", ids)
		}
		for i := range got.Sources {
			if got.Sources[i].ID != first.Sources[i].ID {
				t.Errorf("source order differs at %d: %s vs %s", i, got.Sources[i].ID, first.Sources[i].ID)
			}
		}
	}
}

// One batched call per traversal step, regardless of list sizes.
func TestResolveBatchesLookups(t *testing.T) {
	fetch := newFakeFetcher()
	for _, id := range []string{"s1", "s2", "s3", "s4"} {
		fetch.sources[id] = &models.Source{ID: id, CreatedBy: "owner", Permissions: publicGrant()}
	}

	course := &models.Course{
		ID:                "c1",
		SourceIDs:         []string{"s1", "s2", "s3", "s4"},
		AddAllFromSources: true,
		AddAllFromNotes:   true,
	}

	if _, err := Resolve(context.Background(), course, nil, fetch); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	for call, n := range fetch.calls {
		if n > 1 {
			t.Errorf("%s called %d times, want at most 1", call, n)
		}
	}
}

// Storage failures propagate unchanged.
func TestResolvePropagatesFetchErrors(t *testing.T) {
	fetch := newFakeFetcher()
	fetch.err = errors.New("storage down")

	course := &models.Course{ID: "c1", SourceIDs: []string{"s1"}}
	if _, err := Resolve(context.Background(), course, nil, fetch); !errors.Is(err, fetch.err) {
		t.Fatalf("expected storage error to propagate, got %v", err)
	}
}
