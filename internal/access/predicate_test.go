package access

import (
	"testing"

	"mneme/internal/domain/models"
)

// ReadablePredicate must make exactly the same decision as CanRead
// for every grant/principal combination.
func TestReadablePredicateMatchesCanRead(t *testing.T) {
	grants := []models.Grant{
		{},
		{IsPublic: true},
		{ReadUsers: []string{"bob"}},
		{ReadGroups: []string{"g1"}},
		{WriteUsers: []string{"bob"}},
		{WriteGroups: []string{"g1"}},
		{ReadUsers: []string{"carol"}, WriteGroups: []string{"g2"}},
	}
	principals := []*models.Principal{
		nil,
		{ID: "alice"},
		{ID: "bob"},
		{ID: "bob", GroupIDs: []string{"g1"}},
		{ID: "carol", GroupIDs: []string{"g2"}},
		{ID: "dave", GroupIDs: []string{"g1", "g2"}},
	}

	for _, g := range grants {
		for _, p := range principals {
			r := &models.Note{ID: "n1", CreatedBy: "alice", Permissions: g}
			pred := ReadablePredicate(p)
			if pred(r) != CanRead(r, p) {
				t.Errorf("predicate disagrees with CanRead for grant %+v principal %+v", g, p)
			}
		}
	}
}

func TestReadableClauseAnonymous(t *testing.T) {
	clause, args := ReadableClause(nil, 1)
	if clause != "is_public" {
		t.Errorf("expected bare is_public clause for anonymous, got %q", clause)
	}
	if len(args) != 0 {
		t.Errorf("expected no args for anonymous, got %v", args)
	}
}

func TestReadableClauseAuthenticated(t *testing.T) {
	p := &models.Principal{ID: "user-1", GroupIDs: []string{"g1", "g2"}}
	clause, args := ReadableClause(p, 3)

	want := "(is_public" +
		" OR created_by = $3" +
		" OR $3 = ANY(read_users)" +
		" OR $3 = ANY(write_users)" +
		" OR read_groups && $4" +
		" OR write_groups && $4" +
		")"
	if clause != want {
		t.Errorf("clause mismatch:\n got %q\nwant %q", clause, want)
	}

	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}
	if args[0] != "user-1" {
		t.Errorf("expected first arg to be the user id, got %v", args[0])
	}
	groups, ok := args[1].([]string)
	if !ok || len(groups) != 2 {
		t.Errorf("expected second arg to be the group id list, got %v", args[1])
	}
}

// Group list must never be nil so the array overlap operator sees an
// empty array rather than NULL.
func TestReadableClauseNoGroups(t *testing.T) {
	clause, args := ReadableClause(&models.Principal{ID: "user-1"}, 1)
	if clause == "" {
		t.Fatal("expected non-empty clause")
	}
	groups, ok := args[1].([]string)
	if !ok {
		t.Fatalf("expected []string group arg, got %T", args[1])
	}
	if groups == nil {
		t.Error("group arg must be an empty slice, not nil")
	}
}
