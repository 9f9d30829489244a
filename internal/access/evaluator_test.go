package access

import (
	"testing"

	"mneme/internal/domain/models"
)

func note(owner string, grant models.Grant) *models.Note {
	return &models.Note{
		ID:          "note-1",
		Title:       "test note",
		CreatedBy:   owner,
		Permissions: grant,
	}
}

func principal(id string, groups ...string) *models.Principal {
	return &models.Principal{ID: id, GroupIDs: groups}
}

func TestCanRead(t *testing.T) {
	tests := []struct {
		name      string
		grant     models.Grant
		owner     string
		principal *models.Principal
		want      bool
	}{
		{
			name:      "public readable by anonymous",
			grant:     models.Grant{IsPublic: true},
			owner:     "alice",
			principal: nil,
			want:      true,
		},
		{
			name:      "public readable by anyone",
			grant:     models.Grant{IsPublic: true},
			owner:     "alice",
			principal: principal("bob"),
			want:      true,
		},
		{
			name:      "private not readable by anonymous",
			grant:     models.Grant{},
			owner:     "alice",
			principal: nil,
			want:      false,
		},
		{
			name:      "owner always reads",
			grant:     models.Grant{},
			owner:     "alice",
			principal: principal("alice"),
			want:      true,
		},
		{
			name:      "listed read user",
			grant:     models.Grant{ReadUsers: []string{"bob"}},
			owner:     "alice",
			principal: principal("bob"),
			want:      true,
		},
		{
			name:      "unlisted user denied",
			grant:     models.Grant{ReadUsers: []string{"bob"}},
			owner:     "alice",
			principal: principal("carol"),
			want:      false,
		},
		{
			name:      "read group membership",
			grant:     models.Grant{ReadGroups: []string{"g1"}},
			owner:     "alice",
			principal: principal("bob", "g1", "g2"),
			want:      true,
		},
		{
			name:      "no group overlap denied",
			grant:     models.Grant{ReadGroups: []string{"g1"}},
			owner:     "alice",
			principal: principal("bob", "g3"),
			want:      false,
		},
		{
			name:      "write user implies read",
			grant:     models.Grant{WriteUsers: []string{"bob"}},
			owner:     "alice",
			principal: principal("bob"),
			want:      true,
		},
		{
			name:      "write group implies read",
			grant:     models.Grant{WriteGroups: []string{"g1"}},
			owner:     "alice",
			principal: principal("bob", "g1"),
			want:      true,
		},
		{
			name:      "duplicate ids collapse without error",
			grant:     models.Grant{ReadUsers: []string{"bob", "bob", "bob"}},
			owner:     "alice",
			principal: principal("bob"),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := note(tt.owner, tt.grant)
			if got := CanRead(r, tt.principal); got != tt.want {
				t.Errorf("CanRead() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanWrite(t *testing.T) {
	tests := []struct {
		name      string
		grant     models.Grant
		owner     string
		principal *models.Principal
		want      bool
	}{
		{
			name:      "anonymous never writes public resources",
			grant:     models.Grant{IsPublic: true},
			owner:     "alice",
			principal: nil,
			want:      false,
		},
		{
			name:      "owner always writes",
			grant:     models.Grant{},
			owner:     "alice",
			principal: principal("alice"),
			want:      true,
		},
		{
			name:      "listed write user",
			grant:     models.Grant{WriteUsers: []string{"bob"}},
			owner:     "alice",
			principal: principal("bob"),
			want:      true,
		},
		{
			name:      "write group membership",
			grant:     models.Grant{WriteGroups: []string{"g1"}},
			owner:     "alice",
			principal: principal("bob", "g1"),
			want:      true,
		},
		{
			name:      "read grant does not permit writes",
			grant:     models.Grant{ReadUsers: []string{"bob"}, ReadGroups: []string{"g1"}},
			owner:     "alice",
			principal: principal("bob", "g1"),
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := note(tt.owner, tt.grant)
			if got := CanWrite(r, tt.principal); got != tt.want {
				t.Errorf("CanWrite() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Write access must imply read access for every grant/principal pair.
func TestWriteImpliesRead(t *testing.T) {
	grants := []models.Grant{
		{},
		{IsPublic: true},
		{WriteUsers: []string{"bob"}},
		{WriteGroups: []string{"g1"}},
		{ReadUsers: []string{"carol"}, WriteUsers: []string{"bob"}},
		{ReadGroups: []string{"g2"}, WriteGroups: []string{"g1"}},
	}
	principals := []*models.Principal{
		nil,
		principal("alice"),
		principal("bob"),
		principal("bob", "g1"),
		principal("carol", "g2"),
		principal("dave", "g1", "g2"),
	}

	for _, g := range grants {
		for _, p := range principals {
			r := note("alice", g)
			if CanWrite(r, p) && !CanRead(r, p) {
				t.Errorf("CanWrite true but CanRead false for grant %+v principal %+v", g, p)
			}
		}
	}
}
