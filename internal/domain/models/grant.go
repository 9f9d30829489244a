package models

// Grant is the permission record attached to every shareable resource.
// It encodes public visibility plus explicit per-user and per-group
// read and write lists. Write access implies read access; the access
// package enforces that, so a grant does not need to duplicate write
// entries into the read lists.
type Grant struct {
	IsPublic    bool     `json:"is_public" db:"is_public"`
	ReadUsers   []string `json:"read_users" db:"read_users"`
	ReadGroups  []string `json:"read_groups" db:"read_groups"`
	WriteUsers  []string `json:"write_users" db:"write_users"`
	WriteGroups []string `json:"write_groups" db:"write_groups"`
}

// Normalize collapses duplicate IDs in each list. Malformed grants
// arriving from the API are normalized here rather than rejected;
// the lists have set semantics.
func (g *Grant) Normalize() {
	g.ReadUsers = dedupe(g.ReadUsers)
	g.ReadGroups = dedupe(g.ReadGroups)
	g.WriteUsers = dedupe(g.WriteUsers)
	g.WriteGroups = dedupe(g.WriteGroups)
}

func dedupe(ids []string) []string {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
