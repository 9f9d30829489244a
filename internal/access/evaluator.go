// Package access decides what a principal may see and change.
//
// The two entry points, CanRead and CanWrite, are pure functions of a
// resource's grant and the requesting principal; the service layer
// gates on them before returning or persisting data. Bulk
// listings use ReadableClause (predicate.go) so that database-side
// filtering makes exactly the same decisions.
package access

import "mneme/internal/domain/models"

// CanRead reports whether the principal may read the resource.
// True when the resource is public, the principal owns it, the
// principal is listed (directly or via a group) in the read grant,
// or the principal holds write access (write implies read).
// Anonymous principals (nil) can read only public resources.
func CanRead(r models.Resource, p *models.Principal) bool {
	if r == nil {
		return false
	}
	g := r.AccessGrant()
	if g.IsPublic {
		return true
	}
	if p == nil {
		return false
	}
	if p.ID == r.OwnerID() {
		return true
	}
	if containsID(g.ReadUsers, p.ID) {
		return true
	}
	if intersects(g.ReadGroups, p.GroupIDs) {
		return true
	}
	return CanWrite(r, p)
}

// CanWrite reports whether the principal may mutate the resource.
// Only the owner and principals listed (directly or via a group) in
// the write grant may write. Anonymous principals can never write.
func CanWrite(r models.Resource, p *models.Principal) bool {
	if r == nil || p == nil {
		return false
	}
	if p.ID == r.OwnerID() {
		return true
	}
	g := r.AccessGrant()
	if containsID(g.WriteUsers, p.ID) {
		return true
	}
	return intersects(g.WriteGroups, p.GroupIDs)
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}
