package models

// Principal is the acting identity a request is evaluated against.
// A nil *Principal represents an anonymous caller.
type Principal struct {
	ID       string
	GroupIDs []string
}

// InGroup reports whether the principal belongs to the given group.
func (p *Principal) InGroup(groupID string) bool {
	if p == nil {
		return false
	}
	for _, id := range p.GroupIDs {
		if id == groupID {
			return true
		}
	}
	return false
}
