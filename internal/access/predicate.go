package access

import (
	"fmt"

	"mneme/internal/domain/models"
)

// Predicate reports whether a single resource is visible to the
// principal it was built for.
type Predicate func(models.Resource) bool

// ReadablePredicate returns a reusable predicate equivalent to
// CanRead(_, p). Bulk in-memory filters must use this rather than
// reimplementing the grant rules so that single-resource checks and
// listings can never disagree.
func ReadablePredicate(p *models.Principal) Predicate {
	return func(r models.Resource) bool {
		return CanRead(r, p)
	}
}

// ReadableClause builds the SQL condition equivalent to CanRead for
// pushing the visibility filter into a bulk-listing query. argIndex
// is the placeholder number the clause's first argument should use;
// the returned args line up with the placeholders in the clause.
//
// The clause assumes the queried table carries the grant columns
// is_public, read_users, read_groups, write_users, write_groups and
// the owner column created_by.
func ReadableClause(p *models.Principal, argIndex int) (string, []interface{}) {
	if p == nil {
		return "is_public", nil
	}

	userArg := fmt.Sprintf("$%d", argIndex)
	groupArg := fmt.Sprintf("$%d", argIndex+1)

	clause := "(is_public" +
		" OR created_by = " + userArg +
		" OR " + userArg + " = ANY(read_users)" +
		" OR " + userArg + " = ANY(write_users)" +
		" OR read_groups && " + groupArg +
		" OR write_groups && " + groupArg +
		")"

	groups := p.GroupIDs
	if groups == nil {
		groups = []string{}
	}

	return clause, []interface{}{p.ID, groups}
}
