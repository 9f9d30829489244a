// Package hierarchy validates course relationship edges before they
// are persisted. Courses form two independent directed graphs, one of
// parent-course edges and one of prerequisite edges; each must stay
// acyclic on its own (a course may appear in both graphs at once,
// since they are distinct relations).
package hierarchy

import (
	"context"

	"mneme/internal/domain"
)

// EdgeKind selects which relationship graph an edge belongs to.
type EdgeKind string

const (
	EdgeParent       EdgeKind = "parent"
	EdgePrerequisite EdgeKind = "prerequisite"
)

// EdgeFetcher returns the existing outgoing edges of the given kind
// for a course. A course with no outgoing edges is a leaf.
type EdgeFetcher func(ctx context.Context, courseID string) ([]string, error)

// ValidateEdge checks that adding an edge of the given kind from
// fromCourseID to toCourseID keeps the graph acyclic. It rejects
// self-references immediately, then walks the graph depth-first from
// toCourseID; if fromCourseID is reachable, the new edge would close
// a cycle. The visited set guarantees termination even on data that
// is already malformed. Nothing is mutated; the caller persists the
// edge only after validation passes, inside the same transaction.
func ValidateEdge(ctx context.Context, kind EdgeKind, fromCourseID, toCourseID string, fetch EdgeFetcher) error {
	if fromCourseID == toCourseID {
		return &domain.CyclicRelationshipError{
			Kind:         string(kind),
			FromCourseID: fromCourseID,
			ToCourseID:   toCourseID,
		}
	}

	visited := make(map[string]struct{})
	stack := []string{toCourseID}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if id == fromCourseID {
			return &domain.CyclicRelationshipError{
				Kind:         string(kind),
				FromCourseID: fromCourseID,
				ToCourseID:   toCourseID,
			}
		}
		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}

		edges, err := fetch(ctx, id)
		if err != nil {
			return err
		}
		stack = append(stack, edges...)
	}

	return nil
}
