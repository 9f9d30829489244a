package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"mneme/internal/domain"
)

// fetcherFor builds an EdgeFetcher over a static adjacency map.
func fetcherFor(edges map[string][]string) EdgeFetcher {
	return func(_ context.Context, courseID string) ([]string, error) {
		return edges[courseID], nil
	}
}

func TestValidateEdgeSelfReference(t *testing.T) {
	err := ValidateEdge(context.Background(), EdgeParent, "a", "a", fetcherFor(nil))
	if !errors.Is(err, domain.ErrCyclic) {
		t.Fatalf("expected cyclic relationship error, got %v", err)
	}
}

func TestValidateEdge(t *testing.T) {
	tests := []struct {
		name     string
		edges    map[string][]string
		from, to string
		wantErr  bool
	}{
		{
			name:    "edge into empty graph",
			edges:   map[string][]string{},
			from:    "a",
			to:      "b",
			wantErr: false,
		},
		{
			name:    "two-node cycle",
			edges:   map[string][]string{"a": {"b"}},
			from:    "b",
			to:      "a",
			wantErr: true,
		},
		{
			name:    "long chain cycle",
			edges:   map[string][]string{"a": {"b"}, "b": {"c"}, "c": {"d"}},
			from:    "d",
			to:      "a",
			wantErr: true,
		},
		{
			name:    "diamond without cycle",
			edges:   map[string][]string{"b": {"d"}, "c": {"d"}},
			from:    "a",
			to:      "b",
			wantErr: false,
		},
		{
			name:    "branching graph reaches origin",
			edges:   map[string][]string{"b": {"c", "d"}, "d": {"e", "a"}},
			from:    "a",
			to:      "b",
			wantErr: true,
		},
		{
			name:    "leaf target",
			edges:   map[string][]string{"a": {"b"}},
			from:    "c",
			to:      "b",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEdge(context.Background(), EdgePrerequisite, tt.from, tt.to, fetcherFor(tt.edges))
			if tt.wantErr && !errors.Is(err, domain.ErrCyclic) {
				t.Errorf("expected cyclic relationship error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// Already-cyclic data must not hang the traversal.
func TestValidateEdgeTerminatesOnMalformedGraph(t *testing.T) {
	edges := map[string][]string{"b": {"c"}, "c": {"b"}}
	if err := ValidateEdge(context.Background(), EdgeParent, "a", "b", fetcherFor(edges)); err != nil {
		t.Fatalf("unexpected error on pre-existing cycle not involving the new edge: %v", err)
	}
}

func TestValidateEdgePropagatesFetchErrors(t *testing.T) {
	boom := fmt.Errorf("storage down")
	fetch := func(_ context.Context, _ string) ([]string, error) {
		return nil, boom
	}
	err := ValidateEdge(context.Background(), EdgeParent, "a", "b", fetch)
	if !errors.Is(err, boom) {
		t.Fatalf("expected fetch error to propagate unchanged, got %v", err)
	}
}
