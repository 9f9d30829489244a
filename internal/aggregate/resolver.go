// Package aggregate expands one course's content for one principal.
//
// A course lists sources, notes and quizzes explicitly and may opt
// into pulling in notes/quizzes that back-reference its listed
// content. The resolver walks those links with one batched lookup per
// step, filters every visited resource through the access package,
// and returns de-duplicated result sets. Unreadable or absent
// resources are silently excluded, never errors; parent-course and
// prerequisite edges are never followed (those are independent
// courses with their own access rules).
package aggregate

import (
	"context"
	"sort"

	"mneme/internal/access"
	"mneme/internal/domain/models"
)

// Fetcher supplies the batched storage lookups the resolver needs.
// Lookups by ID return a map keyed by ID; ids that are absent
// (deleted or never existed) are simply missing from the map. The
// back-reference lookups must be index-backed on the storage side.
type Fetcher interface {
	SourcesByID(ctx context.Context, ids []string) (map[string]*models.Source, error)
	NotesByID(ctx context.Context, ids []string) (map[string]*models.Note, error)
	QuizzesByID(ctx context.Context, ids []string) (map[string]*models.Quiz, error)

	NotesBySources(ctx context.Context, sourceIDs []string) ([]*models.Note, error)
	QuizzesBySources(ctx context.Context, sourceIDs []string) ([]*models.Quiz, error)
	QuizzesByNotes(ctx context.Context, noteIDs []string) ([]*models.Quiz, error)
}

// Content holds the readable subset of a course's aggregated
// sources, notes and quizzes. Each slice is de-duplicated and sorted
// by ID so the result is independent of traversal order.
type Content struct {
	Sources []*models.Source `json:"sources"`
	Notes   []*models.Note   `json:"notes"`
	Quizzes []*models.Quiz   `json:"quizzes"`
}

// Resolve returns everything the course exposes to the principal.
//
// Steps, each one batched call to the fetcher:
//  1. fetch the explicitly listed sources, keep the readable ones;
//  2. if AddAllFromSources, pull notes and quizzes back-referencing
//     those sources;
//  3. fetch the explicitly listed notes;
//  4. if AddAllFromNotes, pull quizzes back-referencing every note
//     collected so far;
//  5. fetch the explicitly listed quizzes.
//
// I/O failures from the fetcher propagate unchanged; permission
// failures and absent ids are silent exclusions.
func Resolve(ctx context.Context, course *models.Course, principal *models.Principal, fetch Fetcher) (*Content, error) {
	sources := make(map[string]*models.Source)
	notes := make(map[string]*models.Note)
	quizzes := make(map[string]*models.Quiz)

	byID, err := fetch.SourcesByID(ctx, course.SourceIDs)
	if err != nil {
		return nil, err
	}
	for id, s := range byID {
		if s != nil && access.CanRead(s, principal) {
			sources[id] = s
		}
	}

	if course.AddAllFromSources && len(sources) > 0 {
		sourceIDs := sortedKeys(sources)

		linkedNotes, err := fetch.NotesBySources(ctx, sourceIDs)
		if err != nil {
			return nil, err
		}
		for _, n := range linkedNotes {
			if access.CanRead(n, principal) {
				notes[n.ID] = n
			}
		}

		linkedQuizzes, err := fetch.QuizzesBySources(ctx, sourceIDs)
		if err != nil {
			return nil, err
		}
		for _, q := range linkedQuizzes {
			if access.CanRead(q, principal) {
				quizzes[q.ID] = q
			}
		}
	}

	notesByID, err := fetch.NotesByID(ctx, course.NoteIDs)
	if err != nil {
		return nil, err
	}
	for id, n := range notesByID {
		if n != nil && access.CanRead(n, principal) {
			notes[id] = n
		}
	}

	if course.AddAllFromNotes && len(notes) > 0 {
		linkedQuizzes, err := fetch.QuizzesByNotes(ctx, sortedKeys(notes))
		if err != nil {
			return nil, err
		}
		for _, q := range linkedQuizzes {
			if access.CanRead(q, principal) {
				quizzes[q.ID] = q
			}
		}
	}

	quizzesByID, err := fetch.QuizzesByID(ctx, course.QuizIDs)
	if err != nil {
		return nil, err
	}
	for id, q := range quizzesByID {
		if q != nil && access.CanRead(q, principal) {
			quizzes[id] = q
		}
	}

	return &Content{
		Sources: sortedSources(sources),
		Notes:   sortedNotes(notes),
		Quizzes: sortedQuizzes(quizzes),
	}, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSources(m map[string]*models.Source) []*models.Source {
	out := make([]*models.Source, 0, len(m))
	for _, k := range sortedKeys(m) {
		out = append(out, m[k])
	}
	return out
}

func sortedNotes(m map[string]*models.Note) []*models.Note {
	out := make([]*models.Note, 0, len(m))
	for _, k := range sortedKeys(m) {
		out = append(out, m[k])
	}
	return out
}

func sortedQuizzes(m map[string]*models.Quiz) []*models.Quiz {
	out := make([]*models.Quiz, 0, len(m))
	for _, k := range sortedKeys(m) {
		out = append(out, m[k])
	}
	return out
}
