package quiztypes

import "testing"

func TestNewRegistryLoadsCatalog(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	types := r.List()
	if len(types) == 0 {
		t.Fatal("List() returned no quiz types")
	}

	want := []string{
		"prompt-response",
		"multiple-choice",
		"unordered-list-answer",
		"ordered-list-answer",
		"fill-in-the-blank",
		"verbatim",
	}
	if len(types) != len(want) {
		t.Fatalf("List() returned %d types, want %d", len(types), len(want))
	}
	for i, id := range want {
		if types[i].ID != id {
			t.Errorf("List()[%d].ID = %q, want %q", i, types[i].ID, id)
		}
	}
}

func TestRegistryGet(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	spec, err := r.Get("multiple-choice")
	if err != nil {
		t.Fatalf("Get(multiple-choice) error = %v", err)
	}
	if !spec.RequiresChoices {
		t.Error("multiple-choice should require choices")
	}

	if _, err := r.Get("essay"); err == nil {
		t.Error("Get(essay) should fail for unknown type")
	}
}

func TestRegistryValidate(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	tests := []struct {
		name    string
		typeID  string
		choices []string
		answers []string
		wantErr bool
	}{
		{
			name:    "valid multiple choice",
			typeID:  "multiple-choice",
			choices: []string{"a", "b", "c"},
			answers: []string{"b"},
		},
		{
			name:    "multiple choice without choices",
			typeID:  "multiple-choice",
			answers: []string{"b"},
			wantErr: true,
		},
		{
			name:    "answer outside choices",
			typeID:  "multiple-choice",
			choices: []string{"a", "b"},
			answers: []string{"z"},
			wantErr: true,
		},
		{
			name:    "prompt-response with choices",
			typeID:  "prompt-response",
			choices: []string{"a"},
			answers: []string{"x"},
			wantErr: true,
		},
		{
			name:    "prompt-response with two answers",
			typeID:  "prompt-response",
			answers: []string{"x", "y"},
			wantErr: true,
		},
		{
			name:    "ordered list",
			typeID:  "ordered-list-answer",
			answers: []string{"first", "second", "third"},
		},
		{
			name:    "no answers",
			typeID:  "verbatim",
			answers: nil,
			wantErr: true,
		},
		{
			name:    "unknown type",
			typeID:  "essay",
			answers: []string{"x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Validate(tt.typeID, tt.choices, tt.answers)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
