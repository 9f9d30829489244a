package quiztypes

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry holds the quiz type catalog loaded from embedded YAML
type Registry struct {
	catalog *TypeCatalog
	byID    map[string]*TypeSpec
	mu      sync.RWMutex
}

// NewRegistry creates a new quiz type registry from the embedded catalog
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/quiz_types.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read quiz type catalog: %w", err)
	}

	var catalog TypeCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quiz type catalog: %w", err)
	}

	r := &Registry{
		catalog: &catalog,
		byID:    make(map[string]*TypeSpec, len(catalog.Types)),
	}
	for i := range catalog.Types {
		r.byID[catalog.Types[i].ID] = &catalog.Types[i]
	}

	return r, nil
}

// Get returns the spec for a quiz type
func (r *Registry) Get(typeID string) (*TypeSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, ok := r.byID[typeID]
	if !ok {
		return nil, fmt.Errorf("unknown quiz type: %s", typeID)
	}
	return spec, nil
}

// List returns all quiz types (ordered as defined in the YAML)
func (r *Registry) List() []TypeSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.catalog.Types
}

// Validate checks a quiz's choices and answers against its type's
// authoring rules.
func (r *Registry) Validate(typeID string, choices, answers []string) error {
	spec, err := r.Get(typeID)
	if err != nil {
		return err
	}

	if spec.RequiresChoices && len(choices) == 0 {
		return fmt.Errorf("quiz type %s requires choices", typeID)
	}
	if !spec.RequiresChoices && len(choices) > 0 {
		return fmt.Errorf("quiz type %s does not take choices", typeID)
	}
	if len(answers) < spec.MinAnswers {
		return fmt.Errorf("quiz type %s requires at least %d answer(s)", typeID, spec.MinAnswers)
	}
	if spec.AnswerShape == AnswerShapeSingle && len(answers) > 1 {
		return fmt.Errorf("quiz type %s takes a single answer", typeID)
	}

	if spec.RequiresChoices {
		valid := make(map[string]bool, len(choices))
		for _, c := range choices {
			valid[c] = true
		}
		for _, a := range answers {
			if !valid[a] {
				return fmt.Errorf("answer %q is not one of the choices", a)
			}
		}
	}

	return nil
}
