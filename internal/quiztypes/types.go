package quiztypes

import "gopkg.in/yaml.v3"

// AnswerShape describes how a quiz type's answers relate to each other
type AnswerShape string

const (
	AnswerShapeSingle    AnswerShape = "single"
	AnswerShapeUnordered AnswerShape = "unordered"
	AnswerShapeOrdered   AnswerShape = "ordered"
)

// TypeSpec represents the authoring rules for one quiz type
type TypeSpec struct {
	// Type identifier (set during YAML unmarshaling)
	ID string `yaml:"-" json:"id"`

	// Display information
	DisplayName string `yaml:"display_name" json:"display_name"`
	Description string `yaml:"description" json:"description"`

	// Authoring rules
	RequiresChoices bool        `yaml:"requires_choices" json:"requires_choices"`
	AnswerShape     AnswerShape `yaml:"answer_shape" json:"answer_shape"`
	MinAnswers      int         `yaml:"min_answers" json:"min_answers"`

	// Grading hints
	ExactMatch bool `yaml:"exact_match" json:"exact_match"`
}

// TypeCatalog represents the full set of quiz types
type TypeCatalog struct {
	Types []TypeSpec `yaml:"-" json:"types"` // Ordered slice, populated by custom unmarshaler
}

// UnmarshalYAML implements custom YAML unmarshaling to preserve type order from the YAML file
func (c *TypeCatalog) UnmarshalYAML(node *yaml.Node) error {
	type typesOnly struct {
		Types map[string]TypeSpec `yaml:"types"`
	}
	var t typesOnly
	if err := node.Decode(&t); err != nil {
		return err
	}

	for i := 0; i < len(node.Content); i += 2 {
		if node.Content[i].Value == "types" {
			typesNode := node.Content[i+1]
			// typesNode.Content alternates: key, value, key, value...
			for j := 0; j < len(typesNode.Content); j += 2 {
				typeID := typesNode.Content[j].Value
				if spec, ok := t.Types[typeID]; ok {
					spec.ID = typeID
					c.Types = append(c.Types, spec)
				}
			}
			break
		}
	}

	return nil
}
