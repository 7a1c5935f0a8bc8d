package persona

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed example.yaml
var exampleConfig []byte

// ExampleConfig returns a commented starter persona configuration.
func ExampleConfig() []byte {
	return append([]byte(nil), exampleConfig...)
}

// Load reads a persona spec from a YAML file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read persona config %s: %w", path, err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse persona config %s: %w", path, err)
	}
	return spec, nil
}

// Parse decodes a persona spec from YAML.
func Parse(data []byte) (*Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UnmarshalYAML classifies an attribute's shape structurally while decoding:
//
//	null / omitted        -> Absent
//	[a, b, c]             -> Options
//	[lo, hi] both numeric -> Range
//	[[a, b], [c]]         -> Multi
//
// A two-element sequence becomes a range only when both elements are
// numbers; ["low", "high"] stays a discrete set.
func (a *Attribute) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*a = Attribute{}
			return nil
		}
		return fmt.Errorf("line %d: attribute must be null or a sequence, got scalar %q", node.Line, node.Value)
	case yaml.SequenceNode:
		// empty sequence degrades to absent
		if len(node.Content) == 0 {
			*a = Attribute{}
			return nil
		}
		if allSequences(node.Content) {
			groups := make([][]string, 0, len(node.Content))
			for _, child := range node.Content {
				var group []string
				if err := child.Decode(&group); err != nil {
					return fmt.Errorf("line %d: multi-select group: %w", child.Line, err)
				}
				groups = append(groups, group)
			}
			*a = MultiChoice(groups...)
			return nil
		}
		if len(node.Content) == 2 {
			lo, loOK := numericValue(node.Content[0])
			hi, hiOK := numericValue(node.Content[1])
			if loOK && hiOK {
				*a = NumRange(lo, hi)
				return nil
			}
		}
		options := make([]string, 0, len(node.Content))
		for _, child := range node.Content {
			if child.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: attribute options must be scalars", child.Line)
			}
			options = append(options, child.Value)
		}
		*a = Choice(options...)
		return nil
	default:
		return fmt.Errorf("line %d: attribute must be null or a sequence", node.Line)
	}
}

func allSequences(nodes []*yaml.Node) bool {
	for _, n := range nodes {
		if n.Kind != yaml.SequenceNode {
			return false
		}
	}
	return true
}

// numericValue reports whether a scalar node holds a number, by type tag
// rather than by position in the sequence.
func numericValue(n *yaml.Node) (float64, bool) {
	if n.Kind != yaml.ScalarNode {
		return 0, false
	}
	switch n.Tag {
	case "!!int", "!!float":
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}
