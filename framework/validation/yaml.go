package validation

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a mapping of field → descriptor, keeping the order of
// the document. Malformed descriptors are reported with their line number.
func (rs *RuleSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: rules must be a mapping of field to descriptor", node.Line)
	}

	out := make(RuleSet, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: rules for %q must be a string", val.Line, key.Value)
		}
		fr, err := ParseDescriptor(key.Value, val.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", val.Line, err)
		}
		out = append(out, fr)
	}

	*rs = out
	return nil
}

// MarshalYAML writes the set as an ordered mapping of descriptors.
func (rs RuleSet) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, fr := range rs {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fr.Field},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fr.Descriptor()},
		)
	}
	return node, nil
}

// Overrides is a decoded message file. Top-level string entries replace a
// rule's template for every field; nested mappings override per field.
//
//	required: "Please fill in %s."
//	email:
//	  required: "We need your email."
//
// Any value that is not a string is ignored.
type Overrides struct {
	Catalog Catalog
	Fields  Messages
}

// Options turns the overrides into validator options.
func (o Overrides) Options() []Option {
	var opts []Option
	if len(o.Catalog) > 0 {
		opts = append(opts, WithCatalog(o.Catalog))
	}
	if len(o.Fields) > 0 {
		opts = append(opts, WithMessages(o.Fields))
	}
	return opts
}

func (o *Overrides) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: messages must be a mapping", node.Line)
	}

	o.Catalog = make(Catalog)
	o.Fields = make(Messages)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch {
		case isString(val):
			o.Catalog[key.Value] = val.Value
		case val.Kind == yaml.MappingNode:
			rules := make(map[string]string)
			for j := 0; j+1 < len(val.Content); j += 2 {
				if isString(val.Content[j+1]) {
					rules[val.Content[j].Value] = val.Content[j+1].Value
				}
			}
			if len(rules) > 0 {
				o.Fields[key.Value] = rules
			}
		}
	}
	return nil
}

func isString(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str"
}
