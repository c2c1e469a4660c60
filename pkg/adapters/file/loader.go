// Package file loads status maps from YAML or JSON definition files.
//
// Two layouts are accepted. The full form names the map:
//
//	name: orders
//	description: Order lifecycle
//	transitions:
//	  pending: [processing]
//	  processing: [approved, rejected]
//	  rejected: ~
//
// The short form is the bare transitions mapping. Successors may be a list,
// a single name, or null for terminals. Key order is preserved.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/statusmap/pkg/domain"
)

// Loader implements ports.DefinitionLoader and ports.Watchable for one file.
type Loader struct {
	path string
	opts options
}

// New creates a loader for the file at path.
func New(path string, opts ...Option) *Loader {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Loader{path: path, opts: o}
}

// Path returns the watched file path.
func (l *Loader) Path() string {
	return l.path
}

// Load reads and parses the file.
func (l *Loader) Load(ctx context.Context) (domain.Definition, error) {
	if err := ctx.Err(); err != nil {
		return domain.Definition{}, err
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("failed to read definition file: %w", err)
	}

	def, err := Parse(data)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("%s: %w", l.path, err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(l.path), filepath.Ext(l.path))
	}
	return def, nil
}

// Parse decodes a YAML or JSON document into a definition.
func Parse(data []byte) (domain.Definition, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.Definition{}, fmt.Errorf("invalid definition: %w", err)
	}
	if len(doc.Content) == 0 {
		return domain.Definition{}, domain.ErrEmptyTransitions
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return domain.Definition{}, fmt.Errorf("line %d: definition must be a mapping", root.Line)
	}

	var def domain.Definition
	transitions := root
	if node := lookup(root, "transitions"); node != nil {
		transitions = node
		if n := lookup(root, "name"); n != nil {
			if err := n.Decode(&def.Name); err != nil {
				return domain.Definition{}, fmt.Errorf("line %d: invalid name: %w", n.Line, err)
			}
		}
		if n := lookup(root, "description"); n != nil {
			if err := n.Decode(&def.Description); err != nil {
				return domain.Definition{}, fmt.Errorf("line %d: invalid description: %w", n.Line, err)
			}
		}
	}

	rules, err := decodeTransitions(transitions)
	if err != nil {
		return domain.Definition{}, err
	}
	if len(rules) == 0 {
		return domain.Definition{}, domain.ErrEmptyTransitions
	}
	def.Transitions = rules
	return def, nil
}

func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func decodeTransitions(node *yaml.Node) (domain.Transitions, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: transitions must be a mapping", node.Line)
	}

	rules := make(domain.Transitions, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		next, err := decodeSuccessors(value)
		if err != nil {
			return nil, fmt.Errorf("line %d: successors of %q: %w", value.Line, key.Value, err)
		}
		rules = append(rules, domain.Rule{From: key.Value, To: next})
	}
	return rules, nil
}

func decodeSuccessors(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
		return []string{node.Value}, nil
	case yaml.SequenceNode:
		var next []string
		if err := node.Decode(&next); err != nil {
			return nil, err
		}
		return next, nil
	default:
		return nil, fmt.Errorf("expected a list, a name or null")
	}
}
