package domain

import (
	"fmt"
	"sort"
)

// Rule declares the statuses that may directly follow From.
// An empty To marks a terminal status.
type Rule struct {
	From string   `json:"from" yaml:"from"`
	To   []string `json:"to" yaml:"to"`
}

// Transitions is an ordered transition mapping. Order only affects the
// construction order of the resulting graph, never validation.
type Transitions []Rule

// TransitionsFromMap converts an unordered mapping into rules sorted by name.
func TransitionsFromMap(m map[string][]string) Transitions {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Transitions, 0, len(keys))
	for _, k := range keys {
		to := append([]string(nil), m[k]...)
		out = append(out, Rule{From: k, To: to})
	}
	return out
}

// Map flattens the rules back into a mapping, merging duplicate sources.
func (t Transitions) Map() map[string][]string {
	out := make(map[string][]string, len(t))
	for _, r := range t {
		out[r.From] = append(out[r.From], r.To...)
	}
	return out
}

// Definition is a named transition mapping.
type Definition struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Transitions Transitions `json:"transitions" yaml:"transitions"`
}

// Validate checks that the definition can be stored and compiled.
func (d Definition) Validate() error {
	if d.Name == "" {
		return ErrUnnamedDefinition
	}
	if len(d.Transitions) == 0 {
		return fmt.Errorf("definition %q: %w", d.Name, ErrEmptyTransitions)
	}
	return nil
}
