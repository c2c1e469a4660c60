package domain

import (
	"slices"
	"sort"
)

// DefinitionDiff represents the changes between two versions of a definition.
// Statuses are compared by their declared successors, ignoring order and
// duplicates.
type DefinitionDiff struct {
	// Added holds source statuses present only in the new version.
	Added []string `json:"added,omitempty"`

	// Removed holds source statuses present only in the old version.
	Removed []string `json:"removed,omitempty"`

	// Changed holds source statuses whose successors differ.
	Changed []string `json:"changed,omitempty"`

	DescriptionChanged bool `json:"description_changed,omitempty"`
}

// Diff calculates the difference between oldDef and newDef.
// It returns nil when both declare the same rules and description.
func Diff(oldDef, newDef Definition) *DefinitionDiff {
	before := successorSets(oldDef.Transitions)
	after := successorSets(newDef.Transitions)

	diff := &DefinitionDiff{
		DescriptionChanged: oldDef.Description != newDef.Description,
	}

	for from, next := range after {
		prev, ok := before[from]
		switch {
		case !ok:
			diff.Added = append(diff.Added, from)
		case !slices.Equal(prev, next):
			diff.Changed = append(diff.Changed, from)
		}
	}
	for from := range before {
		if _, ok := after[from]; !ok {
			diff.Removed = append(diff.Removed, from)
		}
	}

	if len(diff.Added) == 0 && len(diff.Removed) == 0 && len(diff.Changed) == 0 && !diff.DescriptionChanged {
		return nil
	}

	sort.Strings(diff.Added)
	sort.Strings(diff.Removed)
	sort.Strings(diff.Changed)
	return diff
}

func successorSets(t Transitions) map[string][]string {
	out := make(map[string][]string, len(t))
	for from, next := range t.Map() {
		set := slices.Clone(next)
		sort.Strings(set)
		out[from] = slices.Compact(set)
	}
	return out
}
