package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/statusmap"
	"github.com/aretw0/statusmap/pkg/domain"
)

// VerdictReport describes a single classification.
func VerdictReport(v domain.Verdict) string {
	var sb strings.Builder
	mark := "✅"
	if !v.Valid() {
		mark = "❌"
	}
	fmt.Fprintf(&sb, "# %s `%s` → `%s`\n\n", mark, v.From, v.To)
	fmt.Fprintf(&sb, "**Outcome:** `%s`\n\n", v.Outcome)
	if err := v.Err(); err != nil {
		fmt.Fprintf(&sb, "> %s\n", err)
	}
	return sb.String()
}

// SequenceReport describes the validation of a status history.
func SequenceReport(statuses []string, err error) string {
	var sb strings.Builder
	if err == nil {
		sb.WriteString("# ✅ Sequence is valid\n\n")
	} else {
		sb.WriteString("# ❌ Sequence is invalid\n\n")
	}

	failed := -1
	var seqErr *statusmap.SequenceError
	if errors.As(err, &seqErr) {
		failed = seqErr.Index
	}

	for i, s := range statuses {
		marker := " "
		switch {
		case i == failed:
			marker = "✗"
		case failed < 0 || i < failed:
			marker = "✓"
		}
		fmt.Fprintf(&sb, "%d. %s `%s`\n", i+1, marker, s)
	}
	if err != nil {
		fmt.Fprintf(&sb, "\n> %s\n", err)
	}
	return sb.String()
}

// InspectReport describes one status and its neighbourhood.
func InspectReport(m *statusmap.Map, status string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Status `%s`\n\n", status)
	if !m.Contains(status) {
		sb.WriteString("> Not a status of this map.\n")
		return sb.String()
	}

	writeList(&sb, "Next", m.Next(status))
	writeList(&sb, "Previous", m.Previous(status))
	writeList(&sb, "Upcoming", m.Upcoming(status))
	return sb.String()
}

// CheckReport summarizes the structure of a map.
func CheckReport(m *statusmap.Map) string {
	var sb strings.Builder
	title := m.Name()
	if title == "" {
		title = "Status map"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if d := m.Description(); d != "" {
		fmt.Fprintf(&sb, "%s\n\n", d)
	}

	fmt.Fprintf(&sb, "| Property | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Statuses | %d |\n", m.Len())
	fmt.Fprintf(&sb, "| Transitions | %d |\n", m.Graph().EdgeCount())
	fmt.Fprintf(&sb, "| Cyclic | %t |\n\n", m.HasCycle())

	writeList(&sb, "Initials", m.Initials())
	writeList(&sb, "Terminals", m.Terminals())
	return sb.String()
}

func writeList(sb *strings.Builder, title string, items []string) {
	fmt.Fprintf(sb, "## %s\n\n", title)
	if len(items) == 0 {
		sb.WriteString("_none_\n\n")
		return
	}
	for _, it := range items {
		fmt.Fprintf(sb, "- `%s`\n", it)
	}
	sb.WriteString("\n")
}
