package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/statusmap"
)

// Overlay contains dynamic data to highlight on the graph.
type Overlay struct {
	// Visited lists the statuses of a checked history, in order.
	Visited []string
	// From and To mark the two sides of a classified transition.
	From string
	To   string
}

// GenerateMermaid produces a Mermaid flowchart for the map.
// It applies semantic styling:
// - Initial: ([Stadium])
// - Terminal: ((Circle))
// - Default: [Rectangle]
// It also applies overlay styles (Visited/From/To) if provided.
func GenerateMermaid(m *statusmap.Map, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := nodeIDs(m)
	initials := toSet(m.Initials())
	terminals := toSet(m.Terminals())

	for _, name := range m.Statuses() {
		opener, closer := "[", "]"
		switch {
		case terminals[name]:
			opener, closer = "((", "))"
		case initials[name]:
			opener, closer = "([", "])"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", ids[name], opener, mermaidLabel(name), closer)
	}

	for _, from := range m.Statuses() {
		for _, to := range m.Next(from) {
			fmt.Fprintf(&sb, "    %s --> %s\n", ids[from], ids[to])
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast regardless of theme
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef from fill:#fff3e0,stroke:#e65100,stroke-width:3px,color:#000;\n")
		sb.WriteString("    classDef to fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, name := range overlay.Visited {
			id, ok := ids[name]
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", id)
		}
		if id, ok := ids[overlay.From]; ok && overlay.From != "" {
			fmt.Fprintf(&sb, "    class %s from;\n", id)
		}
		if id, ok := ids[overlay.To]; ok && overlay.To != "" {
			fmt.Fprintf(&sb, "    class %s to;\n", id)
		}
	}

	return sb.String()
}

// nodeIDs assigns positional identifiers, since status names may hold
// characters (or nothing) that Mermaid rejects as IDs.
func nodeIDs(m *statusmap.Map) map[string]string {
	ids := make(map[string]string, m.Len())
	for i, name := range m.Statuses() {
		ids[name] = fmt.Sprintf("s%d", i)
	}
	return ids
}

func mermaidLabel(name string) string {
	if name == "" {
		return "∅"
	}
	return strings.ReplaceAll(name, "\"", "#quot;")
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
