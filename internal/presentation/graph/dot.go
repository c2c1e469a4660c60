package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/statusmap"
)

// GenerateDOT produces a Graphviz digraph for the map.
// Terminals are drawn as double circles and initials in bold.
func GenerateDOT(m *statusmap.Map, overlay *Overlay) string {
	var sb strings.Builder

	name := m.Name()
	if name == "" {
		name = "statusmap"
	}
	fmt.Fprintf(&sb, "digraph %s {\n", dotQuote(name))
	sb.WriteString("    rankdir=LR;\n")
	sb.WriteString("    node [shape=box, style=rounded];\n")

	initials := toSet(m.Initials())
	terminals := toSet(m.Terminals())
	visited := make(map[string]bool)
	if overlay != nil {
		visited = toSet(overlay.Visited)
	}

	for _, s := range m.Statuses() {
		var attrs []string
		switch {
		case terminals[s]:
			attrs = append(attrs, "shape=doublecircle")
		case initials[s]:
			attrs = append(attrs, "penwidth=2")
		}
		if overlay != nil {
			switch {
			case s == overlay.To && overlay.To != "":
				attrs = append(attrs, `style=filled`, `fillcolor="#ffeb3b"`)
			case s == overlay.From && overlay.From != "":
				attrs = append(attrs, `style=filled`, `fillcolor="#fff3e0"`)
			case visited[s]:
				attrs = append(attrs, `style=filled`, `fillcolor="#e1f5fe"`)
			}
		}

		if len(attrs) == 0 {
			fmt.Fprintf(&sb, "    %s;\n", dotQuote(s))
			continue
		}
		fmt.Fprintf(&sb, "    %s [%s];\n", dotQuote(s), strings.Join(attrs, ", "))
	}

	for _, from := range m.Statuses() {
		for _, to := range m.Next(from) {
			fmt.Fprintf(&sb, "    %s -> %s;\n", dotQuote(from), dotQuote(to))
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

func dotQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
