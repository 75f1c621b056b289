package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/aretw0/gymnasion/pkg/strategy"
)

// Overlay highlights one mode and the strategies in its pool.
type Overlay struct {
	Mode domain.Mode
}

// priorityStrategies run before the random pool and are drawn as subroutines.
var priorityStrategies = []string{strategy.NameBanishedCheck, strategy.NameAuthorialImitation}

// GenerateMermaid produces a Mermaid flowchart of the mode table:
// - Mode: ((Circle))
// - Priority strategy: [[Subroutine]]
// - Strategy: [Rectangle], grouped in a subgraph per theme
// Mixed is drawn without edges since it reaches every strategy.
func GenerateMermaid(set *strategy.Set, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	groups := make(map[strategy.Group][]strategy.Strategy)
	var order []strategy.Group
	for _, name := range set.Names() {
		st, _ := set.Lookup(name)
		if _, seen := groups[st.Group]; !seen {
			order = append(order, st.Group)
		}
		groups[st.Group] = append(groups[st.Group], st)
	}

	for _, g := range order {
		fmt.Fprintf(&sb, "    subgraph %s[\"%s\"]\n", sanitizeMermaidID("group_"+string(g)), g)
		for _, st := range groups[g] {
			opener, closer := "[", "]"
			if slices.Contains(priorityStrategies, st.Name) {
				opener, closer = "[[", "]]"
			}
			fmt.Fprintf(&sb, "        %s%s\"%s\"%s\n", sanitizeMermaidID(st.Name), opener, st.Name, closer)
		}
		sb.WriteString("    end\n")
	}

	for _, m := range domain.Modes() {
		modeID := sanitizeMermaidID("mode_" + string(m))
		fmt.Fprintf(&sb, "    %s((\"%s\"))\n", modeID, m)
		if m == domain.ModeMixed {
			continue
		}
		for _, st := range set.Pool(m) {
			fmt.Fprintf(&sb, "    %s --> %s\n", modeID, sanitizeMermaidID(st.Name))
		}
	}

	if overlay != nil && overlay.Mode != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef pool fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID("mode_"+string(overlay.Mode)))
		for _, st := range set.Pool(overlay.Mode) {
			fmt.Fprintf(&sb, "    class %s pool;\n", sanitizeMermaidID(st.Name))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
