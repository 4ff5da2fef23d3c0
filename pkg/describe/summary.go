package describe

import (
	"fmt"
	"sort"
	"strings"

	"github.com/graphscribe/graphscribe/pkg/graph"
)

// Summarize renders a flat overview of one graph: the variables it touches,
// the events it reacts to, and the functions it calls. This is the light
// sibling of Describe - no recursion, no control-flow recovery, just
// aggregation for a quick orientation pass.
func Summarize(g graph.Graph) string {
	variables := map[string]bool{}
	calls := map[string]bool{}
	var events []string

	for i := range g.Nodes {
		n := &g.Nodes[i]
		switch {
		case n.NodeType == graph.NodeVariableGet || n.NodeType == graph.NodeVariableSet:
			if name := firstNonEmpty(n.VariableName, n.Title); name != "" {
				variables[name] = true
			}
		case n.NodeType == graph.NodeEvent || n.NodeType == graph.NodeCustomEvent:
			events = append(events, EntryLabel(n))
		case strings.Contains(n.Class, "CallFunction"):
			name := firstNonEmpty(n.FunctionName, n.Title)
			if name == "" {
				continue
			}
			if n.TargetClass != "" {
				name = n.TargetClass + "." + name
			}
			calls[name] = true
		}
	}

	lines := []string{fmt.Sprintf("# %s (%d nodes)", g.Name, len(g.Nodes))}
	if len(variables) > 0 {
		lines = append(lines, "Variables: "+strings.Join(sortedKeys(variables), ", "))
	}
	if len(events) > 0 {
		// Events keep declaration order; they document the graph's surface.
		lines = append(lines, "Events: "+strings.Join(events, ", "))
	}
	if len(calls) > 0 {
		lines = append(lines, "Calls: "+strings.Join(sortedKeys(calls), ", "))
	}
	return strings.Join(lines, "\n")
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
