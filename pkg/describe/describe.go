package describe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/graphscribe/graphscribe/pkg/graph"
)

// Describe renders one graph snapshot as a plain-text transcript.
//
// Ordinary executable graphs are traversed once per entry point (events,
// custom events, function entries, connected tunnels), each with a fresh
// visited set seeded with the entry node's own id. State machines carry no
// exec pins and are rendered straight from their flat state/transition
// lists. Anim graphs and transition rules print a one-line kind marker and
// then traverse like ordinary graphs.
//
// Describe cannot fail: every malformed-input condition degrades to an
// empty contribution, a "?" placeholder, or the fallback node listing.
func Describe(g graph.Graph) string {
	lines := []string{fmt.Sprintf("# %s (%d nodes)", g.Name, len(g.Nodes))}

	switch g.GraphType {
	case graph.TypeStateMachine:
		lines = append(lines, describeStateMachine(g)...)
		return strings.Join(lines, "\n")
	case graph.TypeAnimGraph:
		lines = append(lines, "(anim graph)")
	case graph.TypeTransitionRule:
		lines = append(lines, "(transition rule)")
	}

	lookup := g.Lookup()
	entries := EntryNodes(g)

	if len(entries) == 0 {
		// Malformed or tunnel-only subgraph with no canonical start:
		// degrade to a flat listing of classifier labels.
		lines = append(lines, "", "(No event/entry nodes found)", "Nodes:")
		for i := range g.Nodes {
			if label := Classify(&g.Nodes[i]); label != "" {
				lines = append(lines, label)
			}
		}
		return strings.Join(lines, "\n")
	}

	for _, entry := range entries {
		lines = append(lines, "", fmt.Sprintf("## on %s:", EntryLabel(entry)))
		// Seeding the visited set with the entry itself means the entry is
		// never re-described, only its successors.
		visited := map[string]bool{entry.ID: true}
		for _, pin := range entry.ExecOutputs() {
			lines = append(lines, walkConnections(pin.Connections, lookup, visited, 0)...)
		}
	}
	return strings.Join(lines, "\n")
}

// DescribeEntry renders the execution chain of a single entry point,
// section header included, without the graph header line.
func DescribeEntry(g graph.Graph, entry *graph.Node) string {
	lookup := g.Lookup()
	visited := map[string]bool{entry.ID: true}
	lines := []string{fmt.Sprintf("## on %s:", EntryLabel(entry))}
	for _, pin := range entry.ExecOutputs() {
		lines = append(lines, walkConnections(pin.Connections, lookup, visited, 0)...)
	}
	return strings.Join(lines, "\n")
}

// EntryNodes detects the nodes that can begin a reachable chain of
// executable statements: events, custom events, function entries, and
// tunnels that actually originate an exec connection. Order follows the
// graph's node list.
func EntryNodes(g graph.Graph) []*graph.Node {
	var entries []*graph.Node
	for i := range g.Nodes {
		n := &g.Nodes[i]
		switch {
		case n.NodeType == graph.NodeEvent || n.NodeType == graph.NodeCustomEvent:
			entries = append(entries, n)
		case strings.Contains(n.Class, "FunctionEntry"):
			entries = append(entries, n)
		case strings.Contains(n.Class, "Tunnel") && hasConnectedExecOutput(n):
			entries = append(entries, n)
		}
	}
	return entries
}

func hasConnectedExecOutput(n *graph.Node) bool {
	for _, pin := range n.ExecOutputs() {
		if pin.HasConnections() {
			return true
		}
	}
	return false
}

// EntryLabel names an entry point for its section header.
func EntryLabel(n *graph.Node) string {
	return firstNonEmpty(n.EventName, n.Title, n.Class)
}

// =============================================================================
// State Machines
// =============================================================================

// describeStateMachine renders the state/transition sections. No traversal
// is needed: transitions are not linked by pins, they carry from/to state
// names as fields on the flat transition list.
func describeStateMachine(g graph.Graph) []string {
	var lines []string
	if g.EntryState != "" {
		lines = append(lines, "Entry → "+g.EntryState)
	}

	if states := stateList(g); len(states) > 0 {
		lines = append(lines, "States:")
		for _, s := range states {
			line := "- " + firstNonEmpty(s.StateName, s.Title, s.ID)
			switch {
			case s.AnimationAsset != "":
				line += fmt.Sprintf(" (anim: %s)", s.AnimationAsset)
			case s.BlendSpaceAsset != "":
				line += fmt.Sprintf(" (blendspace: %s)", s.BlendSpaceAsset)
			}
			lines = append(lines, line)
		}
	}

	if transitions := transitionList(g); len(transitions) > 0 {
		lines = append(lines, "Transitions:")
		for _, t := range transitions {
			desc := fmt.Sprintf("- %s → %s (%ss", t.FromState, t.ToState, formatSeconds(t.CrossfadeDuration))
			if t.PriorityOrder != 0 {
				desc += fmt.Sprintf(", priority %d", t.PriorityOrder)
			}
			if t.Bidirectional {
				desc += ", bidirectional"
			}
			lines = append(lines, desc+")")
		}
	}
	return lines
}

// stateList prefers the denormalized state list; some editor dumps inline
// the state nodes into the node list instead, so fall back to filtering.
func stateList(g graph.Graph) []graph.Node {
	if len(g.States) > 0 {
		return g.States
	}
	return filterByType(g.Nodes, graph.NodeAnimState)
}

func transitionList(g graph.Graph) []graph.Node {
	if len(g.Transitions) > 0 {
		return g.Transitions
	}
	return filterByType(g.Nodes, graph.NodeAnimTransition)
}

func filterByType(nodes []graph.Node, nodeType string) []graph.Node {
	var out []graph.Node
	for _, n := range nodes {
		if n.NodeType == nodeType {
			out = append(out, n)
		}
	}
	return out
}

// formatSeconds renders a crossfade duration with minimal digits
// (0.25 → "0.25", 1 → "1").
func formatSeconds(d float64) string {
	return strconv.FormatFloat(d, 'g', -1, 64)
}
