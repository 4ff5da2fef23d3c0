package describe

import (
	"fmt"
	"strings"

	"github.com/graphscribe/graphscribe/pkg/graph"
)

// maxWalkDepth bounds recursion on pathological graphs. Exec cycles are
// legal input (authored infinite loops), so termination must come from the
// walker itself, not from the data.
const maxWalkDepth = 50

// continuationPins is the precedence order for picking the single forward
// exec path of a plain statement. Nodes with several unlabeled exec outputs
// that are not branch/sequence/switch/loop shapes drop all but one path;
// this mirrors the editor's own rendering and is kept as observed behavior.
var continuationPins = []string{"then", "execute", "output"}

// walk renders the control-flow subtree rooted at nodeID as an ordered list
// of already-indented lines. The visited set is owned by the caller and
// scoped to one entry point: a node reachable twice (diamond fan-in or a
// genuine cycle) is rendered at most once, at its first-visited position,
// and all other inbound edges to it are implicitly truncated.
func walk(nodeID string, lookup map[string]*graph.Node, visited map[string]bool, depth int) []string {
	if depth > maxWalkDepth || visited[nodeID] {
		return nil
	}
	visited[nodeID] = true

	node, ok := lookup[nodeID]
	if !ok {
		return nil // dangling connection
	}

	indent := strings.Repeat("  ", depth+1)
	label := Classify(node)
	dataIn := inboundAnnotation(node, lookup)
	execOut := node.ExecOutputs()

	var lines []string
	switch Categorize(node) {
	case CategoryBranch:
		// A branch always renders as IF, even when an exotic class string
		// would give the classifier something else to say.
		lines = append(lines, indent+withAnnotation("IF:", dataIn))
		lines = append(lines, walkArms(execOut, lookup, visited, depth)...)

	case CategorySequence:
		lines = append(lines, indent+"SEQUENCE:")
		for i, pin := range execOut {
			if !pin.HasConnections() {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s  [%d]:", indent, i))
			lines = append(lines, walkConnections(pin.Connections, lookup, visited, depth+2)...)
		}

	case CategoryLoop, CategorySwitch:
		if label != "" {
			lines = append(lines, indent+withAnnotation(label+":", dataIn))
		}
		lines = append(lines, walkArms(execOut, lookup, visited, depth)...)

	default:
		if label != "" {
			lines = append(lines, indent+withAnnotation(label, dataIn))
			for _, out := range outboundAnnotations(node, lookup) {
				lines = append(lines, indent+"  "+out)
			}
		}
		// Straight-line statements continue at the same depth, so linear
		// chains render as a flat list rather than a staircase.
		if next := continuationPin(execOut); next != nil {
			lines = append(lines, walkConnections(next.Connections, lookup, visited, depth)...)
		}
	}
	return lines
}

// walkArms emits one labeled arm header per connected exec-output pin, with
// the arm's contents nested two levels deeper than the owning control line.
// Unconnected arms are omitted entirely, never printed empty.
func walkArms(execOut []graph.Pin, lookup map[string]*graph.Node, visited map[string]bool, depth int) []string {
	indent := strings.Repeat("  ", depth+2)
	var lines []string
	for _, pin := range execOut {
		if !pin.HasConnections() {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s[%s]:", indent, pin.Name))
		lines = append(lines, walkConnections(pin.Connections, lookup, visited, depth+2)...)
	}
	return lines
}

// walkConnections recurses into every target of a pin's connection list.
func walkConnections(conns []graph.Connection, lookup map[string]*graph.Node, visited map[string]bool, depth int) []string {
	var lines []string
	for _, conn := range conns {
		lines = append(lines, walk(conn.TargetNodeID, lookup, visited, depth)...)
	}
	return lines
}

// continuationPin selects the single forward exec path of a plain statement:
// the pin named "then", else "execute", else "output", else the first
// exec-output pin with any connection. Returns nil when the chain ends here.
func continuationPin(execOut []graph.Pin) *graph.Pin {
	for _, name := range continuationPins {
		for i := range execOut {
			if strings.EqualFold(execOut[i].Name, name) {
				return &execOut[i]
			}
		}
	}
	for i := range execOut {
		if execOut[i].HasConnections() {
			return &execOut[i]
		}
	}
	return nil
}

// withAnnotation appends an inbound data annotation to a label when present.
func withAnnotation(label, dataIn string) string {
	if dataIn == "" {
		return label
	}
	return label + " " + dataIn
}
