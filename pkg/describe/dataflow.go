package describe

import (
	"fmt"
	"strings"

	"github.com/graphscribe/graphscribe/pkg/graph"
)

// inboundAnnotation resolves which nodes feed a node's data-input pins and
// renders them as a single parenthesized suffix, e.g.
//
//	(Vitals=GetVitals.ReturnValue, Target=Self.Self)
//
// Pins with no connections contribute nothing, and connections whose source
// node is missing from the lookup are silently skipped, so the result is ""
// rather than empty parens when nothing resolves.
func inboundAnnotation(n *graph.Node, lookup map[string]*graph.Node) string {
	var pairs []string
	for _, pin := range n.Pins {
		if pin.IsExec() || !pin.IsInput() || !pin.HasConnections() {
			continue
		}
		for _, conn := range pin.Connections {
			src, ok := lookup[conn.TargetNodeID]
			if !ok {
				continue
			}
			pairs = append(pairs, fmt.Sprintf("%s=%s.%s", pin.Name, src.DisplayName(), conn.TargetPinName))
		}
	}
	if len(pairs) == 0 {
		return ""
	}
	return "(" + strings.Join(pairs, ", ") + ")"
}

// outboundAnnotations renders one line per data connection departing a
// node's output pins:
//
//	→ ReturnValue → [Score.Score]
//
// Only plain statements carry these lines; branching nodes already make
// their destinations explicit via labeled arms.
func outboundAnnotations(n *graph.Node, lookup map[string]*graph.Node) []string {
	var lines []string
	for _, pin := range n.Pins {
		if pin.IsExec() || !pin.IsOutput() || !pin.HasConnections() {
			continue
		}
		for _, conn := range pin.Connections {
			dst, ok := lookup[conn.TargetNodeID]
			if !ok {
				continue
			}
			lines = append(lines, fmt.Sprintf("→ %s → [%s.%s]", pin.Name, dst.DisplayName(), conn.TargetPinName))
		}
	}
	return lines
}
