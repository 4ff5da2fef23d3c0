package describe

import (
	"strings"

	"github.com/graphscribe/graphscribe/pkg/graph"
)

// =============================================================================
// Category - Structural Node Classification
// =============================================================================

// Category is the closed set of structural shapes the walker dispatches on.
// It is computed once per node from the raw nodeType/class fields, keeping
// the stringly-typed substring matching out of the traversal logic.
type Category int

const (
	// CategoryStatement is a plain linear statement with at most one
	// meaningful forward exec path.
	CategoryStatement Category = iota
	// CategoryBranch is a two-way conditional (true/false arms).
	CategoryBranch
	// CategorySequence fires its exec outputs in declared order.
	CategorySequence
	// CategoryLoop is a for-each or counted loop (body + completed arms).
	CategoryLoop
	// CategorySwitch selects one exec output per case value.
	CategorySwitch
	// CategoryKnot is a label-less pass-through reroute node, invisible in
	// the rendered output.
	CategoryKnot
)

// Engine-internal class-name fragments. Class strings are free-form type
// names, so membership is decided by substring - but only here, never in
// the walker.
var (
	markersSwitch = []string{"SwitchEnum", "SwitchInteger", "SwitchString", "SwitchName", "Switch"}
	markersLoop   = []string{"ForEach", "ForLoop"}
	markersKnot   = []string{"Knot", "Reroute"}
	markersSpawn  = []string{"SpawnActor"}
	markersWidget = []string{"CreateWidget"}
)

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// Categorize maps a node to its structural category.
func Categorize(n *graph.Node) Category {
	switch {
	case n.NodeType == graph.NodeBranch:
		return CategoryBranch
	case strings.Contains(n.Class, "Sequence"):
		return CategorySequence
	case containsAny(n.Class, markersLoop):
		return CategoryLoop
	case containsAny(n.Class, markersSwitch):
		return CategorySwitch
	case containsAny(n.Class, markersKnot):
		return CategoryKnot
	default:
		return CategoryStatement
	}
}

// =============================================================================
// Classify - Opcode Labels
// =============================================================================

// Classify maps one node to a short human-readable opcode label, or "" for
// pass-through nodes that render invisibly. It is pure and total: the first
// matching rule wins, ties broken by specificity, and unknown shapes always
// fall through to the node's title or class. It never fails.
func Classify(n *graph.Node) string {
	switch {
	case n.NodeType == graph.NodeCallParentFunction:
		return "CALL PARENT " + firstNonEmpty(n.FunctionName, n.Title)
	case n.NodeType == graph.NodeOverrideEvent:
		return "OVERRIDE " + firstNonEmpty(n.EventName, n.Title)
	case strings.Contains(n.Class, "CallFunction"):
		name := firstNonEmpty(n.FunctionName, n.Title)
		if n.TargetClass != "" {
			return "CALL " + n.TargetClass + "." + name
		}
		return "CALL " + name
	case n.NodeType == graph.NodeVariableSet:
		return "SET " + firstNonEmpty(n.VariableName, n.Title)
	case n.NodeType == graph.NodeVariableGet:
		return "GET " + firstNonEmpty(n.VariableName, n.Title)
	case n.NodeType == graph.NodeBranch:
		return "IF"
	case n.NodeType == graph.NodeDynamicCast:
		return "CAST to " + firstNonEmpty(n.CastTarget, "?")
	case n.NodeType == graph.NodeMacroInstance:
		return "MACRO " + firstNonEmpty(n.MacroName, n.Title)
	case strings.Contains(n.Class, "AssignmentStatement"):
		return "ASSIGN"
	case strings.Contains(n.Class, "Select"):
		return "SELECT"
	case containsAny(n.Class, markersSwitch):
		return "SWITCH"
	case containsAny(n.Class, markersLoop):
		return "FOR LOOP"
	case strings.Contains(n.Class, "Sequence"):
		return "SEQUENCE"
	case containsAny(n.Class, markersSpawn):
		return "SPAWN ACTOR"
	case containsAny(n.Class, markersWidget):
		return "CREATE WIDGET"
	case containsAny(n.Class, markersKnot):
		return "" // reroute knot: flow continues invisibly through it
	case n.Title != "":
		return n.Title
	default:
		return n.Class
	}
}

// firstNonEmpty returns the first non-empty string of its arguments,
// or "" if all are empty.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
