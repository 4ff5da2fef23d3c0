package graph

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// PinTypeExec is the sentinel pin type that marks a control-flow connection.
// Every other pin type string denotes a data type. This field is load-bearing
// throughout the walker: it is the sole discriminator between control and
// data edges.
const PinTypeExec = "exec"

// Pin directions.
const (
	DirectionInput  = "Input"
	DirectionOutput = "Output"
)

// Graph kinds. Anything else is treated as an ordinary executable graph.
const (
	TypeStateMachine   = "StateMachine"
	TypeAnimGraph      = "AnimGraph"
	TypeTransitionRule = "TransitionRule"
)

// Coarse node types as delivered by the remote editor process.
const (
	NodeEvent              = "Event"
	NodeCustomEvent        = "CustomEvent"
	NodeVariableGet        = "VariableGet"
	NodeVariableSet        = "VariableSet"
	NodeBranch             = "Branch"
	NodeDynamicCast        = "DynamicCast"
	NodeMacroInstance      = "MacroInstance"
	NodeCallParentFunction = "CallParentFunction"
	NodeOverrideEvent      = "OverrideEvent"
	NodeAnimState          = "AnimState"
	NodeAnimTransition     = "AnimTransition"
)

// =============================================================================
// Graph - Node Graph Snapshot
// =============================================================================

// Graph is one full snapshot of a visual-scripting graph as dumped by the
// editor: a named collection of nodes plus a graph-kind discriminator.
// State machines additionally carry denormalized state/transition lists,
// since their transitions are not linked by pins.
//
// The format is the canonical serialization used for API requests, storage,
// and caching. Field names match the editor dump exactly so renderings are
// reproducible bit-for-bit.
type Graph struct {
	Name        string `json:"name" bson:"name"`
	GraphType   string `json:"graphType,omitempty" bson:"graphType,omitempty"`
	Nodes       []Node `json:"nodes" bson:"nodes"`
	States      []Node `json:"states,omitempty" bson:"states,omitempty"`
	Transitions []Node `json:"transitions,omitempty" bson:"transitions,omitempty"`
	EntryState  string `json:"entryState,omitempty" bson:"entryState,omitempty"`
}

// IsStateMachine reports whether the graph is a state machine. State-machine
// graphs carry no exec pins and bypass the traversal entirely.
func (g *Graph) IsStateMachine() bool { return g.GraphType == TypeStateMachine }

// Lookup builds the id→node arena used by the walker and the data-flow
// annotator. Pointers index into the receiver's node slice; the graph must
// not be mutated while the lookup is in use (it never is - the model is
// immutable input to the renderer).
func (g *Graph) Lookup() map[string]*Node {
	lookup := make(map[string]*Node, len(g.Nodes))
	for i := range g.Nodes {
		lookup[g.Nodes[i].ID] = &g.Nodes[i]
	}
	return lookup
}

// =============================================================================
// Node
// =============================================================================

// Node is one vertex of the graph. Beyond the stable ID and the coarse
// NodeType, every field is optional and role-specific; unknown node shapes
// carry whatever subset the editor filled in. Node IDs are unique within
// one graph, but connections may reference IDs that are absent - dangling
// references are legal input and must be tolerated.
type Node struct {
	ID       string `json:"id" bson:"id"`
	NodeType string `json:"nodeType,omitempty" bson:"nodeType,omitempty"`
	Class    string `json:"class,omitempty" bson:"class,omitempty"`
	Title    string `json:"title,omitempty" bson:"title,omitempty"`

	FunctionName string `json:"functionName,omitempty" bson:"functionName,omitempty"`
	VariableName string `json:"variableName,omitempty" bson:"variableName,omitempty"`
	EventName    string `json:"eventName,omitempty" bson:"eventName,omitempty"`
	TargetClass  string `json:"targetClass,omitempty" bson:"targetClass,omitempty"`
	CastTarget   string `json:"castTarget,omitempty" bson:"castTarget,omitempty"`
	MacroName    string `json:"macroName,omitempty" bson:"macroName,omitempty"`

	// State-machine fields, read directly off the flat state/transition lists.
	StateName         string  `json:"stateName,omitempty" bson:"stateName,omitempty"`
	FromState         string  `json:"fromState,omitempty" bson:"fromState,omitempty"`
	ToState           string  `json:"toState,omitempty" bson:"toState,omitempty"`
	AnimationAsset    string  `json:"animationAsset,omitempty" bson:"animationAsset,omitempty"`
	BlendSpaceAsset   string  `json:"blendSpaceAsset,omitempty" bson:"blendSpaceAsset,omitempty"`
	CrossfadeDuration float64 `json:"crossfadeDuration,omitempty" bson:"crossfadeDuration,omitempty"`
	PriorityOrder     int     `json:"priorityOrder,omitempty" bson:"priorityOrder,omitempty"`
	Bidirectional     bool    `json:"bBidirectional,omitempty" bson:"bBidirectional,omitempty"`

	Pins []Pin `json:"pins,omitempty" bson:"pins,omitempty"`
}

// DisplayName resolves the name used when this node appears as a data source
// or sink in annotations: variable name, then function name, then title,
// then class, then "?".
func (n *Node) DisplayName() string {
	switch {
	case n.VariableName != "":
		return n.VariableName
	case n.FunctionName != "":
		return n.FunctionName
	case n.Title != "":
		return n.Title
	case n.Class != "":
		return n.Class
	default:
		return "?"
	}
}

// ExecOutputs returns the node's exec-output pins in declared order.
func (n *Node) ExecOutputs() []Pin {
	var pins []Pin
	for _, p := range n.Pins {
		if p.IsExec() && p.IsOutput() {
			pins = append(pins, p)
		}
	}
	return pins
}

// =============================================================================
// Pin & Connection
// =============================================================================

// Pin is one connection point on a node. A pin belongs to exactly one node
// and owns the connections departing from it.
type Pin struct {
	Name        string       `json:"name" bson:"name"`
	Type        string       `json:"type" bson:"type"`
	Direction   string       `json:"direction" bson:"direction"`
	Subtype     string       `json:"subtype,omitempty" bson:"subtype,omitempty"`
	Connections []Connection `json:"connections,omitempty" bson:"connections,omitempty"`
}

// IsExec reports whether the pin carries control flow rather than data.
func (p *Pin) IsExec() bool { return p.Type == PinTypeExec }

// IsInput reports whether the pin receives connections.
func (p *Pin) IsInput() bool { return p.Direction == DirectionInput }

// IsOutput reports whether the pin originates connections.
func (p *Pin) IsOutput() bool { return p.Direction == DirectionOutput }

// HasConnections reports whether at least one edge departs from the pin.
func (p *Pin) HasConnections() bool { return len(p.Connections) > 0 }

// Connection is one directed edge stored on the source pin. The graph is a
// general directed multigraph: cycles, fan-out, and references to missing
// node IDs are all legal.
type Connection struct {
	TargetNodeID  string `json:"targetNodeId" bson:"targetNodeId"`
	TargetPinName string `json:"targetPinName,omitempty" bson:"targetPinName,omitempty"`
}
