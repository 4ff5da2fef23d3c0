package describe

import (
	"reflect"
	"testing"

	"github.com/graphscribe/graphscribe/pkg/graph"
)

func TestInboundAnnotation(t *testing.T) {
	source := graph.Node{ID: "src", NodeType: graph.NodeVariableGet, VariableName: "Score"}
	fn := graph.Node{ID: "fn", Class: "K2Node_CallFunction", FunctionName: "GetVitals"}
	lookup := map[string]*graph.Node{"src": &source, "fn": &fn}

	tests := []struct {
		name string
		node graph.Node
		want string
	}{
		{
			name: "NoDataPins",
			node: graph.Node{ID: "n", Pins: []graph.Pin{
				{Name: "execute", Type: graph.PinTypeExec, Direction: graph.DirectionInput},
			}},
			want: "",
		},
		{
			name: "DisconnectedPinContributesNothing",
			node: graph.Node{ID: "n", Pins: []graph.Pin{
				{Name: "Condition", Type: "bool", Direction: graph.DirectionInput},
			}},
			want: "",
		},
		{
			name: "SingleSource",
			node: graph.Node{ID: "n", Pins: []graph.Pin{
				{Name: "Condition", Type: "bool", Direction: graph.DirectionInput, Connections: []graph.Connection{
					{TargetNodeID: "src", TargetPinName: "Score"},
				}},
			}},
			want: "(Condition=Score.Score)",
		},
		{
			name: "MultipleSourcesCommaJoined",
			node: graph.Node{ID: "n", Pins: []graph.Pin{
				{Name: "Vitals", Type: "struct", Direction: graph.DirectionInput, Connections: []graph.Connection{
					{TargetNodeID: "fn", TargetPinName: "ReturnValue"},
				}},
				{Name: "Amount", Type: "float", Direction: graph.DirectionInput, Connections: []graph.Connection{
					{TargetNodeID: "src", TargetPinName: "Score"},
				}},
			}},
			want: "(Vitals=GetVitals.ReturnValue, Amount=Score.Score)",
		},
		{
			name: "MissingSourceSkippedSilently",
			node: graph.Node{ID: "n", Pins: []graph.Pin{
				{Name: "Target", Type: "object", Direction: graph.DirectionInput, Connections: []graph.Connection{
					{TargetNodeID: "gone", TargetPinName: "Self"},
				}},
			}},
			want: "",
		},
		{
			name: "ExecInputIgnored",
			node: graph.Node{ID: "n", Pins: []graph.Pin{
				{Name: "execute", Type: graph.PinTypeExec, Direction: graph.DirectionInput, Connections: []graph.Connection{
					{TargetNodeID: "src", TargetPinName: "then"},
				}},
			}},
			want: "",
		},
		{
			name: "OutputPinIgnored",
			node: graph.Node{ID: "n", Pins: []graph.Pin{
				{Name: "ReturnValue", Type: "bool", Direction: graph.DirectionOutput, Connections: []graph.Connection{
					{TargetNodeID: "src", TargetPinName: "In"},
				}},
			}},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inboundAnnotation(&tt.node, lookup); got != tt.want {
				t.Errorf("inboundAnnotation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOutboundAnnotations(t *testing.T) {
	sink := graph.Node{ID: "sink", NodeType: graph.NodeVariableSet, VariableName: "Score"}
	lookup := map[string]*graph.Node{"sink": &sink}

	node := graph.Node{ID: "n", Pins: []graph.Pin{
		{Name: "ReturnValue", Type: "int", Direction: graph.DirectionOutput, Connections: []graph.Connection{
			{TargetNodeID: "sink", TargetPinName: "Score"},
			{TargetNodeID: "missing", TargetPinName: "X"},
		}},
		{Name: "then", Type: graph.PinTypeExec, Direction: graph.DirectionOutput, Connections: []graph.Connection{
			{TargetNodeID: "sink", TargetPinName: "execute"},
		}},
	}}

	got := outboundAnnotations(&node, lookup)
	want := []string{"→ ReturnValue → [Score.Score]"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("outboundAnnotations() = %v, want %v", got, want)
	}
}
