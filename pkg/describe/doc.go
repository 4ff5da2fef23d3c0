// Package describe reconstructs readable pseudocode from a flat node-and-pin
// visual-scripting graph.
//
// The hard problem here is structural control-flow recovery: the input is an
// unordered collection of nodes and directed pin connections (exec edges for
// control flow, data edges for value flow), and the output is a correctly
// indented textual transcript with branches, loops, switches, sequences, and
// inlined data provenance - produced without access to the original
// graphical layout.
//
// # Pipeline
//
// Describe drives the whole rendering:
//
//  1. Classify the graph kind (ordinary, state machine, anim graph,
//     transition rule).
//  2. Build the id→node lookup table and detect entry nodes (events, custom
//     events, function entries, connected tunnels).
//  3. For each entry point, recursively walk the exec-connection subtree,
//     dispatching on node category (branch, sequence, loop, switch, plain
//     statement) and annotating statements with resolved data-flow sources.
//
// State machines bypass the traversal entirely: their transitions are not
// linked by pins and are read straight off the flat state/transition lists.
//
// # Failure semantics
//
// The renderer has no fatal error path. Dangling connections, missing
// fields, unknown node shapes, and exec cycles all degrade to an empty
// contribution, a "?" placeholder, or a fallback listing - never an error.
// Output is deterministic per input and bounded by a recursion-depth cap
// plus a per-entry single-visit rule.
//
// Everything in this package is a pure function of one graph snapshot; it
// never mutates the graph and shares no state between invocations, so
// concurrent renders are trivially safe.
package describe
