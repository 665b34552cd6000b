package postman

import "github.com/everystreet/inspector/pkg/geo"

// InstructionKind classifies a turn directive.
type InstructionKind string

// Instruction kinds, per §3's enumeration.
const (
	KindStart       InstructionKind = "START"
	KindContinue    InstructionKind = "CONTINUE"
	KindSlightLeft  InstructionKind = "SLIGHT_LEFT"
	KindSlightRight InstructionKind = "SLIGHT_RIGHT"
	KindTurnLeft    InstructionKind = "TURN_LEFT"
	KindTurnRight   InstructionKind = "TURN_RIGHT"
	KindSharpLeft   InstructionKind = "SHARP_LEFT"
	KindSharpRight  InstructionKind = "SHARP_RIGHT"
	KindUTurn       InstructionKind = "U_TURN"
	KindArrived     InstructionKind = "ARRIVED"
)

// Instruction is one turn-by-turn directive.
type Instruction struct {
	Kind InstructionKind
	// StreetName is empty when the relevant edge has no name tag.
	StreetName string
	// Distance is meters until the next instruction (or the first edge's
	// length for START, or the residual accumulated length for ARRIVED).
	Distance float64
	// Location is where the directive takes effect.
	Location geo.Point
	// Bearing is the heading after the directive, degrees clockwise from
	// north, in [0, 360).
	Bearing float64
}

// RouteResult is the output of Solve: the edge-traversal sequence, the
// concatenated polyline, the accumulated lengths, and the generated
// instructions.
type RouteResult struct {
	// Path is the concatenation of per-traversal geometries in walk
	// direction; the shared endpoint between consecutive traversals
	// appears once (the second traversal's first point is dropped).
	Path []geo.Point
	// EdgeOrder is the sequence of edge ids in walk order; every edge id
	// of the (reachable component of the) input graph appears at least
	// once.
	EdgeOrder []EdgeID
	// TotalDistance is the sum of EdgeOrder's edge lengths.
	TotalDistance float64
	// OriginalDistance is the sum of every distinct edge's length in the
	// solved component (not counting duplicates).
	OriginalDistance float64
	// DuplicateEdgeIDs holds, as a set, every edge id traversed more than
	// once.
	DuplicateEdgeIDs []EdgeID
	// Instructions is the turn-by-turn directive sequence; always starts
	// with KindStart and ends with KindArrived.
	Instructions []Instruction
	// UnreachedEdgeIDs lists edges not reachable from the start node's
	// component, populated when the input graph is disconnected (§7's
	// default Disconnected policy: solve the reachable component, report
	// the rest here rather than failing outright).
	UnreachedEdgeIDs []EdgeID
}
