package postman

import (
	"errors"
	"math"

	"github.com/everystreet/inspector/pkg/geo"
)

// MinTurnDistance is the minimum accumulated distance required before a
// turn instruction is emitted (a street-name change is held back too until
// this distance has accumulated). It
// suppresses spam at densely-subdivided OSM ways that share one logical
// street — see §4.H's rationale.
const MinTurnDistance = 20.0

// ErrEmptyCircuit is returned by InstructionsFor when given an empty circuit.
var ErrEmptyCircuit = errors.New("postman: empty circuit")

// InstructionsFor converts an Eulerian edge-traversal sequence into
// turn-by-turn instructions.
//
// The turn angle δ at the junction between traversal cur and the next
// traversal nxt is computed as bearing(last segment of cur, in walk
// direction) vs bearing(first segment of nxt, in walk direction) — the
// reading the §4.H formula itself states, resolving the open question
// about entry-side-bearing alternatives noted in the design in favor of
// this one.
func InstructionsFor(circuit []EdgeTraversal) ([]Instruction, error) {
	if len(circuit) == 0 {
		return nil, ErrEmptyCircuit
	}

	first := circuit[0]
	firstGeom := first.Edge.GeometryFrom(first.From)
	instructions := make([]Instruction, 0, len(circuit)+1)
	instructions = append(instructions, Instruction{
		Kind:       KindStart,
		StreetName: first.Edge.Name,
		Distance:   first.Edge.Length,
		Location:   nodeLoc(first.From, first.Edge),
		Bearing:    geo.Bearing(firstGeom[0], firstGeom[1]),
	})

	var acc float64
	for i := 0; i < len(circuit)-1; i++ {
		cur := circuit[i]
		nxt := circuit[i+1]
		acc += cur.Edge.Length

		curGeom := cur.Edge.GeometryFrom(cur.From)
		nxtGeom := nxt.Edge.GeometryFrom(nxt.From)
		bearingOutOfCur := geo.Bearing(curGeom[len(curGeom)-2], curGeom[len(curGeom)-1])
		bearingIntoNxt := geo.Bearing(nxtGeom[0], nxtGeom[1])
		delta := geo.NormalizeAngle(bearingIntoNxt - bearingOutOfCur)

		kind := classifyTurn(delta)
		streetChanged := cur.Edge.Name != nxt.Edge.Name && nxt.Edge.Name != ""

		if (kind != KindContinue || streetChanged) && acc >= MinTurnDistance {
			instructions = append(instructions, Instruction{
				Kind:       kind,
				StreetName: nxt.Edge.Name,
				Distance:   acc,
				Location:   nodeLoc(cur.To, cur.Edge),
				Bearing:    bearingIntoNxt,
			})
			acc = 0
		}
	}

	last := circuit[len(circuit)-1]
	acc += last.Edge.Length
	instructions = append(instructions, Instruction{
		Kind:     KindArrived,
		Distance: acc,
		Location: nodeLoc(last.To, last.Edge),
		Bearing:  0,
	})

	return instructions, nil
}

// classifyTurn buckets a signed turn angle (degrees, positive = right) into
// an InstructionKind per §4.H's table.
func classifyTurn(delta float64) InstructionKind {
	abs := math.Abs(delta)
	right := delta >= 0
	switch {
	case abs < 15:
		return KindContinue
	case abs < 45:
		if right {
			return KindSlightRight
		}
		return KindSlightLeft
	case abs < 120:
		if right {
			return KindTurnRight
		}
		return KindTurnLeft
	case abs < 160:
		if right {
			return KindSharpRight
		}
		return KindSharpLeft
	default:
		return KindUTurn
	}
}

// nodeLoc resolves a node's coordinates via one of its incident edges,
// since EdgeTraversal carries node ids rather than coordinates directly.
// GeometryFrom(node) always starts at node by construction, so its first
// point is exactly node's location.
func nodeLoc(node NodeID, e *Edge) geo.Point {
	return e.GeometryFrom(node)[0]
}
