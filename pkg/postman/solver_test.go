package postman

import (
	"testing"

	"github.com/everystreet/inspector/pkg/geo"
)

func TestSolveEmptyGraphErrors(t *testing.T) {
	g := NewBuilder().Build()
	if _, err := Solve(g); err != ErrEmptyGraph {
		t.Errorf("Solve(empty) error = %v, want ErrEmptyGraph", err)
	}
}

func TestSolveAlreadyEulerianSquare(t *testing.T) {
	g := square()
	result, err := Solve(g, WithStart(1))
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	if result.TotalDistance != 400 {
		t.Errorf("TotalDistance = %v, want 400 (already Eulerian, no duplication)", result.TotalDistance)
	}
	if result.OriginalDistance != 400 {
		t.Errorf("OriginalDistance = %v, want 400", result.OriginalDistance)
	}
	if len(result.DuplicateEdgeIDs) != 0 {
		t.Errorf("DuplicateEdgeIDs = %v, want none", result.DuplicateEdgeIDs)
	}
	if len(result.EdgeOrder) != 4 {
		t.Errorf("EdgeOrder has %d entries, want 4", len(result.EdgeOrder))
	}
	if result.Instructions[0].Kind != KindStart {
		t.Errorf("Instructions[0].Kind = %v, want KindStart", result.Instructions[0].Kind)
	}
	if last := result.Instructions[len(result.Instructions)-1]; last.Kind != KindArrived {
		t.Errorf("final instruction kind = %v, want KindArrived", last.Kind)
	}
}

func TestSolveSingleEdgeDuplicatesIt(t *testing.T) {
	b := NewBuilder()
	b.AddNode(1, pt(0, 0))
	b.AddNode(2, pt(0, 0.001))
	b.AddEdge(1, 2, 100, []geo.Point{pt(0, 0), pt(0, 0.001)}, "Lone St")
	g := b.Build()

	result, err := Solve(g)
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	if result.TotalDistance != 200 {
		t.Errorf("TotalDistance = %v, want 200 (out and back)", result.TotalDistance)
	}
	if result.OriginalDistance != 100 {
		t.Errorf("OriginalDistance = %v, want 100", result.OriginalDistance)
	}
	if len(result.DuplicateEdgeIDs) != 1 || result.DuplicateEdgeIDs[0] != 0 {
		t.Errorf("DuplicateEdgeIDs = %v, want [0]", result.DuplicateEdgeIDs)
	}
	// Path should start and end at the same point (closed walk).
	if len(result.Path) < 2 {
		t.Fatalf("Path has %d points, want at least 2", len(result.Path))
	}
	if result.Path[0] != result.Path[len(result.Path)-1] {
		t.Errorf("Path does not close: starts %v ends %v", result.Path[0], result.Path[len(result.Path)-1])
	}
}

func TestSolveWithSquarePlusDiagonal(t *testing.T) {
	g := square()
	b := NewBuilder()
	for _, n := range g.NodeIDs() {
		node, _ := g.Node(n)
		b.AddNode(n, node.Loc)
	}
	for _, e := range g.Edges() {
		b.AddEdge(e.From, e.To, e.Length, e.Geometry, e.Name)
	}
	b.AddEdge(1, 3, 140, []geo.Point{pt(0, 0), pt(0.001, 0.001)}, "Diag")
	withDiag := b.Build()

	result, err := Solve(withDiag, WithStart(1))
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	if result.OriginalDistance != 540 {
		t.Errorf("OriginalDistance = %v, want 540", result.OriginalDistance)
	}
	// Adding the 1-3 diagonal leaves 1 and 3 as the only odd-degree
	// vertices (2 and 4 keep degree 2). The shortest path between them is
	// the diagonal itself (140) rather than the two-side detour through 2
	// or 4 (200), so augmentation duplicates just the diagonal edge.
	if result.TotalDistance != 540+140 {
		t.Errorf("TotalDistance = %v, want %v", result.TotalDistance, 540+140.0)
	}
	if len(result.DuplicateEdgeIDs) != 1 {
		t.Errorf("DuplicateEdgeIDs = %v, want 1 duplicated edge (the diagonal)", result.DuplicateEdgeIDs)
	}
}

func TestSolveDisconnectedGraphReportsUnreached(t *testing.T) {
	b := NewBuilder()
	// Component B: 3-4, disjoint, added *before* the reachable component so
	// its edge id (0) does not coincide with the reachable edge's id (1) by
	// accident of insertion order — a prior version of component() silently
	// renumbered every surviving edge through Builder.AddEdge, so a fresh
	// id-0 edge in the unreached component masked that regression as long as
	// the reachable edge happened to already be id 0 too.
	b.AddNode(3, pt(1, 1))
	b.AddNode(4, pt(1, 1.001))
	edgeB := b.AddEdge(3, 4, 100, []geo.Point{pt(1, 1), pt(1, 1.001)}, "B")
	// Component A: 1-2, reachable from the chosen start node.
	b.AddNode(1, pt(0, 0))
	b.AddNode(2, pt(0, 0.001))
	edgeA := b.AddEdge(1, 2, 100, []geo.Point{pt(0, 0), pt(0, 0.001)}, "A")
	g := b.Build()

	result, err := Solve(g, WithStart(1))
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	if edgeA == edgeB {
		t.Fatalf("test fixture bug: edgeA and edgeB must be distinct ids")
	}
	if len(result.UnreachedEdgeIDs) != 1 || result.UnreachedEdgeIDs[0] != edgeB {
		t.Errorf("UnreachedEdgeIDs = %v, want [%v]", result.UnreachedEdgeIDs, edgeB)
	}
	if len(result.EdgeOrder) != 2 || result.EdgeOrder[0] != edgeA || result.EdgeOrder[1] != edgeA {
		t.Errorf("EdgeOrder = %v, want [%v %v] (the reachable edge's own id, out and back)", result.EdgeOrder, edgeA, edgeA)
	}
	if result.OriginalDistance != 100 {
		t.Errorf("OriginalDistance = %v, want 100 (only the reachable component)", result.OriginalDistance)
	}
}

func TestSolveCancellation(t *testing.T) {
	g := square()
	_, err := Solve(g, WithCancellation(func() bool { return true }))
	if err != ErrCancelled {
		t.Errorf("Solve with always-true cancellation error = %v, want ErrCancelled", err)
	}
}

func TestResolveStartFallsBackWhenMissing(t *testing.T) {
	g := square()
	missing := NodeID(999)
	result, err := Solve(g, WithStart(missing))
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	if len(result.Instructions) == 0 {
		t.Fatal("expected instructions even when the requested start node does not exist")
	}
}
