package postman

import "errors"

// Error kinds the solver emits, per the error handling design: all
// propagate to the caller without partial output. The core never logs,
// retries, or swallows an error.
var (
	// ErrEmptyGraph is returned when the input graph has zero edges.
	ErrEmptyGraph = errors.New("postman: graph has no edges")

	// ErrDisconnected names the condition where the positive-degree nodes
	// partition into more than one component. No function in this package
	// returns it; Solve in particular does not: its
	// default policy is to solve on the start node's component and report
	// the rest via RouteResult.UnreachedEdgeIDs.
	ErrDisconnected = errors.New("postman: graph is disconnected")

	// ErrUnreachableOdd is returned when APSP cannot connect two odd
	// vertices — always a symptom of ErrDisconnected.
	ErrUnreachableOdd = errors.New("postman: odd vertex unreachable")

	// ErrOddCardinality is returned by the matcher when given an odd-sized
	// vertex set. Every finite undirected graph has an even number of
	// odd-degree vertices (the handshake lemma), so this indicates a
	// malformed graph rather than a normal runtime condition.
	ErrOddCardinality = errors.New("postman: odd-sized vertex set given to matcher")

	// ErrCancelled is returned when the caller-supplied cancellation
	// predicate reports true between solve phases.
	ErrCancelled = errors.New("postman: solve cancelled")
)
