// Package schedule orders named nodes under "runs before" constraints.
//
// Sort is Kahn's algorithm. Whenever several nodes are ready at once, the
// one added to the graph first wins, so identical input always yields the
// identical order. When nodes remain that can never become ready, Sort
// walks them to find one concrete cycle and reports it as a
// CYCLIC_DEPENDENCY error:
//
//	encountered dependency cycle:
//	    "a" runs before "b"
//	    "b" runs before "a"
//
// The error details carry the closed path ("cycle": [a b a]) and the edge
// that closes it ("edge": [b a]).
package schedule
