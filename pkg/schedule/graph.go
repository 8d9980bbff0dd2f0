package schedule

import (
	"container/heap"
	"fmt"
	"strings"

	"github.com/arthur-debert/prjconf/pkg/errors"
)

type node struct {
	name  string
	rank  int
	succ  []string
	preds []string
}

// Graph is a directed graph where an edge a -> b means a runs before b.
type Graph struct {
	nodes map[string]*node
	order []string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

// AddNode adds name to the graph. Adding an existing node does nothing, so
// its rank stays the one it got first.
func (g *Graph) AddNode(name string) {
	if _, ok := g.nodes[name]; ok {
		return
	}
	g.nodes[name] = &node{name: name, rank: len(g.order)}
	g.order = append(g.order, name)
}

// AddEdge records that from runs before to. Both nodes must exist.
// Duplicate edges are ignored; a self edge is accepted and reported as a
// cycle by Sort.
func (g *Graph) AddEdge(from, to string) error {
	f, ok := g.nodes[from]
	if !ok {
		return errors.Newf(errors.ErrNotFound, "source node not found: %s", from).WithDetail("node", from)
	}
	t, ok := g.nodes[to]
	if !ok {
		return errors.Newf(errors.ErrNotFound, "destination node not found: %s", to).WithDetail("node", to)
	}
	for _, s := range f.succ {
		if s == to {
			return nil
		}
	}
	f.succ = append(f.succ, to)
	t.preds = append(t.preds, from)
	return nil
}

// Has reports whether name is in the graph.
func (g *Graph) Has(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// Nodes returns node names in insertion order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Successors returns the nodes name must run before.
func (g *Graph) Successors(name string) []string {
	n, ok := g.nodes[name]
	if !ok {
		return nil
	}
	out := make([]string, len(n.succ))
	copy(out, n.succ)
	return out
}

// Predecessors returns the nodes that must run before name.
func (g *Graph) Predecessors(name string) []string {
	n, ok := g.nodes[name]
	if !ok {
		return nil
	}
	out := make([]string, len(n.preds))
	copy(out, n.preds)
	return out
}

// Sort returns every node in an order that satisfies all edges, breaking
// ties by insertion order.
func (g *Graph) Sort() ([]string, error) {
	indegree := make(map[string]int, len(g.nodes))
	ready := &rankQueue{}
	for _, name := range g.order {
		n := g.nodes[name]
		indegree[name] = len(n.preds)
		if indegree[name] == 0 {
			heap.Push(ready, n)
		}
	}

	sorted := make([]string, 0, len(g.order))
	for ready.Len() > 0 {
		n := heap.Pop(ready).(*node)
		sorted = append(sorted, n.name)
		for _, s := range n.succ {
			indegree[s]--
			if indegree[s] == 0 {
				heap.Push(ready, g.nodes[s])
			}
		}
	}

	if len(sorted) == len(g.order) {
		return sorted, nil
	}

	var unresolved []string
	for _, name := range g.order {
		if indegree[name] > 0 {
			unresolved = append(unresolved, name)
		}
	}
	return nil, g.cycleError(unresolved)
}

// FindCycle returns one cycle among the given nodes as a closed path, or nil.
func (g *Graph) FindCycle(among []string) []string {
	allowed := make(map[string]bool, len(among))
	for _, name := range among {
		allowed[name] = true
	}

	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var stack []string

	var visit func(name string) []string
	visit = func(name string) []string {
		visited[name] = true
		onStack[name] = true
		stack = append(stack, name)

		for _, s := range g.nodes[name].succ {
			if !allowed[s] {
				continue
			}
			if onStack[s] {
				for i, v := range stack {
					if v == s {
						cycle := append([]string{}, stack[i:]...)
						return append(cycle, s)
					}
				}
			}
			if !visited[s] {
				if cycle := visit(s); cycle != nil {
					return cycle
				}
			}
		}

		stack = stack[:len(stack)-1]
		delete(onStack, name)
		return nil
	}

	for _, name := range among {
		if _, ok := g.nodes[name]; !ok || visited[name] {
			continue
		}
		if cycle := visit(name); cycle != nil {
			return cycle
		}
	}
	return nil
}

func (g *Graph) cycleError(unresolved []string) error {
	cycle := g.FindCycle(unresolved)
	if cycle == nil {
		// Kahn left nodes behind, so a cycle must exist among them.
		return errors.Newf(errors.ErrInternal, "nodes could not be ordered: %s", strings.Join(unresolved, ", ")).
			WithDetail("unresolved", unresolved)
	}

	var b strings.Builder
	b.WriteString("encountered dependency cycle:")
	for i := 0; i+1 < len(cycle); i++ {
		fmt.Fprintf(&b, "\n    %q runs before %q", cycle[i], cycle[i+1])
	}

	edge := []string{cycle[len(cycle)-2], cycle[len(cycle)-1]}
	return errors.New(errors.ErrCyclicDependency, b.String()).
		WithDetail("cycle", cycle).
		WithDetail("edge", edge).
		WithDetail("unresolved", unresolved)
}

// rankQueue is a min-heap of nodes by insertion rank.
type rankQueue []*node

func (q rankQueue) Len() int           { return len(q) }
func (q rankQueue) Less(i, j int) bool { return q[i].rank < q[j].rank }
func (q rankQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *rankQueue) Push(x any) { *q = append(*q, x.(*node)) }

func (q *rankQueue) Pop() any {
	old := *q
	n := old[len(old)-1]
	*q = old[:len(old)-1]
	return n
}
