// Package walker finds the maximum-weight path through a reading grid's
// nodes: the Bellman-style DAG shortest-path algorithm (maximizing rather
// than minimizing, since node weights are log-probabilities) from Cormen
// et al., applied over an explicit-stack topological sort so the walk
// isn't limited by the calling goroutine's stack depth (ported from
// ReadingGrid::walk in gramambular2/reading_grid.cpp).
package walker

import (
	"math"

	"github.com/mcbopomofo/bopomofo-engine/internal/grid"
)

// vertex is a mutable node in the walk's DAG: a reference to the grid node
// it wraps, its out-edges, and the running state for topological sort and
// relaxation. The virtual root/terminal vertices wrap placeholder nodes
// ("_ROOT_"/"_TERMINAL_") rather than leaving node nil, mirroring the
// sentinel Nodes reading_grid.cpp constructs for the same purpose.
type vertex struct {
	node     *grid.Node
	edges    []*vertex
	sorted   bool
	distance float64
	prev     *vertex
}

// Result is the outcome of a walk: the chosen nodes in grid order, plus
// some bookkeeping useful for diagnostics.
type Result struct {
	Nodes         []*grid.Node
	TotalReadings int
	Vertices      int
	Edges         int
}

// ValuesAsStrings returns each walked node's currently selected value, in
// grid order.
func (r Result) ValuesAsStrings() []string {
	values := make([]string, len(r.Nodes))
	for i, n := range r.Nodes {
		values[i] = n.Value()
	}
	return values
}

// ReadingsAsStrings returns each walked node's reading, in grid order.
func (r Result) ReadingsAsStrings() []string {
	readings := make([]string, len(r.Nodes))
	for i, n := range r.Nodes {
		readings[i] = n.Reading()
	}
	return readings
}

// FindNodeAt returns the node covering cursor (a position in readings, not
// in nodes) and, if outCursorPastNode is non-nil, the reading-position
// just past that node. It reports ok=false if cursor is out of range or the
// walk produced no nodes.
func (r Result) FindNodeAt(cursor int, outCursorPastNode *int) (*grid.Node, bool) {
	index, pastNode, ok := r.IndexAt(cursor)
	if !ok {
		return nil, false
	}
	if outCursorPastNode != nil {
		*outCursorPastNode = pastNode
	}
	return r.Nodes[index], true
}

// IndexAt is FindNodeAt's index-returning counterpart, used by callers
// (such as the user override model) that need the node's position within
// Nodes, not just the node itself.
func (r Result) IndexAt(cursor int) (index int, cursorPastNode int, ok bool) {
	if len(r.Nodes) == 0 || cursor > r.TotalReadings {
		return 0, 0, false
	}

	if cursor == 0 {
		return 0, r.Nodes[0].SpanningLength(), true
	}

	if cursor >= r.TotalReadings-1 {
		return len(r.Nodes) - 1, r.TotalReadings, true
	}

	accumulated := 0
	for i, n := range r.Nodes {
		accumulated += n.SpanningLength()
		if accumulated > cursor {
			return i, accumulated, true
		}
	}
	return 0, 0, false
}

// Walk computes the maximum-weight path through g's nodes in O(V+E) time
// and returns it as a Result. An empty grid yields a zero Result.
func Walk(g *grid.Grid) Result {
	spanCount := g.SpanCount()
	if spanCount == 0 {
		return Result{}
	}

	vspans := make([][]*vertex, spanCount)
	vertexCount := 0
	for i := 0; i < spanCount; i++ {
		nodes := g.NodesAt(i)
		vs := make([]*vertex, len(nodes))
		for j, n := range nodes {
			vs[j] = &vertex{node: n, distance: math.Inf(-1)}
		}
		vspans[i] = vs
		vertexCount += len(vs)
	}

	terminal := &vertex{node: grid.NewPlaceholderNode("_TERMINAL_"), distance: math.Inf(-1)}
	edgeCount := 0
	for i := 0; i < spanCount; i++ {
		for _, v := range vspans[i] {
			next := i + v.node.SpanningLength()
			if next == spanCount {
				v.edges = append(v.edges, terminal)
				continue
			}
			for _, nv := range vspans[next] {
				v.edges = append(v.edges, nv)
				edgeCount++
			}
		}
	}

	root := &vertex{node: grid.NewPlaceholderNode("_ROOT_"), distance: 0}
	root.edges = append(root.edges, vspans[0]...)

	ordered := topologicalSort(root)
	for i := len(ordered) - 1; i >= 0; i-- {
		u := ordered[i]
		for _, v := range u.edges {
			relax(u, v)
		}
	}

	var walked []*grid.Node
	totalReadings := 0
	it := terminal
	for it.prev != nil {
		walked = append(walked, it.prev.node)
		it = it.prev
		totalReadings += it.node.SpanningLength()
	}

	// walked's last entry is root's own placeholder node, pushed on the
	// final iteration above; drop it before reversing the rest back into
	// grid order.
	walked = walked[:len(walked)-1]
	nodes := make([]*grid.Node, len(walked))
	for i, n := range walked {
		nodes[len(walked)-1-i] = n
	}

	return Result{
		Nodes:         nodes,
		TotalReadings: totalReadings,
		Vertices:      vertexCount,
		Edges:         edgeCount,
	}
}

// relax updates v's distance/prev if routing through u improves it. We are
// maximizing total weight, so v is "relaxed" when the path through u is
// strictly longer (heavier), the mirror image of the textbook
// shortest-path relax.
func relax(u, v *vertex) {
	w := v.node.Score()
	if v.distance < u.distance+w {
		v.distance = u.distance + w
		v.prev = u
	}
}

// topologicalSort returns every vertex reachable from root in reverse
// topological order (each vertex after every vertex it has an edge to, so
// root comes last), using an explicit stack so recursion depth doesn't
// depend on the grid size.
func topologicalSort(root *vertex) []*vertex {
	var result []*vertex

	type frame struct {
		v    *vertex
		next int
	}
	stack := []frame{{v: root}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		v := top.v

		if top.next < len(v.edges) {
			nv := v.edges[top.next]
			top.next++
			if !nv.sorted {
				stack = append(stack, frame{v: nv})
			}
			continue
		}

		v.sorted = true
		result = append(result, v)
		stack = stack[:len(stack)-1]
	}

	return result
}
