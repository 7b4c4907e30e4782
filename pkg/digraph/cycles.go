package digraph

// DFS node coloring: white = unvisited, gray = on the traversal path,
// black = fully explored.
const (
	white = iota
	gray
	black
)

// frame is one level of the explicit DFS work stack. Using an explicit stack
// instead of language recursion keeps pathological graphs from exhausting the
// goroutine stack.
type frame struct {
	id   string
	next int // index of the next child to visit
}

// FindCycle searches the graph for a directed cycle and returns its edges in
// path order, starting and ending at the revisited node. The second return
// value reports whether a cycle was found.
//
// The search is a depth-first traversal with white/gray/black coloring. An
// edge into a gray node (one still on the traversal path) closes a cycle;
// the cycle is reconstructed from the work stack between the revisited node
// and the current node plus the closing edge. The traversal restarts from
// every unvisited node in sorted ID order, so cycles are found in all
// components of a disconnected graph and repeated calls on an unchanged
// graph return the same cycle.
func FindCycle(g *Graph) ([]Edge, bool) {
	color := make(map[string]int, len(g.nodes))

	for _, start := range g.Nodes() {
		if color[start] != white {
			continue
		}

		stack := []frame{{id: start}}
		color[start] = gray

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			children := g.Children(top.id)

			if top.next >= len(children) {
				color[top.id] = black
				stack = stack[:len(stack)-1]
				continue
			}

			child := children[top.next]
			top.next++

			switch color[child] {
			case white:
				color[child] = gray
				stack = append(stack, frame{id: child})
			case gray:
				return cycleFromStack(g, stack, child), true
			}
		}
	}

	return nil, false
}

// HasCycle reports whether the graph contains at least one directed cycle.
func HasCycle(g *Graph) bool {
	_, found := FindCycle(g)
	return found
}

// cycleFromStack reconstructs the cycle path closed by the edge from the top
// of the work stack back to the revisited node.
func cycleFromStack(g *Graph, stack []frame, revisited string) []Edge {
	start := 0
	for i, f := range stack {
		if f.id == revisited {
			start = i
			break
		}
	}

	var cycle []Edge
	for i := start; i < len(stack)-1; i++ {
		v, _ := g.Value(stack[i].id, stack[i+1].id)
		cycle = append(cycle, Edge{From: stack[i].id, To: stack[i+1].id, Value: v})
	}
	closing, _ := g.Value(stack[len(stack)-1].id, revisited)
	cycle = append(cycle, Edge{From: stack[len(stack)-1].id, To: revisited, Value: closing})
	return cycle
}

// BreakCycles removes edges from the graph until it is acyclic and returns
// the removed edges in removal order.
//
// Each iteration finds one cycle with [FindCycle] and removes the
// minimum-value edge anywhere on its path (the first such edge when several
// tie). Removing an edge can only shrink the edge set, so no new cycles can
// appear and the loop terminates after at most EdgeCount iterations.
//
// This weakest-link heuristic discards little flow value per broken cycle
// but is a greedy approximation: the total set of removed edges is not
// guaranteed to be a minimum feedback arc set, which would be NP-hard to
// compute. For visualization-sized graphs the approximation is the accepted
// trade-off.
func BreakCycles(g *Graph) []Edge {
	var removed []Edge
	for {
		cycle, found := FindCycle(g)
		if !found {
			return removed
		}

		weakest := cycle[0]
		for _, e := range cycle[1:] {
			if e.Value < weakest.Value {
				weakest = e
			}
		}

		g.RemoveEdge(weakest.From, weakest.To)
		removed = append(removed, weakest)
	}
}
