package routing

// NeighborsFunc returns the nodes reachable from u by one edge.
type NeighborsFunc[T comparable] func(u T) []T

// CostFunc returns the cost of edge u->v. false means no cost is available and the edge is skipped.
type CostFunc[T comparable] func(u, v T) (float64, bool)

// HeuristicFunc estimates the remaining cost from u to goal. it must never overestimate.
type HeuristicFunc[T comparable] func(u, goal T) float64

// SearchResult. Popped counts every frontier extraction, including stale ones.
type SearchResult[T comparable] struct {
	Path  []T
	Cost  float64
	Found bool

	Popped   int
	Expanded int
	Pushed   int
}

type searchOptions struct {
	linearFrontier   bool
	frontierCapacity int
}

type SearchOption func(*searchOptions)

// WithLinearFrontier selects the frontier entry by scanning the whole frontier, O(V*(V+E)) worst case.
// results are identical to the default binary heap frontier.
func WithLinearFrontier() SearchOption {
	return func(o *searchOptions) {
		o.linearFrontier = true
	}
}

// WithFrontierCapacity preallocates room for n entries in the heap frontier.
func WithFrontierCapacity(n int) SearchOption {
	return func(o *searchOptions) {
		o.frontierCapacity = n
	}
}

// partialPath is one frontier entry: a path from start ending at node, linked to its prefix.
type partialPath[T comparable] struct {
	node   T
	cost   float64
	parent *partialPath[T]
	length int
}

func (p *partialPath[T]) extend(v T, edgeCost float64) *partialPath[T] {
	return &partialPath[T]{
		node:   v,
		cost:   p.cost + edgeCost,
		parent: p,
		length: p.length + 1,
	}
}

func (p *partialPath[T]) nodes() []T {
	path := make([]T, p.length)
	for cur := p; cur != nil; cur = cur.parent {
		path[cur.length-1] = cur.node
	}
	return path
}

// BestFirstSearch runs uniform-cost search from start to goal, or A* when heuristic is not nil.
// the frontier holds partial paths ordered by accumulated cost (+ heuristic); among equal priorities the
// path pushed first is extracted first. a node is expanded at most once, at its first extraction.
func BestFirstSearch[T comparable](start, goal T, neighbors NeighborsFunc[T], cost CostFunc[T],
	heuristic HeuristicFunc[T], opts ...SearchOption) SearchResult[T] {
	options := searchOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	var pq frontier[T]
	if options.linearFrontier {
		pq = newLinearFrontier[T]()
	} else {
		pq = newHeapFrontier[T](options.frontierCapacity)
	}

	priority := func(p *partialPath[T]) float64 {
		if heuristic == nil {
			return p.cost
		}
		return p.cost + heuristic(p.node, goal)
	}

	result := SearchResult[T]{}
	expanded := make(map[T]struct{})

	root := &partialPath[T]{node: start, length: 1}
	pq.push(root, priority(root))
	result.Pushed++

	for pq.size() > 0 {
		path := pq.pop()
		result.Popped++

		u := path.node
		if _, ok := expanded[u]; ok {
			continue
		}

		if u == goal {
			result.Path = path.nodes()
			result.Cost = path.cost
			result.Found = true
			return result
		}

		expanded[u] = struct{}{}
		result.Expanded++

		for _, v := range neighbors(u) {
			if _, ok := expanded[v]; ok {
				continue
			}
			edgeCost, ok := cost(u, v)
			if !ok {
				continue
			}
			next := path.extend(v, edgeCost)
			pq.push(next, priority(next))
			result.Pushed++
		}
	}

	return result
}
