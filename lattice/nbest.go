package lattice

import (
	"math"
	"time"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/tetengo-go/tetengo"
)

// pathTail is a persistent, shared-prefix linked list of nodes, so
// branching the search frontier never copies an already-built path
// prefix.
type pathTail struct {
	node *Node
	prev *pathTail
}

func (t *pathTail) toSlice() []Node {
	var reversed []Node
	for n := t; n != nil; n = n.prev {
		reversed = append(reversed, *n.node)
	}
	nodes := make([]Node, len(reversed))
	for i, n := range reversed {
		nodes[len(reversed)-1-i] = n
	}
	return nodes
}

// cap is one partial path in the A* frontier: the node it currently ends
// at, the path leading to it, g (the actual accumulated cost of that path
// from BOS), and depth (how many real, non-BOS nodes the path holds so
// far, used to index into a Constraint).
type cap struct {
	node  *Node
	tail  *pathTail
	g     int
	depth int
	seq   int // insertion order, used to break ties in the frontier
}

// forwardEdge is one outgoing connection from a node: the transpose of
// the Edge values recorded on its successor during PushBack/SettleEOS.
type forwardEdge struct {
	successor *Node
	cost      int
}

// NBestEnumerator lazily yields lattice paths in non-decreasing total
// cost order via A*: the frontier is ordered by f = g (cost so far from
// BOS) + h (a precomputed admissible estimate of the remaining cost to
// EOS), so the first path popped that reaches EOS is guaranteed optimal
// among those not yet explored.
type NBestEnumerator struct {
	lattice    *Lattice
	constraint *Constraint
	metrics    *Metrics

	outgoing map[*Node][]forwardEdge
	tailCost map[*Node]int

	frontier *binaryheap.Heap
	nextSeq  int
	ready    bool
	done     bool
	err      error
}

// NewNBestEnumerator creates an enumerator over lattice's paths,
// restricted to those satisfying constraint (nil means unconstrained). m
// may be nil, in which case no metrics are recorded. lattice must already
// be settled (SettleEOS called) by the time Next is first invoked.
func NewNBestEnumerator(lattice *Lattice, constraint *Constraint, m *Metrics) *NBestEnumerator {
	return &NBestEnumerator{lattice: lattice, constraint: constraint, metrics: m}
}

// prepare computes the backward tail-cost heuristic and seeds the
// frontier with BOS. It runs once, lazily, on the first call to Next.
func (e *NBestEnumerator) prepare() error {
	if e.ready {
		return nil
	}
	if e.lattice.eos == nil {
		return tetengo.New(tetengo.EmptyLattice, "lattice.NBestEnumerator: lattice has not been settled")
	}
	start := time.Now()

	e.outgoing = make(map[*Node][]forwardEdge)
	addOutgoing := func(n *Node) {
		if n.Kind == BOS {
			return
		}
		prevStep := e.lattice.steps[n.PrecedingStep]
		for _, edge := range n.Edges {
			pred := prevStep[edge.PredIndex]
			e.outgoing[pred] = append(e.outgoing[pred], forwardEdge{successor: n, cost: edge.Cost})
		}
	}
	for _, step := range e.lattice.steps {
		for _, n := range step {
			addOutgoing(n)
		}
	}
	addOutgoing(e.lattice.eos)

	e.tailCost = make(map[*Node]int)
	e.tailCost[e.lattice.eos] = 0
	for stepIdx := len(e.lattice.steps) - 1; stepIdx >= 0; stepIdx-- {
		for _, n := range e.lattice.steps[stepIdx] {
			best := math.MaxInt32
			for _, out := range e.outgoing[n] {
				if h, ok := e.tailCost[out.successor]; ok {
					if cost := out.cost + h; cost < best {
						best = cost
					}
				}
			}
			e.tailCost[n] = best
		}
	}

	e.frontier = binaryheap.NewWith(e.compareCaps)
	bos := e.lattice.steps[0][0]
	e.pushCap(&cap{node: bos, tail: &pathTail{node: bos}, g: 0, depth: 0})
	e.ready = true
	e.metrics.ObserveDPDuration(time.Since(start))
	return nil
}

func (e *NBestEnumerator) pushCap(c *cap) {
	c.seq = e.nextSeq
	e.nextSeq++
	e.frontier.Push(c)
	e.metrics.ObserveFrontierSize(e.frontier.Size())
}

// compareCaps orders the frontier by f = g + h ascending, breaking ties
// by insertion order: gods/trees/binaryheap does not guarantee a stable
// ordering among equal keys on its own, so the explicit seq field is what
// actually realizes first-seen tie-break.
func (e *NBestEnumerator) compareCaps(a, b any) int {
	ca, cb := a.(*cap), b.(*cap)
	fa := ca.g + e.tailCost[ca.node]
	fb := cb.g + e.tailCost[cb.node]
	if fa != fb {
		return fa - fb
	}
	return ca.seq - cb.seq
}

// Next returns the next cheapest remaining path, or a
// tetengo.Error{Kind: NoPath} once every path has been enumerated.
func (e *NBestEnumerator) Next() (Path, error) {
	if e.err != nil {
		return Path{}, e.err
	}
	if e.done {
		return Path{}, tetengo.Err(tetengo.NoPath)
	}
	if err := e.prepare(); err != nil {
		e.err = err
		return Path{}, err
	}

	for {
		raw, ok := e.frontier.Pop()
		if !ok {
			e.done = true
			return Path{}, tetengo.Err(tetengo.NoPath)
		}
		top := raw.(*cap)

		if top.node.Kind == EOS {
			nodes := top.tail.toSlice()
			e.metrics.ObservePathEmitted()
			return Path{Nodes: nodes, TotalCost: top.g, Satisfied: e.satisfied(nodes)}, nil
		}

		for _, out := range e.outgoing[top.node] {
			if e.constraint != nil {
				if verdict := e.constraint.matchesAt(top.depth, out.successor); verdict < 0 {
					continue
				}
			}
			e.pushCap(&cap{
				node:  out.successor,
				tail:  &pathTail{node: out.successor, prev: top.tail},
				g:     top.g + out.cost,
				depth: top.depth + 1,
			})
		}
	}
}

// satisfied reports whether every constraint element engaged by nodes
// matched exactly (Matches == 0) at its corresponding depth, counting
// depth 0 as the first real node after BOS.
func (e *NBestEnumerator) satisfied(nodes []Node) bool {
	if e.constraint == nil {
		return true
	}
	for depth, elem := range e.constraint.Elements {
		if depth+1 >= len(nodes) {
			return false
		}
		if elem.Matches(&nodes[depth+1]) != 0 {
			return false
		}
	}
	return true
}
