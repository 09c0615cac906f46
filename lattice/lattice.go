package lattice

import (
	"time"

	"github.com/tetengo-go/tetengo"
)

// Lattice is a step-indexed DAG of candidate nodes, grown one step at a
// time from a Vocabulary and solved with a forward (Viterbi) dynamic
// program: each new node picks, among its own preceding step's nodes, the
// predecessor minimizing predecessor-path-cost + transition-cost +
// node-cost, with ties broken in favor of the first predecessor found.
// Candidates returned for the same step may name different preceding
// steps, which is how spans of differing length come to end at the same
// point — a prerequisite for segmenting text into words of varying
// length.
type Lattice struct {
	vocabulary Vocabulary
	steps      [][]*Node // steps[0] is the implicit BOS step
	eos        *Node
	metrics    *Metrics
}

// NewLattice creates a Lattice backed by vocabulary, seeded with the
// implicit BOS node. m may be nil; every Metrics method is a no-op on a
// nil receiver, so passing nil costs nothing.
func NewLattice(vocabulary Vocabulary, m *Metrics) *Lattice {
	return &Lattice{vocabulary: vocabulary, steps: [][]*Node{{newBOS()}}, metrics: m}
}

// PushBack pulls the candidates ending at step from the vocabulary and
// places them as a new lattice step, each wired to its best predecessor in
// its own preceding step (named by the candidate itself, not necessarily
// the step pushed immediately before). step must equal the number of steps
// pushed so far (BOS counts as step 0), i.e. callers push steps 1..L in
// order; this keeps a candidate's PrecedingStep and the lattice's own
// step indices in the same numbering a Vocabulary uses internally (for
// TrieVocabulary, byte offsets into the input).
func (l *Lattice) PushBack(step int) error {
	if l.eos != nil {
		return tetengo.New(tetengo.InvalidOperation, "lattice.PushBack: lattice is already settled")
	}
	if step != len(l.steps) {
		return tetengo.New(tetengo.InvalidOperation, "lattice.PushBack: steps must be pushed in order, one at a time")
	}
	start := time.Now()

	candidates, err := l.vocabulary.CandidatesAt(step)
	if err != nil {
		return err
	}

	nodes := make([]*Node, 0, len(candidates))
	for _, c := range candidates {
		if c.PrecedingStep < 0 || c.PrecedingStep >= len(l.steps) {
			return tetengo.New(tetengo.UnreachableStep, "lattice.PushBack: candidate references an unpopulated preceding step")
		}
		prevStep := l.steps[c.PrecedingStep]
		if len(prevStep) == 0 {
			continue
		}
		edges, bestPred, bestCost, err := l.edgesTo(prevStep, c.Key, c.NodeCost)
		if err != nil {
			return err
		}
		if bestPred < 0 {
			continue
		}
		nodes = append(nodes, &Node{
			Key:           c.Key,
			Kind:          Middle,
			NodeCost:      c.NodeCost,
			PathCost:      bestCost,
			PrecedingStep: c.PrecedingStep,
			BestPreceding: bestPred,
			Index:         len(nodes),
			Edges:         edges,
		})
	}
	l.steps = append(l.steps, nodes)
	l.metrics.ObserveDPDuration(time.Since(start))
	tracer().Debugf("lattice.PushBack: step=%d candidates=%d reachable=%d", step, len(candidates), len(nodes))
	return nil
}

// edgesTo computes, for every node in prevStep, the edge cost of
// transitioning into a node keyed by key with the given nodeCost, and
// picks the best predecessor (first-seen tie-break) for the Viterbi
// forward pass. The full edge list is kept so an N-best search can later
// consider the predecessors that were not chosen.
func (l *Lattice) edgesTo(prevStep []*Node, key []byte, nodeCost int) (edges []Edge, bestPred, bestCost int, err error) {
	bestPred = -1
	edges = make([]Edge, 0, len(prevStep))
	for i, prev := range prevStep {
		transitionCost, err := l.vocabulary.TransitionCost(prev, key)
		if err != nil {
			return nil, -1, 0, err
		}
		edgeCost := transitionCost + nodeCost
		edges = append(edges, Edge{PredIndex: i, Cost: edgeCost})
		cost := prev.PathCost + edgeCost
		if bestPred == -1 || cost < bestCost {
			bestCost = cost
			bestPred = i
		}
	}
	return edges, bestPred, bestCost, nil
}

// SettleEOS closes the lattice by adding the single EOS node, wired to
// its best predecessor in the last pushed step. After this, PushBack can
// no longer be called, and BestPath becomes available.
func (l *Lattice) SettleEOS() error {
	if l.eos != nil {
		return tetengo.New(tetengo.InvalidOperation, "lattice.SettleEOS: lattice is already settled")
	}
	if len(l.steps) == 1 {
		// Only BOS exists: nothing was ever pushed, so BOS and EOS are
		// disconnected.
		return tetengo.New(tetengo.NoPath, "lattice.SettleEOS: no nodes between BOS and EOS")
	}
	lastStepIdx := len(l.steps) - 1
	lastStep := l.steps[lastStepIdx]
	if len(lastStep) == 0 {
		return tetengo.New(tetengo.UnreachableStep, "lattice.SettleEOS: last step has no reachable nodes")
	}
	edges, bestPred, bestCost, err := l.edgesTo(lastStep, nil, 0)
	if err != nil {
		return err
	}
	l.eos = &Node{
		Kind:          EOS,
		PrecedingStep: lastStepIdx,
		BestPreceding: bestPred,
		PathCost:      bestCost,
		Edges:         edges,
	}
	return nil
}

// BestPath returns the lowest-cost BOS-to-EOS path. The lattice must be
// settled first with SettleEOS.
func (l *Lattice) BestPath() (Path, error) {
	if l.eos == nil {
		return Path{}, tetengo.New(tetengo.EmptyLattice, "lattice.BestPath: lattice has not been settled")
	}
	nodes, err := l.tracePath(l.eos)
	if err != nil {
		return Path{}, err
	}
	return Path{Nodes: nodes, TotalCost: l.eos.PathCost, Satisfied: true}, nil
}

// tracePath walks backward from n to BOS via BestPreceding links and
// returns the nodes in forward (BOS-to-n) order.
func (l *Lattice) tracePath(n *Node) ([]Node, error) {
	var reversed []Node
	cur := n
	for {
		reversed = append(reversed, *cur)
		if cur.Kind == BOS {
			break
		}
		if cur.BestPreceding < 0 {
			return nil, tetengo.New(tetengo.NoPath, "lattice: node has no predecessor")
		}
		cur = l.steps[cur.PrecedingStep][cur.BestPreceding]
	}
	nodes := make([]Node, len(reversed))
	for i, n := range reversed {
		nodes[len(reversed)-1-i] = n
	}
	return nodes, nil
}

// StepCount returns the number of steps pushed so far, not counting the
// implicit BOS step.
func (l *Lattice) StepCount() int { return len(l.steps) - 1 }
