package lattice

// Kind classifies a Node's position in the lattice. Go has no tagged
// union, so this stands in for the BOS/EOS/Middle variants a sum type
// would carry in languages that have one.
type Kind int

const (
	// BOS is the single implicit beginning-of-sequence node every
	// lattice starts with.
	BOS Kind = iota
	// EOS is the single node SettleEOS adds to close the lattice.
	EOS
	// Middle is an ordinary candidate node pulled from a Vocabulary.
	Middle
)

func (k Kind) String() string {
	switch k {
	case BOS:
		return "BOS"
	case EOS:
		return "EOS"
	case Middle:
		return "Middle"
	default:
		return "Unknown"
	}
}

// Edge is one incoming connection to a Node, recorded during PushBack so
// an N-best search can later explore predecessors other than the single
// best one the Viterbi forward pass picked.
type Edge struct {
	// PredIndex indexes the predecessor within the previous step.
	PredIndex int
	// Cost is TransitionCost(pred, key) + this node's own NodeCost —
	// everything needed to extend pred.PathCost into a path cost through
	// this edge, without NodeCost being double-counted across edges.
	Cost int
}

// Node is one candidate in the lattice: a key (the surface form, empty
// for BOS/EOS), its intrinsic cost, and the best path found to reach it
// so far. PrecedingStep/BestPreceding locate its best predecessor as
// coordinates into Lattice.steps, so walking a path back to BOS never
// needs anything but the lattice itself. Edges retains every predecessor
// considered, not just the best, so an N-best search can branch.
type Node struct {
	Key  []byte
	Kind Kind

	// NodeCost is the cost intrinsic to this node, independent of how it
	// was reached.
	NodeCost int
	// PathCost is NodeCost plus the cheapest cost to reach this node
	// from BOS, found during PushBack/SettleEOS.
	PathCost int

	// PrecedingStep indexes the step (in Lattice.steps) this node's
	// predecessors live in; -1 for BOS.
	PrecedingStep int
	// BestPreceding indexes, within that step, the predecessor chosen by
	// the Viterbi forward pass; -1 for BOS.
	BestPreceding int
	// Index is this node's own position within its step.
	Index int

	// Edges holds every predecessor considered for this node, in the
	// order they were evaluated (first-seen tie-break order).
	Edges []Edge
}

func newBOS() *Node {
	return &Node{Kind: BOS, PrecedingStep: -1, BestPreceding: -1}
}
