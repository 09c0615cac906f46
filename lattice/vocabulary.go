package lattice

// Candidate is one possible node a Vocabulary offers as ending at a given
// step, before any predecessor has been chosen for it. PrecedingStep names
// the earlier step the candidate's span begins at (p < step), so two
// candidates returned for the same step may originate from different,
// independently-reachable earlier positions — this is what lets a lattice
// hold keys of differing length ending at the same point.
type Candidate struct {
	Key           []byte
	NodeCost      int
	PrecedingStep int
}

// Vocabulary supplies a Lattice with candidate nodes ending at a given step
// and the cost of transitioning into them from an already-placed node.
// Implementations need not be thread-safe; a Lattice never calls one
// concurrently.
type Vocabulary interface {
	// CandidatesAt returns every candidate node whose span ends at step,
	// each carrying the earlier step its own span begins at.
	CandidatesAt(step int) ([]Candidate, error)
	TransitionCost(prev *Node, nextKey []byte) (int, error)
}
