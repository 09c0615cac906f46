package lattice

// ConstraintElement classifies a node against one element of a
// Constraint. Matches returns 0 if n satisfies this element exactly, a
// negative value if n is rejected outright, or a positive value as a
// distance score when n is merely irrelevant to this element (smaller is
// closer to matching). This signed-int encoding of match/reject/irrelevant
// in one return value mirrors node_constraint_element/wildcard_constraint_element's
// matches_impl contract.
type ConstraintElement interface {
	Matches(n *Node) int
}

// NodeConstraintElement matches exactly one node, identified by its key
// and the preceding step its span begins at.
type NodeConstraintElement struct {
	Key           []byte
	PrecedingStep int
}

func (e NodeConstraintElement) Matches(n *Node) int {
	if n.PrecedingStep != e.PrecedingStep {
		return 1
	}
	if string(n.Key) == string(e.Key) {
		return 0
	}
	return -1
}

// WildcardConstraintElement matches any node whose PrecedingStep is at or
// after MinPrecedingStep.
type WildcardConstraintElement struct {
	MinPrecedingStep int
}

func (e WildcardConstraintElement) Matches(n *Node) int {
	if n.PrecedingStep >= e.MinPrecedingStep {
		return 0
	}
	return e.MinPrecedingStep - n.PrecedingStep
}

// Constraint is an ordered sequence of elements consulted, one at a time,
// as an NBestEnumerator expands a path forward from BOS: the I-th real
// node placed into the path (0 being the first node after BOS) must
// satisfy Elements[I], if that many elements exist.
type Constraint struct {
	Elements []ConstraintElement
}

// matchesAt reports the match/reject/irrelevant classification for
// placing n as the depth-th node (0 = the first node after BOS) of a path
// under construction.
func (c *Constraint) matchesAt(depth int, n *Node) int {
	if c == nil || depth >= len(c.Elements) {
		return 1
	}
	return c.Elements[depth].Matches(n)
}
