package lattice

// Path is an ordered sequence of nodes from BOS to EOS, together with its
// total cost and whether it satisfied every element of the Constraint it
// was found under (always true for a path with no constraint).
type Path struct {
	Nodes     []Node
	TotalCost int
	Satisfied bool
}
