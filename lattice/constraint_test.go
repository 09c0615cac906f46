package lattice

import "testing"

func TestNodeConstraintElementMatches(t *testing.T) {
	e := NodeConstraintElement{Key: []byte("ab"), PrecedingStep: 0}

	if got := e.Matches(&Node{Key: []byte("ab"), PrecedingStep: 0}); got != 0 {
		t.Fatalf("exact match: got %d, want 0", got)
	}
	if got := e.Matches(&Node{Key: []byte("a"), PrecedingStep: 0}); got >= 0 {
		t.Fatalf("same preceding step, different key: got %d, want negative", got)
	}
	if got := e.Matches(&Node{Key: []byte("ab"), PrecedingStep: 1}); got <= 0 {
		t.Fatalf("different preceding step: got %d, want positive", got)
	}
}

func TestWildcardConstraintElementMatches(t *testing.T) {
	e := WildcardConstraintElement{MinPrecedingStep: 2}

	if got := e.Matches(&Node{PrecedingStep: 2}); got != 0 {
		t.Fatalf("at minimum: got %d, want 0", got)
	}
	if got := e.Matches(&Node{PrecedingStep: 5}); got != 0 {
		t.Fatalf("past minimum: got %d, want 0", got)
	}
	if got := e.Matches(&Node{PrecedingStep: 0}); got <= 0 {
		t.Fatalf("before minimum: got %d, want positive", got)
	}
}

func TestConstraintMatchesAtBeyondElementsIsIrrelevant(t *testing.T) {
	c := &Constraint{Elements: []ConstraintElement{NodeConstraintElement{Key: []byte("a"), PrecedingStep: 0}}}

	if got := c.matchesAt(1, &Node{Key: []byte("z"), PrecedingStep: 9}); got != 1 {
		t.Fatalf("depth beyond Elements: got %d, want 1", got)
	}
}

func TestNilConstraintMatchesAtIsAlwaysIrrelevant(t *testing.T) {
	var c *Constraint
	if got := c.matchesAt(0, &Node{}); got != 1 {
		t.Fatalf("nil constraint: got %d, want 1", got)
	}
}
