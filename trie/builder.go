package trie

import (
	"sort"
	"time"

	"github.com/tetengo-go/tetengo"
)

// Entry is one (key, value) pair supplied to Build. Keys must be unique;
// byte value 0x00 is reserved as the end-of-key sentinel and must not
// appear inside a key.
type Entry struct {
	Key   []byte
	Value any
}

// BuildProgress is invoked once per leaf, in construction order, with a
// strictly increasing done and a constant total — the same shape as the
// teacher's pattern-trie-stats reporting at the end of a dictionary load.
type BuildProgress func(done, total int)

// buildNode is the intermediate, map-based tree Build grows before
// freezing it into a double array. Using a children map keyed by byte
// (rather than requiring entries pre-sorted) lets Build accept entries in
// any order and only pay the sorting cost once per node, at freeze time —
// directly generalizing dat_backend.go's datBuildNode/Freeze split.
type buildNode struct {
	state    int32
	leaf     bool
	value    []byte
	children map[byte]*buildNode
}

func newBuildNode() *buildNode {
	return &buildNode{children: make(map[byte]*buildNode)}
}

// Build constructs a frozen double-array Trie from entries. Order of
// entries does not matter; duplicate keys are rejected with
// tetengo.Error{Kind: DuplicateKey}. m may be nil, in which case no
// metrics are recorded.
func Build(entries []Entry, vs ValueSerializer, progress BuildProgress, m *Metrics) (*Trie, error) {
	start := time.Now()
	root := newBuildNode()
	total := len(entries)
	for _, e := range entries {
		if err := insert(root, e.Key, e.Value, vs); err != nil {
			return nil, err
		}
	}

	// storage already has slot 0 (the root).
	storage := newMemoryStorage()
	root.state = 0

	done := 0
	queue := []*buildNode{root}
	for q := 0; q < len(queue); q++ {
		n := queue[q]
		if n.leaf {
			idx, err := storage.addValue(n.value)
			if err != nil {
				return nil, err
			}
			if err := storage.setBaseAt(n.state, -(int32(idx) + 1)); err != nil {
				return nil, err
			}
			done++
			if progress != nil {
				progress(done, total)
			}
		}
		if len(n.children) == 0 {
			continue
		}
		labels := sortedChildLabels(n.children)
		base := findFreeBase(storage, labels)
		if err := storage.setBaseAt(n.state, base); err != nil {
			return nil, err
		}
		for _, label := range labels {
			// check[t] == n+1: the +1 reserves 0 as "no link".
			t := base + int32(label) + 1
			if err := storage.setCheckAt(t, n.state+1); err != nil {
				return nil, err
			}
			child := n.children[label]
			child.state = t
			queue = append(queue, child)
		}
		storage.advanceFreeCursor()
	}

	t := &Trie{storage: storage, root: 0, vs: vs}
	m.ObserveBuildDuration(time.Since(start))
	m.Observe(t)
	tracer().Debugf("trie.Build: entries=%d arrayLen=%d took=%s", total, t.Size(), time.Since(start))
	return t, nil
}

// insert walks/creates nodes for key, storing value at the terminal
// (EOK) child. A key whose terminal child already exists is a duplicate.
func insert(root *buildNode, key []byte, value any, vs ValueSerializer) error {
	n := root
	for _, b := range key {
		if b == eok {
			return tetengo.New(tetengo.InvalidOperation, "trie.Build: key contains the reserved end-of-key byte 0x00")
		}
		child, ok := n.children[b]
		if !ok {
			child = newBuildNode()
			n.children[b] = child
		}
		n = child
	}
	if leaf, ok := n.children[eok]; ok && leaf.leaf {
		return tetengo.New(tetengo.DuplicateKey, "trie.Build: duplicate key")
	}
	leaf := newBuildNode()
	leaf.leaf = true
	encoded, err := vs.Encode(value)
	if err != nil {
		return tetengo.Wrap(tetengo.InvalidOperation, "trie.Build: encoding value", err)
	}
	leaf.value = encoded
	n.children[eok] = leaf
	return nil
}

func sortedChildLabels(children map[byte]*buildNode) []byte {
	labels := make([]byte, 0, len(children))
	for label := range children {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}

// findFreeBase searches upward from the storage's free-slot cursor for the
// smallest base such that every sibling label's target slot is unused.
// Unlike a naive findDATBase-style scan (which restarts from 1 on every
// call), the cursor is cached across calls on the same storage so
// construction stays close to linear on realistic key sets.
func findFreeBase(storage *memoryStorage, labels []byte) int32 {
	for base := storage.freeCursor; ; base++ {
		if fits(storage, base, labels) {
			return base
		}
	}
}

func fits(storage *memoryStorage, base int32, labels []byte) bool {
	for _, label := range labels {
		t := base + int32(label) + 1
		if int(t) < len(storage.check) && storage.check[t] != 0 {
			return false
		}
	}
	return true
}
