package trie

import "github.com/tetengo-go/tetengo"

// prefixFrame is one pending node on the iterator's explicit depth-first
// stack: the node itself, the key bytes walked to reach it, whether its
// EOK transition has been checked yet, and a cursor into its
// still-unvisited child labels.
type prefixFrame struct {
	node       int32
	key        []byte
	checkedEOK bool
	labels     []byte
	labelAt    int
}

// PrefixIterator lazily walks every key stored under a given prefix, in
// ascending byte order, depth-first. It holds no reference to the whole
// key set: each call to Next advances an explicit stack only as far as the
// next key, so iteration cost is proportional to what is actually visited.
//
// Usage mirrors bufio.Scanner: call Next until it returns false, reading
// Key/Value after each true return.
type PrefixIterator struct {
	t     *Trie
	stack []prefixFrame

	key   []byte
	value any
	err   error
}

// CommonPrefixSearch returns an iterator over every key in the trie that
// has prefix as a prefix (including prefix itself, if present as a key).
func (t *Trie) CommonPrefixSearch(prefix []byte) *PrefixIterator {
	it := &PrefixIterator{t: t}
	node := t.root
	for _, b := range prefix {
		next, ok, err := t.Step(node, b)
		if err != nil {
			it.err = err
			return it
		}
		if !ok {
			return it
		}
		node = next
	}
	it.stack = []prefixFrame{{node: node, key: append([]byte(nil), prefix...)}}
	return it
}

// Next advances to the next (key, value) pair and reports whether one was
// found. Iteration stops for good once it returns false, whether because
// the prefix is exhausted or an error occurred (check Err).
func (it *PrefixIterator) Next() bool {
	if it.err != nil {
		return false
	}
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]

		if !top.checkedEOK {
			top.checkedEOK = true
			leaf, ok, err := it.t.Step(top.node, eok)
			if err != nil {
				it.err = err
				return false
			}
			labels, err := childLabels(it.t.storage, top.node)
			if err != nil {
				it.err = err
				return false
			}
			top.labels = labels
			if ok {
				value, _, err := it.t.ValueAt(leaf)
				if err != nil {
					it.err = err
					return false
				}
				it.key = append([]byte(nil), top.key...)
				it.value = value
				return true
			}
		}

		if top.labelAt >= len(top.labels) {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		label := top.labels[top.labelAt]
		top.labelAt++
		next, ok, err := it.t.Step(top.node, label)
		if err != nil {
			it.err = err
			return false
		}
		if !ok {
			continue
		}
		childKey := append(append([]byte(nil), top.key...), label)
		it.stack = append(it.stack, prefixFrame{node: next, key: childKey})
	}
	return false
}

// Key returns the current key. Valid only after a true return from Next.
func (it *PrefixIterator) Key() []byte { return it.key }

// Value returns the current value. Valid only after a true return from Next.
func (it *PrefixIterator) Value() any { return it.value }

// Err returns the first error encountered during iteration, if any.
func (it *PrefixIterator) Err() error { return it.err }

// childLabels enumerates the byte labels (excluding eok) of node's children
// present in storage, by probing every possible transition target. This
// mirrors a datIterator-style sibling scan, generalized from a
// BMP-dense alphabet to the full byte range.
func childLabels(s storage, node int32) ([]byte, error) {
	base, err := s.baseAt(node)
	if err != nil {
		return nil, err
	}
	if base < 0 {
		return nil, nil
	}
	var labels []byte
	for b := 1; b <= 0xFF; b++ {
		t := base + int32(b) + 1
		if t < 0 || int(t) >= s.size() {
			continue
		}
		check, err := s.checkAt(t)
		if err != nil {
			return nil, err
		}
		if check == node+1 {
			labels = append(labels, byte(b))
		}
	}
	return labels, nil
}

// Subtrie returns a new Trie rooted at the node reached by prefix, sharing
// the same underlying storage. Keys looked up in the returned trie are
// relative to prefix. Returns tetengo.Error{Kind: NotFound} if prefix is
// not a valid path in t.
func (t *Trie) Subtrie(prefix []byte) (*Trie, error) {
	node := t.root
	for _, b := range prefix {
		next, ok, err := t.Step(node, b)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, tetengo.New(tetengo.NotFound, "trie.Subtrie: prefix not found")
		}
		node = next
	}
	return &Trie{storage: t.storage, root: node, vs: t.vs}, nil
}
