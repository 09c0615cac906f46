package trie

import "github.com/tetengo-go/tetengo"

// step performs a single transition: from node, consuming byte b.
// t = base[node] + b + 1, and the transition is valid iff
// 0 <= t < size and check[t] == node+1.
func step(s storage, node int32, b byte) (int32, bool, error) {
	base, err := s.baseAt(node)
	if err != nil {
		return 0, false, err
	}
	if base < 0 {
		// node is a leaf (holds a value index); it has no byte children.
		return 0, false, nil
	}
	t := base + int32(b) + 1
	if t < 0 || int(t) >= s.size() {
		return 0, false, nil
	}
	check, err := s.checkAt(t)
	if err != nil {
		return 0, false, err
	}
	if check != node+1 {
		return 0, false, nil
	}
	return t, true, nil
}

// lookup walks key from root, then the EOK transition, and decodes the
// leaf's value. It returns tetengo.Error{Kind: NotFound} if any transition
// (including the final EOK one) is absent.
func lookup(s storage, root int32, key []byte, vs ValueSerializer) (any, error) {
	node := root
	for _, b := range key {
		next, ok, err := step(s, node, b)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, tetengo.New(tetengo.NotFound, "trie.Lookup: no such key")
		}
		node = next
	}
	leaf, ok, err := step(s, node, eok)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, tetengo.New(tetengo.NotFound, "trie.Lookup: no such key")
	}
	return valueAtLeaf(s, leaf, vs)
}

// valueAtLeaf decodes the value stored at a leaf node (one whose base is
// negative, encoding -(valueIndex+1)).
func valueAtLeaf(s storage, leaf int32, vs ValueSerializer) (any, error) {
	base, err := s.baseAt(leaf)
	if err != nil {
		return nil, err
	}
	if base >= 0 {
		return nil, tetengo.New(tetengo.NotFound, "trie.Lookup: node is not a leaf")
	}
	idx := int(-(base + 1))
	encoded, ok, err := s.valueAt(idx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, tetengo.New(tetengo.NotFound, "trie.Lookup: value slot absent")
	}
	return vs.Decode(encoded)
}

// isLeaf reports whether node's base encodes a value-table index.
func isLeaf(s storage, node int32) (bool, error) {
	base, err := s.baseAt(node)
	if err != nil {
		return false, err
	}
	return base < 0, nil
}
