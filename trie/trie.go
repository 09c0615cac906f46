package trie

import (
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/tetengo-go/tetengo"
)

// Trie is a build-once, read-many double-array trie mapping byte-slice keys
// to arbitrary values. The zero value is not usable; construct one with
// Build or Open/Deserialize.
type Trie struct {
	storage storage
	root    int32
	vs      ValueSerializer

	// closer releases resources (an mmap) held by storage, if any. Tries
	// built with Build or Deserialize leave this nil.
	closer io.Closer
}

// Lookup returns the value associated with key, or a tetengo.Error with
// Kind NotFound if no such key was built into the trie.
func (t *Trie) Lookup(key []byte) (any, error) {
	return lookup(t.storage, t.root, key, t.vs)
}

// Find reports whether key is present, without decoding its value.
func (t *Trie) Find(key []byte) (bool, error) {
	_, err := t.Lookup(key)
	if err == nil {
		return true, nil
	}
	if e, ok := err.(*tetengo.Error); ok && e.Kind == tetengo.NotFound {
		return false, nil
	}
	return false, err
}

// Step performs a single transition from node consuming byte b, returning
// the resulting node and whether the transition exists. Callers walk a key
// one byte at a time starting from Root, which lets a caller share partial
// traversal state across repeated prefix lookups.
func (t *Trie) Step(node int32, b byte) (int32, bool, error) {
	return step(t.storage, node, b)
}

// Root is the trie's starting node for Step.
func (t *Trie) Root() int32 { return t.root }

// ValueAt decodes the value stored at a leaf node reached via Step, or
// reports ok=false if node is not a leaf.
func (t *Trie) ValueAt(node int32) (value any, ok bool, err error) {
	leaf, err := isLeaf(t.storage, node)
	if err != nil {
		return nil, false, err
	}
	if !leaf {
		return nil, false, nil
	}
	v, err := valueAtLeaf(t.storage, node, t.vs)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// Size returns the number of array slots (base/check pairs), occupied or
// not.
func (t *Trie) Size() int { return t.storage.size() }

// Serialize writes the trie in its binary on-disk format. Only
// in-memory tries (built via Build or Deserialize) can be serialized;
// mmap-backed tries return tetengo.Error{Kind: InvalidOperation} since
// they are already a view of that exact format on disk.
func (t *Trie) Serialize(w io.Writer, densityFactor uint32) error {
	return t.storage.serialize(w, densityFactor)
}

// Deserialize reads a trie previously written by Serialize into a fresh
// in-memory Trie.
func Deserialize(r io.Reader, vs ValueSerializer) (*Trie, error) {
	storage, err := deserializeMemory(r)
	if err != nil {
		return nil, err
	}
	return &Trie{storage: storage, root: 0, vs: vs}, nil
}

// Close releases resources held by an mmap-backed trie. It is a no-op for
// in-memory tries.
func (t *Trie) Close() error {
	if t.closer == nil {
		return nil
	}
	return t.closer.Close()
}

// Dump renders the trie's base/check slots for diagnostics. It is meant
// for debugging and test failure output, not for production logging.
func (t *Trie) Dump() string {
	size := t.storage.size()
	bases := make([]int32, size)
	checks := make([]int32, size)
	for i := 0; i < size; i++ {
		bases[i], _ = t.storage.baseAt(int32(i))
		checks[i], _ = t.storage.checkAt(int32(i))
	}
	return spew.Sdump(struct {
		Root   int32
		Base   []int32
		Check  []int32
		Values int
	}{t.root, bases, checks, t.storage.valueCount()})
}
