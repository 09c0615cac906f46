package lattice

import (
	"github.com/tetengo-go/tetengo"
	"github.com/tetengo-go/tetengo/trie"
)

// TrieVocabulary composes the lattice core with the trie core: candidates
// ending at step are every earlier offset p < step such that
// input[p:step] is itself a key the trie recognizes, turning each match
// into a candidate spanning [p, step). This is the point where the two
// cores compose, as opposed to HashMapVocabulary's fully pre-built table.
//
// Each trie value is a (nodeCost, transitionCost) pair encoded with a
// tetengo.TupleSerializer{Fields: []ValueSerializer{Int32Serializer,
// Int32Serializer}}. transitionCost is intrinsic to the matched key, not
// to the predecessor it is entered from — TrieVocabulary has no concept
// of connection costs between distinct entries, only a per-entry entry
// cost.
type TrieVocabulary struct {
	trie  *trie.Trie
	input []byte
}

// NewTrieVocabulary builds a TrieVocabulary over t for the given input.
// Step numbers passed to CandidatesAt are byte offsets into input, with 0
// standing for BOS.
func NewTrieVocabulary(t *trie.Trie, input []byte) *TrieVocabulary {
	return &TrieVocabulary{trie: t, input: input}
}

// CandidatesAt scans every earlier offset p in [0, step) and looks up
// input[p:step] directly, rather than walking the trie forward from p:
// a forward common-prefix search finds everything starting at p, but
// CandidatesAt needs only the one substring ending exactly at step, so a
// direct Lookup is both simpler and does no extra work for the lengths
// this call doesn't need.
func (v *TrieVocabulary) CandidatesAt(step int) ([]Candidate, error) {
	if step < 1 || step > len(v.input) {
		return nil, tetengo.New(tetengo.OutOfRange, "lattice.TrieVocabulary.CandidatesAt: step out of range")
	}
	var candidates []Candidate
	for p := 0; p < step; p++ {
		value, err := v.trie.Lookup(v.input[p:step])
		if err != nil {
			if e, ok := err.(*tetengo.Error); ok && e.Kind == tetengo.NotFound {
				continue
			}
			return nil, err
		}
		nodeCost, _, err := decodeCostPair(value)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, Candidate{
			Key:           append([]byte(nil), v.input[p:step]...),
			NodeCost:      nodeCost,
			PrecedingStep: p,
		})
	}
	return candidates, nil
}

func (v *TrieVocabulary) TransitionCost(prev *Node, nextKey []byte) (int, error) {
	if len(nextKey) == 0 {
		// nextKey is empty only for the EOS transition (SettleEOS calls
		// edgesTo with a nil key); the dictionary has no entry for
		// end-of-input itself, so entering EOS is free.
		return 0, nil
	}
	value, err := v.trie.Lookup(nextKey)
	if err != nil {
		return 0, err
	}
	_, transitionCost, err := decodeCostPair(value)
	return transitionCost, err
}

func decodeCostPair(value any) (nodeCost, transitionCost int, err error) {
	pair, ok := value.([]any)
	if !ok || len(pair) != 2 {
		return 0, 0, tetengo.New(tetengo.CorruptFormat, "lattice.TrieVocabulary: expected a (nodeCost, transitionCost) pair")
	}
	n, ok1 := pair[0].(int32)
	t, ok2 := pair[1].(int32)
	if !ok1 || !ok2 {
		return 0, 0, tetengo.New(tetengo.CorruptFormat, "lattice.TrieVocabulary: cost pair fields must be int32")
	}
	return int(n), int(t), nil
}

// CostPairSerializer is the tetengo.TupleSerializer TrieVocabulary expects
// its backing trie to have been built with.
var CostPairSerializer = tetengo.TupleSerializer{
	Fields: []tetengo.ValueSerializer{tetengo.Int32Serializer{}, tetengo.Int32Serializer{}},
}
