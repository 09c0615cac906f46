package lattice

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tetengo-go/tetengo/trie"
)

// TestTrieVocabularyComposesCores builds the same dictionary both as a
// TrieVocabulary (backed by an actual double-array trie) and as a
// HashMapVocabulary, and checks they drive a lattice to the identical
// best path — proving the trie and lattice cores compose without
// semantic drift.
func TestTrieVocabularyComposesCores(t *testing.T) {
	input := []byte("abc")

	rawEntries := []struct {
		key            string
		nodeCost       int32
		transitionCost int32
	}{
		{"a", 3, 0},
		{"ab", 2, 0},
		{"bc", 1, 0},
		{"c", 4, 0},
	}

	entries := make([]trie.Entry, 0, len(rawEntries))
	for _, e := range rawEntries {
		entries = append(entries, trie.Entry{
			Key:   []byte(e.key),
			Value: []any{e.nodeCost, e.transitionCost},
		})
	}
	dict, err := trie.Build(entries, CostPairSerializer, nil, nil)
	require.NoError(t, err)

	trieVocab := NewTrieVocabulary(dict, input)
	trieLattice := NewLattice(trieVocab, nil)
	require.NoError(t, trieLattice.PushBack(1))
	require.NoError(t, trieLattice.PushBack(2))
	require.NoError(t, trieLattice.PushBack(3))
	require.NoError(t, trieLattice.SettleEOS())
	trieBest, err := trieLattice.BestPath()
	require.NoError(t, err)

	// The same dictionary, expressed as the exact span topology
	// TrieVocabulary derives from byte offsets into input: "a" spans
	// [0,1), "ab" spans [0,2), "bc" spans [1,3), "c" spans [2,3) ("b" and
	// "abc" are absent from the dictionary and so never become
	// candidates). Built here as a HashMapVocabulary instead, so a match
	// between the two actually demonstrates the cores compose without
	// semantic drift, rather than comparing against an unrelated
	// topology.
	candidates := map[int][]Candidate{
		1: {{Key: []byte("a"), NodeCost: 3, PrecedingStep: 0}},
		2: {{Key: []byte("ab"), NodeCost: 2, PrecedingStep: 0}},
		3: {
			{Key: []byte("bc"), NodeCost: 1, PrecedingStep: 1},
			{Key: []byte("c"), NodeCost: 4, PrecedingStep: 2},
		},
	}
	hashLattice := NewLattice(NewHashMapVocabulary(candidates, nil, 0), nil)
	require.NoError(t, hashLattice.PushBack(1))
	require.NoError(t, hashLattice.PushBack(2))
	require.NoError(t, hashLattice.PushBack(3))
	require.NoError(t, hashLattice.SettleEOS())
	hashBest, err := hashLattice.BestPath()
	require.NoError(t, err)

	require.Equal(t, hashBest.TotalCost, trieBest.TotalCost)
	require.Len(t, trieBest.Nodes, len(hashBest.Nodes))
	for i := range trieBest.Nodes {
		require.Equal(t, string(hashBest.Nodes[i].Key), string(trieBest.Nodes[i].Key))
	}
}
