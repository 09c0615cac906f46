package trie

import (
	"testing"

	oracle "github.com/derekparker/trie"
)

// TestTrieMatchesOracle cross-checks the double array's Lookup/NotFound
// behavior for a fixed key set against derekparker/trie, an
// independent hash-map-backed implementation. Agreement on every key,
// present or absent, is strong evidence the double-array transition
// arithmetic is correct rather than merely self-consistent.
func TestTrieMatchesOracle(t *testing.T) {
	keys := []string{
		"a", "ab", "abc", "abd", "b", "ba", "bb",
		"car", "card", "care", "cart", "cat", "catalog",
		"z", "zoo", "zookeeper",
	}

	oracleTrie := oracle.New()
	entries := make([]Entry, 0, len(keys))
	for i, k := range keys {
		oracleTrie.Add(k, i)
		entries = append(entries, Entry{Key: []byte(k), Value: int32(i)})
	}

	dat, err := Build(entries, Int32Serializer, nil, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	probes := append(append([]string{}, keys...), "", "c", "ca", "zz", "bab", "caring")
	for _, probe := range probes {
		_, wantOK := oracleTrie.Find(probe)

		got, err := dat.Find([]byte(probe))
		if err != nil {
			t.Fatalf("Find(%q) failed: %v", probe, err)
		}
		if got != wantOK {
			t.Fatalf("Find(%q): double array says %v, oracle says %v", probe, got, wantOK)
		}

		if !wantOK {
			continue
		}
		value, err := dat.Lookup([]byte(probe))
		if err != nil {
			t.Fatalf("Lookup(%q) failed: %v", probe, err)
		}
		wantIdx := int32(indexOf(keys, probe))
		if value != wantIdx {
			t.Fatalf("Lookup(%q): got %v, want %v", probe, value, wantIdx)
		}
	}
}

func indexOf(keys []string, key string) int {
	for i, k := range keys {
		if k == key {
			return i
		}
	}
	return -1
}
