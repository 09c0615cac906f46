package trie

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/tetengo-go/tetengo"
)

func buildTestTrie(t *testing.T, entries []Entry) *Trie {
	t.Helper()
	trie, err := Build(entries, StringSerializer, nil, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return trie
}

func TestTrieLookup(t *testing.T) {
	entries := []Entry{
		{Key: []byte("cat"), Value: "meow"},
		{Key: []byte("car"), Value: "vroom"},
		{Key: []byte("card"), Value: "plastic"},
	}
	trie := buildTestTrie(t, entries)

	for _, e := range entries {
		got, err := trie.Lookup(e.Key)
		if err != nil {
			t.Fatalf("Lookup(%q) failed: %v", e.Key, err)
		}
		if !reflect.DeepEqual(got, e.Value) {
			t.Fatalf("Lookup(%q): got %v, want %v", e.Key, got, e.Value)
		}
	}
}

func TestTrieLookupNotFound(t *testing.T) {
	trie := buildTestTrie(t, []Entry{{Key: []byte("cat"), Value: "meow"}})

	_, err := trie.Lookup([]byte("dog"))
	var e *tetengo.Error
	if !errors.As(err, &e) || e.Kind != tetengo.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestTrieLookupPrefixOfKeyIsNotFound(t *testing.T) {
	trie := buildTestTrie(t, []Entry{{Key: []byte("card"), Value: "plastic"}})

	_, err := trie.Lookup([]byte("car"))
	var e *tetengo.Error
	if !errors.As(err, &e) || e.Kind != tetengo.NotFound {
		t.Fatalf("expected NotFound for a key that is only a prefix, got %v", err)
	}
}

func TestTrieEmptyKeyLookup(t *testing.T) {
	trie := buildTestTrie(t, []Entry{{Key: []byte(""), Value: "root"}})

	got, err := trie.Lookup([]byte(""))
	if err != nil {
		t.Fatalf("Lookup(\"\") failed: %v", err)
	}
	if got != "root" {
		t.Fatalf("got %v, want root", got)
	}
}

func TestEmptyTrie(t *testing.T) {
	trie := buildTestTrie(t, nil)
	if trie.Size() != 1 {
		t.Fatalf("empty trie should have array length 1 (root only), got %d", trie.Size())
	}
	_, err := trie.Lookup([]byte("anything"))
	var e *tetengo.Error
	if !errors.As(err, &e) || e.Kind != tetengo.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestBuildDuplicateKey(t *testing.T) {
	_, err := Build([]Entry{
		{Key: []byte("cat"), Value: "a"},
		{Key: []byte("cat"), Value: "b"},
	}, StringSerializer, nil, nil)
	var e *tetengo.Error
	if !errors.As(err, &e) || e.Kind != tetengo.DuplicateKey {
		t.Fatalf("expected DuplicateKey, got %v", err)
	}
}

func TestBuildRejectsReservedByte(t *testing.T) {
	_, err := Build([]Entry{{Key: []byte{'a', 0x00, 'b'}, Value: "x"}}, StringSerializer, nil, nil)
	var e *tetengo.Error
	if !errors.As(err, &e) || e.Kind != tetengo.InvalidOperation {
		t.Fatalf("expected InvalidOperation, got %v", err)
	}
}

func TestBuildProgressCallback(t *testing.T) {
	entries := []Entry{
		{Key: []byte("a"), Value: "1"},
		{Key: []byte("b"), Value: "2"},
		{Key: []byte("c"), Value: "3"},
	}
	var calls [][2]int
	_, err := Build(entries, StringSerializer, func(done, total int) {
		calls = append(calls, [2]int{done, total})
	}, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(calls) != len(entries) {
		t.Fatalf("expected %d progress calls, got %d", len(entries), len(calls))
	}
	for i, c := range calls {
		if c[0] != i+1 || c[1] != len(entries) {
			t.Fatalf("call %d: got %v, want done=%d total=%d", i, c, i+1, len(entries))
		}
	}
}

func TestTrieSerializeDeserializeRoundTrip(t *testing.T) {
	entries := []Entry{
		{Key: []byte("cat"), Value: "meow"},
		{Key: []byte("car"), Value: "vroom"},
		{Key: []byte("card"), Value: "plastic"},
	}
	trie := buildTestTrie(t, entries)

	var buf bytes.Buffer
	if err := trie.Serialize(&buf, 10); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	restored, err := Deserialize(&buf, StringSerializer)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	for _, e := range entries {
		got, err := restored.Lookup(e.Key)
		if err != nil {
			t.Fatalf("Lookup(%q) after round trip failed: %v", e.Key, err)
		}
		if got != e.Value {
			t.Fatalf("Lookup(%q) after round trip: got %v, want %v", e.Key, got, e.Value)
		}
	}
}

func TestTrieDeserializeTruncatedStream(t *testing.T) {
	entries := []Entry{{Key: []byte("cat"), Value: "meow"}}
	trie := buildTestTrie(t, entries)

	var buf bytes.Buffer
	if err := trie.Serialize(&buf, 10); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	truncated := buf.Bytes()[:buf.Len()-2]

	_, err := Deserialize(bytes.NewReader(truncated), StringSerializer)
	var e *tetengo.Error
	if !errors.As(err, &e) || e.Kind != tetengo.CorruptFormat {
		t.Fatalf("expected CorruptFormat, got %v", err)
	}
}

func TestSubtrie(t *testing.T) {
	entries := []Entry{
		{Key: []byte("car"), Value: "vroom"},
		{Key: []byte("card"), Value: "plastic"},
		{Key: []byte("cat"), Value: "meow"},
	}
	trie := buildTestTrie(t, entries)

	sub, err := trie.Subtrie([]byte("car"))
	if err != nil {
		t.Fatalf("Subtrie failed: %v", err)
	}
	got, err := sub.Lookup([]byte(""))
	if err != nil {
		t.Fatalf("Lookup(\"\") on subtrie failed: %v", err)
	}
	if got != "vroom" {
		t.Fatalf("got %v, want vroom", got)
	}
	got, err = sub.Lookup([]byte("d"))
	if err != nil {
		t.Fatalf("Lookup(\"d\") on subtrie failed: %v", err)
	}
	if got != "plastic" {
		t.Fatalf("got %v, want plastic", got)
	}
}

func TestSubtrieNotFound(t *testing.T) {
	trie := buildTestTrie(t, []Entry{{Key: []byte("cat"), Value: "meow"}})
	_, err := trie.Subtrie([]byte("dog"))
	var e *tetengo.Error
	if !errors.As(err, &e) || e.Kind != tetengo.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}
