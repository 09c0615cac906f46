package trie

import (
	"bytes"
	"testing"
)

// byteReaderAt wraps a plain byte slice to satisfy mmapReaderAt without a
// real memory mapping, exactly the way the doc comment on mmapReaderAt
// says tests should stand in for golang.org/x/exp/mmap.ReaderAt.
type byteReaderAt struct {
	data []byte
}

func (b *byteReaderAt) ReadAt(p []byte, off int64) (int, error) {
	return bytes.NewReader(b.data).ReadAt(p, off)
}

func (b *byteReaderAt) Len() int { return len(b.data) }

func TestMmapStorageReadsSerializedMemoryStorage(t *testing.T) {
	entries := []Entry{
		{Key: []byte("cat"), Value: "meow"},
		{Key: []byte("car"), Value: "vroom"},
	}
	trie := buildTestTrie(t, entries)

	var buf bytes.Buffer
	if err := trie.Serialize(&buf, 10); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	mmapped, err := openMmap(&byteReaderAt{data: buf.Bytes()})
	if err != nil {
		t.Fatalf("openMmap failed: %v", err)
	}
	view := &Trie{storage: mmapped, root: 0, vs: StringSerializer}

	for _, e := range entries {
		got, err := view.Lookup(e.Key)
		if err != nil {
			t.Fatalf("Lookup(%q) failed: %v", e.Key, err)
		}
		if got != e.Value {
			t.Fatalf("Lookup(%q): got %v, want %v", e.Key, got, e.Value)
		}
	}
}

func TestMmapStorageIsReadOnly(t *testing.T) {
	trie := buildTestTrie(t, []Entry{{Key: []byte("cat"), Value: "meow"}})
	var buf bytes.Buffer
	if err := trie.Serialize(&buf, 10); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	mmapped, err := openMmap(&byteReaderAt{data: buf.Bytes()})
	if err != nil {
		t.Fatalf("openMmap failed: %v", err)
	}

	if err := mmapped.setBaseAt(0, 1); err == nil {
		t.Fatalf("expected setBaseAt to fail on a read-only backing")
	}
	if _, err := mmapped.addValue([]byte("x")); err == nil {
		t.Fatalf("expected addValue to fail on a read-only backing")
	}
}

func TestMmapStorageRejectsTruncatedStream(t *testing.T) {
	trie := buildTestTrie(t, []Entry{{Key: []byte("cat"), Value: "meow"}})
	var buf bytes.Buffer
	if err := trie.Serialize(&buf, 10); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	truncated := buf.Bytes()[:buf.Len()-2]

	if _, err := openMmap(&byteReaderAt{data: truncated}); err == nil {
		t.Fatalf("expected error opening a truncated stream")
	}
}
