package trie

import (
	"encoding/binary"
	"io"

	"github.com/tetengo-go/tetengo"
	"golang.org/x/exp/mmap"
)

// mmapReaderAt is the minimal read-only random-access surface mmapStorage
// needs; golang.org/x/exp/mmap.ReaderAt satisfies it, and tests supply a
// plain bytes.Reader-backed implementation instead of mapping a real file.
type mmapReaderAt interface {
	io.ReaderAt
	Len() int
}

// mmapStorage is the read-only, memory-mapped storage backing. base[i] and
// check[i] are read by direct offset into the mapped region; values are
// addressed through the serialized prefix-sum offset table, read in place
// on each access, in the spirit of forestrie-go-merklelog/urkle.IndexView's explicit
// byte-range slicing of a preallocated region.
type mmapStorage struct {
	r mmapReaderAt

	arrayOff int64 // byte offset of the first base/check pair
	arrayLen int64

	valueOff     int64 // byte offset of the value section (after base/check)
	numValues    int64
	fixedWidth   int64 // 0 means variable width
	offsetsOff   int64 // byte offset of the offsets table (variable width only)
	valueDataOff int64 // byte offset of the packed value bytes
}

// openMmap parses the header of the format documented in
// memorystorage.go's serialize, then keeps only byte offsets — no data is
// copied into the process until a caller asks for a specific base/check
// slot or value.
func openMmap(r mmapReaderAt) (*mmapStorage, error) {
	header := make([]byte, 8)
	if _, err := r.ReadAt(header, 0); err != nil {
		return nil, tetengo.Wrap(tetengo.CorruptFormat, "openMmap: header", err)
	}
	arrayLen := int64(binary.BigEndian.Uint32(header[4:8]))

	arrayOff := int64(8)
	trailerOff := arrayOff + arrayLen*8
	trailer := make([]byte, 8)
	if _, err := r.ReadAt(trailer, trailerOff); err != nil {
		return nil, tetengo.Wrap(tetengo.CorruptFormat, "openMmap: value header", err)
	}
	numValues := int64(binary.BigEndian.Uint32(trailer[0:4]))
	fixedWidth := int64(binary.BigEndian.Uint32(trailer[4:8]))

	s := &mmapStorage{
		r:          r,
		arrayOff:   arrayOff,
		arrayLen:   arrayLen,
		valueOff:   trailerOff + 8,
		numValues:  numValues,
		fixedWidth: fixedWidth,
	}
	if fixedWidth != 0 {
		s.valueDataOff = s.valueOff
	} else {
		s.offsetsOff = s.valueOff
		s.valueDataOff = s.offsetsOff + 4*(numValues+1)
	}
	if int64(r.Len()) < s.sizeOfSerialized(0) {
		return nil, tetengo.New(tetengo.CorruptFormat, "openMmap: truncated stream")
	}
	return s, nil
}

func (s *mmapStorage) size() int { return int(s.arrayLen) }

func (s *mmapStorage) readU32At(off int64) (uint32, error) {
	buf := make([]byte, 4)
	if _, err := s.r.ReadAt(buf, off); err != nil {
		return 0, tetengo.Wrap(tetengo.CorruptFormat, "mmapStorage: read", err)
	}
	return binary.BigEndian.Uint32(buf), nil
}

func (s *mmapStorage) baseAt(i int32) (int32, error) {
	if i < 0 || int64(i) >= s.arrayLen {
		return 0, outOfRange("mmapStorage.baseAt", i, int(s.arrayLen))
	}
	v, err := s.readU32At(s.arrayOff + int64(i)*8)
	return int32(v), err
}

func (s *mmapStorage) checkAt(i int32) (int32, error) {
	if i < 0 || int64(i) >= s.arrayLen {
		return 0, outOfRange("mmapStorage.checkAt", i, int(s.arrayLen))
	}
	v, err := s.readU32At(s.arrayOff + int64(i)*8 + 4)
	return int32(v), err
}

func (s *mmapStorage) setBaseAt(i int32, v int32) error {
	return tetengo.New(tetengo.InvalidOperation, "mmapStorage is read-only")
}

func (s *mmapStorage) setCheckAt(i int32, v int32) error {
	return tetengo.New(tetengo.InvalidOperation, "mmapStorage is read-only")
}

func (s *mmapStorage) valueCount() int { return int(s.numValues) }

func (s *mmapStorage) addValue(encoded []byte) (int, error) {
	return 0, tetengo.New(tetengo.InvalidOperation, "mmapStorage is read-only")
}

func (s *mmapStorage) valueAt(i int) ([]byte, bool, error) {
	if i < 0 || int64(i) >= s.numValues {
		return nil, false, outOfRange("mmapStorage.valueAt", int32(i), int(s.numValues))
	}
	if s.fixedWidth != 0 {
		buf := make([]byte, s.fixedWidth)
		if _, err := s.r.ReadAt(buf, s.valueDataOff+int64(i)*s.fixedWidth); err != nil {
			return nil, false, tetengo.Wrap(tetengo.CorruptFormat, "mmapStorage.valueAt: fixed", err)
		}
		return buf, true, nil
	}
	lo, err := s.readU32At(s.offsetsOff + int64(i)*4)
	if err != nil {
		return nil, false, err
	}
	hi, err := s.readU32At(s.offsetsOff + int64(i+1)*4)
	if err != nil {
		return nil, false, err
	}
	if hi < lo {
		return nil, false, tetengo.New(tetengo.CorruptFormat, "mmapStorage.valueAt: negative-length slice")
	}
	buf := make([]byte, hi-lo)
	if _, err := s.r.ReadAt(buf, s.valueDataOff+int64(lo)); err != nil {
		return nil, false, tetengo.Wrap(tetengo.CorruptFormat, "mmapStorage.valueAt: packed", err)
	}
	return buf, true, nil
}

func (s *mmapStorage) serialize(w io.Writer, densityFactor uint32) error {
	return tetengo.New(tetengo.InvalidOperation, "mmapStorage is read-only; reserialize via memoryStorage")
}

func (s *mmapStorage) sizeOfSerialized(densityFactor uint32) int64 {
	size := int64(8) + s.arrayLen*8 + 8
	if s.fixedWidth != 0 {
		return size + s.numValues*s.fixedWidth
	}
	size += 4 * (s.numValues + 1)
	if s.numValues > 0 {
		// the last offset entry records the total packed byte length
		if last, err := s.readU32At(s.offsetsOff + s.numValues*4); err == nil {
			size += int64(last)
		}
	}
	return size
}

// Close releases the underlying mapping, if the wrapped reader supports it.
func (s *mmapStorage) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Open memory-maps path and returns a read-only Trie view over it. The
// mapping's lifetime is bound to the returned Trie: callers must call
// Close when done, which unmaps the file on every exit path.
func Open(path string, vs ValueSerializer) (*Trie, error) {
	ra, err := mmap.Open(path)
	if err != nil {
		return nil, tetengo.Wrap(tetengo.CorruptFormat, "trie.Open", err)
	}
	storage, err := openMmap(ra)
	if err != nil {
		ra.Close()
		return nil, err
	}
	return &Trie{storage: storage, root: 0, vs: vs, closer: storage}, nil
}
