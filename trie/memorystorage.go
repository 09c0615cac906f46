package trie

import (
	"encoding/binary"
	"io"

	"github.com/tetengo-go/tetengo"
)

// memoryStorage is the dense in-memory storage backing: base and check as
// growable int32 slices, plus a value table of encoded byte slices. This
// generalizes a dat.DAT-style backing (which would dedicate Base/Check to a
// BMP-rune-dense alphabet via a PagedMapBMP lookup) to the full byte range
// 0x00-0xFF; since that range is already dense, no intermediate alphabet
// remapping table is needed here.
type memoryStorage struct {
	base   []int32
	check  []int32
	values [][]byte // nil entry means "absent slot"

	// freeCursor is the smallest index known to still have check == 0; the
	// builder's findFreeBase search starts here instead of at 1, so the
	// search cost stays close to linear even as the array fills up.
	freeCursor int32
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{
		base:       []int32{0},
		check:      []int32{0},
		freeCursor: 1, // slot 0 is the root, occupied even though its check is 0
	}
}

// advanceFreeCursor moves freeCursor forward past any now-occupied slots.
func (s *memoryStorage) advanceFreeCursor() {
	for int(s.freeCursor) < len(s.check) && s.check[s.freeCursor] != 0 {
		s.freeCursor++
	}
}

func (s *memoryStorage) size() int { return len(s.base) }

func (s *memoryStorage) ensure(idx int32) {
	if int(idx) < len(s.base) {
		return
	}
	grow := int(idx) + 1 - len(s.base)
	s.base = append(s.base, make([]int32, grow)...)
	s.check = append(s.check, make([]int32, grow)...)
}

func (s *memoryStorage) baseAt(i int32) (int32, error) {
	if i < 0 || int(i) >= len(s.base) {
		return 0, outOfRange("memoryStorage.baseAt", i, len(s.base))
	}
	return s.base[i], nil
}

func (s *memoryStorage) checkAt(i int32) (int32, error) {
	if i < 0 || int(i) >= len(s.check) {
		return 0, outOfRange("memoryStorage.checkAt", i, len(s.check))
	}
	return s.check[i], nil
}

func (s *memoryStorage) setBaseAt(i int32, v int32) error {
	if i < 0 {
		return outOfRange("memoryStorage.setBaseAt", i, len(s.base))
	}
	s.ensure(i)
	s.base[i] = v
	return nil
}

func (s *memoryStorage) setCheckAt(i int32, v int32) error {
	if i < 0 {
		return outOfRange("memoryStorage.setCheckAt", i, len(s.check))
	}
	s.ensure(i)
	s.check[i] = v
	return nil
}

func (s *memoryStorage) valueCount() int { return len(s.values) }

func (s *memoryStorage) valueAt(i int) ([]byte, bool, error) {
	if i < 0 || i >= len(s.values) {
		return nil, false, outOfRange("memoryStorage.valueAt", int32(i), len(s.values))
	}
	v := s.values[i]
	return v, v != nil, nil
}

func (s *memoryStorage) addValue(encoded []byte) (int, error) {
	idx := len(s.values)
	s.values = append(s.values, encoded)
	return idx, nil
}

// serialize writes the trie's on-disk format:
//
//	density_factor   uint32 BE
//	array_len        uint32 BE
//	(base, check)*   array_len pairs of int32 BE
//	value_count      uint32 BE
//	fixed_value_size uint32 BE (0 means variable width)
//	values section   fixed-width contiguous, or value_count+1 uint32 BE offsets + packed bytes
func (s *memoryStorage) serialize(w io.Writer, densityFactor uint32) error {
	header := make([]byte, 8)
	binary.BigEndian.PutUint32(header[0:4], densityFactor)
	binary.BigEndian.PutUint32(header[4:8], uint32(len(s.base)))
	if _, err := w.Write(header); err != nil {
		return tetengo.Wrap(tetengo.CorruptFormat, "memoryStorage.serialize: header", err)
	}
	pair := make([]byte, 8)
	for i := range s.base {
		binary.BigEndian.PutUint32(pair[0:4], uint32(s.base[i]))
		binary.BigEndian.PutUint32(pair[4:8], uint32(s.check[i]))
		if _, err := w.Write(pair); err != nil {
			return tetengo.Wrap(tetengo.CorruptFormat, "memoryStorage.serialize: base/check", err)
		}
	}

	fixedWidth, fixed := fixedValueWidth(s.values)
	trailer := make([]byte, 8)
	binary.BigEndian.PutUint32(trailer[0:4], uint32(len(s.values)))
	if fixed {
		binary.BigEndian.PutUint32(trailer[4:8], uint32(fixedWidth))
	}
	if _, err := w.Write(trailer); err != nil {
		return tetengo.Wrap(tetengo.CorruptFormat, "memoryStorage.serialize: value header", err)
	}

	if fixed {
		for _, v := range s.values {
			if _, err := w.Write(v); err != nil {
				return tetengo.Wrap(tetengo.CorruptFormat, "memoryStorage.serialize: fixed values", err)
			}
		}
		return nil
	}

	offsets := make([]byte, 4*(len(s.values)+1))
	off := uint32(0)
	for i, v := range s.values {
		binary.BigEndian.PutUint32(offsets[4*i:4*i+4], off)
		off += uint32(len(v))
	}
	binary.BigEndian.PutUint32(offsets[4*len(s.values):], off)
	if _, err := w.Write(offsets); err != nil {
		return tetengo.Wrap(tetengo.CorruptFormat, "memoryStorage.serialize: value offsets", err)
	}
	for _, v := range s.values {
		if _, err := w.Write(v); err != nil {
			return tetengo.Wrap(tetengo.CorruptFormat, "memoryStorage.serialize: packed values", err)
		}
	}
	return nil
}

func (s *memoryStorage) sizeOfSerialized(densityFactor uint32) int64 {
	size := int64(8) + int64(len(s.base))*8 + 8
	fixedWidth, fixed := fixedValueWidth(s.values)
	if fixed {
		size += int64(len(s.values)) * int64(fixedWidth)
		return size
	}
	size += int64(4 * (len(s.values) + 1))
	for _, v := range s.values {
		size += int64(len(v))
	}
	return size
}

// fixedValueWidth reports the common width of every value if they are all
// equal (and non-empty), in which case the serialized values section is
// packed contiguously with no offset table.
func fixedValueWidth(values [][]byte) (int, bool) {
	if len(values) == 0 {
		return 0, false
	}
	width := len(values[0])
	if width == 0 {
		// fixed_value_size == 0 is the serialized format's own marker for
		// "variable width"; an all-empty value set must go through the
		// offsets-table path rather than being mistaken for it.
		return 0, false
	}
	for _, v := range values[1:] {
		if len(v) != width {
			return 0, false
		}
	}
	return width, true
}

// deserializeMemory reads the format written by serialize into a fresh
// memoryStorage.
func deserializeMemory(r io.Reader) (*memoryStorage, error) {
	header := make([]byte, 8)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, tetengo.Wrap(tetengo.CorruptFormat, "deserializeMemory: header", err)
	}
	arrayLen := binary.BigEndian.Uint32(header[4:8])

	s := &memoryStorage{
		base:  make([]int32, arrayLen),
		check: make([]int32, arrayLen),
	}
	pair := make([]byte, 8)
	for i := range s.base {
		if _, err := io.ReadFull(r, pair); err != nil {
			return nil, tetengo.Wrap(tetengo.CorruptFormat, "deserializeMemory: base/check", err)
		}
		s.base[i] = int32(binary.BigEndian.Uint32(pair[0:4]))
		s.check[i] = int32(binary.BigEndian.Uint32(pair[4:8]))
	}

	trailer := make([]byte, 8)
	if _, err := io.ReadFull(r, trailer); err != nil {
		return nil, tetengo.Wrap(tetengo.CorruptFormat, "deserializeMemory: value header", err)
	}
	valueCount := binary.BigEndian.Uint32(trailer[0:4])
	fixedWidth := binary.BigEndian.Uint32(trailer[4:8])

	s.values = make([][]byte, valueCount)
	if fixedWidth != 0 {
		for i := range s.values {
			buf := make([]byte, fixedWidth)
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, tetengo.Wrap(tetengo.CorruptFormat, "deserializeMemory: fixed values", err)
			}
			s.values[i] = buf
		}
		return s, nil
	}

	offsets := make([]uint32, valueCount+1)
	offBuf := make([]byte, 4*(valueCount+1))
	if _, err := io.ReadFull(r, offBuf); err != nil {
		return nil, tetengo.Wrap(tetengo.CorruptFormat, "deserializeMemory: value offsets", err)
	}
	for i := range offsets {
		offsets[i] = binary.BigEndian.Uint32(offBuf[4*i : 4*i+4])
	}
	total := offsets[len(offsets)-1]
	packed := make([]byte, total)
	if total > 0 {
		if _, err := io.ReadFull(r, packed); err != nil {
			return nil, tetengo.Wrap(tetengo.CorruptFormat, "deserializeMemory: packed values", err)
		}
	}
	for i := range s.values {
		s.values[i] = packed[offsets[i]:offsets[i+1]]
	}
	return s, nil
}
