package tetengo

import (
	"encoding/binary"
	"fmt"
)

// ValueSerializer is the value codec contract shared by the trie's value
// table and, where a vocabulary needs a stable byte encoding for its node
// keys, the lattice. Encode may be variable-length; Decode must be its
// exact inverse.
type ValueSerializer interface {
	Encode(value any) ([]byte, error)
	Decode(data []byte) (any, error)
}

// Int32Serializer is a fixed-width (4 byte, big-endian) serializer for int32
// values.
type Int32Serializer struct{}

func (Int32Serializer) Encode(value any) ([]byte, error) {
	v, ok := value.(int32)
	if !ok {
		return nil, fmt.Errorf("tetengo: Int32Serializer.Encode: not an int32: %T", value)
	}
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(v))
	return buf, nil
}

func (Int32Serializer) Decode(data []byte) (any, error) {
	if len(data) != 4 {
		return nil, Wrap(CorruptFormat, "Int32Serializer.Decode: want 4 bytes", fmt.Errorf("got %d", len(data)))
	}
	return int32(binary.BigEndian.Uint32(data)), nil
}

// FixedWidth reports the fixed encoded width of int32 values.
func (Int32Serializer) FixedWidth() (int, bool) { return 4, true }

// StringSerializer stores strings length-prefixed with a big-endian uint32,
// so every encoded value is self-delimiting independent of any other
// framing the storage layer might apply.
type StringSerializer struct{}

func (StringSerializer) Encode(value any) ([]byte, error) {
	v, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("tetengo: StringSerializer.Encode: not a string: %T", value)
	}
	buf := make([]byte, 4+len(v))
	binary.BigEndian.PutUint32(buf, uint32(len(v)))
	copy(buf[4:], v)
	return buf, nil
}

func (StringSerializer) Decode(data []byte) (any, error) {
	if len(data) < 4 {
		return nil, Wrap(CorruptFormat, "StringSerializer.Decode: truncated length prefix", nil)
	}
	n := binary.BigEndian.Uint32(data)
	if uint32(len(data)-4) != n {
		return nil, Wrap(CorruptFormat, "StringSerializer.Decode: length mismatch", fmt.Errorf("want %d, have %d", n, len(data)-4))
	}
	return string(data[4:]), nil
}

func (StringSerializer) FixedWidth() (int, bool) { return 0, false }

// TupleSerializer composes sub-serializers positionally: Encode concatenates
// each field's own length-prefixed encoding, Decode walks the same prefixes
// back out. A tuple's total width is fixed only if every field's is.
type TupleSerializer struct {
	Fields []ValueSerializer
}

func (t TupleSerializer) Encode(value any) ([]byte, error) {
	values, ok := value.([]any)
	if !ok || len(values) != len(t.Fields) {
		return nil, fmt.Errorf("tetengo: TupleSerializer.Encode: want %d fields, got %T", len(t.Fields), value)
	}
	var out []byte
	for i, field := range t.Fields {
		enc, err := field.Encode(values[i])
		if err != nil {
			return nil, err
		}
		lenBuf := make([]byte, 4)
		binary.BigEndian.PutUint32(lenBuf, uint32(len(enc)))
		out = append(out, lenBuf...)
		out = append(out, enc...)
	}
	return out, nil
}

func (t TupleSerializer) Decode(data []byte) (any, error) {
	values := make([]any, 0, len(t.Fields))
	off := 0
	for _, field := range t.Fields {
		if off+4 > len(data) {
			return nil, Wrap(CorruptFormat, "TupleSerializer.Decode: truncated field length", nil)
		}
		n := int(binary.BigEndian.Uint32(data[off : off+4]))
		off += 4
		if off+n > len(data) {
			return nil, Wrap(CorruptFormat, "TupleSerializer.Decode: truncated field payload", nil)
		}
		v, err := field.Decode(data[off : off+n])
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		off += n
	}
	if off != len(data) {
		return nil, Wrap(CorruptFormat, "TupleSerializer.Decode: trailing bytes", nil)
	}
	return values, nil
}

func (t TupleSerializer) FixedWidth() (int, bool) {
	total := 0
	for _, field := range t.Fields {
		fw, ok := field.(interface{ FixedWidth() (int, bool) })
		if !ok {
			return 0, false
		}
		w, fixed := fw.FixedWidth()
		if !fixed {
			return 0, false
		}
		total += 4 + w // each field carries a 4-byte length prefix
	}
	return total, true
}
