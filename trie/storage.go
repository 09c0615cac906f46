package trie

import (
	"fmt"
	"io"

	"github.com/tetengo-go/tetengo"
)

// eok is the end-of-key sentinel byte value: it never appears inside a real
// key and marks the transition to a leaf.
const eok = 0x00

// storage is the capability set both the dense in-memory and the
// memory-mapped backings implement. The root node lives at index 0; a
// transition target t is valid iff check[t] == n+1, which reserves plain
// 0 as the universal "no link" value.
type storage interface {
	size() int
	baseAt(i int32) (int32, error)
	checkAt(i int32) (int32, error)
	setBaseAt(i int32, v int32) error
	setCheckAt(i int32, v int32) error

	valueCount() int
	valueAt(i int) ([]byte, bool, error)
	addValue(encoded []byte) (int, error)

	serialize(w io.Writer, densityFactor uint32) error
	sizeOfSerialized(densityFactor uint32) int64
}

func outOfRange(what string, idx int32, n int) error {
	return tetengo.New(tetengo.OutOfRange, fmt.Sprintf("%s: index %d out of range [0, %d)", what, idx, n))
}
