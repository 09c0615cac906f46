package trie

import "github.com/tetengo-go/tetengo"

// ValueSerializer is the codec trie values are stored through. It is an
// alias of tetengo.ValueSerializer so callers can share one serializer
// instance between the trie and lattice cores (see TrieVocabulary).
type ValueSerializer = tetengo.ValueSerializer

// Int32Serializer stores values as a fixed 4-byte big-endian int32.
var Int32Serializer = tetengo.Int32Serializer{}

// StringSerializer stores values as a length-prefixed UTF-8 string.
var StringSerializer = tetengo.StringSerializer{}
