/*
Package trie is a frozen-after-build double-array trie keyed by arbitrary
byte sequences.

A trie is built once from a set of (key, value) entries with unique keys,
in any order, via Build, then used read-only: Lookup, Step (for caller-driven
traversal), CommonPrefixSearch and Subtrie for ordered enumeration. It may
be serialized to a flat binary stream and reopened either in memory or as
a read-only, memory-mapped view.

The transition arithmetic (base[n] + byte + 1, guarded by check[t] == n + 1)
and the on-disk format are alphabet-agnostic: nothing here is specific to
any one alphabet or value type.
*/
package trie

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tetengo/trie'
func tracer() tracing.Trace {
	return tracing.Select("tetengo/trie")
}
