/*
Package tetengo provides the shared vocabulary used by the trie and lattice
cores: a common error kind, and a handful of built-in byte-sequence value
serializers.

The two cores are the hard-engineering parts of a Japanese-NLP and
timetable-routing toolkit:

  - package trie is a double-array associative container keyed by byte
    sequences, with O(1) per-byte transitions and ordered common-prefix
    enumeration.
  - package lattice is a Viterbi shortest-path search over a step-indexed
    DAG, paired with an A* enumerator for the N best paths.

This package is the ~5% glue shared by both: error kinds and codecs, nothing
domain-specific.
*/
package tetengo

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tetengo'
func tracer() tracing.Trace {
	return tracing.Select("tetengo")
}
