/*
Package lattice builds a step-indexed directed acyclic graph of candidate
nodes and finds shortest paths through it with a Viterbi-style forward
dynamic program, plus an A* enumerator for the N best paths.

A Lattice starts with an implicit beginning-of-sequence node, grows one
step at a time via PushBack (each step pulling its candidate nodes from a
Vocabulary), and is closed off with SettleEOS before BestPath or an
NBestEnumerator can be used.
*/
package lattice

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tetengo/lattice'
func tracer() tracing.Trace {
	return tracing.Select("tetengo/lattice")
}
