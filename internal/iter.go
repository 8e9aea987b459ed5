// Package internal holds helpers shared by the LS-8 packages.
package internal

import (
	"iter"
)

// IterSeq2Concat concatenates multiple key/value iterators into a single
// iterator sequence, in order.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}
