package internal

import (
	"iter"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			if seq == nil {
				continue
			}
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}
