package app

import "math/rand/v2"

// Shuffler produces a uniform random permutation by calling swap, Fisher-Yates style.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// ShufflerFunc adapts a function to Shuffler.
type ShufflerFunc func(n int, swap func(i, j int))

func (f ShufflerFunc) Shuffle(n int, swap func(i, j int)) { f(n, swap) }

// DefaultShuffler draws from the runtime's concurrency-safe generator.
var DefaultShuffler Shuffler = ShufflerFunc(rand.Shuffle)

// NoShuffle keeps the original order; used for deterministic runs.
var NoShuffle Shuffler = ShufflerFunc(func(int, func(i, j int)) {})

// shuffled returns a shuffled copy of items; the input is never reordered.
func shuffled[T any](s Shuffler, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	s.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// sample draws min(n, len(items)) items without replacement.
func sample[T any](s Shuffler, items []T, n int) []T {
	out := shuffled(s, items)
	if n < len(out) {
		out = out[:n]
	}
	return out
}
