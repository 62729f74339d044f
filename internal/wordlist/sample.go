package wordlist

import (
	"math/rand/v2"

	"github.com/heartmarshall/wordsprint/internal/domain"
)

// ShuffleFunc permutes n elements through swap, with the contract of rand.Shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

// RandomShuffle draws a uniformly random permutation from a non-deterministic source.
func RandomShuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// Sample returns the first n words of a random permutation of words.
// The input slice is never modified. n is clamped to [0, len(words)];
// callers validate the requested size before sampling.
func Sample(words []domain.Word, n int, shuffle ShuffleFunc) []domain.Word {
	if shuffle == nil {
		shuffle = RandomShuffle
	}
	n = max(0, min(n, len(words)))

	perm := make([]domain.Word, len(words))
	copy(perm, words)
	shuffle(len(perm), func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})

	return perm[:n:n]
}
