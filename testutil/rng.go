package testutil

import (
	"math/rand"
	"strings"
	"sync"
)

// RNG is a seeded, thread-safe source of random words.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Word returns a word of minLen to maxLen letters drawn from letters.
func (r *RNG) Word(letters string, minLen, maxLen int) string {
	runes := []rune(letters)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := minLen
	if maxLen > minLen {
		n += r.rand.Intn(maxLen - minLen + 1)
	}
	var sb strings.Builder
	for range n {
		sb.WriteRune(runes[r.rand.Intn(len(runes))])
	}
	return sb.String()
}

// Words returns n random words.
func (r *RNG) Words(n int, letters string, minLen, maxLen int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = r.Word(letters, minLen, maxLen)
	}
	return out
}

// Suffixed returns a random word of stemLen letters followed by suffix.
func (r *RNG) Suffixed(letters string, stemLen int, suffix string) string {
	return r.Word(letters, stemLen, stemLen) + suffix
}
