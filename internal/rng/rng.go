package rng

import (
	"math/rand"
	"time"
)

// Source provides the randomness used by pairing and the placeholder opponent
type Source struct {
	random *rand.Rand
}

// Config for the randomness source
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new randomness source
func New(cfg *Config) *Source {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)

	return &Source{
		random: rand.New(source),
	}
}

// Intn returns a uniform value in [0, n)
func (s *Source) Intn(n int) int {
	return s.random.Intn(n)
}

// Shuffle randomizes the order of n elements using the provided swap
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.random.Shuffle(n, swap)
}
