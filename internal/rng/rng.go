package rng

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"time"
)

// New returns a deterministic generator for seed. A zero seed draws one from the clock.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	// Non-cryptographic PRNG is intentional for reproducible days.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// IntRange draws uniformly from [min,max] inclusive. If max < min it returns min.
func IntRange(r *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + r.IntN(max-min+1)
}
