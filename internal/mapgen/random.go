package mapgen

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// seededRNG returns a PCG stream derived from seed and a per-stage salt, so
// each stage draws from its own reproducible sequence.
func seededRNG(seed uint64, salt string) *rand.Rand {
	// Non-cryptographic PRNG is intentional for deterministic generation.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, salt+":a"), seedWord(seed, salt+":b")))
}

func seedWord(seed uint64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// noiseSeed derives the int64 seed handed to the noise libraries.
func noiseSeed(seed uint64, salt string) int64 {
	return int64(seedWord(seed, salt) >> 1)
}
