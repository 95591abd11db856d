package randomutils

import (
	"encoding/binary"
	"math/rand"
	"time"
)

// NewRandomProvider creates a random provider from the given seed. A nil seed derives one from the current time, so
// that runs which do not ask for determinism still differ from each other.
func NewRandomProvider(seed *int64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rand.New(rand.NewSource(*seed))
}

// ForkRandomProvider creates a child random provider from the current random provider by using its random data as
// a seed. A component that owns the child can draw from it without perturbing the sequence observed by the parent's
// other consumers. Returns the forked child random provider.
func ForkRandomProvider(randomProvider *rand.Rand) *rand.Rand {
	b := make([]byte, 8)
	_, err := randomProvider.Read(b)
	if err != nil {
		panic(err)
	}

	forkSeed := int64(binary.LittleEndian.Uint64(b))
	return rand.New(rand.NewSource(forkSeed))
}

// Int64InRange returns a uniformly distributed value in the inclusive range [min, max]. It panics if min > max.
func Int64InRange(randomProvider *rand.Rand, min int64, max int64) int64 {
	if min > max {
		panic("invalid random range")
	}
	span := uint64(max - min)
	if span == ^uint64(0) {
		return int64(randomProvider.Uint64())
	}
	return min + int64(randomUint64n(randomProvider, span+1))
}

// randomUint64n returns a uniformly distributed value in [0, n) without modulo bias.
func randomUint64n(randomProvider *rand.Rand, n uint64) uint64 {
	if n&(n-1) == 0 {
		return randomProvider.Uint64() & (n - 1)
	}
	limit := ^uint64(0) - (^uint64(0) % n)
	for {
		v := randomProvider.Uint64()
		if v < limit {
			return v % n
		}
	}
}
