// Package seedseq derives child PRNG seeds from a master PRNG.
//
// The pipeline draws every seed for a phase up front, in index order,
// before dispatching any parallel work. Worker scheduling can then not
// influence which task sees which seed, which is what makes a run
// reproducible regardless of parallelism.
package seedseq

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand/v2"
)

// pcgStream is the fixed second PCG initialization word. Child PRNGs
// differ only by their derived seed.
const pcgStream = 0xda3e39cb94b95bdb

// New returns a PCG-backed PRNG seeded with the given seed. Both the
// master PRNG and every per-task PRNG are built through here, so a run
// is fully determined by the master seed.
func New(seed uint64) *mathrand.Rand {
	return mathrand.New(mathrand.NewPCG(seed, pcgStream))
}

// Derive consumes exactly count draws from master and returns them in
// draw order. Calling it twice from the same master state with the same
// count yields the same sequence; the master advances irreversibly.
func Derive(master *mathrand.Rand, count int) []uint64 {
	seeds := make([]uint64, count)
	for i := range seeds {
		seeds[i] = master.Uint64()
	}
	return seeds
}

// Entropy picks a master seed when the caller did not supply one. The
// seed must be reported to the user so the run can be reproduced.
func Entropy() uint64 {
	var b [8]byte
	// crypto/rand.Read never fails on supported platforms.
	_, _ = rand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}
