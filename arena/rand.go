package arena

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// CreateRandomSeed draws a PCG seed from the OS entropy pool, for callers
// that don't care about replay.
func CreateRandomSeed() rand.PCG {
	var randBytes [16]byte
	_, err := cryptoRand.Read(randBytes[:])
	if err != nil {
		// crypto/rand read failures are not recoverable in any useful way
		panic(err)
	}

	return *rand.NewPCG(binary.LittleEndian.Uint64(randBytes[0:8]), binary.LittleEndian.Uint64(randBytes[8:]))
}

// SeedFromUint64 builds a PCG seed from a single caller-supplied value.
// The same value always yields the same battle given the same inputs.
func SeedFromUint64(seed uint64) rand.PCG {
	return *rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

func CreateRNG(seed *rand.PCG) *rand.Rand {
	return rand.New(seed)
}
