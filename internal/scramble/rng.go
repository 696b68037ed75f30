package scramble

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource supplies the randomness for scrambles.
type RandomSource interface {
	IntN(n int) int   // uniform in [0, n)
	Float64() float64 // uniform in [0, 1)
}

// cryptoRNG is the default source.
type cryptoRNG struct{}

func (cryptoRNG) Uint64() uint64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Uint64()
	}
	return binary.BigEndian.Uint64(buf[:])
}

func (c cryptoRNG) IntN(n int) int {
	return rand.New(c).IntN(n)
}

func (c cryptoRNG) Float64() float64 {
	// 53 random bits => [0, 1)
	return float64(c.Uint64()>>11) / (1 << 53)
}

// DefaultRNG returns a crypto-backed source.
func DefaultRNG() RandomSource { return cryptoRNG{} }

// NewSeededRNG returns a reproducible source.
func NewSeededRNG(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, 0))
}
