package prime

import (
	"context"
	"io"
	"math/big"

	toyrsa "github.com/BackendStack21/toyrsa-go"
	"github.com/BackendStack21/toyrsa-go/utils"
)

// MinBits is the smallest prime size Generate accepts.
const MinBits = 2

// Generate returns a random probable prime of exactly bits bits.
//
// Each candidate is a uniform draw from rand with the two most significant
// bits forced to 1, so the product of two such primes has exactly the combined
// bit length. The low bit is not forced; even candidates are left to the
// Fermat test. There is no iteration cap: the search runs until a candidate
// passes, which for an adversarial or broken reader may be forever.
//
// Security: the primes are only as unpredictable as rand. A nil rand uses
// utils.RandReader (crypto/rand).
func Generate(rand io.Reader, bits int) (*big.Int, error) {
	p, _, err := GenerateBounded(context.Background(), rand, bits, 0)
	return p, err
}

// GenerateBounded is Generate with cancellation and an optional cap on the
// number of candidates drawn. maxIterations == 0 means unbounded. It returns
// the prime and how many candidates were drawn to find it.
func GenerateBounded(ctx context.Context, rand io.Reader, bits, maxIterations int) (*big.Int, int, error) {
	if bits < MinBits {
		return nil, 0, toyrsa.Errorf("GeneratePrime", "%w: bits must be at least %d, got %d",
			toyrsa.ErrConfiguration, MinBits, bits)
	}
	if maxIterations < 0 {
		return nil, 0, toyrsa.Errorf("GeneratePrime", "%w: negative iteration cap %d",
			toyrsa.ErrConfiguration, maxIterations)
	}
	if rand == nil {
		rand = utils.RandReader
	}

	top := new(big.Int).Lsh(big.NewInt(3), uint(bits-2))

	for i := 1; maxIterations == 0 || i <= maxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, i - 1, err
		}

		candidate, err := utils.RandomBits(rand, bits)
		if err != nil {
			return nil, i - 1, toyrsa.Errorf("GeneratePrime", "reading randomness: %w", err)
		}
		candidate.Or(candidate, top)

		if IsProbablePrime(candidate) {
			return candidate, i, nil
		}
		utils.ZeroizeInt(candidate)
	}

	return nil, maxIterations, toyrsa.Errorf("GeneratePrime", "%w: no %d-bit prime in %d candidates",
		toyrsa.ErrIterationLimit, bits, maxIterations)
}

// HasTopBits reports whether p has exactly bits bits with the two most
// significant set.
func HasTopBits(p *big.Int, bits int) bool {
	if p == nil || bits < MinBits || p.BitLen() != bits {
		return false
	}
	return p.Bit(bits-1) == 1 && p.Bit(bits-2) == 1
}
