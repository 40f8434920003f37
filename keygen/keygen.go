// Package keygen implements RSA key pair generation for toyrsa.
package keygen

import (
	"context"
	"io"
	"math/big"

	toyrsa "github.com/BackendStack21/toyrsa-go"
	"github.com/BackendStack21/toyrsa-go/core"
	"github.com/BackendStack21/toyrsa-go/logging"
	"github.com/BackendStack21/toyrsa-go/modular"
	"github.com/BackendStack21/toyrsa-go/prime"
	"github.com/BackendStack21/toyrsa-go/utils"
)

const (
	DomainSeed = "toyrsa-keygen-seed-v1"
)

var one = big.NewInt(1)

// Generator builds key pairs from Params and an injected randomness source.
type Generator struct {
	Params toyrsa.Params
	// Rand is the entropy source for prime candidates. Nil means utils.RandReader.
	Rand io.Reader
	// Logger receives search progress. Nil discards every record.
	Logger logging.Logger
}

// GenerateKeyPair generates a key pair of the given modulus size with the
// default parameters and crypto/rand.
func GenerateKeyPair(bits int) (*toyrsa.KeyPair, error) {
	params, err := core.GetParams(bits)
	if err != nil {
		return nil, err
	}
	g := &Generator{Params: params}
	return g.Generate(context.Background())
}

// GenerateKeyPairFromSeed generates a deterministic key pair from seed.
// The same params and seed always give the same key pair. The stream is
// derived with SHAKE256, so the key is exactly as secret as the seed.
func GenerateKeyPairFromSeed(params toyrsa.Params, seed []byte) (*toyrsa.KeyPair, error) {
	g, err := NewSeededGenerator(params, seed)
	if err != nil {
		return nil, err
	}
	return g.Generate(context.Background())
}

// NewSeededGenerator returns a Generator whose randomness is the SHAKE256
// stream of a domain-separated hash of seed.
func NewSeededGenerator(params toyrsa.Params, seed []byte) (*Generator, error) {
	if err := utils.ValidateSeedEntropy(seed); err != nil {
		return nil, toyrsa.Errorf("GenerateKeyPairFromSeed", "%w: %v", toyrsa.ErrConfiguration, err)
	}
	return &Generator{
		Params: params,
		Rand:   utils.NewShakeReader(utils.HashWithDomain(DomainSeed, seed)),
	}, nil
}

// Generate searches for primes p, q until gcd(e, φ) == 1 and |p-q| >= 2^gap,
// then returns (e, d, n, p, q).
//
// With Params.MaxAttempts == 0 the search has no upper bound. Cancelling ctx
// stops it between candidates.
func (g *Generator) Generate(ctx context.Context) (*toyrsa.KeyPair, error) {
	params := g.Params
	if err := core.ValidateParams(params); err != nil {
		return nil, err
	}

	log := g.Logger
	if log == nil {
		log = logging.Discard()
	}
	log = log.With("component", "keygen", "bits", params.Bits)

	r := g.Rand
	if r == nil {
		r = utils.RandReader
	}

	e := big.NewInt(int64(params.PublicExponent))
	pbits, qbits := params.PrimeBits()
	gap := uint(params.Gap())

	for attempt := 1; params.MaxAttempts == 0 || attempt <= params.MaxAttempts; attempt++ {
		p, pTries, err := prime.GenerateBounded(ctx, r, pbits, params.MaxPrimeIterations)
		if err != nil {
			return nil, toyrsa.Errorf("Generate", "%w", err)
		}
		q, qTries, err := prime.GenerateBounded(ctx, r, qbits, params.MaxPrimeIterations)
		if err != nil {
			utils.ZeroizeInt(p)
			return nil, toyrsa.Errorf("Generate", "%w", err)
		}

		phi := modular.Totient(p, q)
		coprime := modular.GCD(e, phi).Cmp(one) == 0
		diff := new(big.Int).Sub(p, q)
		diff.Abs(diff)
		farApart := diff.Rsh(diff, gap).Sign() != 0

		if !coprime || !farApart {
			log.Debug(ctx, "prime pair rejected",
				"attempt", attempt,
				"coprime", coprime,
				"far_apart", farApart,
				"p_candidates", pTries,
				"q_candidates", qTries)
			utils.ZeroizeInt(p)
			utils.ZeroizeInt(q)
			utils.ZeroizeInt(phi)
			continue
		}

		// gcd(e, φ) == 1 was just checked, so a failure here is a bug.
		d, err := modular.ModInverse(e, phi)
		if err != nil {
			log.Error(ctx, "modular inverse failed after gcd check", "error", err)
			return nil, toyrsa.Errorf("Generate", "unexpected: %w", err)
		}

		kp := &toyrsa.KeyPair{
			PublicExponent:  e,
			PrivateExponent: d,
			Modulus:         new(big.Int).Mul(p, q),
			P:               p,
			Q:               q,
		}
		log.Info(ctx, "key pair generated",
			"attempts", attempt,
			"modulus_bits", kp.Modulus.BitLen(),
			"fingerprint", Fingerprint(kp),
			logging.Redacted("private_exponent"))
		return kp, nil
	}

	return nil, toyrsa.Errorf("Generate", "%w: no acceptable prime pair in %d attempts",
		toyrsa.ErrIterationLimit, params.MaxAttempts)
}
