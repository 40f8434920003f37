package toyrsa

import "math/big"

// Default parameter values.
const (
	// DefaultBits is the modulus size used by the CLI demonstration.
	DefaultBits = 1024
	// DefaultPublicExponent is 65537, chosen for its low Hamming weight.
	DefaultPublicExponent = 65537
	// DefaultGapMargin sets the minimum prime distance to 2^(pbits-100).
	DefaultGapMargin = 100
	// MinBits is the smallest supported modulus size.
	MinBits = 256
	// MaxBits bounds the modulus size accepted by parameter validation.
	MaxBits = 16384
)

// =============================================================================
// Parameter Types
// =============================================================================

// Params contains the key generation parameters.
//
// Textbook RSA fixes e = 65537, and every parameter set from core.GetParams
// uses it. PublicExponent stays settable for experiments with small
// exponents such as 3; validation still requires an odd prime, and nothing
// else in the package depends on its value.
type Params struct {
	Bits               int `json:"bits" validate:"gte=256,lte=16384"`     // Modulus size
	PublicExponent     int `json:"public_exponent" validate:"gte=3"`      // e
	GapMargin          int `json:"gap_margin" validate:"gte=0"`           // |p-q| >= 2^(pbits-GapMargin)
	MaxAttempts        int `json:"max_attempts" validate:"gte=0"`         // Key acceptance loop cap, 0 = unbounded
	MaxPrimeIterations int `json:"max_prime_iterations" validate:"gte=0"` // Per-prime candidate cap, 0 = unbounded
}

// PrimeBits returns the bit sizes of p and q: ceil(Bits/2) and floor(Bits/2).
func (p Params) PrimeBits() (pbits, qbits int) {
	return (p.Bits + 1) / 2, p.Bits / 2
}

// Gap returns the shift used by the prime distance check.
func (p Params) Gap() int {
	pbits, _ := p.PrimeBits()
	return pbits - p.GapMargin
}

// =============================================================================
// Key Types
// =============================================================================

// KeyPair is an RSA key pair (e, d, n, p, q).
// P and Q are kept for inspection only; encryption and decryption need
// just the exponents and the modulus.
type KeyPair struct {
	PublicExponent  *big.Int
	PrivateExponent *big.Int
	Modulus         *big.Int
	P               *big.Int
	Q               *big.Int
}

// PublicKey returns (e, n).
func (kp *KeyPair) PublicKey() (e, n *big.Int) {
	return kp.PublicExponent, kp.Modulus
}

// PrivateKey returns (d, n).
func (kp *KeyPair) PrivateKey() (d, n *big.Int) {
	return kp.PrivateExponent, kp.Modulus
}
