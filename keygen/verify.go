package keygen

import (
	"encoding/hex"
	"math/big"

	toyrsa "github.com/BackendStack21/toyrsa-go"
	"github.com/BackendStack21/toyrsa-go/core"
	"github.com/BackendStack21/toyrsa-go/modular"
	"github.com/BackendStack21/toyrsa-go/prime"
	"github.com/BackendStack21/toyrsa-go/utils"
)

// Verify checks every structural invariant of kp against params:
// n = p*q, gcd(e, φ) = 1, e*d ≡ 1 (mod φ), |p-q| >= 2^gap, both primes pass
// the Fermat test with their top two bits set. Failures wrap
// toyrsa.ErrInvalidKeyPair; params that fail core.ValidateParams are
// rejected first with toyrsa.ErrConfiguration.
func Verify(kp *toyrsa.KeyPair, params toyrsa.Params) error {
	if err := core.ValidateParams(params); err != nil {
		return err
	}
	if kp == nil || kp.PublicExponent == nil || kp.PrivateExponent == nil ||
		kp.Modulus == nil || kp.P == nil || kp.Q == nil {
		return toyrsa.Errorf("Verify", "%w: missing component", toyrsa.ErrInvalidKeyPair)
	}

	if kp.PublicExponent.Cmp(big.NewInt(int64(params.PublicExponent))) != 0 {
		return toyrsa.Errorf("Verify", "%w: public exponent %s, want %d",
			toyrsa.ErrInvalidKeyPair, kp.PublicExponent, params.PublicExponent)
	}
	if new(big.Int).Mul(kp.P, kp.Q).Cmp(kp.Modulus) != 0 {
		return toyrsa.Errorf("Verify", "%w: modulus is not p*q", toyrsa.ErrInvalidKeyPair)
	}

	pbits, qbits := params.PrimeBits()
	if !prime.HasTopBits(kp.P, pbits) || !prime.HasTopBits(kp.Q, qbits) {
		return toyrsa.Errorf("Verify", "%w: prime sizes are not (%d, %d) with top bits set",
			toyrsa.ErrInvalidKeyPair, pbits, qbits)
	}
	if !prime.IsProbablePrime(kp.P) || !prime.IsProbablePrime(kp.Q) {
		return toyrsa.Errorf("Verify", "%w: factor fails the primality test", toyrsa.ErrInvalidKeyPair)
	}

	phi := modular.Totient(kp.P, kp.Q)
	if modular.GCD(kp.PublicExponent, phi).Cmp(one) != 0 {
		return toyrsa.Errorf("Verify", "%w: gcd(e, phi) != 1", toyrsa.ErrInvalidKeyPair)
	}
	ed := new(big.Int).Mul(kp.PublicExponent, kp.PrivateExponent)
	if ed.Mod(ed, phi).Cmp(one) != 0 {
		return toyrsa.Errorf("Verify", "%w: e*d != 1 mod phi", toyrsa.ErrInvalidKeyPair)
	}

	diff := new(big.Int).Sub(kp.P, kp.Q)
	diff.Abs(diff)
	if diff.BitLen() <= params.Gap() {
		return toyrsa.Errorf("Verify", "%w: |p-q| below 2^%d", toyrsa.ErrInvalidKeyPair, params.Gap())
	}
	return nil
}

// Fingerprint returns the hex SHA3-256 of the big-endian modulus. It
// identifies a public key in logs and CLI output.
func Fingerprint(kp *toyrsa.KeyPair) string {
	if kp == nil || kp.Modulus == nil {
		return ""
	}
	return hex.EncodeToString(utils.SHA3256(kp.Modulus.Bytes()))
}
