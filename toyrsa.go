// Package toyrsa implements textbook RSA for teaching purposes.
//
// WARNING: This is deliberately insecure, pedagogical code. Messages are not
// padded, the primality test is a single Fermat round with witness 2, and no
// operation runs in constant time. DO NOT use it to protect real data.
//
// This package holds the shared types, defaults and errors; the number theory
// lives in the prime and modular sub-packages, key construction in keygen and
// the message path in codec and cipher.
package toyrsa

// Version of the toyrsa Go implementation.
const Version = "0.3.0"

// API summary:
//
// Key Generation:
//   - keygen.GenerateKeyPair(bits) - Generate a key pair with the default parameters
//   - keygen.GenerateKeyPairFromSeed(params, seed) - Deterministic key pair from a seed
//   - keygen.Verify(kp, params) - Re-check every key pair invariant
//
// Number Theory:
//   - prime.IsProbablePrime(n) - Fermat test with witness 2
//   - prime.Generate(rand, bits) - Random probable prime with the top two bits set
//   - modular.ExtendedGCD(a, b) - Bezout coefficients
//   - modular.ModInverse(a, m) - Inverse of a modulo m
//
// Messages:
//   - cipher.Encrypt(text, e, n) - Unpadded RSA encryption
//   - cipher.Decrypt(c, d, n) - Unpadded RSA decryption
//   - cipher.CheckMessage(text, n) - Reject messages that do not fit the modulus
//   - codec.Encode(text) / codec.Decode(num) - UTF-8 bytes <-> big-endian integer
//
// Parameters:
//   - core.GetParams(bits) - Default parameters for a modulus size
//   - core.ValidateParams(params) - Configuration checks
