// Package utils holds the randomness, hashing and zeroization helpers shared
// by the toyrsa packages.
package utils

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"runtime"
)

// MinSeedLen is the shortest seed ValidateSeedEntropy accepts.
const MinSeedLen = 32

// RandReader is the process-wide randomness source used when callers do not
// inject their own. Tests may swap it.
var RandReader io.Reader = rand.Reader

// RandomBits draws a uniformly random integer in [0, 2^bits) from r.
// It reads ceil(bits/8) bytes and clears the excess high bits of the first byte.
// The result is only as unpredictable as r: a seeded reader gives a
// reproducible, non-secret stream. A nil r uses RandReader.
func RandomBits(r io.Reader, bits int) (*big.Int, error) {
	if bits <= 0 {
		return nil, fmt.Errorf("random bits: size must be positive, got %d", bits)
	}
	if r == nil {
		r = RandReader
	}

	buf := make([]byte, (bits+7)/8)
	defer Zeroize(buf)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	buf[0] &= 0xFF >> (len(buf)*8 - bits)

	return new(big.Int).SetBytes(buf), nil
}

// ValidateSeedEntropy rejects seeds that are obviously not random: too short,
// a single repeated byte, a counting sequence, or fewer distinct byte values
// than a quarter of the length. Passing says nothing about real entropy.
func ValidateSeedEntropy(seed []byte) error {
	if len(seed) < MinSeedLen {
		return fmt.Errorf("seed must be at least %d bytes, got %d", MinSeedLen, len(seed))
	}

	var seen [256]bool
	distinct := 0
	repeated, counting := true, true
	for i, b := range seed {
		if !seen[b] {
			seen[b] = true
			distinct++
		}
		if i > 0 {
			repeated = repeated && b == seed[0]
			counting = counting && b == seed[i-1]+1
		}
	}

	switch {
	case repeated:
		return errors.New("seed has low entropy: all bytes are identical")
	case counting:
		return errors.New("seed has low entropy: sequential bytes")
	case distinct < len(seed)/4:
		return fmt.Errorf("seed has low entropy: %d distinct bytes in %d", distinct, len(seed))
	}
	return nil
}

// Zeroize clears b. KeepAlive stops the compiler from dropping the stores.
func Zeroize(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}

// ZeroizeInt overwrites the words backing n and sets n to zero.
// Nil is ignored.
func ZeroizeInt(n *big.Int) {
	if n == nil {
		return
	}
	words := n.Bits()
	clear(words)
	runtime.KeepAlive(words)
	n.SetInt64(0)
}
