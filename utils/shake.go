package utils

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"
)

// maxDomainLen is the longest domain label; its length is hashed as one byte.
const maxDomainLen = 255

// Shake256 returns outputLen bytes of SHAKE256 over input.
func Shake256(input []byte, outputLen int) []byte {
	out := make([]byte, outputLen)
	sha3.ShakeSum256(out, input)
	return out
}

// SHA3256 returns the SHA3-256 digest of input.
func SHA3256(input []byte) []byte {
	sum := sha3.Sum256(input)
	return sum[:]
}

// HashWithDomain returns SHA3-256(len(domain) || domain || data).
// The one-byte length prefix keeps (domain, data) splits unambiguous, so
// domains longer than 255 bytes panic.
func HashWithDomain(domain string, data []byte) []byte {
	if len(domain) > maxDomainLen {
		panic(fmt.Sprintf("utils: domain label is %d bytes, limit %d", len(domain), maxDomainLen))
	}
	h := sha3.New256()
	h.Write([]byte{byte(len(domain))})
	io.WriteString(h, domain)
	h.Write(data)
	return h.Sum(nil)
}

// NewShakeReader returns an endless deterministic byte stream: the SHAKE256
// output of seed. Two readers built from the same seed yield the same bytes.
// It is a reproducible randomness source for key generation from a seed and
// for tests; it is not a substitute for crypto/rand.
func NewShakeReader(seed []byte) io.Reader {
	h := sha3.NewShake256()
	h.Write(seed)
	return h
}

// NewLabeledShakeReader is NewShakeReader over a domain-separated seed with a
// little-endian counter appended, so one seed can feed independent streams.
func NewLabeledShakeReader(domain string, seed []byte, counter uint32) io.Reader {
	return NewShakeReader(HashWithDomain(domain, binary.LittleEndian.AppendUint32(append([]byte(nil), seed...), counter)))
}
