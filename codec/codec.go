// Package codec converts text to and from the integers RSA operates on.
package codec

import (
	"math/big"
	"unicode/utf8"

	toyrsa "github.com/BackendStack21/toyrsa-go"
)

// Encode interprets the UTF-8 bytes of text as a big-endian unsigned integer.
// The empty string encodes to 0.
func Encode(text string) *big.Int {
	return new(big.Int).SetBytes([]byte(text))
}

// Decode returns the text whose UTF-8 bytes are the minimal big-endian
// representation of num, ceil(bitlen/8) bytes long.
//
// Leading zero bytes are not representable: Decode(Encode("\x00a")) is "a".
// Decode fails with toyrsa.ErrInvalidEncoding for negative input or bytes
// that are not valid UTF-8.
func Decode(num *big.Int) (string, error) {
	if num.Sign() < 0 {
		return "", toyrsa.Errorf("Decode", "%w: negative integer", toyrsa.ErrInvalidEncoding)
	}
	b := num.Bytes()
	if !utf8.Valid(b) {
		return "", toyrsa.Errorf("Decode", "%w: %d bytes are not valid UTF-8", toyrsa.ErrInvalidEncoding, len(b))
	}
	return string(b), nil
}

// ByteLen returns the number of bytes Encode(text) occupies once leading
// zero bytes are dropped.
func ByteLen(text string) int {
	return (Encode(text).BitLen() + 7) / 8
}
