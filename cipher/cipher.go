// Package cipher implements unpadded textbook RSA encryption and decryption.
//
// Encryption is deterministic: the same message under the same key always
// gives the same ciphertext. Nothing here is semantically secure.
package cipher

import (
	"math/big"

	toyrsa "github.com/BackendStack21/toyrsa-go"
	"github.com/BackendStack21/toyrsa-go/codec"
)

// Encrypt returns Encode(text)^e mod n.
//
// The caller must ensure Encode(text) < n (see Fits). Encrypt does not check:
// a larger message wraps around the modulus and decrypts to something else.
func Encrypt(text string, e, n *big.Int) *big.Int {
	m := codec.Encode(text)
	return m.Exp(m, e, n)
}

// Decrypt returns Decode(c^d mod n).
// It fails with toyrsa.ErrInvalidEncoding when the recovered bytes are not
// UTF-8, which usually means a corrupted ciphertext or the wrong key.
func Decrypt(c, d, n *big.Int) (string, error) {
	m := new(big.Int).Exp(c, d, n)
	text, err := codec.Decode(m)
	if err != nil {
		return "", toyrsa.Errorf("Decrypt", "%w", err)
	}
	return text, nil
}

// EncryptWithKey is Encrypt with the public half of kp.
func EncryptWithKey(kp *toyrsa.KeyPair, text string) *big.Int {
	e, n := kp.PublicKey()
	return Encrypt(text, e, n)
}

// DecryptWithKey is Decrypt with the private half of kp.
func DecryptWithKey(kp *toyrsa.KeyPair, c *big.Int) (string, error) {
	d, n := kp.PrivateKey()
	return Decrypt(c, d, n)
}

// Fits reports whether text encodes to an integer below n, the precondition
// for Encrypt to be reversible.
func Fits(text string, n *big.Int) bool {
	return codec.Encode(text).Cmp(n) < 0
}

// CheckMessage returns toyrsa.ErrMessageTooLarge when text does not fit n.
func CheckMessage(text string, n *big.Int) error {
	if !Fits(text, n) {
		return toyrsa.Errorf("CheckMessage", "%w: %d bytes for a %d-bit modulus",
			toyrsa.ErrMessageTooLarge, codec.ByteLen(text), n.BitLen())
	}
	return nil
}
