package modular

import (
	"math/big"
	"testing"
)

// FuzzExtendedGCD checks the Bezout identity on arbitrary byte strings.
func FuzzExtendedGCD(f *testing.F) {
	// Add seed corpus
	f.Add([]byte{}, []byte{})
	f.Add([]byte{0}, []byte{7})
	f.Add([]byte{0xF0}, []byte{0x2E})
	f.Add([]byte{0x01, 0x00, 0x01}, []byte{0x0C, 0x30})

	f.Fuzz(func(t *testing.T, ab, bb []byte) {
		a := new(big.Int).SetBytes(ab)
		b := new(big.Int).SetBytes(bb)

		g, x, y := ExtendedGCD(a, b)

		lhs := new(big.Int).Mul(a, x)
		lhs.Add(lhs, new(big.Int).Mul(b, y))
		if lhs.Cmp(g) != 0 {
			t.Fatalf("a*x + b*y != g for a=%s b=%s", a, b)
		}
		if g.Cmp(new(big.Int).GCD(nil, nil, a, b)) != 0 {
			t.Fatalf("wrong gcd for a=%s b=%s", a, b)
		}
	})
}

// FuzzModInverse checks ModInverse returns a real inverse or an error.
func FuzzModInverse(f *testing.F) {
	f.Add([]byte{17}, []byte{0x0C, 0x30})
	f.Add([]byte{2}, []byte{4})
	f.Add([]byte{}, []byte{})

	f.Fuzz(func(t *testing.T, ab, mb []byte) {
		a := new(big.Int).SetBytes(ab)
		m := new(big.Int).SetBytes(mb)

		inv, err := ModInverse(a, m)
		if err != nil {
			return
		}
		if m.Cmp(one) == 0 {
			return
		}
		prod := new(big.Int).Mul(a, inv)
		if prod.Mod(prod, m).Cmp(one) != 0 {
			t.Fatalf("ModInverse(%s, %s) = %s is not an inverse", a, m, inv)
		}
	})
}
