// Package modular implements the extended Euclidean algorithm and modular
// inverses over math/big integers.
package modular

import (
	"math/big"

	toyrsa "github.com/BackendStack21/toyrsa-go"
)

var one = big.NewInt(1)

// ExtendedGCD returns (g, x, y) with a*x + b*y = g = gcd(a, b).
//
// The triple is the one produced by the classic recursion
//
//	egcd(0, b) = (b, 0, 1)
//	egcd(a, b) = (g, x' - floor(b/a)*y', y')  where (g, y', x') = egcd(b mod a, a)
//
// with floor division. The recursion is unrolled: quotients are collected on
// the way down and the coefficients rebuilt on the way back, so stack depth
// does not grow with the operand size. Inputs are not modified.
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	ra := new(big.Int).Set(a)
	rb := new(big.Int).Set(b)

	var quotients []*big.Int
	for ra.Sign() != 0 {
		q, r := floorDivMod(rb, ra)
		quotients = append(quotients, q)
		ra, rb = r, ra
	}

	g = rb
	x = big.NewInt(0)
	y = big.NewInt(1)
	tmp := new(big.Int)
	for i := len(quotients) - 1; i >= 0; i-- {
		// (x, y) <- (y - q*x, x)
		tmp.Mul(quotients[i], x)
		nx := new(big.Int).Sub(y, tmp)
		x, y = nx, x
	}
	return g, x, y
}

// GCD returns gcd(a, b) as computed by ExtendedGCD.
func GCD(a, b *big.Int) *big.Int {
	g, _, _ := ExtendedGCD(a, b)
	return g
}

// ModInverse returns x in [0, m) with a*x ≡ 1 (mod m).
// It fails with toyrsa.ErrNoInverse when gcd(a, m) != 1 and with
// toyrsa.ErrInvalidModulus when m <= 0.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m.Sign() <= 0 {
		return nil, toyrsa.Errorf("ModInverse", "%w: %s", toyrsa.ErrInvalidModulus, m)
	}
	g, x, _ := ExtendedGCD(a, m)
	if g.Cmp(one) != 0 {
		return nil, toyrsa.Errorf("ModInverse", "%w: gcd is %s", toyrsa.ErrNoInverse, g)
	}
	return x.Mod(x, m), nil
}

// Totient returns Euler's totient (p-1)(q-1) of p*q for distinct primes p, q.
func Totient(p, q *big.Int) *big.Int {
	p1 := new(big.Int).Sub(p, one)
	q1 := new(big.Int).Sub(q, one)
	return p1.Mul(p1, q1)
}

// floorDivMod returns q = floor(n/d) and r = n - q*d, so r has the sign of d.
func floorDivMod(n, d *big.Int) (q, r *big.Int) {
	q, r = new(big.Int).QuoRem(n, d, new(big.Int))
	if r.Sign() != 0 && r.Sign() != d.Sign() {
		q.Sub(q, one)
		r.Add(r, d)
	}
	return q, r
}
