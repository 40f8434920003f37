// Package prime implements the Fermat probable-prime test and random prime
// generation for toyrsa.
//
// The test uses the single witness 2. It accepts every prime above 2, but it
// also accepts base-2 Fermat pseudoprimes such as 341 = 11*31, so a "prime"
// from this package is a probable prime only.
package prime

import "math/big"

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// IsProbablePrime reports whether 2^(n-1) mod n == 1.
//
// Nil, zero and negative inputs return false. 1 returns false because
// 2^0 mod 1 is 0, and 2 returns false because 2^1 mod 2 is 0: the witness
// shares a factor with it. Parity is not checked separately; even n above 2
// always fail the congruence.
func IsProbablePrime(n *big.Int) bool {
	if n == nil || n.Sign() <= 0 {
		return false
	}
	exp := new(big.Int).Sub(n, one)
	return new(big.Int).Exp(two, exp, n).Cmp(one) == 0
}
