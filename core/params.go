// Package core provides parameter sets and validation for toyrsa.
package core

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	toyrsa "github.com/BackendStack21/toyrsa-go"
)

var validate = validator.New()

// DefaultParams is the parameter set used by the CLI demonstration.
var DefaultParams = toyrsa.Params{
	Bits:           toyrsa.DefaultBits,
	PublicExponent: toyrsa.DefaultPublicExponent,
	GapMargin:      toyrsa.DefaultGapMargin,
}

// GetParams returns the default parameter set for a modulus of the given size.
func GetParams(bits int) (toyrsa.Params, error) {
	params := DefaultParams
	params.Bits = bits
	if err := ValidateParams(params); err != nil {
		return toyrsa.Params{}, err
	}
	return params, nil
}

// ValidateParams validates the parameter set for consistency.
// Every failure wraps toyrsa.ErrConfiguration.
func ValidateParams(params toyrsa.Params) error {
	if err := validate.Struct(params); err != nil {
		return toyrsa.Errorf("ValidateParams", "%w: %v", toyrsa.ErrConfiguration, err)
	}
	if params.PublicExponent%2 == 0 {
		return toyrsa.Errorf("ValidateParams", "%w: public exponent must be odd", toyrsa.ErrConfiguration)
	}
	if !isPrime(params.PublicExponent) {
		return toyrsa.Errorf("ValidateParams", "%w: public exponent must be prime", toyrsa.ErrConfiguration)
	}
	// The distance check shifts |p-q| right by the gap; it must stay positive.
	if gap := params.Gap(); gap < 1 {
		return toyrsa.Errorf("ValidateParams", "%w: prime gap %d for %d bits must be at least 1",
			toyrsa.ErrConfiguration, gap, params.Bits)
	}
	return nil
}

// MustGetParams is GetParams for sizes known to be valid. It panics otherwise.
func MustGetParams(bits int) toyrsa.Params {
	params, err := GetParams(bits)
	if err != nil {
		panic(fmt.Sprintf("core: %v", err))
	}
	return params
}

// isPrime checks if a number is prime using a simple trial division.
// This is used for validating parameters, not for generating large primes.
func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	for i := 3; i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}
