package toyrsa

import (
	"errors"
	"fmt"
)

var (
	// ErrNoInverse indicates gcd(a, m) != 1, so a has no inverse modulo m.
	ErrNoInverse = errors.New("toyrsa: modular inverse does not exist")

	// ErrInvalidModulus indicates a modulus that is zero or negative.
	ErrInvalidModulus = errors.New("toyrsa: invalid modulus")

	// ErrInvalidEncoding indicates decoded bytes that are not valid UTF-8.
	ErrInvalidEncoding = errors.New("toyrsa: invalid encoding")

	// ErrConfiguration indicates parameters outside the supported range.
	ErrConfiguration = errors.New("toyrsa: invalid configuration")

	// ErrIterationLimit indicates a search loop hit its configured cap.
	ErrIterationLimit = errors.New("toyrsa: iteration limit reached")

	// ErrInvalidKeyPair indicates a key pair that breaks an RSA invariant.
	ErrInvalidKeyPair = errors.New("toyrsa: invalid key pair")

	// ErrMessageTooLarge indicates an encoded message not below the modulus.
	ErrMessageTooLarge = errors.New("toyrsa: message too large for modulus")
)

// Error wraps an underlying error with the operation that failed.
type Error struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("toyrsa.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an *Error for op. Use %w in format to keep a sentinel
// reachable through errors.Is.
func Errorf(op string, format string, args ...interface{}) error {
	return &Error{
		Op:  op,
		Err: fmt.Errorf(format, args...),
	}
}
