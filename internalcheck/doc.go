// Package internalcheck holds source policy tests for the toyrsa module.
//
// The tests load the module with golang.org/x/tools/go/packages and walk the
// syntax trees. They enforce that randomness flows through utils (so every
// caller can inject a reader) and that secret key material never reaches a
// log record or a hex format verb.
//
// # Internal Use Only
//
// The package exports nothing. It exists so `go test ./...` runs the checks.
package internalcheck
