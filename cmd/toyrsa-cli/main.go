// Package main provides the toyrsa-cli command line interface for textbook RSA.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	toyrsa "github.com/BackendStack21/toyrsa-go"
	"github.com/BackendStack21/toyrsa-go/cipher"
	"github.com/BackendStack21/toyrsa-go/core"
	"github.com/BackendStack21/toyrsa-go/keygen"
	"github.com/BackendStack21/toyrsa-go/logging"
	"github.com/BackendStack21/toyrsa-go/utils"
)

const (
	version = "1.0.0"
	appName = "toyrsa-cli"

	defaultMessage = "hello world"
)

// OutputFormat represents the output format for results
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// KeyPairExport represents an exported key pair. Integers are decimal strings.
type KeyPairExport struct {
	Bits            int    `json:"bits"`
	PublicExponent  string `json:"e"`
	PrivateExponent string `json:"d"`
	Modulus         string `json:"n"`
	P               string `json:"p,omitempty"`
	Q               string `json:"q,omitempty"`
	Fingerprint     string `json:"fingerprint"`
	CreatedAt       string `json:"created_at"`
}

// DemoExport represents the result of the encrypt/decrypt demonstration.
type DemoExport struct {
	PublicExponent   string `json:"e"`
	PrivateExponent  string `json:"d"`
	Modulus          string `json:"n"`
	Message          string `json:"message"`
	EncryptedMessage string `json:"encrypted_message"`
	DecryptedMessage string `json:"decrypted_message"`
}

var globalFlags = []cli.Flag{
	&cli.IntFlag{
		Name:    "bits",
		Aliases: []string{"b"},
		Usage:   "Modulus size in bits",
		Value:   toyrsa.DefaultBits,
	},
	&cli.StringFlag{
		Name:    "message",
		Aliases: []string{"m"},
		Usage:   "Message to encrypt",
		Value:   defaultMessage,
	},
	&cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: text or json",
		Value:   string(FormatText),
	},
	&cli.StringFlag{
		Name:    "seed",
		Aliases: []string{"s"},
		Usage:   "Derive the key pair deterministically from this passphrase (insecure)",
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Debug logging and print p, q and the key fingerprint",
	},
	&cli.BoolFlag{
		Name:    "timing",
		Aliases: []string{"t"},
		Usage:   "Print operation timings to stderr",
	},
}

var commands = []*cli.Command{
	{
		Name:  "keygen",
		Usage: "Generate a key pair",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "bits",
				Aliases: []string{"b"},
				Usage:   "Modulus size in bits",
				Value:   toyrsa.DefaultBits,
			},
			&cli.StringFlag{
				Name:    "seed",
				Aliases: []string{"s"},
				Usage:   "Derive the key pair deterministically from this passphrase (insecure)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text or json",
				Value:   string(FormatText),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Debug logging and print p and q",
			},
		},
		Action: keygenAction,
	},
	{
		Name:  "encrypt",
		Usage: "Encrypt a message with a public key",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "exponent",
				Aliases: []string{"e"},
				Usage:   "Public exponent (decimal)",
				Value:   fmt.Sprint(toyrsa.DefaultPublicExponent),
			},
			&cli.StringFlag{
				Name:     "modulus",
				Aliases:  []string{"n"},
				Usage:    "Modulus (decimal)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "message",
				Aliases:  []string{"m"},
				Usage:    "Message to encrypt",
				Required: true,
			},
		},
		Action: encryptAction,
	},
	{
		Name:  "decrypt",
		Usage: "Decrypt a ciphertext with a private key",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "private-exponent",
				Aliases:  []string{"d"},
				Usage:    "Private exponent (decimal)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "modulus",
				Aliases:  []string{"n"},
				Usage:    "Modulus (decimal)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "ciphertext",
				Aliases:  []string{"c"},
				Usage:    "Ciphertext (decimal)",
				Required: true,
			},
		},
		Action: decryptAction,
	},
	{
		Name:  "benchmark",
		Usage: "Run performance benchmarks",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "bits",
				Aliases: []string{"b"},
				Usage:   "Modulus size in bits",
				Value:   toyrsa.DefaultBits,
			},
			&cli.IntFlag{
				Name:    "iterations",
				Aliases: []string{"n"},
				Usage:   "Iterations per operation",
				Value:   10,
			},
		},
		Action: benchmarkAction,
	},
	{
		Name:   "version",
		Usage:  "Show version information",
		Action: func(c *cli.Context) error {
			fmt.Fprintf(c.App.Writer, "%s version %s (toyrsa %s)\n", appName, version, toyrsa.Version)
			return nil
		},
	},
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:        appName,
		Usage:       "Textbook RSA key generation and encryption (insecure, for learning)",
		HideVersion: true,
		Flags:       globalFlags,
		Commands:    commands,
		Action:      demoAction,
		Writer:      stdout,
		ErrWriter:   stderr,
	}
}

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// ============================================================================
// Commands
// ============================================================================

// demoAction generates a key pair, encrypts the message and decrypts it again.
func demoAction(c *cli.Context) error {
	format, err := parseFormat(flagString(c, "format"))
	if err != nil {
		return err
	}
	verbose := flagBool(c, "verbose")
	timing := c.Bool("timing")

	kp, err := generate(c, c.Int("bits"), c.String("seed"))
	if err != nil {
		return err
	}
	e, n := kp.PublicKey()
	d, _ := kp.PrivateKey()

	message := c.String("message")
	if err := cipher.CheckMessage(message, n); err != nil {
		return err
	}

	start := time.Now()
	encrypted := cipher.Encrypt(message, e, n)
	if timing {
		fmt.Fprintf(c.App.ErrWriter, "Encryption took: %v\n", time.Since(start))
	}

	start = time.Now()
	decrypted, err := cipher.Decrypt(encrypted, d, n)
	if err != nil {
		return fmt.Errorf("decrypting: %w", err)
	}
	if timing {
		fmt.Fprintf(c.App.ErrWriter, "Decryption took: %v\n", time.Since(start))
	}

	if format == FormatJSON {
		return writeJSON(c.App.Writer, DemoExport{
			PublicExponent:   e.String(),
			PrivateExponent:  d.String(),
			Modulus:          n.String(),
			Message:          message,
			EncryptedMessage: encrypted.String(),
			DecryptedMessage: decrypted,
		})
	}

	w := c.App.Writer
	fmt.Fprintln(w, "e:", e)
	fmt.Fprintln(w, "d:", d)
	fmt.Fprintln(w, "n:", n)
	if verbose {
		fmt.Fprintln(w, "p:", kp.P)
		fmt.Fprintln(w, "q:", kp.Q)
		fmt.Fprintln(w, "fingerprint:", keygen.Fingerprint(kp))
	}
	fmt.Fprintln(w, "message:", message)
	fmt.Fprintln(w, "encrypted message:", encrypted)
	fmt.Fprintln(w, "decrypted message:", decrypted)
	return nil
}

func keygenAction(c *cli.Context) error {
	format, err := parseFormat(flagString(c, "format"))
	if err != nil {
		return err
	}

	kp, err := generate(c, c.Int("bits"), c.String("seed"))
	if err != nil {
		return err
	}

	export := KeyPairExport{
		Bits:            kp.Modulus.BitLen(),
		PublicExponent:  kp.PublicExponent.String(),
		PrivateExponent: kp.PrivateExponent.String(),
		Modulus:         kp.Modulus.String(),
		Fingerprint:     keygen.Fingerprint(kp),
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}
	if flagBool(c, "verbose") {
		export.P = kp.P.String()
		export.Q = kp.Q.String()
	}

	if format == FormatJSON {
		return writeJSON(c.App.Writer, export)
	}

	w := c.App.Writer
	fmt.Fprintln(w, "e:", export.PublicExponent)
	fmt.Fprintln(w, "d:", export.PrivateExponent)
	fmt.Fprintln(w, "n:", export.Modulus)
	if export.P != "" {
		fmt.Fprintln(w, "p:", export.P)
		fmt.Fprintln(w, "q:", export.Q)
	}
	fmt.Fprintln(w, "fingerprint:", export.Fingerprint)
	return nil
}

func encryptAction(c *cli.Context) error {
	e, err := parsePositive("exponent", c.String("exponent"))
	if err != nil {
		return err
	}
	n, err := parsePositive("modulus", c.String("modulus"))
	if err != nil {
		return err
	}
	message := c.String("message")
	if err := cipher.CheckMessage(message, n); err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, cipher.Encrypt(message, e, n))
	return nil
}

func decryptAction(c *cli.Context) error {
	d, err := parsePositive("private-exponent", c.String("private-exponent"))
	if err != nil {
		return err
	}
	n, err := parsePositive("modulus", c.String("modulus"))
	if err != nil {
		return err
	}
	ct, err := parseInt("ciphertext", c.String("ciphertext"))
	if err != nil {
		return err
	}

	text, err := cipher.Decrypt(ct, d, n)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, text)
	return nil
}

func benchmarkAction(c *cli.Context) error {
	bits := c.Int("bits")
	iterations := c.Int("iterations")
	if iterations < 1 {
		iterations = 1
	}
	params, err := core.GetParams(bits)
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "toyrsa Benchmark Results\n")
	fmt.Fprintf(w, "========================\n")
	fmt.Fprintf(w, "Modulus: %d bits\n", bits)
	fmt.Fprintf(w, "Iterations: %d\n\n", iterations)

	g := &keygen.Generator{Params: params, Logger: logging.Discard()}

	var keygenTotal time.Duration
	var kp *toyrsa.KeyPair
	for i := 0; i < iterations; i++ {
		start := time.Now()
		kp, err = g.Generate(c.Context)
		keygenTotal += time.Since(start)
		if err != nil {
			return fmt.Errorf("keygen: %w", err)
		}
	}
	fmt.Fprintf(w, "  KeyGen:  %v (avg)\n", keygenTotal/time.Duration(iterations))

	var encryptTotal time.Duration
	var encrypted *big.Int
	for i := 0; i < iterations; i++ {
		start := time.Now()
		encrypted = cipher.EncryptWithKey(kp, defaultMessage)
		encryptTotal += time.Since(start)
	}
	fmt.Fprintf(w, "  Encrypt: %v (avg)\n", encryptTotal/time.Duration(iterations))

	var decryptTotal time.Duration
	for i := 0; i < iterations; i++ {
		start := time.Now()
		_, err := cipher.DecryptWithKey(kp, encrypted)
		decryptTotal += time.Since(start)
		if err != nil {
			return fmt.Errorf("decrypt: %w", err)
		}
	}
	fmt.Fprintf(w, "  Decrypt: %v (avg)\n", decryptTotal/time.Duration(iterations))
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

// generate builds a key pair of the given size, seeded from a passphrase when
// one is set. Logs go to stderr; --verbose lowers the level to debug.
func generate(c *cli.Context, bits int, seed string) (*toyrsa.KeyPair, error) {
	params, err := core.GetParams(bits)
	if err != nil {
		return nil, err
	}

	g := &keygen.Generator{Params: params}
	if seed != "" {
		g, err = keygen.NewSeededGenerator(params, utils.Shake256([]byte(seed), 32))
		if err != nil {
			return nil, err
		}
	}
	g.Logger = logging.NewText(c.App.ErrWriter, flagBool(c, "verbose"))

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	kp, err := g.Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("generating key pair: %w", err)
	}
	if c.Bool("timing") {
		fmt.Fprintf(c.App.ErrWriter, "Key generation took: %v\n", time.Since(start))
	}
	return kp, nil
}

func parseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatText, FormatJSON:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (want text or json)", s)
	}
}

// parseInt parses a non-negative decimal integer. Zero is a valid
// ciphertext: the empty message encrypts to 0.
func parseInt(name, s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid %s: %q", name, s)
	}
	return v, nil
}

// parsePositive is parseInt for moduli and exponents, which must be above 0.
func parsePositive(name, s string) (*big.Int, error) {
	v, err := parseInt(name, s)
	if err != nil {
		return nil, err
	}
	if v.Sign() == 0 {
		return nil, fmt.Errorf("invalid %s: %q", name, s)
	}
	return v, nil
}

// flagBool reports whether a bool flag is set on the command or any parent,
// so --verbose works before or after the subcommand name.
func flagBool(c *cli.Context, name string) bool {
	for _, ctx := range c.Lineage() {
		if ctx.App == nil {
			continue
		}
		if ctx.IsSet(name) && ctx.Bool(name) {
			return true
		}
	}
	return false
}

// flagString returns the innermost explicitly set value of a string flag,
// falling back to the command's default.
func flagString(c *cli.Context, name string) string {
	for _, ctx := range c.Lineage() {
		if ctx.App == nil {
			continue
		}
		if ctx.IsSet(name) {
			return ctx.String(name)
		}
	}
	return c.String(name)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
