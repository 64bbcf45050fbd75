// Package apikey checks caller credentials against a fixed set of API keys.
package apikey

import (
	"crypto/subtle"
	"errors"
	"strings"
)

var (
	ErrCredentialRequired = errors.New("API key required")
	ErrInvalidCredential  = errors.New("Invalid API key")
)

const redactPrefix = 8

// Gate holds the allowed keys. It is immutable and safe for concurrent use.
type Gate struct {
	keys [][]byte
}

// NewGate creates a Gate. Blank entries are ignored; surrounding whitespace is trimmed.
func NewGate(keys ...string) *Gate {
	g := &Gate{}
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			g.keys = append(g.keys, []byte(k))
		}
	}
	return g
}

// Authenticate returns nil when credential exactly matches an allowed key.
// Every allowed key is compared in constant time.
func (g *Gate) Authenticate(credential string) error {
	if credential == "" {
		return ErrCredentialRequired
	}

	c := []byte(credential)
	match := 0
	for _, k := range g.keys {
		match |= subtle.ConstantTimeCompare(c, k)
	}
	if match != 1 {
		return ErrInvalidCredential
	}
	return nil
}

// Len reports how many keys are configured.
func (g *Gate) Len() int { return len(g.keys) }

// Redact returns a loggable form of a credential: its first eight characters
// followed by "...". Shorter values are fully masked.
func Redact(credential string) string {
	if credential == "" {
		return ""
	}
	if len(credential) <= redactPrefix {
		return "***"
	}
	return credential[:redactPrefix] + "..."
}
