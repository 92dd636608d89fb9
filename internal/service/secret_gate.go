package service

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// SecretGate checks the shared admin secret that callers pass with every
// gated request.
type SecretGate interface {
	Check(candidate string) error
}

// secretGate implements SecretGate.
type secretGate struct {
	secret []byte
	hash   []byte
}

// NewSecretGate builds a gate from a plain secret or a bcrypt hash of it.
// When a hash is given it is the only thing checked.
func NewSecretGate(secret, secretHash string) SecretGate {
	if secret == "" && secretHash == "" {
		panic("admin secret cannot be empty") // Critical configuration
	}
	return &secretGate{
		secret: []byte(secret),
		hash:   []byte(secretHash),
	}
}

// Check returns ErrUnauthorized unless candidate matches.
func (g *secretGate) Check(candidate string) error {
	if candidate == "" {
		return ErrUnauthorized
	}
	if len(g.hash) > 0 {
		if bcrypt.CompareHashAndPassword(g.hash, []byte(candidate)) != nil {
			return ErrUnauthorized
		}
		return nil
	}
	if subtle.ConstantTimeCompare(g.secret, []byte(candidate)) != 1 {
		return ErrUnauthorized
	}
	return nil
}
