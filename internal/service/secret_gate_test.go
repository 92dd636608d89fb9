package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSecretGatePlain(t *testing.T) {
	gate := NewSecretGate("s3cret", "")

	assert.NoError(t, gate.Check("s3cret"))
	assert.ErrorIs(t, gate.Check("S3CRET"), ErrUnauthorized)
	assert.ErrorIs(t, gate.Check("s3cret "), ErrUnauthorized)
	assert.ErrorIs(t, gate.Check(""), ErrUnauthorized)
}

func TestSecretGateHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	// The hash wins over a plain secret that disagrees with it.
	gate := NewSecretGate("other", string(hash))
	assert.NoError(t, gate.Check("s3cret"))
	assert.ErrorIs(t, gate.Check("other"), ErrUnauthorized)
}

func TestSecretGateRequiresSecret(t *testing.T) {
	assert.Panics(t, func() { NewSecretGate("", "") })
}
