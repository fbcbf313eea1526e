package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateJWT(42, "alice", "access", time.Hour, secret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "access", claims.Type)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(42, "alice", "access", time.Hour, "secret-a")
	require.NoError(t, err)

	_, err = ValidateJWT(token, "secret-b")
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	token, err := GenerateJWT(42, "alice", "access", -time.Minute, "secret")
	require.NoError(t, err)

	_, err = ValidateJWT(token, "secret")
	assert.Error(t, err)
}

func TestValidateStruct(t *testing.T) {
	type payload struct {
		Rating string `json:"rating" validate:"required,oneof=like dislike"`
	}

	assert.NoError(t, ValidateStruct(&payload{Rating: "like"}))

	err := ValidateStruct(&payload{Rating: "maybe"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Rating must be one of: like dislike")
}
