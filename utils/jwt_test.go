package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndParseAPIToken(t *testing.T) {
	token, err := CreateAPIToken("secret", "ask-cli", time.Hour)
	require.NoError(t, err)

	claims, err := ParseAPIToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "ask-cli", claims.Subject)
}

func TestParseAPITokenWrongSecret(t *testing.T) {
	token, err := CreateAPIToken("secret", "ask-cli", time.Hour)
	require.NoError(t, err)

	_, err = ParseAPIToken("other", token)
	assert.Error(t, err)
}

func TestParseAPITokenExpired(t *testing.T) {
	token, err := CreateAPIToken("secret", "ask-cli", -time.Minute)
	require.NoError(t, err)

	_, err = ParseAPIToken("secret", token)
	assert.Error(t, err)
}

func TestParseAPITokenGarbage(t *testing.T) {
	_, err := ParseAPIToken("secret", "not-a-token")
	assert.Error(t, err)
}
