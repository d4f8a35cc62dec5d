package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	value, err := EncodeCookie("sess-42", secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, value)

	id, err := DecodeCookie(value, secret)
	require.NoError(t, err)
	assert.Equal(t, "sess-42", id)
}

func TestCookieWrongSecretRejected(t *testing.T) {
	value, err := EncodeCookie("sess-42", []byte("secret-a"), time.Hour)
	require.NoError(t, err)

	_, err = DecodeCookie(value, []byte("secret-b"))
	assert.Error(t, err)
}

func TestCookieTamperedValueRejected(t *testing.T) {
	secret := []byte("test-secret")
	value, err := EncodeCookie("sess-42", secret, time.Hour)
	require.NoError(t, err)

	_, err = DecodeCookie(value+"x", secret)
	assert.Error(t, err)

	_, err = DecodeCookie("not-a-jwt", secret)
	assert.Error(t, err)
}

func TestCookieExpiredRejected(t *testing.T) {
	secret := []byte("test-secret")
	value, err := EncodeCookie("sess-42", secret, -time.Minute)
	require.NoError(t, err)

	_, err = DecodeCookie(value, secret)
	assert.Error(t, err)
}
