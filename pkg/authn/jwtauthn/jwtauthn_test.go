package jwtauthn

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/warden/pkg/authn"
	"github.com/doodlesbykumbi/warden/pkg/identity"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestAuthenticator_Authenticate_Success(t *testing.T) {
	auth := New(Config{Key: testKey})

	signed, err := auth.Mint("alice", []string{"admin", "auditor"}, time.Minute)
	require.NoError(t, err)

	id, err := auth.Authenticate(context.Background(), authn.BearerToken(signed))
	require.NoError(t, err)

	primary, ok := id.Principal()
	require.True(t, ok)
	assert.Equal(t, identity.TypeLogin, primary.Type())
	assert.Equal(t, "alice", primary.Value())

	assert.True(t, id.HasRole("admin"))
	assert.True(t, id.HasRole("auditor"))
	assert.False(t, id.HasRole("guest"))
}

func TestAuthenticator_Authenticate_EmailClaim(t *testing.T) {
	auth := New(Config{Key: testKey})

	now := time.Now()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "alice",
		"email": "alice@example.com",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Minute).Unix(),
	}).SignedString(testKey)
	require.NoError(t, err)

	id, err := auth.Authenticate(context.Background(), authn.BearerToken(signed))
	require.NoError(t, err)

	email, ok := id.PrincipalByType(identity.TypeEmail)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", email.Value())
}

func TestAuthenticator_Authenticate_Expired(t *testing.T) {
	auth := New(Config{Key: testKey})

	signed, err := auth.Mint("alice", nil, -time.Minute)
	require.NoError(t, err)

	_, err = auth.Authenticate(context.Background(), authn.BearerToken(signed))

	var authErr *authn.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestAuthenticator_Authenticate_WrongKey(t *testing.T) {
	issuer := New(Config{Key: []byte("another-key-entirely-not-this-one")})
	auth := New(Config{Key: testKey})

	signed, err := issuer.Mint("alice", nil, time.Minute)
	require.NoError(t, err)

	_, err = auth.Authenticate(context.Background(), authn.BearerToken(signed))

	var authErr *authn.AuthenticationError
	assert.ErrorAs(t, err, &authErr)
}

func TestAuthenticator_Authenticate_IssuerAudience(t *testing.T) {
	auth := New(Config{Key: testKey, Issuer: "warden-test", Audience: "api"})

	signed, err := auth.Mint("alice", nil, time.Minute)
	require.NoError(t, err)

	_, err = auth.Authenticate(context.Background(), authn.BearerToken(signed))
	assert.NoError(t, err)

	// A token from an issuer with a different iss claim is rejected.
	other := New(Config{Key: testKey, Issuer: "someone-else"})
	signed, err = other.Mint("alice", nil, time.Minute)
	require.NoError(t, err)

	_, err = auth.Authenticate(context.Background(), authn.BearerToken(signed))
	var authErr *authn.AuthenticationError
	assert.ErrorAs(t, err, &authErr)
}

func TestAuthenticator_Authenticate_NoSubject(t *testing.T) {
	auth := New(Config{Key: testKey})

	now := time.Now()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(time.Minute).Unix(),
	}).SignedString(testKey)
	require.NoError(t, err)

	_, err = auth.Authenticate(context.Background(), authn.BearerToken(signed))

	var authErr *authn.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "token has no subject", authErr.Reason)
}

func TestAuthenticator_Authenticate_BadRolesClaim(t *testing.T) {
	auth := New(Config{Key: testKey})

	now := time.Now()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "alice",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Minute).Unix(),
		"roles": "admin", // must be a list
	}).SignedString(testKey)
	require.NoError(t, err)

	_, err = auth.Authenticate(context.Background(), authn.BearerToken(signed))

	var authErr *authn.AuthenticationError
	assert.ErrorAs(t, err, &authErr)
}

func TestAuthenticator_Authenticate_NoKey(t *testing.T) {
	auth := New(Config{})

	_, err := auth.Authenticate(context.Background(), authn.BearerToken("whatever"))

	var authErr *authn.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "signing key is not configured", authErr.Reason)
}
