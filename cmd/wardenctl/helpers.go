package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/doodlesbykumbi/warden/pkg/authn/jwtauthn"
	"github.com/doodlesbykumbi/warden/pkg/authz"
	"github.com/doodlesbykumbi/warden/pkg/config"
)

// signingKey reads the WARDEN_SIGNING_KEY environment variable.
func signingKey() ([]byte, error) {
	keyB64, ok := os.LookupEnv("WARDEN_SIGNING_KEY")
	if !ok {
		return nil, fmt.Errorf("WARDEN_SIGNING_KEY environment variable is required")
	}

	key, err := base64.StdEncoding.DecodeString(keyB64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode WARDEN_SIGNING_KEY: %w", err)
	}
	return key, nil
}

// jwtAuthenticator builds the JWT authenticator from configuration and
// the signing key, optionally wired to an authorizer.
func jwtAuthenticator(authorizer authz.Authorizer) (*jwtauthn.Authenticator, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	key, err := signingKey()
	if err != nil {
		return nil, nil, err
	}

	var opts []jwtauthn.Option
	if authorizer != nil {
		opts = append(opts, jwtauthn.WithAuthorizer(authorizer))
	}

	auth := jwtauthn.New(jwtauthn.Config{
		Key:        key,
		Issuer:     cfg.Issuer,
		Audience:   cfg.Audience,
		RolesClaim: cfg.RolesClaim,
	}, opts...)

	return auth, cfg, nil
}
