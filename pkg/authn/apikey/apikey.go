package apikey

import (
	"context"
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/warden/pkg/authn"
	"github.com/doodlesbykumbi/warden/pkg/authz"
	"github.com/doodlesbykumbi/warden/pkg/identity"
	"github.com/doodlesbykumbi/warden/pkg/session"
)

// Credential is the database row behind a login.
type Credential struct {
	Login      string `gorm:"column:login;primaryKey"`
	SecretHash []byte `gorm:"column:secret_hash"`
	Email      string `gorm:"column:email"`
}

func (Credential) TableName() string {
	return "credentials"
}

// RoleMembership maps a login to one of its roles.
type RoleMembership struct {
	Login string `gorm:"column:login;primaryKey"`
	Role  string `gorm:"column:role;primaryKey"`
}

func (RoleMembership) TableName() string {
	return "role_memberships"
}

// Authenticator validates login/secret credentials against bcrypt
// hashes stored in the credentials table.
type Authenticator struct {
	db         *gorm.DB
	authorizer authz.Authorizer
	sessions   session.Store
}

// Option configures the Authenticator.
type Option func(*Authenticator)

// WithAuthorizer sets the permission engine wired into produced
// identities.
func WithAuthorizer(a authz.Authorizer) Option {
	return func(auth *Authenticator) { auth.authorizer = a }
}

// WithSessionStore sets the session store wired into produced
// identities.
func WithSessionStore(s session.Store) Option {
	return func(auth *Authenticator) { auth.sessions = s }
}

// New creates a new API key authenticator.
func New(db *gorm.DB, opts ...Option) *Authenticator {
	auth := &Authenticator{db: db}
	for _, opt := range opts {
		opt(auth)
	}
	return auth
}

// HashSecret produces the bcrypt hash stored in a Credential row.
func HashSecret(secret []byte, cost int) ([]byte, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return bcrypt.GenerateFromPassword(secret, cost)
}

// Authenticate validates the token's login and secret. The failure
// message never reveals whether the login or the secret was wrong.
func (a *Authenticator) Authenticate(ctx context.Context, tok authn.Token) (identity.Context, error) {
	login := tok.Principal()
	if login == "" {
		return nil, authn.NewAuthenticationError("login is required", nil)
	}

	var secretHash []byte
	var email string
	row := a.db.WithContext(ctx).
		Raw(`SELECT secret_hash, COALESCE(email, '') FROM credentials WHERE login = ?`, login).
		Row()
	if err := row.Scan(&secretHash, &email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authn.NewAuthenticationError("invalid login or secret", nil)
		}
		return nil, authn.NewAuthenticationError("credential lookup failed", err)
	}

	if len(secretHash) == 0 {
		return nil, authn.NewAuthenticationError("invalid login or secret", nil)
	}

	if err := bcrypt.CompareHashAndPassword(secretHash, tok.Credentials()); err != nil {
		return nil, authn.NewAuthenticationError("invalid login or secret", nil)
	}

	var roles []string
	err := a.db.WithContext(ctx).
		Raw(`SELECT role FROM role_memberships WHERE login = ? ORDER BY role`, login).
		Scan(&roles).Error
	if err != nil {
		return nil, authn.NewAuthenticationError("role lookup failed", err)
	}

	principals := []identity.Principal{identity.NewPrincipal(identity.TypeLogin, login)}
	if email != "" {
		principals = append(principals, identity.NewPrincipal(identity.TypeEmail, email))
	}

	return identity.NewResolved(
		principals,
		roles,
		identity.WithAuthorizer(a.authorizer),
		identity.WithSessionStore(a.sessions),
	), nil
}
