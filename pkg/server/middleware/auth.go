package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/doodlesbykumbi/warden/pkg/authn"
	"github.com/doodlesbykumbi/warden/pkg/flow"
	"github.com/doodlesbykumbi/warden/pkg/security"
)

var tokenRegex = regexp.MustCompile(`^Token token="(.*)"`)

// Authenticator is middleware that opens an execution flow per request
// and binds the caller's identity from the Authorization header.
//
// Accepted header forms: "Bearer <token>", `Token token="<token>"`, and
// HTTP basic auth. A request without credentials passes through
// anonymously unless the middleware is Required; a request with bad
// credentials is rejected in both modes.
type Authenticator struct {
	facade   *security.Facade
	required bool
}

// Option configures the Authenticator.
type Option func(*Authenticator)

// Required rejects requests that carry no credentials at all.
func Required() Option {
	return func(a *Authenticator) { a.required = true }
}

// NewAuthenticator creates the middleware around facade.
func NewAuthenticator(facade *security.Facade, opts ...Option) *Authenticator {
	a := &Authenticator{facade: facade}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Middleware returns the http.Handler wrapper.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := flow.NewContext(r.Context())
		r = r.WithContext(ctx)

		tok, ok := tokenFromRequest(r)
		if !ok {
			if a.required {
				http.Error(w, "Authorization missing", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		if err := a.facade.Authenticate(ctx, tok); err != nil {
			http.Error(w, "Authentication failed", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func tokenFromRequest(r *http.Request) (authn.Token, bool) {
	if login, secret, ok := r.BasicAuth(); ok {
		return authn.Credentials{Login: login, Secret: []byte(secret)}, true
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, false
	}

	if raw, ok := strings.CutPrefix(header, "Bearer "); ok {
		return authn.BearerToken(strings.TrimSpace(raw)), true
	}

	if matches := tokenRegex.FindStringSubmatch(header); len(matches) == 2 {
		return authn.BearerToken(matches[1]), true
	}

	return nil, false
}
