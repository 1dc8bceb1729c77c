package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/warden/pkg/authz"
	"github.com/doodlesbykumbi/warden/pkg/security"
)

// RequireRoles guards a handler: the caller must hold every listed
// role. Anonymous callers get 401, authenticated callers missing a
// role get 403.
func RequireRoles(facade *security.Facade, roles ...string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !facade.IsAuthenticated(ctx) {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}
			if !facade.HasAllRoles(ctx, roles) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission guards a handler with a permission check. The
// resource pattern may reference route variables as {name}; they are
// filled from mux.Vars, so a route like /secrets/{id} can guard
// "read" on "secret:{id}".
func RequirePermission(facade *security.Facade, privilege, resourcePattern string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resource := resourcePattern
			for name, value := range mux.Vars(r) {
				resource = strings.ReplaceAll(resource, "{"+name+"}", value)
			}

			p := authz.Permission{Privilege: privilege, Resource: resource}
			if err := facade.CheckPermission(r.Context(), p); err != nil {
				status := http.StatusForbidden
				if !facade.IsAuthenticated(r.Context()) {
					status = http.StatusUnauthorized
				}
				http.Error(w, err.Error(), status)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
