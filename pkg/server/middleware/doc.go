// Package middleware binds warden to HTTP servers.
//
// Authenticator opens an execution flow for each request and resolves
// the Authorization header through the security façade; RequireRoles
// and RequirePermission guard individual routes. The guards compose
// with gorilla/mux:
//
//	r := mux.NewRouter()
//	auth := middleware.NewAuthenticator(facade)
//	r.Use(auth.Middleware)
//
//	secrets := r.PathPrefix("/secrets").Subrouter()
//	secrets.Use(middleware.RequirePermission(facade, "read", "secret:{id}"))
//	secrets.HandleFunc("/{id}", getSecret).Methods("GET")
package middleware
