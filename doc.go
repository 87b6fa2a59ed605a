// Package authkit is an authentication toolkit for Go web applications.
//
// It combines a request-handling core — schema-typed endpoints, ordered
// before/after hook chains, and a router with unified error, redirect and
// cookie semantics — with OAuth2 provider adapters implementing the
// three-legged authorization-code flow.
//
// The root package re-exports the engine types so common applications import
// a single package:
//
//	rt := authkit.NewRouter()
//	_ = rt.Register(&authkit.Endpoint{
//		Name:   "health",
//		Method: http.MethodGet,
//		Path:   "/health",
//		Handler: func(c *authkit.Context) (*authkit.Result, error) {
//			return authkit.JSON(map[string]string{"status": "ok"}), nil
//		},
//	})
//	http.ListenAndServe(":8080", rt)
//
// Subpackages carry the building blocks: endpoint (the execution core),
// binder (request binding), pkg/oauth (provider adapters), pkg/statestore
// (authorization request state), pkg/cookie, pkg/logger, pkg/config, and
// svc/auth (the ready-made login-flow endpoints).
package authkit
