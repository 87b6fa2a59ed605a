// Package statestore persists OAuth2 authorization request state between the
// "start login" redirect and the provider callback.
//
// Each entry is keyed by the opaque state token sent to the provider and is
// consumable exactly once, which is the replay-prevention contract the login
// flow depends on. Two implementations ship: an in-memory store for
// single-instance deployments and tests, and a Redis-backed store for
// anything horizontally scaled.
package statestore
