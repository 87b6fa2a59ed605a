// Package endpoint implements the request-handling core of authkit: a
// registry of schema-typed endpoints, ordered before/after hook chains, and a
// router that turns them into a single HTTP handler with consistent error,
// redirect, and cookie semantics.
//
// # Execution pipeline
//
// An inbound request resolves to a registered Endpoint. The router derives a
// fresh Context from the request and the endpoint's declared schema
// (validation failures short-circuit everything else), then runs the hook
// chain:
//
//   - before-hooks run in registration order; each can short-circuit the
//     endpoint with a final Result, or merge a ContextPatch into the context
//     observed by later hooks and the handler,
//   - the endpoint handler runs unless a before-hook intercepted,
//   - after-hooks always run, in registration order, observing and optionally
//     rewriting the in-flight result or error via Context.Returned.
//
// The surviving outcome is serialized: JSON results render with their status,
// redirect results and redirect errors render as 3xx responses with a
// Location header, typed *Error values surface their status and message,
// anything untyped renders a generic 500 and is logged. Cookies buffered on
// the context at any phase are flushed onto the response in set order.
//
// # Direct calls
//
// Router.Call and Router.CallResponse invoke an endpoint without the HTTP
// transport while still running the full hook chain keyed by the endpoint's
// logical path, so direct-call and router-dispatch behavior are identical.
package endpoint
