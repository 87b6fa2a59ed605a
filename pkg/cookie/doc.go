// Package cookie provides a cookie manager with consistent defaults and
// HMAC-signed values.
//
// A Manager holds one or more secrets (the first signs, all verify, which
// allows key rotation) and a set of default attributes applied to every
// cookie it builds. Cookies are built with Bake and written by the caller,
// which lets request pipelines buffer cookies and flush them onto the final
// response in order.
//
// Usage:
//
//	m, err := cookie.New([]string{secret}, cookie.WithSecure(true))
//	ck := m.Bake("state", m.Sign(state), cookie.WithMaxAge(600))
//	http.SetCookie(w, ck)
package cookie
