// Package oauth implements the client side of the OAuth 2.0 Authorization
// Code grant with PKCE (RFC 7636): authorization server metadata discovery
// (RFC 8414), authorization request construction, authorization code
// exchange, token refresh, and dynamic client registration (RFC 7591).
//
// Each operation is a single request/response unit with no shared state.
// The HTTP transport and the entropy source used for PKCE are injectable via
// [WithHTTPClient] and [WithEntropySource]; token and credential storage is
// the caller's responsibility.
package oauth
