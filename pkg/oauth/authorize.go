package oauth

import (
	"errors"

	"golang.org/x/oauth2"
)

// AuthorizationRequestOptions are the caller-supplied parameters for an
// authorization request.
type AuthorizationRequestOptions struct {
	// ClientID is the OAuth client ID.
	ClientID string

	// RedirectURL is the redirect URL registered for the client.
	RedirectURL string

	// Scope is the space-separated scope string to request (optional).
	Scope string

	// State is an opaque value echoed back on the callback (optional).
	State string

	// Resource is the target resource indicator per RFC 8707 (optional).
	Resource string
}

// AuthorizationRequest is a browser-facing authorization URL together with
// the PKCE code verifier bound to it. The verifier never appears in the URL
// and must be retained until the authorization code is exchanged.
type AuthorizationRequest struct {
	URL          string
	CodeVerifier string
	State        string
}

// BuildAuthorizationURL constructs the authorization URL for the code flow
// with PKCE. The endpoint is metadata.AuthorizationEndpoint when metadata is
// supplied, otherwise {issuer}/authorize. When metadata is supplied, the
// server must advertise the "code" response type and the S256 challenge
// method; a missing capability fails with a *CapabilityMismatchError before
// any URL is built. No network call is made.
func BuildAuthorizationURL(
	issuer string,
	metadata *AuthorizationServerMetadata,
	opts AuthorizationRequestOptions,
	options ...Option,
) (*AuthorizationRequest, error) {
	if opts.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if opts.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	if metadata != nil {
		if !metadata.SupportsResponseType(ResponseTypeCode) {
			return nil, &CapabilityMismatchError{Capability: "response type " + ResponseTypeCode}
		}
		if !metadata.SupportsCodeChallengeMethod(PKCEMethodS256) {
			return nil, &CapabilityMismatchError{Capability: "code challenge method " + PKCEMethodS256}
		}
	}

	endpoint, err := resolveAuthorizationEndpoint(issuer, metadata)
	if err != nil {
		return nil, err
	}

	pkce, err := GeneratePKCEParams(options...)
	if err != nil {
		return nil, err
	}

	config := &oauth2.Config{
		ClientID:    opts.ClientID,
		RedirectURL: opts.RedirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL: endpoint,
		},
	}

	authOpts := []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam("code_challenge", pkce.CodeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", PKCEMethodS256),
	}
	if opts.Scope != "" {
		authOpts = append(authOpts, oauth2.SetAuthURLParam("scope", opts.Scope))
	}
	if opts.Resource != "" {
		authOpts = append(authOpts, oauth2.SetAuthURLParam("resource", opts.Resource))
	}

	return &AuthorizationRequest{
		URL:          config.AuthCodeURL(opts.State, authOpts...),
		CodeVerifier: pkce.CodeVerifier,
		State:        opts.State,
	}, nil
}
