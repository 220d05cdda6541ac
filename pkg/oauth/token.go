package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/authbridge/oauthflow/pkg/logger"
	"github.com/authbridge/oauthflow/pkg/networking"
)

// ExchangeRequest contains the parameters for an authorization code exchange.
type ExchangeRequest struct {
	// Code is the authorization code received on the callback.
	Code string

	// CodeVerifier is the PKCE verifier generated for the authorization request.
	CodeVerifier string

	// RedirectURL must match the redirect URL of the authorization request.
	RedirectURL string

	// ClientID is the OAuth client ID.
	ClientID string

	// ClientSecret is sent only when present (confidential clients).
	ClientSecret string
}

// RefreshRequest contains the parameters for a token refresh.
type RefreshRequest struct {
	// RefreshToken is the refresh token from a previous exchange.
	RefreshToken string

	// ClientID is the OAuth client ID.
	ClientID string

	// ClientSecret is sent only when present (confidential clients).
	ClientSecret string
}

// ExchangeAuthorizationCode trades an authorization code and its PKCE
// verifier for tokens. The endpoint is metadata.TokenEndpoint when metadata
// is supplied, otherwise {issuer}/token.
func ExchangeAuthorizationCode(
	ctx context.Context,
	issuer string,
	metadata *AuthorizationServerMetadata,
	req ExchangeRequest,
	opts ...Option,
) (*Tokens, error) {
	switch {
	case req.Code == "":
		return nil, errors.New("authorization code is required")
	case req.CodeVerifier == "":
		return nil, errors.New("code verifier is required")
	case req.RedirectURL == "":
		return nil, errors.New("redirect URL is required")
	case req.ClientID == "":
		return nil, errors.New("client ID is required")
	}

	form := url.Values{
		"grant_type":    {GrantTypeAuthorizationCode},
		"code":          {req.Code},
		"code_verifier": {req.CodeVerifier},
		"redirect_uri":  {req.RedirectURL},
		"client_id":     {req.ClientID},
	}
	if req.ClientSecret != "" {
		form.Set("client_secret", req.ClientSecret)
	}

	tokens, err := postTokenEndpoint(ctx, issuer, metadata, form, opts)
	if err != nil {
		return nil, err
	}

	logger.Debugf("Exchanged authorization code for tokens (client_id=%s)", req.ClientID)
	return tokens, nil
}

// RefreshAccessToken trades a refresh token for a new set of tokens. It uses
// the same endpoint resolution and failure vocabulary as
// ExchangeAuthorizationCode since both hit the token endpoint.
func RefreshAccessToken(
	ctx context.Context,
	issuer string,
	metadata *AuthorizationServerMetadata,
	req RefreshRequest,
	opts ...Option,
) (*Tokens, error) {
	switch {
	case req.RefreshToken == "":
		return nil, errors.New("refresh token is required")
	case req.ClientID == "":
		return nil, errors.New("client ID is required")
	}

	form := url.Values{
		"grant_type":    {GrantTypeRefreshToken},
		"refresh_token": {req.RefreshToken},
		"client_id":     {req.ClientID},
	}
	if req.ClientSecret != "" {
		form.Set("client_secret", req.ClientSecret)
	}

	tokens, err := postTokenEndpoint(ctx, issuer, metadata, form, opts)
	if err != nil {
		return nil, err
	}

	logger.Debugf("Refreshed access token (client_id=%s)", req.ClientID)
	return tokens, nil
}

// postTokenEndpoint sends a form-encoded POST to the resolved token endpoint
// and validates the response against the token schema.
func postTokenEndpoint(
	ctx context.Context,
	issuer string,
	metadata *AuthorizationServerMetadata,
	form url.Values,
	opts []Option,
) (*Tokens, error) {
	o := applyOptions(opts)

	endpoint, err := resolveTokenEndpoint(issuer, metadata)
	if err != nil {
		return nil, err
	}

	res, err := networking.FetchJSONWithForm[Tokens](
		ctx,
		o.client,
		endpoint,
		form,
		networking.WithHeader("User-Agent", UserAgent),
		networking.WithErrorHandler(tokenEndpointError),
	)
	if err != nil {
		return nil, schemaErrorFromDecode(entityTokenResponse, err)
	}

	tokens := res.Data
	if err := tokens.Validate(); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// tokenEndpointError produces the shared failure message for non-success
// token endpoint responses.
func tokenEndpointError(resp *http.Response, body []byte) error {
	preview := string(body)
	if len(preview) > networking.DefaultErrorPreviewSize {
		preview = preview[:networking.DefaultErrorPreviewSize]
	}
	return fmt.Errorf("Token exchange failed with status %d: %s", resp.StatusCode, preview) //nolint:staticcheck // message is part of the endpoint contract
}
