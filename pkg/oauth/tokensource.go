package oauth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/authbridge/oauthflow/pkg/logger"
)

// TokenResult is a processed token response: the raw token material plus any
// JWT claims that could be extracted without verification. Signature
// verification is the responsibility of the resource server.
type TokenResult struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	Expiry       time.Time
	Claims       jwt.MapClaims
	IDToken      string
}

// OAuth2Token converts a token response into an *oauth2.Token, translating
// expires_in into an absolute expiry.
func (t *Tokens) OAuth2Token() *oauth2.Token {
	token := &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
	}
	if t.ExpiresIn > 0 {
		token.Expiry = time.Now().Add(time.Duration(t.ExpiresIn) * time.Second)
	}
	return token
}

// ProcessTokens turns a validated token response into a TokenResult,
// preferring claims from the ID token when present (OIDC providers) and
// falling back to the access token (e.g. Keycloak). Opaque tokens yield nil
// claims, not an error.
func ProcessTokens(tokens *Tokens) *TokenResult {
	result := &TokenResult{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    tokens.TokenType,
		IDToken:      tokens.IDToken,
	}
	if tokens.ExpiresIn > 0 {
		result.Expiry = time.Now().Add(time.Duration(tokens.ExpiresIn) * time.Second)
	}

	if tokens.IDToken != "" {
		if claims, err := extractJWTClaims(tokens.IDToken); err == nil {
			result.Claims = claims
			return result
		} else {
			logger.Debugf("Could not extract JWT claims from ID token: %v", err)
		}
	}

	if claims, err := extractJWTClaims(tokens.AccessToken); err == nil {
		result.Claims = claims
	} else {
		logger.Debugf("Could not extract JWT claims from access token (may be opaque token): %v", err)
	}

	return result
}

// NewTokenSource returns an oauth2.TokenSource seeded with the given tokens
// that refreshes against the resolved token endpoint only when needed.
func NewTokenSource(
	ctx context.Context,
	issuer string,
	metadata *AuthorizationServerMetadata,
	clientID, clientSecret string,
	tokens *Tokens,
) (oauth2.TokenSource, error) {
	if clientID == "" {
		return nil, errors.New("client ID is required")
	}
	if tokens == nil {
		return nil, errors.New("tokens are required")
	}

	endpoint, err := resolveTokenEndpoint(issuer, metadata)
	if err != nil {
		return nil, err
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL: endpoint,
		},
	}

	token := tokens.OAuth2Token()

	// ReuseTokenSource ensures that refresh happens only when needed
	return oauth2.ReuseTokenSource(token, config.TokenSource(ctx, token)), nil
}

// extractJWTClaims attempts to extract claims from a JWT token without validation
func extractJWTClaims(tokenString string) (jwt.MapClaims, error) {
	// Parse without verification to extract claims
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("failed to extract claims")
	}

	return claims, nil
}
