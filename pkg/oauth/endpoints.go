package oauth

import (
	"fmt"
	"strings"

	"github.com/authbridge/oauthflow/pkg/networking"
)

// Default endpoint paths used when no metadata is available, per the OAuth
// endpoint conventions.
const (
	defaultAuthorizationPath = "/authorize"
	defaultTokenPath         = "/token"
)

// resolveAuthorizationEndpoint picks the authorization endpoint from
// metadata when supplied, otherwise falls back to {issuer}/authorize.
func resolveAuthorizationEndpoint(issuer string, metadata *AuthorizationServerMetadata) (string, error) {
	if metadata != nil {
		return metadata.AuthorizationEndpoint, nil
	}
	return defaultEndpoint(issuer, defaultAuthorizationPath)
}

// resolveTokenEndpoint picks the token endpoint from metadata when supplied,
// otherwise falls back to {issuer}/token.
func resolveTokenEndpoint(issuer string, metadata *AuthorizationServerMetadata) (string, error) {
	if metadata != nil {
		return metadata.TokenEndpoint, nil
	}
	return defaultEndpoint(issuer, defaultTokenPath)
}

func defaultEndpoint(issuer, endpointPath string) (string, error) {
	if issuer == "" {
		return "", fmt.Errorf("issuer is required")
	}
	if err := networking.ValidateEndpointURL(issuer); err != nil {
		return "", fmt.Errorf("invalid issuer URL: %w", err)
	}
	return strings.TrimSuffix(issuer, "/") + endpointPath, nil
}
