package oauth

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UserAgent is the user agent sent with every outgoing request.
const UserAgent = "oauthflow/1.0"

// GrantTypeAuthorizationCode is the grant type for authorization code exchange.
const GrantTypeAuthorizationCode = "authorization_code"

// GrantTypeRefreshToken is the grant type for token refresh.
const GrantTypeRefreshToken = "refresh_token"

// ResponseTypeCode is the response type for the authorization code flow.
const ResponseTypeCode = "code"

// PKCEMethodS256 is the SHA-256 based PKCE code challenge method.
const PKCEMethodS256 = "S256"

// TokenEndpointAuthMethodNone is the token endpoint auth method for public PKCE clients.
const TokenEndpointAuthMethodNone = "none"

// AuthorizationServerMetadata is the RFC 8414 authorization server metadata
// document. Immutable once fetched; a document that fails Validate is never
// returned to callers.
type AuthorizationServerMetadata struct {
	Issuer                            string   `json:"issuer"`
	AuthorizationEndpoint             string   `json:"authorization_endpoint"`
	TokenEndpoint                     string   `json:"token_endpoint"`
	RegistrationEndpoint              string   `json:"registration_endpoint,omitempty"`
	ResponseTypesSupported            []string `json:"response_types_supported"`
	CodeChallengeMethodsSupported     []string `json:"code_challenge_methods_supported,omitempty"`
	GrantTypesSupported               []string `json:"grant_types_supported,omitempty"`
	ScopesSupported                   []string `json:"scopes_supported,omitempty"`
	TokenEndpointAuthMethodsSupported []string `json:"token_endpoint_auth_methods_supported,omitempty"`
}

// Validate checks the required RFC 8414 fields.
func (m *AuthorizationServerMetadata) Validate() error {
	switch {
	case m.Issuer == "":
		return newSchemaValidationError(entityServerMetadata, "issuer")
	case m.AuthorizationEndpoint == "":
		return newSchemaValidationError(entityServerMetadata, "authorization_endpoint")
	case m.TokenEndpoint == "":
		return newSchemaValidationError(entityServerMetadata, "token_endpoint")
	case len(m.ResponseTypesSupported) == 0:
		return newSchemaValidationError(entityServerMetadata, "response_types_supported")
	}
	return nil
}

// SupportsResponseType reports whether the server advertises the response type.
func (m *AuthorizationServerMetadata) SupportsResponseType(responseType string) bool {
	return containsString(m.ResponseTypesSupported, responseType)
}

// SupportsCodeChallengeMethod reports whether the server advertises the PKCE
// code challenge method.
func (m *AuthorizationServerMetadata) SupportsCodeChallengeMethod(method string) bool {
	return containsString(m.CodeChallengeMethodsSupported, method)
}

// Tokens is a token endpoint response. Produced fresh by each exchange or
// refresh call, never mutated.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
}

// Validate checks the required token response fields.
func (t *Tokens) Validate() error {
	switch {
	case t.AccessToken == "":
		return newSchemaValidationError(entityTokenResponse, "access_token")
	case t.TokenType == "":
		return newSchemaValidationError(entityTokenResponse, "token_type")
	}
	return nil
}

// ClientMetadata is the request body for dynamic client registration (RFC 7591).
type ClientMetadata struct {
	// Required field according to RFC 7591
	RedirectURIs []string `json:"redirect_uris"`

	// Essential fields for OAuth flow
	ClientName              string   `json:"client_name,omitempty"`
	TokenEndpointAuthMethod string   `json:"token_endpoint_auth_method,omitempty"`
	GrantTypes              []string `json:"grant_types,omitempty"`
	ResponseTypes           []string `json:"response_types,omitempty"`
	Scopes                  []string `json:"scope,omitempty"`
}

// NewClientMetadata creates registration metadata for a public PKCE client
// using the authorization code flow.
func NewClientMetadata(clientName string, redirectURIs, scopes []string) *ClientMetadata {
	return &ClientMetadata{
		ClientName:              clientName,
		RedirectURIs:            redirectURIs,
		TokenEndpointAuthMethod: TokenEndpointAuthMethodNone,
		GrantTypes:              []string{GrantTypeAuthorizationCode, GrantTypeRefreshToken},
		ResponseTypes:           []string{ResponseTypeCode},
		Scopes:                  scopes,
	}
}

// ScopeList accepts the scope field both as a space-separated string and as a
// JSON array; registration endpoints in the wild return either.
type ScopeList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *ScopeList) UnmarshalJSON(data []byte) error {
	// Handle explicit null
	if string(data) == "null" {
		*s = nil
		return nil
	}

	// Try to decode as string first: "openid profile email"
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		str = strings.TrimSpace(str)
		if str == "" {
			*s = nil
			return nil
		}
		*s = strings.Fields(str) // split by spaces
		return nil
	}

	// Try to decode as []string: ["openid","profile","email"]
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*s = make([]string, 0, len(arr))
		for _, v := range arr {
			if v = strings.TrimSpace(v); v != "" {
				*s = append(*s, v)
			}
		}
		return nil
	}

	return fmt.Errorf("invalid scope format: %s", string(data))
}

// ClientInformation is the response from dynamic client registration
// (RFC 7591): the server-assigned credentials plus the echoed metadata.
// It is a credential; storing it is the caller's responsibility.
type ClientInformation struct {
	// Required fields
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret,omitempty"`

	// Optional fields that may be returned
	ClientIDIssuedAt        int64  `json:"client_id_issued_at,omitempty"`
	ClientSecretExpiresAt   int64  `json:"client_secret_expires_at,omitempty"`
	RegistrationAccessToken string `json:"registration_access_token,omitempty"`
	RegistrationClientURI   string `json:"registration_client_uri,omitempty"`

	// Echo back the essential request fields
	ClientName              string    `json:"client_name,omitempty"`
	RedirectURIs            []string  `json:"redirect_uris,omitempty"`
	TokenEndpointAuthMethod string    `json:"token_endpoint_auth_method,omitempty"`
	GrantTypes              []string  `json:"grant_types,omitempty"`
	ResponseTypes           []string  `json:"response_types,omitempty"`
	Scopes                  ScopeList `json:"scope,omitempty"`
}

// Validate checks the required registration response fields.
func (c *ClientInformation) Validate() error {
	if c.ClientID == "" {
		return newSchemaValidationError(entityClientInformation, "client_id")
	}
	return nil
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
