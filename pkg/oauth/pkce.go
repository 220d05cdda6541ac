package oauth

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
)

// PKCEParams is a PKCE code verifier and its derived challenge (RFC 7636).
// One pair is generated per authorization attempt; the verifier must be
// retained by the caller until the code is exchanged.
type PKCEParams struct {
	CodeVerifier  string
	CodeChallenge string
}

// GeneratePKCEParams generates a PKCE code verifier and S256 challenge.
func GeneratePKCEParams(opts ...Option) (*PKCEParams, error) {
	o := applyOptions(opts)

	// Generate code verifier (43-128 characters, RFC 7636)
	verifierBytes := make([]byte, 32)
	if _, err := io.ReadFull(o.rand, verifierBytes); err != nil {
		return nil, fmt.Errorf("failed to generate code verifier: %w", err)
	}
	verifier := base64.RawURLEncoding.EncodeToString(verifierBytes)

	return &PKCEParams{
		CodeVerifier:  verifier,
		CodeChallenge: DeriveCodeChallenge(verifier),
	}, nil
}

// DeriveCodeChallenge derives the S256 code challenge for a verifier:
// base64url(SHA-256(verifier)) without padding.
func DeriveCodeChallenge(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

// GenerateState generates a random state parameter for callers that do not
// carry their own.
func GenerateState(opts ...Option) (string, error) {
	o := applyOptions(opts)

	stateBytes := make([]byte, 16)
	if _, err := io.ReadFull(o.rand, stateBytes); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(stateBytes), nil
}
