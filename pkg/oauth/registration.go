package oauth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/authbridge/oauthflow/pkg/logger"
	"github.com/authbridge/oauthflow/pkg/networking"
)

// RegisterClient performs dynamic client registration (RFC 7591) against the
// server's registration endpoint.
//
// When metadata is supplied it must advertise a registration_endpoint;
// otherwise the call fails with a *CapabilityMismatchError before any
// network request is made. When metadata is nil the endpoint is resolved via
// metadata discovery on the issuer.
func RegisterClient(
	ctx context.Context,
	issuer string,
	metadata *AuthorizationServerMetadata,
	clientMetadata *ClientMetadata,
	opts ...Option,
) (*ClientInformation, error) {
	if clientMetadata == nil {
		return nil, errors.New("registration request cannot be nil")
	}
	if len(clientMetadata.RedirectURIs) == 0 {
		return nil, errors.New("at least one redirect URI is required")
	}

	endpoint, err := resolveRegistrationEndpoint(ctx, issuer, metadata, opts)
	if err != nil {
		return nil, err
	}
	if err := networking.ValidateEndpointURL(endpoint); err != nil {
		return nil, fmt.Errorf("invalid registration endpoint URL: %w", err)
	}

	body, err := json.Marshal(clientMetadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal registration request: %w", err)
	}

	o := applyOptions(opts)
	res, err := networking.FetchJSON[ClientInformation](
		ctx,
		o.client,
		endpoint,
		networking.WithMethod(http.MethodPost),
		networking.WithHeader("Content-Type", networking.ContentTypeJSON),
		networking.WithHeader("User-Agent", UserAgent),
		networking.WithBody(bytes.NewReader(body)),
		networking.WithAcceptedStatus(http.StatusCreated),
		networking.WithErrorHandler(registrationError),
	)
	if err != nil {
		return nil, schemaErrorFromDecode(entityClientInformation, err)
	}

	info := res.Data
	if err := info.Validate(); err != nil {
		return nil, err
	}

	logger.Infof("Successfully registered OAuth client dynamically - client_id: %s", info.ClientID)
	return &info, nil
}

// resolveRegistrationEndpoint returns the registration endpoint from
// supplied metadata, or discovers one from the issuer.
func resolveRegistrationEndpoint(
	ctx context.Context,
	issuer string,
	metadata *AuthorizationServerMetadata,
	opts []Option,
) (string, error) {
	if metadata != nil {
		if metadata.RegistrationEndpoint == "" {
			return "", &CapabilityMismatchError{Capability: "dynamic client registration"}
		}
		return metadata.RegistrationEndpoint, nil
	}

	discovered, err := DiscoverAuthorizationServerMetadata(ctx, issuer, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to discover registration endpoint: %w", err)
	}
	if discovered == nil || discovered.RegistrationEndpoint == "" {
		return "", &CapabilityMismatchError{Capability: "dynamic client registration"}
	}
	return discovered.RegistrationEndpoint, nil
}

// registrationError produces the failure message for non-success
// registration responses.
func registrationError(resp *http.Response, body []byte) error {
	preview := string(body)
	if len(preview) > networking.DefaultErrorPreviewSize {
		preview = preview[:networking.DefaultErrorPreviewSize]
	}
	return fmt.Errorf("Dynamic client registration failed with status %d: %s", resp.StatusCode, preview) //nolint:staticcheck // message is part of the endpoint contract
}
