package oauth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/authbridge/oauthflow/pkg/logger"
	"github.com/authbridge/oauthflow/pkg/networking"
)

// WellKnownOAuthServerPath is the RFC 8414 well-known path for authorization
// server metadata.
const WellKnownOAuthServerPath = "/.well-known/oauth-authorization-server"

// DiscoverAuthorizationServerMetadata fetches the authorization server
// metadata document from {issuer}/.well-known/oauth-authorization-server.
//
// A 404 response is not an error: it returns (nil, nil) so callers can fall
// back to the default endpoint conventions. Any other non-success status
// yields a *networking.HTTPError, and a 200 body that fails schema
// validation yields a *SchemaValidationError.
func DiscoverAuthorizationServerMetadata(
	ctx context.Context,
	issuer string,
	opts ...Option,
) (*AuthorizationServerMetadata, error) {
	o := applyOptions(opts)

	wellKnownURL, err := buildWellKnownURL(issuer)
	if err != nil {
		return nil, err
	}

	res, err := networking.FetchJSON[AuthorizationServerMetadata](
		ctx,
		o.client,
		wellKnownURL,
		networking.WithHeader("User-Agent", UserAgent),
	)
	if err != nil {
		if networking.IsHTTPError(err, http.StatusNotFound) {
			logger.Debugf("No authorization server metadata at %s, falling back to default endpoints", wellKnownURL)
			return nil, nil
		}
		return nil, schemaErrorFromDecode(entityServerMetadata, err)
	}

	doc := res.Data
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	logger.Debugf("Discovered authorization server metadata for issuer %s", doc.Issuer)
	return &doc, nil
}

// buildWellKnownURL validates the issuer and appends the well-known path.
func buildWellKnownURL(issuer string) (string, error) {
	if issuer == "" {
		return "", fmt.Errorf("issuer is required")
	}
	if err := networking.ValidateEndpointURL(issuer); err != nil {
		return "", fmt.Errorf("invalid issuer URL: %w", err)
	}
	return strings.TrimSuffix(issuer, "/") + WellKnownOAuthServerPath, nil
}
