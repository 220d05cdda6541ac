package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/authbridge/oauthflow/pkg/networking"
	"github.com/authbridge/oauthflow/pkg/oauth"
)

// issuerFromFlags reads the persistent issuer flag and fails when it is unset.
func issuerFromFlags(cmd *cobra.Command) (string, error) {
	issuer, err := cmd.Flags().GetString("issuer")
	if err != nil {
		return "", err
	}
	if issuer == "" {
		return "", fmt.Errorf("the --issuer flag is required")
	}
	return issuer, nil
}

// clientOptions builds the OAuth client options from the persistent flags,
// wiring in a custom CA bundle when one was provided.
func clientOptions(cmd *cobra.Command) ([]oauth.Option, error) {
	caBundle, err := cmd.Flags().GetString("ca-bundle")
	if err != nil {
		return nil, err
	}
	if caBundle == "" {
		return nil, nil
	}

	client, err := networking.NewHttpClientBuilder().WithCABundle(caBundle).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build HTTP client: %w", err)
	}
	return []oauth.Option{oauth.WithHTTPClient(client)}, nil
}

// discoverMetadata fetches the server metadata for the issuer. A nil result
// means the server publishes no metadata document; the endpoint fallbacks
// take over in that case.
func discoverMetadata(cmd *cobra.Command, issuer string, opts []oauth.Option) (*oauth.AuthorizationServerMetadata, error) {
	return oauth.DiscoverAuthorizationServerMetadata(cmd.Context(), issuer, opts...)
}

// printJSON writes v to the command's stdout as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(out))
	return nil
}
