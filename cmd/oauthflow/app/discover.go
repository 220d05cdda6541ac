package app

import (
	"github.com/spf13/cobra"

	"github.com/authbridge/oauthflow/pkg/oauth"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Fetch the authorization server metadata for an issuer",
	Long: `Fetch the RFC 8414 authorization server metadata document from the
issuer's well-known endpoint and print it as JSON. Servers that publish no
metadata document are reported as such; the other commands then fall back to
the conventional /authorize and /token endpoints.`,
	RunE: discoverCmdFunc,
}

func discoverCmdFunc(cmd *cobra.Command, _ []string) error {
	issuer, err := issuerFromFlags(cmd)
	if err != nil {
		return err
	}
	opts, err := clientOptions(cmd)
	if err != nil {
		return err
	}

	metadata, err := oauth.DiscoverAuthorizationServerMetadata(cmd.Context(), issuer, opts...)
	if err != nil {
		return err
	}
	if metadata == nil {
		cmd.Println("No authorization server metadata published for this issuer")
		return nil
	}
	return printJSON(cmd, metadata)
}
