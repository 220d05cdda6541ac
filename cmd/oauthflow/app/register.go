package app

import (
	"github.com/spf13/cobra"

	"github.com/authbridge/oauthflow/pkg/oauth"
)

var (
	registerClientName   string
	registerRedirectURIs []string
	registerScopes       []string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Dynamically register an OAuth client with the authorization server",
	Long: `Register a new OAuth client using RFC 7591 dynamic client registration
and print the issued client information. The server must advertise a
registration endpoint in its metadata.`,
	RunE: registerCmdFunc,
}

func init() {
	registerCmd.Flags().StringVar(&registerClientName, "client-name", "oauthflow", "Human-readable client name")
	registerCmd.Flags().StringSliceVar(&registerRedirectURIs, "redirect-uri", nil, "Redirect URI (repeatable)")
	registerCmd.Flags().StringSliceVar(&registerScopes, "scope", nil, "Requested scope (repeatable)")
}

func registerCmdFunc(cmd *cobra.Command, _ []string) error {
	issuer, err := issuerFromFlags(cmd)
	if err != nil {
		return err
	}
	opts, err := clientOptions(cmd)
	if err != nil {
		return err
	}

	metadata, err := discoverMetadata(cmd, issuer, opts)
	if err != nil {
		return err
	}

	clientMetadata := oauth.NewClientMetadata(registerClientName, registerRedirectURIs, registerScopes)
	info, err := oauth.RegisterClient(cmd.Context(), issuer, metadata, clientMetadata, opts...)
	if err != nil {
		return err
	}
	return printJSON(cmd, info)
}
