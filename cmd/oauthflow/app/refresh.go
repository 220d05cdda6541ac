package app

import (
	"github.com/spf13/cobra"

	"github.com/authbridge/oauthflow/pkg/oauth"
)

var (
	refreshToken        string
	refreshClientID     string
	refreshClientSecret string
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh an access token",
	Long: `Redeem a refresh token at the token endpoint for a new access token
and print the token response as JSON. Servers that rotate refresh tokens
include the replacement in the response.`,
	RunE: refreshCmdFunc,
}

func init() {
	refreshCmd.Flags().StringVar(&refreshToken, "refresh-token", "", "Refresh token from a previous exchange")
	refreshCmd.Flags().StringVar(&refreshClientID, "client-id", "", "OAuth client ID")
	refreshCmd.Flags().StringVar(&refreshClientSecret, "client-secret", "", "OAuth client secret (confidential clients only)")
}

func refreshCmdFunc(cmd *cobra.Command, _ []string) error {
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

	tokens, err := oauth.RefreshAccessToken(cmd.Context(), issuer, metadata, oauth.RefreshRequest{
		RefreshToken: refreshToken,
		ClientID:     refreshClientID,
		ClientSecret: refreshClientSecret,
	}, opts...)
	if err != nil {
		return err
	}
	return printJSON(cmd, tokens)
}
