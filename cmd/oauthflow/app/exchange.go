package app

import (
	"github.com/spf13/cobra"

	"github.com/authbridge/oauthflow/pkg/oauth"
)

var (
	exchangeCode         string
	exchangeCodeVerifier string
	exchangeRedirectURL  string
	exchangeClientID     string
	exchangeClientSecret string
)

var exchangeCmd = &cobra.Command{
	Use:   "exchange",
	Short: "Exchange an authorization code for tokens",
	Long: `Exchange an authorization code for an access token at the token
endpoint, presenting the PKCE code verifier from the authorize step, and
print the token response as JSON.`,
	RunE: exchangeCmdFunc,
}

func init() {
	exchangeCmd.Flags().StringVar(&exchangeCode, "code", "", "Authorization code from the callback")
	exchangeCmd.Flags().StringVar(&exchangeCodeVerifier, "code-verifier", "", "PKCE code verifier from the authorize step")
	exchangeCmd.Flags().StringVar(&exchangeRedirectURL, "redirect-url", "", "Redirect URL used in the authorization request")
	exchangeCmd.Flags().StringVar(&exchangeClientID, "client-id", "", "OAuth client ID")
	exchangeCmd.Flags().StringVar(&exchangeClientSecret, "client-secret", "", "OAuth client secret (confidential clients only)")
}

func exchangeCmdFunc(cmd *cobra.Command, _ []string) error {
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

	tokens, err := oauth.ExchangeAuthorizationCode(cmd.Context(), issuer, metadata, oauth.ExchangeRequest{
		Code:         exchangeCode,
		CodeVerifier: exchangeCodeVerifier,
		RedirectURL:  exchangeRedirectURL,
		ClientID:     exchangeClientID,
		ClientSecret: exchangeClientSecret,
	}, opts...)
	if err != nil {
		return err
	}
	return printJSON(cmd, tokens)
}
