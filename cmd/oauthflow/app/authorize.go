package app

import (
	"github.com/spf13/cobra"

	"github.com/authbridge/oauthflow/pkg/oauth"
)

var (
	authorizeClientID    string
	authorizeRedirectURL string
	authorizeScope       string
	authorizeState       string
	authorizeResource    string
)

var authorizeCmd = &cobra.Command{
	Use:   "authorize",
	Short: "Build an authorization URL with PKCE",
	Long: `Build the authorization request URL for the Authorization Code grant
with PKCE and print it together with the generated code verifier and state.

Open the URL in a browser, complete the login, and pass the returned
authorization code and the printed code verifier to the exchange command.`,
	RunE: authorizeCmdFunc,
}

func init() {
	authorizeCmd.Flags().StringVar(&authorizeClientID, "client-id", "", "OAuth client ID")
	authorizeCmd.Flags().StringVar(&authorizeRedirectURL, "redirect-url", "", "Redirect URL registered for the client")
	authorizeCmd.Flags().StringVar(&authorizeScope, "scope", "", "Space-separated scopes to request")
	authorizeCmd.Flags().StringVar(&authorizeState, "state", "", "Opaque state value (generated when empty)")
	authorizeCmd.Flags().StringVar(&authorizeResource, "resource", "", "Resource indicator to bind the tokens to")
}

func authorizeCmdFunc(cmd *cobra.Command, _ []string) error {
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

	state := authorizeState
	if state == "" {
		state, err = oauth.GenerateState(opts...)
		if err != nil {
			return err
		}
	}

	req, err := oauth.BuildAuthorizationURL(issuer, metadata, oauth.AuthorizationRequestOptions{
		ClientID:    authorizeClientID,
		RedirectURL: authorizeRedirectURL,
		Scope:       authorizeScope,
		State:       state,
		Resource:    authorizeResource,
	}, opts...)
	if err != nil {
		return err
	}
	return printJSON(cmd, req)
}
