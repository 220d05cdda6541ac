// Package app provides the entry point for the oauthflow command-line application.
package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/authbridge/oauthflow/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:               "oauthflow",
	DisableAutoGenTag: true,
	Short:             "oauthflow is an OAuth 2.0 authorization code + PKCE client",
	Long: `oauthflow drives the client side of the OAuth 2.0 Authorization Code grant
with PKCE against a third-party authorization server: metadata discovery,
dynamic client registration, authorization URL construction, authorization
code exchange, and token refresh.

It does not run a callback server; the authorization code is pasted back in
by the caller after completing the browser step.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// Re-initialize the logger once the debug flag is known.
		logger.Initialize()
	},
	Run: func(cmd *cobra.Command, _ []string) {
		// If no subcommand is provided, print help
		if err := cmd.Help(); err != nil {
			logger.Errorf("Error displaying help: %v", err)
		}
	},
}

// NewRootCmd creates a new root command for the oauthflow CLI.
func NewRootCmd() *cobra.Command {
	// Add persistent flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().String("issuer", "", "Authorization server issuer URL")
	rootCmd.PersistentFlags().String("ca-bundle", "", "Path to a CA certificate bundle for HTTPS requests")
	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		logger.Errorf("Error binding debug flag: %v", err)
	}

	// Add subcommands
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(authorizeCmd)
	rootCmd.AddCommand(exchangeCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
