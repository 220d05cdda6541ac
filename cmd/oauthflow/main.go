// Package main is the entry point for the oauthflow CLI.
package main

import (
	"os"

	"github.com/authbridge/oauthflow/cmd/oauthflow/app"
	"github.com/authbridge/oauthflow/pkg/logger"
)

func main() {
	// Initialize the logger
	logger.Initialize()

	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
