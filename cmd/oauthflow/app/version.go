package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/authbridge/oauthflow/pkg/versions"
)

// newVersionCmd creates a new version command
func newVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the version of oauthflow",
		Long:  `Display detailed version information about oauthflow, including version number, git commit, build date, and Go version.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := versions.GetVersionInfo()

			if jsonOutput {
				return printJSON(cmd, info)
			}
			printVersionInfo(cmd, info)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version information as JSON")

	return cmd
}

// printVersionInfo prints the version information
func printVersionInfo(cmd *cobra.Command, info versions.VersionInfo) {
	cmd.Println(fmt.Sprintf("oauthflow %s", info.Version))
	cmd.Println(fmt.Sprintf("Commit: %s", info.Commit))
	cmd.Println(fmt.Sprintf("Built: %s", info.BuildDate))
	cmd.Println(fmt.Sprintf("Go version: %s", info.GoVersion))
	cmd.Println(fmt.Sprintf("Platform: %s", info.Platform))
}
