// ABOUTME: CLI command listing supported platforms.
// ABOUTME: Shows whether a token is stored for each.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List supported platforms",
	RunE:  runPlatforms,
}

func init() {
	rootCmd.AddCommand(platformsCmd)
}

func runPlatforms(cmd *cobra.Command, args []string) error {
	creds := globalStore.Load(cmd.Context())
	for _, name := range globalRegistry.Names() {
		status := "no token"
		if creds[name] != "" {
			status = "token stored"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", name, status)
	}
	return nil
}
