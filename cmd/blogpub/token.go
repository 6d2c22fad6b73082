// ABOUTME: CLI commands for managing stored platform tokens.
// ABOUTME: Provides set, list, and remove subcommands.
package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/2389-research/blogpub/internal/credentials"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage platform tokens",
	Long:  "Store, list, and remove API tokens for blogging platforms.",
}

var tokenSetCmd = &cobra.Command{
	Use:   "set <platform> <token>",
	Short: "Store a platform token",
	Long:  "Store the API token for a platform, replacing any existing token.",
	Args:  cobra.ExactArgs(2),
	RunE:  runTokenSet,
}

var tokenListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored tokens (masked)",
	RunE:  runTokenList,
}

var tokenRemoveCmd = &cobra.Command{
	Use:   "remove <platform>",
	Short: "Remove a platform token",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenRemove,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenSetCmd)
	tokenCmd.AddCommand(tokenListCmd)
	tokenCmd.AddCommand(tokenRemoveCmd)
}

func runTokenSet(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if err := credentials.SetPlatformToken(cmd.Context(), globalStore, name, args[1]); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	if !globalRegistry.Has(name) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s is not a supported platform\n", name)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Token saved for platform: %s\n", name)
	return nil
}

func runTokenList(cmd *cobra.Command, args []string) error {
	creds := globalStore.Load(cmd.Context())
	if len(creds) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tokens stored.")
		return nil
	}

	names := make([]string, 0, len(creds))
	for name := range creds {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", name, credentials.MaskToken(creds[name]))
	}
	return nil
}

func runTokenRemove(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	removed, err := credentials.RemovePlatformToken(cmd.Context(), globalStore, name)
	if err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	if !removed {
		fmt.Fprintf(cmd.OutOrStdout(), "No token stored for %s\n", name)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Token removed for platform: %s\n", name)
	return nil
}
