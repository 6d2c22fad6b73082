// ABOUTME: Cobra command for interactive platform token setup.
// ABOUTME: Launches a bubbletea TUI wizard to collect, validate, and store a token.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/blogpub/internal/credentials"
	"github.com/2389-research/blogpub/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Connect a blogging platform account",
	Long:  "Interactive wizard that validates an API token with the platform and stores it.",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	model := tui.NewSetupModel(globalRegistry.Names(), tui.RegistryValidator(globalRegistry))

	p := tea.NewProgram(model)
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.SetupModel)
	if !final.ShouldSave() {
		fmt.Println("Setup cancelled.")
		return nil
	}

	platform, token := final.Result()
	if err := credentials.SetPlatformToken(cmd.Context(), globalStore, platform, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	fmt.Printf("Token saved for platform: %s\n", platform)
	return nil
}
