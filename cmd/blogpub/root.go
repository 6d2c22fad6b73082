// ABOUTME: Root Cobra command and global wiring for the blogpub CLI.
// ABOUTME: Loads config, opens the credential store, and builds the registry and publisher.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/blogpub/internal/config"
	"github.com/2389-research/blogpub/internal/credentials"
	"github.com/2389-research/blogpub/internal/logutil"
	"github.com/2389-research/blogpub/internal/platform"
	"github.com/2389-research/blogpub/internal/platform/builtin"
	"github.com/2389-research/blogpub/internal/publisher"
)

var globalConfig *config.Config
var globalStore credentials.Store
var globalRegistry *platform.Registry
var globalPublisher *publisher.Publisher

var logLevelFlag string

var rootCmd = &cobra.Command{
	Use:   "blogpub",
	Short: "Publish Markdown articles to several blogging platforms at once",
	Long: `
██████╗ ██╗      ██████╗  ██████╗ ██████╗ ██╗   ██╗██████╗
██╔══██╗██║     ██╔═══██╗██╔════╝ ██╔══██╗██║   ██║██╔══██╗
██████╔╝██║     ██║   ██║██║  ███╗██████╔╝██║   ██║██████╔╝
██╔══██╗██║     ██║   ██║██║   ██║██╔═══╝ ██║   ██║██╔══██╗
██████╔╝███████╗╚██████╔╝╚██████╔╝██║     ╚██████╔╝██████╔╝
╚═════╝ ╚══════╝ ╚═════╝  ╚═════╝ ╚═╝      ╚═════╝ ╚═════╝

Cross-post one article to DEV.to and Hashnode from the command line
or from an AI agent over MCP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		closeStore()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		globalConfig = cfg

		level := cfg.GetLogLevel()
		if logLevelFlag != "" {
			level = logLevelFlag
		}
		logutil.SetLevel(level)

		store, err := credentials.Open(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to open credential store: %w", err)
		}
		globalStore = store

		globalRegistry = builtin.NewRegistry(cfg)

		pub, err := publisher.New(globalRegistry, globalStore,
			publisher.WithSequential(!cfg.Publish.IsConcurrent()))
		if err != nil {
			return fmt.Errorf("failed to create publisher: %w", err)
		}
		globalPublisher = pub

		return nil
	},
}

// closeStore releases the credential store. It runs from main after Execute
// because cobra skips post-run hooks when a command fails.
func closeStore() {
	if globalStore != nil {
		_ = globalStore.Close()
		globalStore = nil
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")
}
