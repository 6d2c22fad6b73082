// ABOUTME: CLI command for publishing a Markdown article to several platforms.
// ABOUTME: Reads the body from a file or stdin and prints one line per platform.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/2389-research/blogpub/internal/models"
)

var publishCmd = &cobra.Command{
	Use:   "publish [file]",
	Short: "Publish an article",
	Long: `Publish a Markdown article to one or more platforms.

The body is read from the given file, or from stdin when no file is given
or the file is "-". Each platform succeeds or fails on its own.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPublish,
}

// Flags
var (
	publishTitle     string
	publishPlatforms []string
	publishTags      string
	publishJSON      bool
)

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().StringVarP(&publishTitle, "title", "t", "", "Article title (required)")
	publishCmd.Flags().StringSliceVarP(&publishPlatforms, "platform", "p", nil, "Platform to publish to (repeatable, e.g. -p devto -p hashnode)")
	publishCmd.Flags().StringVar(&publishTags, "tags", "", "Comma-separated tags")
	publishCmd.Flags().BoolVar(&publishJSON, "json", false, "Print results as JSON")
	_ = publishCmd.MarkFlagRequired("title")
	_ = publishCmd.MarkFlagRequired("platform")
}

func runPublish(cmd *cobra.Command, args []string) error {
	body, err := readBody(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	var tags []string
	if publishTags != "" {
		tags = strings.Split(publishTags, ",")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	post := models.NewPostInput(publishTitle, body, tags)
	outcomes, err := globalPublisher.Publish(ctx, post, publishPlatforms)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if publishJSON {
		data, err := json.MarshalIndent(outcomes, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		printOutcomes(out, outcomes)
	}

	if failed := countFailed(outcomes); failed > 0 {
		return fmt.Errorf("%d of %d platforms failed", failed, len(outcomes))
	}
	return nil
}

func readBody(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

func printOutcomes(w io.Writer, outcomes []models.PlatformOutcome) {
	for _, o := range outcomes {
		if o.Success {
			fmt.Fprintf(w, "✓ %s: %s\n", o.Platform, o.Result.URL)
			continue
		}
		fmt.Fprintf(w, "✗ %s: %s\n", o.Platform, o.Error)
	}
}

func countFailed(outcomes []models.PlatformOutcome) int {
	n := 0
	for _, o := range outcomes {
		if !o.Success {
			n++
		}
	}
	return n
}
