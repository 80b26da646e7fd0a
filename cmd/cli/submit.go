package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	submitSource string
	submitDiff   string
	submitRepo   string
	submitPR     int
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submits a diff for asynchronous review",
	Long: `Submits a review job to the ryzl server. For manual reviews the diff is
read from the file given with --diff, or from stdin when the flag is omitted.
For github reviews pass --repo and --pr; the server fetches the diff itself.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := context.Background()

		diffText := ""
		if submitSource == "manual" {
			text, err := readDiff(submitDiff)
			if err != nil {
				return err
			}
			diffText = text
		}

		client := newAPIClient(serverAddr)
		result, _, err := client.submitReview(ctx, submitSource, diffText, submitRepo, submitPR)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Review job %s accepted (status: %s)\n", result.ID, result.Status)
		return nil
	},
}

func readDiff(path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read diff file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read diff from stdin: %w", err)
	}
	return string(data), nil
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	submitCmd.Flags().StringVar(&submitSource, "source", "manual", "Review source: manual or github")
	submitCmd.Flags().StringVarP(&submitDiff, "diff", "d", "", "Path to a unified diff file (defaults to stdin)")
	submitCmd.Flags().StringVarP(&submitRepo, "repo", "r", "", "Repository in owner/name form (github source)")
	submitCmd.Flags().IntVarP(&submitPR, "pr", "p", 0, "Pull request number (github source)")
	rootCmd.AddCommand(submitCmd)
}
