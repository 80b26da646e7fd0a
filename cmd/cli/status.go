package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var outputJSON bool

var statusCmd = &cobra.Command{
	Use:   "status <job-id>",
	Short: "Shows the status and result of a review job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client := newAPIClient(serverAddr)
		result, raw, err := client.getReview(ctx, args[0])
		if err != nil {
			return err
		}

		if outputJSON {
			fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Job:     %s\n", result.ID)
		fmt.Fprintf(out, "Status:  %s\n", result.Status)
		if result.UpdatedAt != "" {
			fmt.Fprintf(out, "Updated: %s\n", result.UpdatedAt)
		}
		if result.Summary != "" {
			fmt.Fprintf(out, "\n%s\n", result.Summary)
		}
		if len(result.Comments) == 0 {
			return nil
		}

		fmt.Fprintln(out)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "AGENT\tFILE\tLINES\tSEVERITY\tTITLE")
		for _, c := range result.Comments {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				c.Agent,
				c.FilePath,
				formatLines(c.LineStart, c.LineEnd),
				c.Severity,
				c.Title,
			)
		}
		return w.Flush()
	},
}

func formatLines(start, end int) string {
	switch {
	case start > 0 && end > start:
		return fmt.Sprintf("%d-%d", start, end)
	case start > 0:
		return fmt.Sprintf("%d", start)
	default:
		return "-"
	}
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	statusCmd.Flags().BoolVar(&outputJSON, "json", false, "Output the raw JSON response")
	rootCmd.AddCommand(statusCmd)
}
