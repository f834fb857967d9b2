package main

import (
	"fmt"

	"hooksend/internal/history"

	"github.com/spf13/cobra"
)

var (
	historyDBPath string
	historyHookID string
	historyLimit  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent webhook deliveries",
	Long: `List recent webhook deliveries from the local SQLite log.

Deliveries are only recorded when sends are invoked with --history-db;
point --db at the same path.

Example:
  hooksend history --db ./deliveries.db --hook-id deploy-staging`,
	RunE:          runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyDBPath, "db", "./deliveries.db", "Path to the delivery log database")
	historyCmd.Flags().StringVar(&historyHookID, "hook-id", "", "Only show deliveries for this hook")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of deliveries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	h, err := history.NewHistory(historyDBPath)
	if err != nil {
		return fmt.Errorf("failed to open delivery log: %w", err)
	}
	defer h.Close()

	records, err := h.GetRecentDeliveries(cmd.Context(), historyHookID, historyLimit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No deliveries recorded")
		return nil
	}

	for _, r := range records {
		status := "-"
		if r.StatusCode != nil {
			status = fmt.Sprintf("%d", *r.StatusCode)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-8s  %-4s  %s  %s  %s\n",
			r.SentAt.Format("2006-01-02 15:04:05"),
			r.Outcome,
			status,
			r.HookID,
			shortSHA(r.SHA),
			r.URL)

		if r.ErrorMessage != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "    error: %s\n", *r.ErrorMessage)
		}
	}

	return nil
}

// shortSHA abbreviates a commit SHA for display
func shortSHA(sha string) string {
	if len(sha) > 12 {
		return sha[:12]
	}
	return sha
}
