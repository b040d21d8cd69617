package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mqzhang/stabwatch/internal/duration"
	"github.com/mqzhang/stabwatch/internal/format"
	"github.com/mqzhang/stabwatch/internal/history"
)

// NewCmdHistory creates the history command.
func NewCmdHistory() *cobra.Command {
	var (
		limit int
		since string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show summaries of recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			hs, err := history.NewStore()
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}

			snaps := hs.Recent(limit)
			if since != "" {
				cutoff, err := duration.Since(since)
				if err != nil {
					return err
				}
				filtered := snaps[:0]
				for _, s := range snaps {
					if s.Timestamp.After(cutoff) {
						filtered = append(filtered, s)
					}
				}
				snaps = filtered
			}

			w := cmd.OutOrStdout()
			if len(snaps) == 0 {
				fmt.Fprintln(w, "No runs recorded yet.")
				return nil
			}

			fmt.Fprintf(w, "%-19s  %5s  %7s  %6s  %6s  %7s  %8s\n",
				"Run", "Age", "Folders", "Rows", "Over", "Near", "Warnings")
			for _, s := range snaps {
				fmt.Fprintf(w, "%-19s  %5s  %7d  %6d  %6d  %7d  %8d\n",
					s.Timestamp.Format("2006-01-02 15:04:05"),
					format.Age(time.Since(s.Timestamp)),
					s.Folders, s.Rows, s.Overdue, s.Near, s.Warnings)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Number of runs to show")
	cmd.Flags().StringVar(&since, "since", "", "Only show runs newer than this age (e.g., 1w, 30d)")

	return cmd
}
