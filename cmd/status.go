package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/modelwatch/bedrock-catalog/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show refresh run history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		runLog, err := store.OpenRunLog(ctx, cfg.RunLog.Path)
		if err != nil {
			return err
		}
		defer runLog.Close()

		entries, err := runLog.ListAll(ctx)
		if err != nil {
			return eris.Wrap(err, "status")
		}

		if len(entries) == 0 {
			zap.L().Info("no refresh runs found, run 'refresh' to build the catalog")
			return nil
		}

		formatRunEntries(os.Stdout, entries)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// formatRunEntries writes a tabular representation of run entries to w.
func formatRunEntries(out io.Writer, entries []store.RunEntry) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tSTATUS\tSTARTED\tDURATION\tREGIONS\tMODELS\tPROFILES\tERROR")
	_, _ = fmt.Fprintln(w, "--\t------\t-------\t--------\t-------\t------\t--------\t-----")

	for _, e := range entries {
		dur := "-"
		if e.CompletedAt != nil {
			dur = e.CompletedAt.Sub(e.StartedAt).Round(time.Second).String()
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			shortID(e.ID),
			e.Status,
			e.StartedAt.Format(time.RFC3339),
			dur,
			len(e.Regions),
			e.ModelCount,
			e.ProfileCount,
			truncate(e.Error, 60),
		)
	}

	_ = w.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
