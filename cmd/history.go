package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/user/vcut/db"
	"github.com/user/vcut/pkg/timeutil"
)

var (
	historyLimit     int
	historyOlderThan time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent renders",
	Long:  `Display recent renders as a table, newest first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(app.cfg.HistoryPath())
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer database.Close()

		renders, err := db.SelectRecentRenders(database, historyLimit)
		if err != nil {
			return err
		}
		if len(renders) == 0 {
			fmt.Println("No renders recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tStarted\tSource\tSegments\tKept\tMode\tStatus\tSize")
		fmt.Fprintln(w, "--\t-------\t------\t--------\t----\t----\t------\t----")
		for _, r := range renders {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
				shortID(r.ID),
				humanize.Time(r.StartedAt),
				filepath.Base(r.Source),
				r.Segments,
				timeutil.FormatTime(r.Duration),
				r.Mode,
				r.Status,
				renderSize(r),
			)
		}
		return w.Flush()
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old render records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(app.cfg.HistoryPath())
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer database.Close()

		cutoff := time.Now().Add(-historyOlderThan)
		n, err := db.DeleteRendersBefore(database, cutoff)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d renders started before %s\n", n, cutoff.Format("2006-01-02 15:04"))
		return nil
	},
}

// shortID trims a UUID to its first block for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func renderSize(r db.Render) string {
	if r.Status != db.StatusComplete {
		return "-"
	}
	return humanize.Bytes(uint64(r.Filesize))
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of renders to show")
	historyPruneCmd.Flags().DurationVar(&historyOlderThan, "older-than", 30*24*time.Hour, "delete renders started longer ago than this")
	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}
