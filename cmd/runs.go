package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/parcelsim/core/runlog"
)

var runsFlags struct {
	algorithm string
	since     time.Duration
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect the run log",
}

var runsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List logged scheduling runs",
	Args:  cobra.NoArgs,
	RunE:  runRunsLs,
}

func init() {
	runsLsCmd.Flags().StringVar(&runsFlags.algorithm, "algorithm", "", "only runs of this algorithm")
	runsLsCmd.Flags().DurationVar(&runsFlags.since, "since", 0, "only runs newer than this (e.g. 24h)")
	runsCmd.AddCommand(runsLsCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsLs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := runlog.Open(cfg.Logging)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer func() { _ = store.Close() }()

	q := runlog.Query{Algorithm: runsFlags.algorithm}
	if runsFlags.since > 0 {
		q.Start = time.Now().Add(-runsFlags.since)
	}
	recs, err := store.Query(cmd.Context(), q)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tTIME\tSCENARIO\tALGORITHM\tSCHEDULED\tUNSCHEDULED\tFULLNESS")
	for _, r := range recs {
		scheduled := 0
		for _, ids := range r.Allocations {
			scheduled += len(ids)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%.1f%%\n",
			r.RunID, r.Timestamp.Format(time.RFC3339), r.Scenario, r.Algorithm, scheduled, len(r.Unscheduled), r.Stats.AverageFullness)
	}
	return tw.Flush()
}
