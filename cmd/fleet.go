package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/parcelsim/core/simulation"
	"github.com/kilianp07/parcelsim/infra/logger"
)

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Fleet related commands",
}

var fleetReportCmd = &cobra.Command{
	Use:   "report <scenario>",
	Short: "Schedule a scenario and print per-truck loads",
	Args:  cobra.ExactArgs(1),
	RunE:  runFleetReport,
}

func init() {
	fleetCmd.AddCommand(fleetReportCmd)
	rootCmd.AddCommand(fleetCmd)
}

// runFleetReport runs without sinks or run log; it only inspects the fleet.
func runFleetReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	in, err := loadInputs(args[0])
	if err != nil {
		return err
	}
	runner := simulation.New(simulation.WithLogger(logger.NewVerbose("fleet-command", cfg.Scheduler.Verbose)))
	rep, err := runner.Run(cmd.Context(), cfg.Scheduler, in)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TRUCK\tDEPOT\tUSED\tCAPACITY\tFULLNESS\tPARCELS\tROUTE")
	for _, t := range in.Trucks {
		used := t.Capacity - t.AvailableCapacity()
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%.1f%%\t%v\t%s\n",
			t.ID, t.Depot, used, t.Capacity, t.Fullness(), rep.Allocations[t.ID], strings.Join(t.Route(), " > "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	s := rep.Stats
	_, err = fmt.Fprintf(cmd.OutOrStdout(),
		"\ntrucks: %d (%d loaded)\nunused space: %d\naverage fullness: %.2f%%\ntotal distance: %d\naverage distance: %.2f\nunscheduled: %v\n",
		s.Trucks, s.NonemptyTrucks, s.UnusedSpace, s.AverageFullness, s.TotalDistance, s.AverageDistance, rep.Unscheduled)
	return err
}
