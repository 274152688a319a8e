package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kilianp07/parcelsim/app"
	"github.com/kilianp07/parcelsim/core/scenario"
	"github.com/kilianp07/parcelsim/core/scheduler"
	"github.com/kilianp07/parcelsim/core/simulation"
	"github.com/kilianp07/parcelsim/infra/logger"
)

var scheduleFlags struct {
	algorithm      string
	parcelPriority string
	parcelOrder    string
	truckOrder     string
	seed           int64
	verbose        bool
	json           bool
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule <scenario>",
	Short: "Schedule the parcels of a scenario file onto its trucks",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchedule,
}

func init() {
	f := scheduleCmd.Flags()
	f.StringVar(&scheduleFlags.algorithm, "algorithm", "", "greedy or random")
	f.StringVar(&scheduleFlags.parcelPriority, "parcel-priority", "", "volume or destination")
	f.StringVar(&scheduleFlags.parcelOrder, "parcel-order", "", "non-decreasing or non-increasing")
	f.StringVar(&scheduleFlags.truckOrder, "truck-order", "", "non-decreasing or non-increasing")
	f.Int64Var(&scheduleFlags.seed, "seed", 0, "random scheduler seed")
	f.BoolVar(&scheduleFlags.verbose, "verbose", false, "log every placement decision")
	f.BoolVar(&scheduleFlags.json, "json", false, "print the report as JSON")
	rootCmd.AddCommand(scheduleCmd)
}

// schedulerOverrides applies the flags the user set on top of base.
func schedulerOverrides(cmd *cobra.Command, base scheduler.Config) scheduler.Config {
	f := cmd.Flags()
	if f.Changed("algorithm") {
		base.Algorithm = scheduler.Algorithm(scheduleFlags.algorithm)
	}
	if f.Changed("parcel-priority") {
		base.ParcelPriority = scheduler.ParcelPriority(scheduleFlags.parcelPriority)
	}
	if f.Changed("parcel-order") {
		base.ParcelOrder = scheduler.Order(scheduleFlags.parcelOrder)
	}
	if f.Changed("truck-order") {
		base.TruckOrder = scheduler.Order(scheduleFlags.truckOrder)
	}
	if f.Changed("seed") {
		base.Seed = scheduleFlags.seed
	}
	if f.Changed("verbose") {
		base.Verbose = scheduleFlags.verbose
	}
	return base
}

func loadInputs(path string) (*scenario.Inputs, error) {
	sc, err := scenario.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}
	return sc.Build()
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	in, err := loadInputs(args[0])
	if err != nil {
		return err
	}
	cfg.Scheduler = schedulerOverrides(cmd, cfg.Scheduler)
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("schedule-command").Errorf("service close: %v", err)
		}
	}()

	rep, err := svc.Runner.Run(cmd.Context(), cfg.Scheduler, in)
	if err != nil {
		return err
	}
	if scheduleFlags.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	return printReport(cmd, rep)
}

func printReport(cmd *cobra.Command, rep simulation.Report) error {
	out := cmd.OutOrStdout()
	ids := make([]int, 0, len(rep.Allocations))
	for id := range rep.Allocations {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	if _, err := fmt.Fprintf(out, "run %s (%s, %s)\n", rep.RunID, rep.Scenario, rep.Algorithm); err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := fmt.Fprintf(out, "truck %d: %v\n", id, rep.Allocations[id]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(out, "unscheduled: %v\nunused space: %d\naverage fullness: %.2f%%\ntotal distance: %d\n",
		rep.Unscheduled, rep.Stats.UnusedSpace, rep.Stats.AverageFullness, rep.Stats.TotalDistance)
	return err
}
