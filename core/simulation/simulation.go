package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/parcelsim/core/events"
	"github.com/kilianp07/parcelsim/core/logger"
	"github.com/kilianp07/parcelsim/core/metrics"
	"github.com/kilianp07/parcelsim/core/model"
	"github.com/kilianp07/parcelsim/core/monitoring"
	"github.com/kilianp07/parcelsim/core/mqtt"
	"github.com/kilianp07/parcelsim/core/runlog"
	"github.com/kilianp07/parcelsim/core/scenario"
	"github.com/kilianp07/parcelsim/core/scheduler"
	"github.com/kilianp07/parcelsim/internal/eventbus"
)

// Stats aggregates the fleet after a run.
type Stats = model.Stats

// Report is the outcome of one run.
type Report struct {
	RunID       string        `json:"run_id"`
	Scenario    string        `json:"scenario"`
	Algorithm   string        `json:"algorithm"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
	Allocations map[int][]int `json:"allocations"`
	Unscheduled []int         `json:"unscheduled"`
	Stats       Stats         `json:"stats"`
}

// Runner executes scheduling runs. The zero-value dependencies are no-ops.
type Runner struct {
	log       logger.Logger
	metrics   metrics.MetricsSink
	store     runlog.Store
	bus       eventbus.Publisher[events.Event]
	publisher mqtt.Publisher
	now       func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

func WithLogger(l logger.Logger) Option { return func(r *Runner) { r.log = logger.OrNop(l) } }

func WithMetrics(s metrics.MetricsSink) Option {
	return func(r *Runner) {
		if s != nil {
			r.metrics = s
		}
	}
}

func WithRunLog(s runlog.Store) Option {
	return func(r *Runner) {
		if s != nil {
			r.store = s
		}
	}
}

// WithBus publishes run events on b.
func WithBus(b eventbus.Publisher[events.Event]) Option { return func(r *Runner) { r.bus = b } }

// WithPublisher sends one manifest per loaded truck through p.
func WithPublisher(p mqtt.Publisher) Option { return func(r *Runner) { r.publisher = p } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		log:     logger.NopLogger{},
		metrics: metrics.NopSink{},
		store:   runlog.NopStore{},
		now:     time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run schedules in.Parcels onto in.Trucks with cfg. The trucks are packed in
// place, so inputs serve a single run. Only configuration and cancellation
// errors fail the run; reporting failures are logged and sent to the
// monitor.
func (r *Runner) Run(ctx context.Context, cfg scheduler.Config, in *scenario.Inputs) (Report, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	if in == nil || in.Fleet == nil {
		return Report{}, fmt.Errorf("%w: no inputs", scenario.ErrInvalidScenario)
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	sched, err := scheduler.New(cfg, r.log)
	if err != nil {
		return Report{}, err
	}

	rep := Report{
		RunID:     uuid.NewString(),
		Scenario:  in.Name,
		Algorithm: sched.Name(),
		StartedAt: r.now(),
	}
	r.log.Infof("run %s: scheduling %d parcels on %d trucks with %s", rep.RunID, len(in.Parcels), len(in.Trucks), rep.Algorithm)
	left := sched.Schedule(in.Parcels, in.Trucks, cfg.Verbose)
	rep.Duration = r.now().Sub(rep.StartedAt)

	rep.Allocations = in.Fleet.ParcelAllocations()
	rep.Unscheduled = make([]int, 0, len(left))
	for _, p := range left {
		rep.Unscheduled = append(rep.Unscheduled, p.ID)
	}
	var dists model.Distances
	if in.Distances != nil {
		dists = in.Distances
	}
	rep.Stats = in.Fleet.Stats(dists)
	r.log.Infof("run %s: %d scheduled, %d unscheduled, average fullness %.1f%%",
		rep.RunID, len(in.Parcels)-len(left), len(left), rep.Stats.AverageFullness)

	r.publishEvents(rep, in, left)
	r.recordMetrics(rep, in)
	r.appendRunLog(ctx, rep, cfg)
	r.publishManifests(ctx, rep, in)
	return rep, nil
}

func (r *Runner) publishEvents(rep Report, in *scenario.Inputs, left []*model.Parcel) {
	if r.bus == nil {
		return
	}
	for _, t := range in.Fleet.Trucks() {
		if t.IsEmpty() {
			continue
		}
		r.bus.Publish(events.TruckLoaded{
			RunID:    rep.RunID,
			TruckID:  t.ID,
			Parcels:  rep.Allocations[t.ID],
			Route:    t.Route(),
			Fullness: t.Fullness(),
		})
	}
	for _, p := range left {
		r.bus.Publish(events.ParcelUnscheduled{RunID: rep.RunID, ParcelID: p.ID, Volume: p.Volume, Destination: p.Destination})
	}
	r.bus.Publish(events.ScheduleCompleted{
		RunID:       rep.RunID,
		Algorithm:   rep.Algorithm,
		Scheduled:   len(in.Parcels) - len(left),
		Unscheduled: len(left),
		Duration:    rep.Duration,
		Time:        rep.StartedAt,
	})
}

func (r *Runner) recordMetrics(rep Report, in *scenario.Inputs) {
	run := metrics.ScheduleRun{
		RunID:           rep.RunID,
		Scenario:        rep.Scenario,
		Algorithm:       rep.Algorithm,
		Scheduled:       len(in.Parcels) - len(rep.Unscheduled),
		Unscheduled:     len(rep.Unscheduled),
		Trucks:          rep.Stats.Trucks,
		NonemptyTrucks:  rep.Stats.NonemptyTrucks,
		UnusedSpace:     rep.Stats.UnusedSpace,
		AverageFullness: rep.Stats.AverageFullness,
		TotalDistance:   rep.Stats.TotalDistance,
		Duration:        rep.Duration,
		Time:            rep.StartedAt,
	}
	if err := r.metrics.RecordScheduleRun(run); err != nil {
		r.report("metrics", rep.RunID, err)
	}
	rec, ok := r.metrics.(metrics.TruckLoadRecorder)
	if !ok {
		return
	}
	trucks := in.Fleet.Trucks()
	loads := make([]metrics.TruckLoad, 0, len(trucks))
	for _, t := range trucks {
		loads = append(loads, metrics.TruckLoad{
			RunID:     rep.RunID,
			Algorithm: rep.Algorithm,
			TruckID:   t.ID,
			Parcels:   len(rep.Allocations[t.ID]),
			Used:      t.Capacity - t.AvailableCapacity(),
			Capacity:  t.Capacity,
			Fullness:  t.Fullness(),
			Time:      rep.StartedAt,
		})
	}
	if err := rec.RecordTruckLoads(loads); err != nil {
		r.report("metrics", rep.RunID, err)
	}
}

func (r *Runner) appendRunLog(ctx context.Context, rep Report, cfg scheduler.Config) {
	rec := runlog.Record{
		RunID:       rep.RunID,
		Timestamp:   rep.StartedAt,
		Scenario:    rep.Scenario,
		Algorithm:   rep.Algorithm,
		Config:      cfg,
		Allocations: rep.Allocations,
		Unscheduled: rep.Unscheduled,
		Stats:       rep.Stats,
	}
	if err := r.store.Append(ctx, rec); err != nil {
		r.report("runlog", rep.RunID, err)
	}
}

func (r *Runner) publishManifests(ctx context.Context, rep Report, in *scenario.Inputs) {
	if r.publisher == nil {
		return
	}
	for _, t := range in.Fleet.Trucks() {
		if t.IsEmpty() {
			continue
		}
		m := mqtt.Manifest{
			RunID:     rep.RunID,
			TruckID:   t.ID,
			Depot:     t.Depot,
			Route:     t.Route(),
			Parcels:   rep.Allocations[t.ID],
			Used:      t.Capacity - t.AvailableCapacity(),
			Capacity:  t.Capacity,
			Timestamp: rep.StartedAt,
		}
		if _, err := r.publisher.PublishManifest(ctx, m); err != nil {
			r.report("mqtt", rep.RunID, fmt.Errorf("truck %d: %w", t.ID, err))
		}
	}
}

func (r *Runner) report(module, runID string, err error) {
	r.log.Errorf("run %s: %s: %v", runID, module, err)
	monitoring.CaptureException(err, map[string]string{"module": module, "run_id": runID})
}
