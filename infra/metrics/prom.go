package metrics

import (
	"errors"
	"strconv"

	coremetrics "github.com/kilianp07/parcelsim/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records scheduling runs in Prometheus metrics.
type PromSink struct {
	runs     *prometheus.CounterVec
	parcels  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	truck    *prometheus.GaugeVec
	fleet    *prometheus.GaugeVec
}

// NewPromSink registers the scheduling metrics on the default registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// already registered by an earlier sink are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "parcelsim_schedule_runs_total",
		Help: "Total number of scheduling runs",
	}, []string{"algorithm"})
	parcels := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "parcelsim_parcels_total",
		Help: "Parcels handled by scheduling runs by outcome",
	}, []string{"algorithm", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "parcelsim_schedule_duration_seconds",
		Help:    "Wall time spent scheduling",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{"algorithm"})
	truck := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "parcelsim_truck_fullness_percent",
		Help: "Fullness of each truck after the last run",
	}, []string{"truck_id"})
	fleet := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "parcelsim_fleet_average_fullness_percent",
		Help: "Average fullness of non-empty trucks after the last run",
	}, []string{"algorithm"})

	var err error
	if runs, err = register(reg, runs); err != nil {
		return nil, err
	}
	if parcels, err = register(reg, parcels); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if truck, err = register(reg, truck); err != nil {
		return nil, err
	}
	if fleet, err = register(reg, fleet); err != nil {
		return nil, err
	}
	return &PromSink{runs: runs, parcels: parcels, duration: duration, truck: truck, fleet: fleet}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordScheduleRun updates the run counters, histogram and fleet gauge.
func (s *PromSink) RecordScheduleRun(run coremetrics.ScheduleRun) error {
	s.runs.WithLabelValues(run.Algorithm).Inc()
	s.parcels.WithLabelValues(run.Algorithm, "scheduled").Add(float64(run.Scheduled))
	s.parcels.WithLabelValues(run.Algorithm, "unscheduled").Add(float64(run.Unscheduled))
	s.duration.WithLabelValues(run.Algorithm).Observe(run.Duration.Seconds())
	s.fleet.WithLabelValues(run.Algorithm).Set(run.AverageFullness)
	return nil
}

// RecordTruckLoads sets the fullness gauge of every truck.
func (s *PromSink) RecordTruckLoads(loads []coremetrics.TruckLoad) error {
	for _, l := range loads {
		s.truck.WithLabelValues(strconv.Itoa(l.TruckID)).Set(l.Fullness)
	}
	return nil
}
