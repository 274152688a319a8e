package metrics

import "time"

// ScheduleRun summarises one scheduling run.
type ScheduleRun struct {
	RunID           string
	Scenario        string
	Algorithm       string
	Scheduled       int
	Unscheduled     int
	Trucks          int
	NonemptyTrucks  int
	UnusedSpace     int
	AverageFullness float64
	TotalDistance   int
	Duration        time.Duration
	Time            time.Time
}

// MetricsSink records scheduling runs for observability purposes.
type MetricsSink interface {
	RecordScheduleRun(run ScheduleRun) error
}

// TruckLoad is the state of one truck at the end of a run.
type TruckLoad struct {
	RunID     string
	Algorithm string
	TruckID   int
	Parcels   int
	Used      int
	Capacity  int
	Fullness  float64
	Time      time.Time
}

// TruckLoadRecorder is implemented by sinks able to record truck loads.
type TruckLoadRecorder interface {
	RecordTruckLoads(loads []TruckLoad) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordScheduleRun(ScheduleRun) error { return nil }
func (NopSink) RecordTruckLoads([]TruckLoad) error  { return nil }
