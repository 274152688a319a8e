package events

import "time"

// Event is implemented by every scheduling event.
type Event interface {
	Run() string
}

// TruckLoaded is published for each non-empty truck after a run.
type TruckLoaded struct {
	RunID    string
	TruckID  int
	Parcels  []int
	Route    []string
	Fullness float64
}

// ParcelUnscheduled is published for each parcel left over.
type ParcelUnscheduled struct {
	RunID       string
	ParcelID    int
	Volume      int
	Destination string
}

// ScheduleCompleted closes a run.
type ScheduleCompleted struct {
	RunID       string
	Algorithm   string
	Scheduled   int
	Unscheduled int
	Duration    time.Duration
	Time        time.Time
}

func (e TruckLoaded) Run() string       { return e.RunID }
func (e ParcelUnscheduled) Run() string { return e.RunID }
func (e ScheduleCompleted) Run() string { return e.RunID }
