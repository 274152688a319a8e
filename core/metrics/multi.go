package metrics

import "errors"

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordScheduleRun forwards the run to every sink. A failing sink does not
// stop the others; the errors are joined.
func (m *MultiSink) RecordScheduleRun(run ScheduleRun) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordScheduleRun(run); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordTruckLoads forwards loads to the sinks that support them.
func (m *MultiSink) RecordTruckLoads(loads []TruckLoad) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(TruckLoadRecorder); ok {
			if err := rec.RecordTruckLoads(loads); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
