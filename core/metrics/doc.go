// Package metrics defines the sinks that observe scheduling runs. A sink
// receives one ScheduleRun per run and, when it implements TruckLoadRecorder,
// the per-truck loads of that run. Sinks are created from configuration
// through the registry in this package; infra/metrics registers the
// built-in nop, prometheus and influx sinks. Several configured sinks are
// combined in a MultiSink.
package metrics
