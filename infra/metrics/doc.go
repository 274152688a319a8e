// Package metrics provides the Prometheus and InfluxDB sinks for scheduling
// runs and registers them, with the nop sink, in the core metrics registry.
package metrics
