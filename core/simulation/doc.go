// Package simulation runs one scheduling pass over a scenario and fans the
// outcome out to the run log, metrics sinks, the event bus and the manifest
// publisher.
package simulation
