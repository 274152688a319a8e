// Package events defines the scheduling events emitted on the event bus.
//
// Available event types:
//   - TruckLoaded: a truck left the run with parcels aboard
//   - ParcelUnscheduled: a parcel fit on no truck
//   - ScheduleCompleted: summary of a finished run
package events
