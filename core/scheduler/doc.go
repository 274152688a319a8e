// Package scheduler assigns parcels to trucks.
//
// Two strategies implement Scheduler: RandomScheduler picks a random truck
// with room for each parcel, GreedyScheduler extracts parcels by a configured
// priority and packs each onto the best ranked truck with room, preferring
// trucks whose last stop is the parcel destination. Both mutate trucks only
// through model.Truck.Pack and return the parcels left over.
package scheduler
