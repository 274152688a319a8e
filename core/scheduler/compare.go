package scheduler

import (
	"fmt"

	"github.com/kilianp07/parcelsim/core/model"
)

// ParcelLess returns the extraction order for parcels. The returned
// predicate reports whether a is packed before b.
func ParcelLess(priority ParcelPriority, order Order) (func(a, b *model.Parcel) bool, error) {
	switch {
	case priority == PriorityVolume && order == NonDecreasing:
		return volumeAscending, nil
	case priority == PriorityVolume && order == NonIncreasing:
		return volumeDescending, nil
	case priority == PriorityDestination && order == NonDecreasing:
		return destinationAscending, nil
	case priority == PriorityDestination && order == NonIncreasing:
		return destinationDescending, nil
	}
	return nil, fmt.Errorf("%w: no parcel ordering for %q/%q", ErrInvalidConfig, priority, order)
}

// TruckLess returns the ranking of candidate trucks by available capacity.
func TruckLess(order Order) (func(a, b *model.Truck) bool, error) {
	switch order {
	case NonDecreasing:
		return leastRoomFirst, nil
	case NonIncreasing:
		return mostRoomFirst, nil
	}
	return nil, fmt.Errorf("%w: no truck ordering for %q", ErrInvalidConfig, order)
}

func volumeAscending(a, b *model.Parcel) bool  { return a.Volume < b.Volume }
func volumeDescending(a, b *model.Parcel) bool { return a.Volume > b.Volume }

func destinationAscending(a, b *model.Parcel) bool  { return a.Destination < b.Destination }
func destinationDescending(a, b *model.Parcel) bool { return a.Destination > b.Destination }

func leastRoomFirst(a, b *model.Truck) bool { return a.AvailableCapacity() < b.AvailableCapacity() }
func mostRoomFirst(a, b *model.Truck) bool  { return a.AvailableCapacity() > b.AvailableCapacity() }
