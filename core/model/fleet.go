package model

import "gonum.org/v1/gonum/stat"

// Distances resolves the directed distance between two locations. Unknown
// pairs return a negative value.
type Distances interface {
	Distance(from, to string) int
}

// Fleet is an ordered set of trucks, unique by ID. It only answers reporting
// queries; schedulers work on the truck slice directly.
type Fleet struct {
	trucks []*Truck
	ids    map[int]struct{}
}

// NewFleet returns an empty fleet.
func NewFleet() *Fleet {
	return &Fleet{ids: make(map[int]struct{})}
}

// AddTruck appends t unless a truck with the same ID is already present.
func (f *Fleet) AddTruck(t *Truck) {
	if _, ok := f.ids[t.ID]; ok {
		return
	}
	f.ids[t.ID] = struct{}{}
	f.trucks = append(f.trucks, t)
}

// Trucks returns the trucks in insertion order.
func (f *Fleet) Trucks() []*Truck {
	return append([]*Truck(nil), f.trucks...)
}

func (f *Fleet) NumTrucks() int { return len(f.trucks) }

// NumNonemptyTrucks counts trucks carrying at least one parcel.
func (f *Fleet) NumNonemptyTrucks() int {
	n := 0
	for _, t := range f.trucks {
		if t.Fullness() > 0 {
			n++
		}
	}
	return n
}

// ParcelAllocations maps every truck ID to the IDs of its parcels in pack
// order.
func (f *Fleet) ParcelAllocations() map[int][]int {
	out := make(map[int][]int, len(f.trucks))
	for _, t := range f.trucks {
		ids := make([]int, 0, len(t.parcels))
		for _, p := range t.parcels {
			ids = append(ids, p.ID)
		}
		out[t.ID] = ids
	}
	return out
}

// TotalUnusedSpace sums the available capacity of non-empty trucks.
func (f *Fleet) TotalUnusedSpace() int {
	total := 0
	for _, t := range f.trucks {
		if t.Fullness() > 0 {
			total += t.AvailableCapacity()
		}
	}
	return total
}

// AverageFullness is the mean fullness of non-empty trucks, or 0 when every
// truck is empty.
func (f *Fleet) AverageFullness() float64 {
	var vals []float64
	for _, t := range f.trucks {
		if full := t.Fullness(); full > 0 {
			vals = append(vals, full)
		}
	}
	if len(vals) == 0 {
		return 0
	}
	return stat.Mean(vals, nil)
}

// TotalDistanceTravelled sums, for every truck with a route, the legs from
// its depot through each stop and back to the depot. Legs with an unknown
// distance are skipped.
func (f *Fleet) TotalDistanceTravelled(d Distances) int {
	total := 0
	for _, t := range f.trucks {
		if len(t.route) == 0 {
			continue
		}
		current := t.Depot
		for _, stop := range t.route {
			if dist := d.Distance(current, stop); dist >= 0 {
				total += dist
			}
			current = stop
		}
		if dist := d.Distance(current, t.Depot); dist >= 0 {
			total += dist
		}
	}
	return total
}

// AverageDistanceTravelled divides the total distance by the number of
// non-empty trucks, or returns 0 when there are none.
func (f *Fleet) AverageDistanceTravelled(d Distances) float64 {
	n := f.NumNonemptyTrucks()
	if n == 0 {
		return 0
	}
	return float64(f.TotalDistanceTravelled(d)) / float64(n)
}
