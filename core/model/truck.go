package model

import "fmt"

// Truck carries parcels up to a fixed capacity. Parcels and route stops are
// appended together by Pack and never removed.
type Truck struct {
	ID       int
	Capacity int
	Depot    string

	parcels []*Parcel
	route   []string
	used    int
}

// NewTruck returns an empty truck.
func NewTruck(id, capacity int, depot string) *Truck {
	return &Truck{ID: id, Capacity: capacity, Depot: depot}
}

// Validate checks that the truck capacity is positive.
func (t *Truck) Validate() error {
	if t.Capacity <= 0 {
		return fmt.Errorf("truck %d: capacity must be positive, got %d", t.ID, t.Capacity)
	}
	return nil
}

// Pack loads p onto the truck and appends its destination to the route.
// It returns false without modifying the truck when a parcel with the same
// ID is already aboard or when p does not fit in the remaining capacity.
func (t *Truck) Pack(p *Parcel) bool {
	for _, q := range t.parcels {
		if q.ID == p.ID {
			return false
		}
	}
	if t.AvailableCapacity()-p.Volume < 0 {
		return false
	}
	t.parcels = append(t.parcels, p)
	t.route = append(t.route, p.Destination)
	t.used += p.Volume
	return true
}

// AvailableCapacity is the capacity not yet taken by packed parcels.
func (t *Truck) AvailableCapacity() int {
	return t.Capacity - t.used
}

// Fullness returns the used share of the capacity as a percentage.
func (t *Truck) Fullness() float64 {
	return 100 - float64(t.AvailableCapacity())/float64(t.Capacity)*100
}

// Parcels returns the packed parcels in pack order.
func (t *Truck) Parcels() []*Parcel {
	return append([]*Parcel(nil), t.parcels...)
}

// Route returns the destinations in pack order.
func (t *Truck) Route() []string {
	return append([]string(nil), t.route...)
}

// LastStop returns the most recently added route destination.
func (t *Truck) LastStop() (string, bool) {
	if len(t.route) == 0 {
		return "", false
	}
	return t.route[len(t.route)-1], true
}

// IsEmpty reports whether nothing has been packed.
func (t *Truck) IsEmpty() bool { return len(t.parcels) == 0 }

func (t *Truck) String() string {
	return fmt.Sprintf("truck %d (%d/%d) from %s via %v", t.ID, t.used, t.Capacity, t.Depot, t.route)
}
