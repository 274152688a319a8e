package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubDistances map[[2]string]int

func (s stubDistances) Distance(from, to string) int {
	if d, ok := s[[2]string{from, to}]; ok {
		return d
	}
	return -1
}

func TestFleetAddTruckIgnoresDuplicates(t *testing.T) {
	f := NewFleet()
	f.AddTruck(NewTruck(1, 10, "Toronto"))
	f.AddTruck(NewTruck(1, 99, "Ottawa"))
	f.AddTruck(NewTruck(2, 10, "Toronto"))
	assert.Equal(t, 2, f.NumTrucks())
	assert.Equal(t, 10, f.Trucks()[0].Capacity)
}

func TestFleetAggregates(t *testing.T) {
	f := NewFleet()
	t1 := NewTruck(1, 10, "Toronto")
	t2 := NewTruck(2, 20, "Toronto")
	t3 := NewTruck(3, 5, "Toronto")
	f.AddTruck(t1)
	f.AddTruck(t2)
	f.AddTruck(t3)

	t1.Pack(NewParcel(1, 5, "Toronto", "Hamilton"))
	t1.Pack(NewParcel(2, 5, "Toronto", "London"))
	t2.Pack(NewParcel(3, 5, "Toronto", "Guelph"))

	assert.Equal(t, 2, f.NumNonemptyTrucks())
	assert.Equal(t, 15, f.TotalUnusedSpace())
	assert.InDelta(t, 62.5, f.AverageFullness(), 1e-9)
	assert.Equal(t, map[int][]int{1: {1, 2}, 2: {3}, 3: {}}, f.ParcelAllocations())
}

func TestFleetEmptyAggregates(t *testing.T) {
	f := NewFleet()
	f.AddTruck(NewTruck(1, 10, "Toronto"))
	d := stubDistances{}
	assert.Equal(t, 0, f.NumNonemptyTrucks())
	assert.Equal(t, 0, f.TotalUnusedSpace())
	assert.Equal(t, 0.0, f.AverageFullness())
	assert.Equal(t, 0, f.TotalDistanceTravelled(d))
	assert.Equal(t, 0.0, f.AverageDistanceTravelled(d))
}

func TestFleetDistanceTravelled(t *testing.T) {
	d := stubDistances{
		{"Toronto", "Hamilton"}: 9,
		{"Hamilton", "Toronto"}: 9,
		{"Hamilton", "Barrie"}:  18,
		{"Barrie", "Toronto"}:   9,
	}
	f := NewFleet()
	t1 := NewTruck(1, 10, "Toronto")
	t2 := NewTruck(2, 10, "Toronto")
	f.AddTruck(t1)
	f.AddTruck(t2)
	t1.Pack(NewParcel(1, 5, "Toronto", "Hamilton"))
	t1.Pack(NewParcel(2, 5, "Toronto", "Barrie"))
	t2.Pack(NewParcel(3, 5, "Toronto", "Hamilton"))

	// t1: 9 + 18 + 9, t2: 9 + 9
	assert.Equal(t, 54, f.TotalDistanceTravelled(d))
	assert.Equal(t, 27.0, f.AverageDistanceTravelled(d))
}

func TestFleetDistanceSkipsUnknownLegs(t *testing.T) {
	d := stubDistances{{"Toronto", "Hamilton"}: 9}
	f := NewFleet()
	tr := NewTruck(1, 10, "Toronto")
	f.AddTruck(tr)
	tr.Pack(NewParcel(1, 5, "Toronto", "Hamilton"))
	assert.Equal(t, 9, f.TotalDistanceTravelled(d))
}

func TestFleetStats(t *testing.T) {
	d := stubDistances{{"Toronto", "Hamilton"}: 9, {"Hamilton", "Toronto"}: 9}
	f := NewFleet()
	t1 := NewTruck(1, 10, "Toronto")
	t2 := NewTruck(2, 20, "Toronto")
	f.AddTruck(t1)
	f.AddTruck(t2)
	t1.Pack(NewParcel(1, 5, "Toronto", "Hamilton"))

	s := f.Stats(d)
	assert.Equal(t, Stats{
		Trucks:          2,
		NonemptyTrucks:  1,
		UnusedSpace:     5,
		AverageFullness: 50,
		TotalDistance:   18,
		AverageDistance: 18,
	}, s)

	noDist := f.Stats(nil)
	assert.Zero(t, noDist.TotalDistance)
	assert.Equal(t, 5, noDist.UnusedSpace)
}
