package model

// Stats aggregates a fleet after scheduling.
type Stats struct {
	Trucks          int     `json:"trucks"`
	NonemptyTrucks  int     `json:"nonempty_trucks"`
	UnusedSpace     int     `json:"unused_space"`
	AverageFullness float64 `json:"average_fullness"`
	TotalDistance   int     `json:"total_distance"`
	AverageDistance float64 `json:"average_distance"`
}

// Stats computes the fleet aggregates. A nil d leaves the distance fields at
// zero.
func (f *Fleet) Stats(d Distances) Stats {
	s := Stats{
		Trucks:          f.NumTrucks(),
		NonemptyTrucks:  f.NumNonemptyTrucks(),
		UnusedSpace:     f.TotalUnusedSpace(),
		AverageFullness: f.AverageFullness(),
	}
	if d != nil {
		s.TotalDistance = f.TotalDistanceTravelled(d)
		s.AverageDistance = f.AverageDistanceTravelled(d)
	}
	return s
}
