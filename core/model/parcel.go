package model

import "fmt"

// Parcel is a unit of cargo moving from Source to Destination. Parcels are
// not mutated once built and are shared by pointer with the truck packing
// them.
type Parcel struct {
	ID          int    `json:"id" yaml:"id"`
	Volume      int    `json:"volume" yaml:"volume"` // strictly positive
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
}

// NewParcel returns a parcel with the provided attributes.
func NewParcel(id, volume int, source, destination string) *Parcel {
	return &Parcel{ID: id, Volume: volume, Source: source, Destination: destination}
}

// Validate checks the parcel volume.
func (p Parcel) Validate() error {
	if p.Volume <= 0 {
		return fmt.Errorf("parcel %d: volume must be positive, got %d", p.ID, p.Volume)
	}
	return nil
}

func (p Parcel) String() string {
	return fmt.Sprintf("parcel %d (%d) %s -> %s", p.ID, p.Volume, p.Source, p.Destination)
}
