// Package scenario loads delivery scenarios: a depot, the trucks, the parcels
// and the road distances between locations.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/parcelsim/core/distance"
	"github.com/kilianp07/parcelsim/core/model"
)

// ErrInvalidScenario is wrapped by every Build failure.
var ErrInvalidScenario = errors.New("invalid scenario")

type TruckDef struct {
	ID       int    `json:"id" yaml:"id"`
	Capacity int    `json:"capacity" yaml:"capacity"`
	Depot    string `json:"depot,omitempty" yaml:"depot,omitempty"`
}

type ParcelDef struct {
	ID          int    `json:"id" yaml:"id"`
	Volume      int    `json:"volume" yaml:"volume"`
	Source      string `json:"source,omitempty" yaml:"source,omitempty"`
	Destination string `json:"destination" yaml:"destination"`
}

// DistanceDef is one road. Back defaults to Distance when omitted.
type DistanceDef struct {
	From     string `json:"from" yaml:"from"`
	To       string `json:"to" yaml:"to"`
	Distance int    `json:"distance" yaml:"distance"`
	Back     *int   `json:"back,omitempty" yaml:"back,omitempty"`
}

type Scenario struct {
	Name      string        `json:"name" yaml:"name"`
	Depot     string        `json:"depot" yaml:"depot"`
	Trucks    []TruckDef    `json:"trucks" yaml:"trucks"`
	Parcels   []ParcelDef   `json:"parcels" yaml:"parcels"`
	Distances []DistanceDef `json:"distances,omitempty" yaml:"distances,omitempty"`
}

// Inputs are the model objects built from a scenario, ready to schedule.
type Inputs struct {
	Name      string
	Parcels   []*model.Parcel
	Trucks    []*model.Truck
	Fleet     *model.Fleet
	Distances *distance.Map
}

// Load reads a scenario from a .yaml, .yml or .json file.
func Load(path string) (*Scenario, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("unsupported scenario format: %s", ext)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return Decode(f, strings.TrimPrefix(ext, "."))
}

// Decode reads a scenario in the given format.
func Decode(r io.Reader, format string) (*Scenario, error) {
	var sc Scenario
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&sc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&sc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return &sc, nil
}

// Build validates the scenario and creates fresh trucks, parcels and a
// distance map. Trucks and parcels without a depot or source start at the
// scenario depot. Duplicate truck IDs are dropped, keeping the first;
// duplicate parcel IDs are rejected.
func (s *Scenario) Build() (*Inputs, error) {
	in := &Inputs{Name: s.Name, Fleet: model.NewFleet(), Distances: distance.New()}
	for _, td := range s.Trucks {
		depot := td.Depot
		if depot == "" {
			depot = s.Depot
		}
		t := model.NewTruck(td.ID, td.Capacity, depot)
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
		}
		in.Fleet.AddTruck(t)
	}
	in.Trucks = in.Fleet.Trucks()
	if len(in.Trucks) == 0 {
		return nil, fmt.Errorf("%w: no trucks", ErrInvalidScenario)
	}
	seen := make(map[int]bool, len(s.Parcels))
	for _, pd := range s.Parcels {
		if seen[pd.ID] {
			return nil, fmt.Errorf("%w: duplicate parcel id %d", ErrInvalidScenario, pd.ID)
		}
		seen[pd.ID] = true
		src := pd.Source
		if src == "" {
			src = s.Depot
		}
		p := model.NewParcel(pd.ID, pd.Volume, src, pd.Destination)
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
		}
		if p.Destination == "" {
			return nil, fmt.Errorf("%w: parcel %d has no destination", ErrInvalidScenario, p.ID)
		}
		in.Parcels = append(in.Parcels, p)
	}
	for _, dd := range s.Distances {
		if dd.From == "" || dd.To == "" || dd.Distance < 0 {
			return nil, fmt.Errorf("%w: bad distance %q -> %q", ErrInvalidScenario, dd.From, dd.To)
		}
		back := dd.Distance
		if dd.Back != nil {
			if *dd.Back < 0 {
				return nil, fmt.Errorf("%w: bad distance %q -> %q", ErrInvalidScenario, dd.To, dd.From)
			}
			back = *dd.Back
		}
		in.Distances.AddDistances(dd.From, dd.To, dd.Distance, back)
	}
	return in, nil
}
