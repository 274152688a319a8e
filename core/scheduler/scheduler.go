package scheduler

import (
	"math/rand"
	"time"

	"github.com/kilianp07/parcelsim/core/logger"
	"github.com/kilianp07/parcelsim/core/model"
)

// Scheduler decides which trucks carry which parcels.
type Scheduler interface {
	// Schedule packs parcels onto trucks and returns the parcels that could
	// not be placed. The parcels slice and its elements are not modified.
	// verbose only adds debug records.
	Schedule(parcels []*model.Parcel, trucks []*model.Truck, verbose bool) []*model.Parcel
	// Name identifies the strategy in metrics and run logs.
	Name() string
}

// New builds the scheduler selected by cfg. cfg is validated first.
func New(cfg Config, log logger.Logger) (Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Algorithm {
	case AlgorithmRandom:
		return NewRandomScheduler(newRng(cfg.Seed), log), nil
	default:
		return NewGreedyScheduler(cfg, log)
	}
}

// newRng returns a generator seeded with seed, or with the current time when
// seed is 0.
func newRng(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func feasibleTrucks(trucks []*model.Truck, p *model.Parcel) []*model.Truck {
	var out []*model.Truck
	for _, t := range trucks {
		if t.AvailableCapacity() >= p.Volume {
			out = append(out, t)
		}
	}
	return out
}

func truckIDs(trucks []*model.Truck) []int {
	ids := make([]int, len(trucks))
	for i, t := range trucks {
		ids[i] = t.ID
	}
	return ids
}
