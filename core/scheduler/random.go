package scheduler

import (
	"math/rand"

	"github.com/kilianp07/parcelsim/core/logger"
	"github.com/kilianp07/parcelsim/core/model"
)

// RandomScheduler handles parcels in shuffled order and packs each onto a
// uniformly chosen truck with enough room.
type RandomScheduler struct {
	rng *rand.Rand
	log logger.Logger
}

// NewRandomScheduler uses rng for every random choice. A nil rng is seeded
// from the clock. The scheduler is not safe for concurrent use since
// *rand.Rand is not.
func NewRandomScheduler(rng *rand.Rand, log logger.Logger) *RandomScheduler {
	if rng == nil {
		rng = newRng(0)
	}
	return &RandomScheduler{rng: rng, log: logger.OrNop(log)}
}

func (r *RandomScheduler) Name() string { return string(AlgorithmRandom) }

// Schedule implements Scheduler.
func (r *RandomScheduler) Schedule(parcels []*model.Parcel, trucks []*model.Truck, verbose bool) []*model.Parcel {
	order := append([]*model.Parcel(nil), parcels...)
	r.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	var unscheduled []*model.Parcel
	for _, p := range order {
		candidates := feasibleTrucks(trucks, p)
		if len(candidates) == 0 {
			unscheduled = append(unscheduled, p)
			if verbose {
				r.log.Debugw("parcel unscheduled", map[string]any{"parcel_id": p.ID, "volume": p.Volume})
			}
			continue
		}
		t := candidates[r.rng.Intn(len(candidates))]
		if !t.Pack(p) {
			unscheduled = append(unscheduled, p)
			continue
		}
		if verbose {
			r.log.Debugw("parcel packed", map[string]any{
				"parcel_id":  p.ID,
				"candidates": truckIDs(candidates),
				"truck_id":   t.ID,
				"available":  t.AvailableCapacity(),
			})
		}
	}
	return unscheduled
}
