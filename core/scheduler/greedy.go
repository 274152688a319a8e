package scheduler

import (
	"github.com/kilianp07/parcelsim/core/container"
	"github.com/kilianp07/parcelsim/core/logger"
	"github.com/kilianp07/parcelsim/core/model"
)

// GreedyScheduler packs parcels in priority order onto the best ranked truck
// with room. Among trucks with room, those whose last stop matches the
// parcel destination are preferred before ranking applies. Equal ranks keep
// input order.
type GreedyScheduler struct {
	cfg        Config
	parcelLess func(a, b *model.Parcel) bool
	truckLess  func(a, b *model.Truck) bool
	log        logger.Logger
}

// NewGreedyScheduler builds a greedy scheduler from the ordering fields of
// cfg.
func NewGreedyScheduler(cfg Config, log logger.Logger) (*GreedyScheduler, error) {
	pl, err := ParcelLess(cfg.ParcelPriority, cfg.ParcelOrder)
	if err != nil {
		return nil, err
	}
	tl, err := TruckLess(cfg.TruckOrder)
	if err != nil {
		return nil, err
	}
	return &GreedyScheduler{cfg: cfg, parcelLess: pl, truckLess: tl, log: logger.OrNop(log)}, nil
}

func (g *GreedyScheduler) Name() string { return string(AlgorithmGreedy) }

// Schedule implements Scheduler.
func (g *GreedyScheduler) Schedule(parcels []*model.Parcel, trucks []*model.Truck, verbose bool) []*model.Parcel {
	queue := container.NewPriorityQueue(g.parcelLess)
	for _, p := range parcels {
		queue.Add(p)
	}
	var unscheduled []*model.Parcel
	for !queue.IsEmpty() {
		p, _ := queue.Remove()
		candidates := feasibleTrucks(trucks, p)
		same := sameLastStop(candidates, p.Destination)
		if len(same) > 0 {
			candidates = same
		}
		if len(candidates) == 0 {
			if verbose {
				g.log.Debugw("parcel unscheduled", map[string]any{
					"parcel_id": p.ID,
					"volume":    p.Volume,
				})
			}
			unscheduled = append(unscheduled, p)
			continue
		}
		ranked := container.NewPriorityQueue(g.truckLess)
		for _, t := range candidates {
			ranked.Add(t)
		}
		best, _ := ranked.Remove()
		if !best.Pack(p) {
			// only reachable with a duplicate parcel ID aboard
			unscheduled = append(unscheduled, p)
			continue
		}
		if verbose {
			g.log.Debugw("parcel packed", map[string]any{
				"parcel_id":   p.ID,
				"volume":      p.Volume,
				"destination": p.Destination,
				"candidates":  truckIDs(candidates),
				"affinity":    len(same) > 0,
				"truck_id":    best.ID,
				"available":   best.AvailableCapacity(),
			})
		}
	}
	return unscheduled
}

// sameLastStop keeps the trucks whose route currently ends at dest.
func sameLastStop(trucks []*model.Truck, dest string) []*model.Truck {
	var out []*model.Truck
	for _, t := range trucks {
		if last, ok := t.LastStop(); ok && last == dest {
			out = append(out, t)
		}
	}
	return out
}
