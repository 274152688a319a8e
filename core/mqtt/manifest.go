package mqtt

import (
	"context"
	"time"
)

// Manifest describes the load of one truck after a scheduling run.
type Manifest struct {
	ManifestID string    `json:"manifest_id"`
	RunID      string    `json:"run_id"`
	TruckID    int       `json:"truck_id"`
	Depot      string    `json:"depot"`
	Route      []string  `json:"route"`
	Parcels    []int     `json:"parcels"`
	Used       int       `json:"used"`
	Capacity   int       `json:"capacity"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher delivers truck manifests to dispatch systems.
type Publisher interface {
	// PublishManifest sends m and returns the manifest identifier.
	PublishManifest(ctx context.Context, m Manifest) (string, error)
}
