package mqtt

import (
	"context"
	"fmt"
	"sync"

	coremqtt "github.com/kilianp07/parcelsim/core/mqtt"
)

// MockPublisher records manifests in memory.
type MockPublisher struct {
	Manifests  []coremqtt.Manifest
	FailTrucks map[int]bool
	mu         sync.Mutex
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{FailTrucks: make(map[int]bool)}
}

// PublishManifest records the manifest or fails for trucks listed in FailTrucks.
func (m *MockPublisher) PublishManifest(_ context.Context, man coremqtt.Manifest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailTrucks[man.TruckID] {
		return "", fmt.Errorf("publish failed")
	}
	if man.ManifestID == "" {
		man.ManifestID = fmt.Sprintf("manifest-%s-%d", man.RunID, man.TruckID)
	}
	m.Manifests = append(m.Manifests, man)
	return man.ManifestID, nil
}

// Published returns a copy of the recorded manifests.
func (m *MockPublisher) Published() []coremqtt.Manifest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]coremqtt.Manifest(nil), m.Manifests...)
}
