//go:build !no_containers

package test

import (
	"context"
	"encoding/json"
	"os/exec"
	"sort"
	"sync"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremqtt "github.com/kilianp07/parcelsim/core/mqtt"
	"github.com/kilianp07/parcelsim/core/scenario"
	"github.com/kilianp07/parcelsim/core/scheduler"
	"github.com/kilianp07/parcelsim/core/simulation"
	"github.com/kilianp07/parcelsim/infra/mqtt"
	"github.com/kilianp07/parcelsim/test/util"
)

func TestManifestsReachBroker(t *testing.T) {
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	broker, cleanup, err := util.StartMosquitto(ctx)
	if err != nil {
		t.Skipf("mosquitto unavailable: %v", err)
	}
	defer cleanup()

	var (
		mu  sync.Mutex
		got []coremqtt.Manifest
	)
	received := make(chan struct{}, 8)
	sub := paho.NewClient(paho.NewClientOptions().AddBroker(broker).SetClientID("manifest-sub"))
	tok := sub.Connect()
	require.True(t, tok.WaitTimeout(5*time.Second))
	require.NoError(t, tok.Error())
	defer sub.Disconnect(100)
	tok = sub.Subscribe("parcelsim/truck/+/manifest", 1, func(_ paho.Client, msg paho.Message) {
		var m coremqtt.Manifest
		if err := json.Unmarshal(msg.Payload(), &m); err != nil {
			return
		}
		mu.Lock()
		got = append(got, m)
		mu.Unlock()
		received <- struct{}{}
	})
	require.True(t, tok.WaitTimeout(5*time.Second))
	require.NoError(t, tok.Error())

	pub, err := mqtt.NewPahoPublisher(mqtt.Config{Broker: broker, ClientID: "parcelsim-test", QoS: 1})
	require.NoError(t, err)
	defer pub.Disconnect()

	sc := scenario.Scenario{
		Name:   "container",
		Depot:  "Toronto",
		Trucks: []scenario.TruckDef{{ID: 1, Capacity: 10}, {ID: 2, Capacity: 10}},
		Parcels: []scenario.ParcelDef{
			{ID: 1, Volume: 8, Destination: "Hamilton"},
			{ID: 2, Volume: 7, Destination: "Barrie"},
		},
	}
	in, err := sc.Build()
	require.NoError(t, err)
	rep, err := simulation.New(simulation.WithPublisher(pub)).Run(ctx, scheduler.DefaultConfig(), in)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		select {
		case <-received:
		case <-time.After(10 * time.Second):
			t.Fatalf("received %d manifests, want 2", i)
		}
	}
	mu.Lock()
	defer mu.Unlock()
	sort.Slice(got, func(i, j int) bool { return got[i].TruckID < got[j].TruckID })
	require.Len(t, got, 2)
	for _, m := range got {
		assert.Equal(t, rep.RunID, m.RunID)
		assert.NotEmpty(t, m.ManifestID)
		assert.Equal(t, rep.Allocations[m.TruckID], m.Parcels)
		assert.Equal(t, "Toronto", m.Depot)
	}
}
