// Package util holds the broker and metrics fixtures of the integration tests.
package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	MosquittoReadyTimeout = 10 * time.Second
	MetricTimeout         = 5 * time.Second

	mosquittoImage = "eclipse-mosquitto:2.0"
	pollInterval   = 50 * time.Millisecond
)

const mosquittoConf = `listener 1883
allow_anonymous true
persistence false
log_dest stdout
log_type error
log_type warning
`

// poll calls check until it reports done, returns an error, or ctx ends.
func poll(ctx context.Context, check func() (bool, error)) error {
	for {
		done, err := check()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// WaitForMetric polls metricsURL until the exposition output contains
// substr.
func WaitForMetric(ctx context.Context, metricsURL, substr string) error {
	err := poll(ctx, func() (bool, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, metricsURL, nil)
		if err != nil {
			return false, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return false, nil
		}
		defer func() { _ = resp.Body.Close() }()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return false, fmt.Errorf("read metrics body: %w", err)
		}
		return strings.Contains(string(body), substr), nil
	})
	if err != nil {
		return fmt.Errorf("metric %q: %w", substr, err)
	}
	return nil
}

// StartMosquitto runs an anonymous Mosquitto broker for the duration of a
// test and returns its tcp:// URL. The returned cleanup terminates the
// container.
func StartMosquitto(ctx context.Context) (string, func(), error) {
	req := tc.ContainerRequest{
		Image:        mosquittoImage,
		ExposedPorts: []string{"1883/tcp"},
		WaitingFor:   wait.ForListeningPort("1883/tcp"),
		Files: []tc.ContainerFile{{
			Reader:            strings.NewReader(mosquittoConf),
			ContainerFilePath: "/mosquitto/config/mosquitto.conf",
			FileMode:          0o644,
		}},
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = cont.Terminate(context.Background()) }

	endpoint, err := cont.PortEndpoint(ctx, "1883/tcp", "tcp")
	if err != nil {
		cleanup()
		return "", nil, err
	}

	readyCtx, cancel := context.WithTimeout(ctx, MosquittoReadyTimeout)
	defer cancel()
	if err := brokerReady(readyCtx, endpoint); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("broker %s not ready: %w", endpoint, err)
	}
	return endpoint, cleanup, nil
}

func brokerReady(ctx context.Context, broker string) error {
	opts := paho.NewClientOptions().AddBroker(broker).SetClientID("parcelsim-readiness")
	return poll(ctx, func() (bool, error) {
		cli := paho.NewClient(opts)
		token := cli.Connect()
		if !token.WaitTimeout(time.Second) || token.Error() != nil {
			return false, nil
		}
		cli.Disconnect(100)
		return true, nil
	})
}
