package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	coremqtt "github.com/kilianp07/parcelsim/core/mqtt"
	"github.com/kilianp07/parcelsim/infra/logger"
)

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// PahoPublisher publishes truck manifests using Eclipse Paho.
type PahoPublisher struct {
	cli    pahoClient
	cfg    Config
	logger logger.Logger
}

// NewPahoPublisher connects to the MQTT broker.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	log := logger.New("mqtt_publisher")
	opts.OnConnect = func(paho.Client) {
		log.Infof("MQTT connected to %s", cfg.Broker)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &PahoPublisher{cli: c, cfg: cfg, logger: log}, nil
}

// NewClientOptions builds mqtt client options from Config.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	opts.SetConnectTimeout(10 * time.Second)
	if cfg.AuthMethod != "certificate" {
		if cfg.Username != "" {
			opts.SetUsername(cfg.Username)
		}
		if cfg.Password != "" {
			opts.SetPassword(cfg.Password)
		}
	}
	if cfg.UseTLS || cfg.AuthMethod == "certificate" || cfg.AuthMethod == "both" {
		tlsCfg, err := cfg.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	if cfg.LWTTopic != "" {
		opts.SetWill(cfg.LWTTopic, cfg.LWTPayload, cfg.LWTQoS, cfg.LWTRetain)
	}
	return opts, nil
}

// ManifestTopic is the topic receiving manifests for a truck.
func ManifestTopic(prefix string, truckID int) string {
	return fmt.Sprintf("%s/truck/%d/manifest", prefix, truckID)
}

// PublishManifest sends the manifest as JSON, retrying with exponential
// backoff. A missing ManifestID is generated.
func (p *PahoPublisher) PublishManifest(ctx context.Context, m coremqtt.Manifest) (string, error) {
	if !p.cli.IsConnected() {
		return "", coremqtt.ErrNotConnected
	}
	if m.ManifestID == "" {
		m.ManifestID = uuid.NewString()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	payload, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	topic := ManifestTopic(p.cfg.TopicPrefix, m.TruckID)

	var publishErr error
	for attempt := 0; attempt <= p.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(p.cfg.backoff() * time.Duration(1<<(attempt-1))):
			}
		}
		token := p.cli.Publish(topic, p.cfg.QoS, p.cfg.Retain, payload)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-token.Done():
		}
		publishErr = token.Error()
		if publishErr == nil {
			p.logger.Infof("sent manifest %s to %s", m.ManifestID, topic)
			return m.ManifestID, nil
		}
		p.logger.Errorf("publish attempt %d failed: %v", attempt+1, publishErr)
	}
	return "", fmt.Errorf("publish manifest for truck %d: %w", m.TruckID, publishErr)
}

// Disconnect gracefully closes the MQTT connection.
func (p *PahoPublisher) Disconnect() {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}
