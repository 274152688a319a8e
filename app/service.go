package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/parcelsim/api"
	"github.com/kilianp07/parcelsim/config"
	"github.com/kilianp07/parcelsim/core/events"
	coremetrics "github.com/kilianp07/parcelsim/core/metrics"
	coremon "github.com/kilianp07/parcelsim/core/monitoring"
	coremqtt "github.com/kilianp07/parcelsim/core/mqtt"
	"github.com/kilianp07/parcelsim/core/runlog"
	"github.com/kilianp07/parcelsim/core/simulation"
	"github.com/kilianp07/parcelsim/infra/logger"
	_ "github.com/kilianp07/parcelsim/infra/metrics"
	"github.com/kilianp07/parcelsim/infra/monitoring"
	"github.com/kilianp07/parcelsim/infra/mqtt"
	"github.com/kilianp07/parcelsim/internal/eventbus"
)

// Service wires the configured sinks, run log, manifest publisher and HTTP
// API around a simulation runner.
type Service struct {
	Runner    *simulation.Runner
	Store     runlog.Store
	Bus       *eventbus.Bus[events.Event]
	cfg       *config.Config
	publisher *mqtt.PahoPublisher
	log       logger.Logger
	server    *http.Server
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	store, err := runlog.Open(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("run log: %w", err)
	}

	bus := eventbus.NewWithBuffer[events.Event](64)
	opts := []simulation.Option{
		simulation.WithLogger(logger.NewVerbose("simulation", cfg.Scheduler.Verbose)),
		simulation.WithMetrics(sink),
		simulation.WithRunLog(store),
		simulation.WithBus(bus),
	}
	svc := &Service{Store: store, Bus: bus, cfg: cfg, log: logg}
	if cfg.MQTT.Enabled() {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.publisher = pub
		opts = append(opts, simulation.WithPublisher(coremqtt.Publisher(pub)))
	}
	svc.Runner = simulation.New(opts...)

	if cfg.HTTP.Enabled() {
		handler := api.New(svc.Runner, store, cfg.Scheduler,
			api.WithToken(cfg.HTTP.Token),
			api.WithGatherer(prometheus.DefaultGatherer),
			api.WithLogger(logger.New("api")),
		)
		svc.server = &http.Server{
			Addr:         cfg.HTTP.Addr,
			Handler:      handler,
			ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSeconds) * time.Second,
			WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSeconds) * time.Second,
		}
	}
	return svc, nil
}

// Run serves the HTTP API and logs run events until the context is
// cancelled.
func (s *Service) Run(ctx context.Context) error {
	sub := s.Bus.Subscribe()
	go s.logEvents(ctx, sub)

	if s.server == nil {
		s.log.Infof("HTTP API disabled")
		<-ctx.Done()
		return nil
	}
	errCh := make(chan error, 1)
	go func() {
		defer coremon.Recover()
		s.log.Infof("listening on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http shutdown: %v", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Service) logEvents(ctx context.Context, sub <-chan events.Event) {
	defer s.Bus.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			switch e := ev.(type) {
			case events.ParcelUnscheduled:
				s.log.Warnf("run %s: parcel %d (volume %d, to %s) unscheduled", e.RunID, e.ParcelID, e.Volume, e.Destination)
			case events.ScheduleCompleted:
				s.log.Infof("run %s: %s completed in %s", e.RunID, e.Algorithm, e.Duration)
			}
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.Bus.Close()
	if s.publisher != nil {
		s.publisher.Disconnect()
	}
	coremon.Flush(2 * time.Second)
	return s.Store.Close()
}
