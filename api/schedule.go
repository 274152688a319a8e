package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kilianp07/parcelsim/core/scenario"
	"github.com/kilianp07/parcelsim/core/scheduler"
)

const maxBodyBytes = 8 << 20

// ScheduleRequest is a scenario with an optional scheduler override.
type ScheduleRequest struct {
	scenario.Scenario
	Scheduler *scheduler.Config `json:"scheduler,omitempty"`
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "decode request: "+err.Error())
		return
	}
	cfg := s.defaults
	if req.Scheduler != nil {
		cfg = overlay(cfg, *req.Scheduler)
	}
	if err := cfg.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	in, err := req.Scenario.Build()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	rep, err := s.runner.Run(r.Context(), cfg, in)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, rep)
	case errors.Is(err, scheduler.ErrInvalidConfig), errors.Is(err, scenario.ErrInvalidScenario):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.log.Errorf("schedule: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// overlay replaces the fields of base that o sets.
func overlay(base, o scheduler.Config) scheduler.Config {
	if o.Algorithm != "" {
		base.Algorithm = o.Algorithm
	}
	if o.ParcelPriority != "" {
		base.ParcelPriority = o.ParcelPriority
	}
	if o.ParcelOrder != "" {
		base.ParcelOrder = o.ParcelOrder
	}
	if o.TruckOrder != "" {
		base.TruckOrder = o.TruckOrder
	}
	if o.Seed != 0 {
		base.Seed = o.Seed
	}
	base.Verbose = base.Verbose || o.Verbose
	return base
}
