package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kilianp07/parcelsim/core/runlog"
)

// parseQuery reads the run filters: algorithm, run_id, parcel_id, and
// RFC3339 start and end.
func parseQuery(r *http.Request) (runlog.Query, error) {
	v := r.URL.Query()
	q := runlog.Query{Algorithm: v.Get("algorithm"), RunID: v.Get("run_id")}
	if s := v.Get("parcel_id"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			return q, err
		}
		q.ParcelID = &id
	}
	for key, dst := range map[string]*time.Time{"start": &q.Start, "end": &q.End} {
		if s := v.Get(key); s != "" {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return q, err
			}
			*dst = t
		}
	}
	return q, nil
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad query: "+err.Error())
		return
	}
	records, err := s.store.Query(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []runlog.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	records, err := s.store.Query(r.Context(), runlog.Query{RunID: id})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(records) == 0 {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, records[len(records)-1])
}
