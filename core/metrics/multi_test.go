package metrics

import (
	"errors"
	"testing"
)

type recordSink struct {
	runs  int
	loads int
	err   error
}

func (r *recordSink) RecordScheduleRun(ScheduleRun) error {
	r.runs++
	return r.err
}

func (r *recordSink) RecordTruckLoads([]TruckLoad) error {
	r.loads++
	return r.err
}

type runOnlySink struct{ runs int }

func (r *runOnlySink) RecordScheduleRun(ScheduleRun) error {
	r.runs++
	return nil
}

// TestMultiSink ensures records are forwarded to all sinks.
func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &runOnlySink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordScheduleRun(ScheduleRun{RunID: "r"}); err != nil {
		t.Fatalf("record run: %v", err)
	}
	if err := m.RecordTruckLoads([]TruckLoad{{TruckID: 1}}); err != nil {
		t.Fatalf("record loads: %v", err)
	}
	if s1.runs != 1 || s1.loads != 1 || s2.runs != 1 {
		t.Fatalf("records not forwarded: %+v %+v", s1, s2)
	}
}

func TestMultiSinkJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	failing := &recordSink{err: boom}
	ok := &recordSink{}
	m := NewMultiSink(failing, ok)
	if err := m.RecordScheduleRun(ScheduleRun{}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if ok.runs != 1 {
		t.Fatal("failing sink stopped fan-out")
	}
}
