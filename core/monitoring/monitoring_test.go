package monitoring

import (
	"errors"
	"testing"
	"time"
)

type recordMonitor struct {
	errs    []error
	tags    map[string]string
	panics  []any
	flushes int
}

func (r *recordMonitor) CaptureException(err error, tags map[string]string) {
	r.errs = append(r.errs, err)
	r.tags = tags
}
func (r *recordMonitor) CapturePanic(v any)  { r.panics = append(r.panics, v) }
func (r *recordMonitor) Flush(time.Duration) { r.flushes++ }

func TestCaptureException(t *testing.T) {
	mon := &recordMonitor{}
	Init(mon)
	defer Init(NopMonitor{})

	CaptureException(nil, nil)
	CaptureException(errors.New("boom"), map[string]string{"module": "test"})
	if len(mon.errs) != 1 || mon.tags["module"] != "test" {
		t.Fatalf("unexpected capture %+v", mon)
	}
	Init(nil)
	CaptureException(errors.New("again"), nil)
	if len(mon.errs) != 2 {
		t.Fatal("nil Init replaced the monitor")
	}
}

func TestRecoverRepanics(t *testing.T) {
	mon := &recordMonitor{}
	Init(mon)
	defer Init(NopMonitor{})

	func() {
		defer func() {
			if r := recover(); r != "kaboom" {
				t.Fatalf("expected re-panic, got %v", r)
			}
		}()
		defer Recover()
		panic("kaboom")
	}()
	if len(mon.panics) != 1 || mon.flushes != 1 {
		t.Fatalf("panic not reported: %+v", mon)
	}
}
