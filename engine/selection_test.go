package engine

import (
	"context"
	"errors"
	"testing"

	"gitlab.com/tinyland/lab/syswatch/telemetry"
)

func TestSelectionPersistsWhenPidDisappears(t *testing.T) {
	sel := NewSelector(nil, nil)
	cache := NewTableCache()

	cache.Ingest([]telemetry.ProcessStat{{PID: 100, Name: "target"}}, "")
	sel.Select(100)

	// Next refresh no longer contains pid 100.
	cache.Ingest([]telemetry.ProcessStat{{PID: 200, Name: "other"}}, "")

	pid, ok := sel.Current()
	if !ok || pid != 100 {
		t.Fatalf("Current() = %d, %v; selection must survive the pid's absence", pid, ok)
	}

	// The lookup reports absence explicitly instead of serving stale data.
	if _, present := sel.Resolve(cache); present {
		t.Error("Resolve() claimed an absent pid was present")
	}
}

func TestResolveFindsLiveRecord(t *testing.T) {
	sel := NewSelector(nil, nil)
	cache := NewTableCache()
	cache.Ingest([]telemetry.ProcessStat{{PID: 7, Name: "live", CPUPercent: 3}}, "")

	sel.Select(7)
	rec, ok := sel.Resolve(cache)
	if !ok || rec.Name != "live" {
		t.Errorf("Resolve() = %+v, %v", rec, ok)
	}
}

func TestResolveWithoutSelection(t *testing.T) {
	sel := NewSelector(nil, nil)
	cache := NewTableCache()

	if _, ok := sel.Resolve(cache); ok {
		t.Error("Resolve() without a selection reported a record")
	}
}

func TestTerminateFailureKeepsSelection(t *testing.T) {
	mock := &telemetry.MockProvider{TerminateErr: errors.New("access denied")}
	sel := NewSelector(mock, nil)
	sel.Select(55)

	if err := sel.Terminate(context.Background(), 55); err == nil {
		t.Fatal("Terminate() swallowed the action failure")
	}

	if pid, ok := sel.Current(); !ok || pid != 55 {
		t.Error("failed termination cleared the selection")
	}
	if len(mock.Terminated) != 1 || mock.Terminated[0] != 55 {
		t.Errorf("termination request not dispatched: %v", mock.Terminated)
	}
}

func TestTerminateSuccess(t *testing.T) {
	mock := &telemetry.MockProvider{}
	sel := NewSelector(mock, nil)

	if err := sel.Terminate(context.Background(), 99); err != nil {
		t.Fatalf("Terminate() = %v", err)
	}
	if len(mock.Terminated) != 1 || mock.Terminated[0] != 99 {
		t.Errorf("Terminated = %v, want [99]", mock.Terminated)
	}
}

func TestTerminateWithoutActions(t *testing.T) {
	sel := NewSelector(nil, nil)
	if err := sel.Terminate(context.Background(), 1); err == nil {
		t.Error("Terminate() without an actions collaborator should fail softly")
	}
}

func TestClearSelection(t *testing.T) {
	sel := NewSelector(nil, nil)
	sel.Select(42)
	sel.Clear()
	if _, ok := sel.Current(); ok {
		t.Error("Clear() left a selection behind")
	}
}
