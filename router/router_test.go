// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package router

import (
	"context"
	"testing"
	"time"

	"github.com/go-core-stack/alerter/alert"
	"github.com/go-core-stack/alerter/errors"
)

type captureSink struct {
	alerts chan *alert.Alert
	keys   []string
}

func (s *captureSink) Raise(ctx context.Context, key *alert.Key, a *alert.Alert) error {
	s.keys = append(s.keys, key.ID)
	s.alerts <- a
	return nil
}

// flakySink fails the configured number of deliveries before
// starting to accept alerts
type flakySink struct {
	failures int
	calls    int
	keys     []string
}

func (s *flakySink) Raise(ctx context.Context, key *alert.Key, a *alert.Alert) error {
	s.calls++
	s.keys = append(s.keys, key.ID)
	if s.failures > 0 {
		s.failures--
		return errors.Wrap(errors.MessageNotDelivered, "sink unavailable")
	}
	return nil
}

func Test_Classify(t *testing.T) {
	r := New(context.Background())

	t.Run("test_decode_failure", func(t *testing.T) {
		alerts := r.Classify([]byte("not json at all"))
		if len(alerts) != 1 {
			t.Fatalf("expected 1 alert, got %d", len(alerts))
		}
		if alerts[0].Code != errors.JSONDecodeFailed {
			t.Errorf("expected JSONDecodeFailed, got %d", alerts[0].Code)
		}
		if alerts[0].Severity != alert.SeverityError {
			t.Errorf("expected severity ERROR, got %s", alerts[0].Severity)
		}
	})

	t.Run("test_unexpected_payload", func(t *testing.T) {
		alerts := r.Classify([]byte(`{"something": "else"}`))
		if len(alerts) != 1 {
			t.Fatalf("expected 1 alert, got %d", len(alerts))
		}
		if alerts[0].Code != errors.UnexpectedData {
			t.Errorf("expected UnexpectedData, got %d", alerts[0].Code)
		}
	})

	t.Run("test_registered_failure_code", func(t *testing.T) {
		body := []byte(`{"error": {"code": 437, "message": "cannot access page of repo test-repo",
			"meta_data": {"source_name": "test-repo", "source_id": "repo-1", "parent_id": "chain-1"}}}`)
		alerts := r.Classify(body)
		if len(alerts) != 1 {
			t.Fatalf("expected 1 alert, got %d", len(alerts))
		}
		if alerts[0].Code != errors.PageNotAccessible {
			t.Errorf("expected PageNotAccessible, got %d", alerts[0].Code)
		}
		if alerts[0].Message != "cannot access page of repo test-repo" {
			t.Errorf("unexpected message %q", alerts[0].Message)
		}
		if alerts[0].Origin != "repo-1" || alerts[0].ParentID != "chain-1" {
			t.Errorf("source identifiers not carried over to the alert")
		}
	})

	t.Run("test_unregistered_failure_code", func(t *testing.T) {
		body := []byte(`{"error": {"code": 999, "meta_data": {"source_name": "test-repo"}}}`)
		alerts := r.Classify(body)
		if len(alerts) != 1 {
			t.Fatalf("expected 1 alert, got %d", len(alerts))
		}
		if alerts[0].Code != errors.UnexpectedData {
			t.Errorf("expected UnexpectedData for out of registry code, got %d", alerts[0].Code)
		}
	})

	t.Run("test_result_without_metrics", func(t *testing.T) {
		body := []byte(`{"result": {"meta_data": {"source_name": "sys-1"}, "data": {}}}`)
		alerts := r.Classify(body)
		if len(alerts) != 1 {
			t.Fatalf("expected 1 alert, got %d", len(alerts))
		}
		if alerts[0].Code != errors.NoMetricsGiven {
			t.Errorf("expected NoMetricsGiven, got %d", alerts[0].Code)
		}
		if alerts[0].Severity != alert.SeverityWarning {
			t.Errorf("expected severity WARNING, got %s", alerts[0].Severity)
		}
	})

	t.Run("test_result_with_missing_metric", func(t *testing.T) {
		body := []byte(`{"result": {"meta_data": {"source_name": "sys-1"},
			"data": {"cpu": {"current": 0.5, "previous": 0.4}, "memory": {"previous": 0.7}}}}`)
		alerts := r.Classify(body)
		if len(alerts) != 1 {
			t.Fatalf("expected 1 alert, got %d", len(alerts))
		}
		if alerts[0].Code != errors.MetricNotFound {
			t.Errorf("expected MetricNotFound, got %d", alerts[0].Code)
		}
	})

	t.Run("test_healthy_result", func(t *testing.T) {
		body := []byte(`{"result": {"meta_data": {"source_name": "sys-1"},
			"data": {"cpu": {"current": 0.5, "previous": 0.4}}}}`)
		alerts := r.Classify(body)
		if len(alerts) != 0 {
			t.Errorf("expected no alerts for a healthy result, got %d", len(alerts))
		}
	})
}

func Test_Dispatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &captureSink{alerts: make(chan *alert.Alert, 8)}
	r := New(ctx, sink)

	raised := alert.New(errors.SystemIsDown, "system node-1 is down", alert.SeverityCritical, "system-monitor-1")
	if err := r.Raise(raised); err != nil {
		t.Fatalf("failed to raise alert: %s", err)
	}

	select {
	case got := <-sink.alerts:
		if got.Code != errors.SystemIsDown {
			t.Errorf("expected SystemIsDown at the sink, got %d", got.Code)
		}
		if got.Message != raised.Message {
			t.Errorf("alert message changed in flight, got %q", got.Message)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("alert never reached the sink")
	}
}

func Test_DispatchEveryRaise(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &captureSink{alerts: make(chan *alert.Alert, 8)}
	r := New(ctx, sink)

	// the same alert raised repeatedly represents distinct
	// occurrences and every one of them must reach the sinks
	a := alert.New(errors.DataReadFailed, "cannot read output of sys-1", alert.SeverityWarning, "sys-monitor-1")
	for i := 0; i < 3; i++ {
		if err := r.Raise(a); err != nil {
			t.Fatalf("failed to raise alert: %s", err)
		}
	}

	for i := 0; i < 3; i++ {
		select {
		case <-sink.alerts:
		case <-time.After(2 * time.Second):
			t.Fatalf("received only %d of 3 raised alerts", i)
		}
	}

	// each raise gets its own key
	seen := map[string]bool{}
	for _, id := range sink.keys {
		if seen[id] {
			t.Errorf("key %s handed to the sink more than once", id)
		}
		seen[id] = true
	}
}

func Test_DispatchRetry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := &captureSink{alerts: make(chan *alert.Alert, 8)}
	second := &flakySink{failures: 1}
	r := New(ctx, first, second)

	e := &entry{
		key:  alert.NewKey(),
		data: alert.New(errors.APICallFailed, "api call to sys-1 failed", alert.SeverityError, "api-monitor-1"),
		done: make([]bool, 2),
	}

	// first attempt delivers to the first sink and fails on the
	// second, the entry must remember the partial delivery
	if err := r.dispatchEntry(e); err == nil {
		t.Fatalf("expected dispatch to fail while the second sink is unavailable")
	}
	if len(first.keys) != 1 {
		t.Fatalf("expected 1 delivery to the first sink, got %d", len(first.keys))
	}

	// retry attempt must skip the sink that already accepted the
	// alert and deliver only to the failed one
	if err := r.dispatchEntry(e); err != nil {
		t.Fatalf("expected retry to succeed, got: %s", err)
	}
	if len(first.keys) != 1 {
		t.Errorf("first sink received the alert %d times for a single raise", len(first.keys))
	}
	if second.calls != 2 {
		t.Errorf("expected 2 attempts on the second sink, got %d", second.calls)
	}

	// every attempt carries the same key, so keyed sinks can
	// deduplicate across retries
	for _, id := range append(first.keys, second.keys...) {
		if id != e.key.ID {
			t.Errorf("expected key %s at the sinks, got %s", e.key.ID, id)
		}
	}
}

// duplicateStore accepts the first insert of a key and reports
// AlreadyExists for any repeat
type duplicateStore struct {
	seen map[string]bool
}

func (s *duplicateStore) Insert(ctx context.Context, key *alert.Key, entry *alert.Alert) error {
	if s.seen[key.ID] {
		return errors.Wrapf(errors.AlreadyExists, "alert %s already exists", key.ID)
	}
	s.seen[key.ID] = true
	return nil
}

func Test_StoreSinkKeyedInsert(t *testing.T) {
	table := &duplicateStore{seen: map[string]bool{}}
	sink := &StoreSink{Table: table}

	key := alert.NewKey()
	a := alert.New(errors.SystemIsDown, "system node-1 is down", alert.SeverityCritical, "system-monitor-1")

	if err := sink.Raise(context.Background(), key, a); err != nil {
		t.Fatalf("expected first insert to succeed, got: %s", err)
	}
	if !table.seen[key.ID] {
		t.Errorf("alert not stored under the key allocated at raise time")
	}

	// a redelivered insert under the same key is not an error, the
	// alert is already persisted
	if err := sink.Raise(context.Background(), key, a); err != nil {
		t.Errorf("expected repeated insert under the same key to be accepted, got: %s", err)
	}
	if len(table.seen) != 1 {
		t.Errorf("expected a single stored document, got %d", len(table.seen))
	}
}

func Test_DispatchStopped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := New(ctx)
	cancel()

	// give the pipeline a moment to observe the closed context
	time.Sleep(10 * time.Millisecond)

	a := alert.New(errors.Internal, "late alert", alert.SeverityInfo, "")
	if err := r.Raise(a); err == nil {
		t.Errorf("expected raise to fail once the router context is closed")
	}
}
