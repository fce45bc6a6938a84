package poll

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestPollerKeepsSnapshotAcrossFailures(t *testing.T) {
	ctx := context.Background()
	responses := []struct {
		data json.RawMessage
		err  error
	}{
		{data: json.RawMessage(`{"status":"waiting"}`)},
		{err: errors.New("network down")},
		{data: json.RawMessage(`{"status":"voting"}`)},
	}
	call := 0
	read := func(ctx context.Context) (json.RawMessage, bool, error) {
		r := responses[call]
		call++
		return r.data, r.data != nil, r.err
	}

	p := New(read, DefaultInterval, nil)

	p.poll(ctx)
	snap, loaded := p.Latest()
	if !loaded || !snap.Exists {
		t.Fatalf("first poll: loaded=%v exists=%v", loaded, snap.Exists)
	}
	if string(snap.Data) != `{"status":"waiting"}` {
		t.Errorf("snapshot = %s", snap.Data)
	}

	p.poll(ctx)
	if !p.Stale() {
		t.Error("failed poll should mark the poller stale")
	}
	snap, _ = p.Latest()
	if string(snap.Data) != `{"status":"waiting"}` {
		t.Errorf("failed poll replaced the snapshot: %s", snap.Data)
	}

	p.poll(ctx)
	if p.Stale() {
		t.Error("recovered poll should clear staleness")
	}
	snap, _ = p.Latest()
	if string(snap.Data) != `{"status":"voting"}` {
		t.Errorf("snapshot = %s", snap.Data)
	}
}

func TestPollerReportsMissingKey(t *testing.T) {
	ctx := context.Background()
	read := func(ctx context.Context) (json.RawMessage, bool, error) {
		return nil, false, nil
	}

	var got []Snapshot
	p := New(read, 0, func(s Snapshot) { got = append(got, s) })
	p.poll(ctx)

	snap, loaded := p.Latest()
	if !loaded {
		t.Fatal("missing key is still a completed poll")
	}
	if snap.Exists {
		t.Error("missing key reported as existing")
	}
	if len(got) != 1 || got[0].Exists {
		t.Errorf("onUpdate calls = %+v", got)
	}
}

func TestPollerNotLoadedBeforeFirstSuccess(t *testing.T) {
	ctx := context.Background()
	read := func(ctx context.Context) (json.RawMessage, bool, error) {
		return nil, false, errors.New("offline")
	}

	p := New(read, 0, nil)
	p.poll(ctx)

	if _, loaded := p.Latest(); loaded {
		t.Error("poller loaded despite never succeeding")
	}
	if !p.Stale() {
		t.Error("failing poller should be stale")
	}
}
