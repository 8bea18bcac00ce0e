package manager

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"profanityd/pkg/types"
)

// fakeAdapter is a controllable in-memory loader used by tests.
type fakeAdapter struct {
	mu       sync.Mutex
	loads    map[string]int
	failWith map[string]error
	panicFor map[string]bool
	// gate, when non-nil, blocks every Load until it is closed.
	gate chan struct{}
	// started receives the model id each time a Load begins.
	started chan string
	// session overrides the session returned on success.
	session func(mdl types.Model) *fakeSession
	last    *fakeSession
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{
		loads:    make(map[string]int),
		failWith: make(map[string]error),
		panicFor: make(map[string]bool),
		started:  make(chan string, 64),
	}
}

func (f *fakeAdapter) Load(ctx context.Context, mdl types.Model) (Session, error) {
	f.mu.Lock()
	f.loads[mdl.ID]++
	gate := f.gate
	failErr := f.failWith[mdl.ID]
	doPanic := f.panicFor[mdl.ID]
	mk := f.session
	f.mu.Unlock()

	f.started <- mdl.ID
	if gate != nil {
		<-gate
	}
	if doPanic {
		panic("loader exploded")
	}
	if failErr != nil {
		return nil, failErr
	}
	s := &fakeSession{label: types.LabelNot, confidence: 0.9, device: "cpu"}
	if mk != nil {
		s = mk(mdl)
	}
	f.mu.Lock()
	f.last = s
	f.mu.Unlock()
	return s, nil
}

func (f *fakeAdapter) loadCount(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads[id]
}

func (f *fakeAdapter) setFail(id string, err error) {
	f.mu.Lock()
	f.failWith[id] = err
	f.mu.Unlock()
}

func (f *fakeAdapter) setGate(g chan struct{}) {
	f.mu.Lock()
	f.gate = g
	f.mu.Unlock()
}

// fakeSession is a scorer returning a fixed classification.
type fakeSession struct {
	label      string
	confidence float64
	err        error
	delay      time.Duration
	panics     bool
	// block, when non-nil, holds Classify until closed regardless of ctx.
	block  chan struct{}
	device string
	calls      atomic.Int64
	closed     atomic.Bool
}

func (s *fakeSession) Classify(ctx context.Context, text string) (types.Classification, error) {
	s.calls.Add(1)
	if s.panics {
		panic("scorer exploded")
	}
	if s.block != nil {
		<-s.block
	}
	if s.closed.Load() {
		panic("use after close")
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return types.Classification{}, ctx.Err()
		}
	}
	if s.err != nil {
		return types.Classification{}, s.err
	}
	return types.Classification{Label: s.label, Confidence: s.confidence}, nil
}

func (s *fakeSession) Device() string { return s.device }

func (s *fakeSession) Close() error {
	s.closed.Store(true)
	return nil
}

var errLoad = errors.New("weights not found")

func testModels(ids ...string) []types.Model {
	out := make([]types.Model, 0, len(ids))
	for _, id := range ids {
		out = append(out, types.Model{ID: id, Name: id, Path: "/models/" + id})
	}
	return out
}

// newTestManager builds a manager over fake models with host info disabled.
func newTestManager(t *testing.T, fa *fakeAdapter, cfg ManagerConfig, ids ...string) *Manager {
	t.Helper()
	cfg.Models = testModels(ids...)
	cfg.Adapter = fa
	if cfg.HostInfo == nil {
		cfg.HostInfo = func() *types.HostStatus { return nil }
	}
	m, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

// waitStarted blocks until the fake adapter reports a load of id.
func waitStarted(t *testing.T, fa *fakeAdapter, id string) {
	t.Helper()
	select {
	case got := <-fa.started:
		if got != id {
			t.Fatalf("load started for %q, want %q", got, id)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for load of %q", id)
	}
}

// testCtx returns a context with a short timeout, canceled on test cleanup.
func testCtx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return c
}
