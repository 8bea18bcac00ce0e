package manager

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EnsureReady makes sure the named slot is loaded. It never waits on a load
// started by another caller: that case reports OutcomeBusy. When the caller
// wins BeginLoad it performs the load synchronously and reports Ready or Failed.
func (m *Manager) EnsureReady(ctx context.Context, name string) (Outcome, error) {
	if m.closed.Load() {
		return Outcome{}, shuttingDownError{}
	}
	slot, ok := m.registry.Slot(name)
	if !ok {
		return Outcome{}, ErrUnknownModel(name)
	}
	switch slot.currentState() {
	case StateLoaded:
		return Outcome{Kind: OutcomeReady}, nil
	case StateLoading:
		m.publishBusy(name, slot)
		return Outcome{Kind: OutcomeBusy}, nil
	}

	attemptID := uuid.NewString()
	if !slot.BeginLoad(attemptID) {
		// Lost the race: someone else began (or finished) between the check and BeginLoad.
		if slot.currentState() == StateLoaded {
			return Outcome{Kind: OutcomeReady}, nil
		}
		m.publishBusy(name, slot)
		return Outcome{Kind: OutcomeBusy}, nil
	}

	startTs := time.Now()
	m.log.Info().Str("model", name).Str("attempt", attemptID).Str("path", slot.Model().Path).Msg("model load start")
	m.publisher.Publish(Event{Name: EventLoadStart, Model: name, AttemptID: attemptID, Fields: map[string]any{"path": slot.Model().Path}})

	sess, err := m.runLoad(ctx, slot)
	dur := time.Since(startTs)
	modelLoadDuration.WithLabelValues(name).Observe(dur.Seconds())
	if err != nil {
		msg := err.Error()
		slot.FailLoad(msg)
		modelLoadsTotal.WithLabelValues(name, "failed").Inc()
		m.log.Error().Str("model", name).Str("attempt", attemptID).Dur("dur", dur).Err(err).Msg("model load failed")
		m.publisher.Publish(Event{Name: EventLoadFailed, Model: name, AttemptID: attemptID, Fields: map[string]any{"error": msg, "dur_ms": int(dur / time.Millisecond)}})
		return Outcome{Kind: OutcomeFailed, Message: msg}, nil
	}
	if !slot.CompleteLoad(sess) {
		// Close ran while this load was in flight; nothing would release the handle.
		_ = sess.Close()
		modelLoadsTotal.WithLabelValues(name, "failed").Inc()
		m.log.Info().Str("model", name).Str("attempt", attemptID).Msg("model loaded during shutdown, discarded")
		return Outcome{}, shuttingDownError{}
	}
	modelLoadsTotal.WithLabelValues(name, "loaded").Inc()
	m.log.Info().Str("model", name).Str("attempt", attemptID).Str("device", sess.Device()).Dur("dur", dur).Msg("model load ready")
	m.publisher.Publish(Event{Name: EventLoadReady, Model: name, AttemptID: attemptID, Fields: map[string]any{"device": sess.Device(), "dur_ms": int(dur / time.Millisecond)}})
	return Outcome{Kind: OutcomeReady}, nil
}

type loadResult struct {
	sess Session
	err  error
}

// runLoad calls the adapter on a context detached from the caller, so a client
// disconnect does not abort a shared warm-up. The load timeout, when set, is
// enforced here: the slot stays orphaned until the abandoned loader returns,
// and its late handle is closed and discarded.
func (m *Manager) runLoad(ctx context.Context, slot *Slot) (Session, error) {
	ctx = context.WithoutCancel(ctx)
	if m.loadTimeout <= 0 {
		r := m.callLoad(ctx, slot)
		return r.sess, r.err
	}
	ctx, cancel := context.WithTimeout(ctx, m.loadTimeout)
	defer cancel()
	ch := make(chan loadResult, 1)
	go func() { ch <- m.callLoad(ctx, slot) }()
	select {
	case r := <-ch:
		return r.sess, r.err
	case <-ctx.Done():
		slot.markOrphaned()
		go func() {
			defer slot.orphanDone()
			if r := <-ch; r.sess != nil {
				_ = r.sess.Close()
				m.log.Info().Str("model", slot.Name()).Msg("late model load discarded")
			}
		}()
		return nil, fmt.Errorf("load timed out after %s", m.loadTimeout)
	}
}

// callLoad invokes the adapter, converting a panic into an error.
func (m *Manager) callLoad(ctx context.Context, slot *Slot) (r loadResult) {
	defer func() {
		if p := recover(); p != nil {
			r = loadResult{err: fmt.Errorf("loader panic: %v", p)}
		}
	}()
	sess, err := m.adapter.Load(ctx, slot.Model())
	switch {
	case err == nil && sess == nil:
		err = errors.New("loader returned no session")
	case err != nil && sess != nil:
		_ = sess.Close()
		sess = nil
	}
	return loadResult{sess: sess, err: err}
}

func (m *Manager) publishBusy(name string, slot *Slot) {
	snap := slot.TrySnapshot()
	m.log.Debug().Str("model", name).Str("attempt", snap.AttemptID).Msg("model load in progress, rejecting")
	m.publisher.Publish(Event{Name: EventLoadBusy, Model: name, AttemptID: snap.AttemptID, Fields: map[string]any{}})
}
