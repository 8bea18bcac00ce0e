package manager

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"profanityd/pkg/types"
)

// Predict classifies text with the named model, or the active model when
// model is empty. It may trigger a load of that model but never waits on a
// load started by another request. Scorer failures leave the slot Loaded.
func (m *Manager) Predict(ctx context.Context, text, model string) (types.PredictResponse, error) {
	if strings.TrimSpace(text) == "" {
		predictionErrorsTotal.WithLabelValues("", errorKind(ErrEmptyInput)).Inc()
		return types.PredictResponse{}, ErrEmptyInput
	}
	name, err := m.registry.Resolve(model)
	if err != nil {
		predictionErrorsTotal.WithLabelValues("", errorKind(err)).Inc()
		return types.PredictResponse{}, err
	}
	resp, err := m.predict(ctx, text, name)
	if err != nil {
		predictionErrorsTotal.WithLabelValues(name, errorKind(err)).Inc()
		return types.PredictResponse{}, err
	}
	return resp, nil
}

func (m *Manager) predict(ctx context.Context, text, name string) (types.PredictResponse, error) {
	out, err := m.EnsureReady(ctx, name)
	if err != nil {
		return types.PredictResponse{}, err
	}
	if out.Kind != OutcomeReady {
		return types.PredictResponse{}, out.Err(name)
	}
	slot, _ := m.registry.Slot(name)
	sess, release, ok := slot.acquireSession()
	if !ok {
		// No eviction exists, so a Ready slot stays Loaded unless Close is
		// draining it; treat a miss as busy.
		return types.PredictResponse{}, modelBusyError{name: name}
	}

	if m.inferTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.inferTimeout)
		defer cancel()
	}
	start := time.Now()
	cls, err := score(ctx, sess, release, text)
	elapsed := time.Since(start)
	scoreDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	if err != nil {
		m.log.Error().Str("model", name).Err(err).Msg("prediction error")
		return types.PredictResponse{}, inferenceError{name: name, msg: err.Error()}
	}
	inappropriate := cls.Label == types.LabelInappropriate
	predictionsTotal.WithLabelValues(name, cls.Label).Inc()
	m.log.Debug().Str("model", name).Bool("inappropriate", inappropriate).Float64("confidence", cls.Confidence).Dur("dur", elapsed).Msg("prediction")
	return types.PredictResponse{
		Text:             text,
		IsInappropriate:  inappropriate,
		Confidence:       cls.Confidence,
		ProcessingTimeMS: float64(elapsed) / float64(time.Millisecond),
		ModelUsed:        name,
	}, nil
}

type scoreResult struct {
	cls types.Classification
	err error
}

// score runs classify in its own goroutine so ctx bounds the wait even when
// the scorer ignores it. An abandoned call keeps the session held until it
// returns, so Close never destroys a session under a running scorer.
func score(ctx context.Context, sess Session, release func(), text string) (types.Classification, error) {
	ch := make(chan scoreResult, 1)
	go func() {
		defer release()
		cls, err := classify(ctx, sess, text)
		ch <- scoreResult{cls: cls, err: err}
	}()
	select {
	case r := <-ch:
		return r.cls, r.err
	case <-ctx.Done():
		return types.Classification{}, ctx.Err()
	}
}

// classify calls the scorer and validates its output.
func classify(ctx context.Context, sess Session, text string) (cls types.Classification, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("scorer panic: %v", p)
		}
	}()
	cls, err = sess.Classify(ctx, text)
	if err != nil {
		return cls, err
	}
	if ctx.Err() != nil {
		return cls, ctx.Err()
	}
	if math.IsNaN(cls.Confidence) || cls.Confidence < 0 || cls.Confidence > 1 {
		return cls, fmt.Errorf("confidence %v out of range [0,1]", cls.Confidence)
	}
	if cls.Label != types.LabelInappropriate && cls.Label != types.LabelNot {
		return cls, fmt.Errorf("unexpected label %q", cls.Label)
	}
	return cls, nil
}
