package manager

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profanityd/pkg/types"
)

func TestMetricsCountLoadsAndPredictions(t *testing.T) {
	fa := newFakeAdapter()
	fa.session = func(types.Model) *fakeSession {
		return &fakeSession{label: types.LabelInappropriate, confidence: 0.8}
	}
	m := newTestManager(t, fa, ManagerConfig{}, "metrics-ok", "metrics-bad")
	fa.setFail("metrics-bad", errLoad)

	_, err := m.Predict(testCtx(t), "hello", "metrics-ok")
	require.NoError(t, err)
	_, err = m.Predict(testCtx(t), "hello", "metrics-ok")
	require.NoError(t, err)
	_, err = m.Predict(testCtx(t), "hello", "metrics-bad")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(modelLoadsTotal.WithLabelValues("metrics-ok", "loaded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(modelLoadsTotal.WithLabelValues("metrics-bad", "failed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(predictionsTotal.WithLabelValues("metrics-ok", types.LabelInappropriate)))
	assert.Equal(t, 1.0, testutil.ToFloat64(predictionErrorsTotal.WithLabelValues("metrics-bad", "load_failed")))
}
