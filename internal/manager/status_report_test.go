package manager

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profanityd/pkg/types"
)

func TestHealthNeverLoads(t *testing.T) {
	fa := newFakeAdapter()
	m := newTestManager(t, fa, ManagerConfig{DefaultModel: "roberta"}, "roberta", "bert")

	h := m.Health()
	assert.Equal(t, "healthy", h.Status)
	assert.Equal(t, "roberta", h.ActiveModel)
	assert.Equal(t, "not set", h.Device)
	assert.Equal(t, 0, fa.loadCount("roberta")+fa.loadCount("bert"))

	want := []types.ModelStatus{
		{Name: "roberta", Status: "not_loaded", Path: "/models/roberta"},
		{Name: "bert", Status: "not_loaded", Path: "/models/bert"},
	}
	if diff := cmp.Diff(want, h.Models); diff != "" {
		t.Fatalf("models mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, map[string]*string{"roberta": nil, "bert": nil}, h.LastError)
}

func TestHealthReportsFailure(t *testing.T) {
	fa := newFakeAdapter()
	fa.setFail("roberta", errLoad)
	m := newTestManager(t, fa, ManagerConfig{DefaultModel: "roberta"}, "roberta", "bert")

	_, err := m.Predict(testCtx(t), "hello", "")
	require.True(t, IsModelLoadFailed(err))
	_, err = m.Predict(testCtx(t), "hello", "bert")
	require.NoError(t, err)

	h := m.Health()
	msg := errLoad.Error()
	want := []types.ModelStatus{
		{Name: "roberta", Status: "error", LastError: &msg, Path: "/models/roberta", Attempts: 1},
		{Name: "bert", Status: "loaded", Path: "/models/bert", Device: "cpu", Attempts: 1},
	}
	opts := cmpopts.IgnoreFields(types.ModelStatus{}, "LoadStartedAt", "LoadCompletedAt")
	if diff := cmp.Diff(want, h.Models, opts); diff != "" {
		t.Fatalf("models mismatch (-want +got):\n%s", diff)
	}
	require.NotNil(t, h.LastError["roberta"])
	assert.Equal(t, msg, *h.LastError["roberta"])
	assert.Nil(t, h.LastError["bert"])
	// Active model is still roberta, which has no device.
	assert.Equal(t, "not set", h.Device)
}

func TestHealthDeviceFollowsActive(t *testing.T) {
	fa := newFakeAdapter()
	m := newTestManager(t, fa, ManagerConfig{}, "bert")
	_, err := m.Predict(testCtx(t), "hello", "")
	require.NoError(t, err)
	assert.Equal(t, "cpu", m.Health().Device)
}

func TestHealthIncludesHost(t *testing.T) {
	host := &types.HostStatus{CPUs: 4, MemTotalMB: 2048}
	m := newTestManager(t, newFakeAdapter(), ManagerConfig{HostInfo: func() *types.HostStatus { return host }}, "bert")
	assert.Same(t, host, m.Health().Host)
}

func TestSnapshotOrder(t *testing.T) {
	m := newTestManager(t, newFakeAdapter(), ManagerConfig{DefaultModel: "b"}, "c", "a", "b")
	snaps, active := m.Snapshot()
	assert.Equal(t, "b", active)
	var names []string
	for _, s := range snaps {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}
