package manager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profanityd/pkg/types"
)

func TestNewRegistryDefaults(t *testing.T) {
	r, err := NewRegistry(testModels("roberta", "bert"), "")
	require.NoError(t, err)
	assert.Equal(t, "roberta", r.Active(), "first configured model is the default")
	assert.Equal(t, []string{"roberta", "bert"}, r.Names())

	r, err = NewRegistry(testModels("roberta", "bert"), "bert")
	require.NoError(t, err)
	assert.Equal(t, "bert", r.Active())
}

func TestNewRegistryErrors(t *testing.T) {
	_, err := NewRegistry(nil, "")
	assert.Error(t, err)
	_, err = NewRegistry(testModels("a", "a"), "")
	assert.ErrorContains(t, err, "duplicate")
	_, err = NewRegistry(testModels("a"), "zzz")
	assert.ErrorContains(t, err, "default model")
	_, err = NewRegistry([]types.Model{{Path: "/x"}}, "")
	assert.ErrorContains(t, err, "empty id")
}

func TestResolve(t *testing.T) {
	r, err := NewRegistry(testModels("roberta", "bert"), "roberta")
	require.NoError(t, err)

	name, err := r.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "roberta", name)

	name, err = r.Resolve("bert")
	require.NoError(t, err)
	assert.Equal(t, "bert", name)

	for _, bad := range []string{"gpt", "BERT", " bert"} {
		_, err = r.Resolve(bad)
		assert.True(t, IsUnknownModel(err), "Resolve(%q) err=%v", bad, err)
	}
}

func TestResolveUnknownRegardlessOfState(t *testing.T) {
	fa := newFakeAdapter()
	m := newTestManager(t, fa, ManagerConfig{}, "bert")
	_, err := m.Registry().Resolve("nope")
	assert.True(t, IsUnknownModel(err))

	out, err := m.EnsureReady(testCtx(t), "bert")
	require.NoError(t, err)
	require.Equal(t, OutcomeReady, out.Kind)
	_, err = m.Registry().Resolve("nope")
	assert.True(t, IsUnknownModel(err))
}

func TestNamesReturnsCopy(t *testing.T) {
	r, err := NewRegistry(testModels("a", "b"), "")
	require.NoError(t, err)
	n := r.Names()
	n[0] = "z"
	assert.Equal(t, "a", r.Names()[0])
}

func TestSwapActivePanicsOnUnknown(t *testing.T) {
	r, err := NewRegistry(testModels("a", "b"), "")
	require.NoError(t, err)
	assert.Equal(t, "a", r.swapActive("b"))
	assert.Equal(t, "b", r.Active())
	assert.Panics(t, func() { r.swapActive("c") })
}
