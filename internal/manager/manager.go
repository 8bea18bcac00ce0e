package manager

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"profanityd/pkg/types"
)

// Manager owns the registry and coordinates loading, switching and dispatch.
// It is safe for concurrent use by any number of request handlers.
type Manager struct {
	registry     *Registry
	adapter      Adapter
	onnx         ONNXOptions
	loadTimeout  time.Duration
	inferTimeout time.Duration
	publisher    EventPublisher
	log          zerolog.Logger
	hostInfo     func() *types.HostStatus
	startTime    time.Time
	closed       atomic.Bool
}

// New constructs a Manager with default tunables.
func New(models []types.Model, defaultModel string, adapter Adapter) (*Manager, error) {
	return NewWithConfig(ManagerConfig{
		Models:       models,
		DefaultModel: defaultModel,
		Adapter:      adapter,
	})
}

// Registry exposes the underlying registry (read-only use).
func (m *Manager) Registry() *Registry { return m.registry }

// ActiveModel returns the current active model name.
func (m *Manager) ActiveModel() string { return m.registry.Active() }

// Ready reports whether the active model is loaded.
func (m *Manager) Ready() bool {
	s, _ := m.registry.Slot(m.registry.Active())
	return s.currentState() == StateLoaded
}

// ListModels returns the configured models in configuration order.
func (m *Manager) ListModels() []types.Model {
	names := m.registry.Names()
	out := make([]types.Model, 0, len(names))
	for _, n := range names {
		s, _ := m.registry.Slot(n)
		out = append(out, s.Model())
	}
	return out
}
