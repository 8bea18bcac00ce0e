package manager

import (
	"errors"
	"net/http"
)

// shuttingDownError is returned once Close has been called (503).
type shuttingDownError struct{}

func (shuttingDownError) Error() string   { return "service is shutting down" }
func (shuttingDownError) StatusCode() int { return http.StatusServiceUnavailable }

// Close releases every loaded session. It is meant for process shutdown: after
// Close, EnsureReady, Predict and SwitchActive fail with a shutting-down error.
// Each session is closed only after the scorer calls holding it have returned,
// so Close blocks for as long as the slowest in-flight prediction.
// Slot states are left as they are; there is no unload transition.
func (m *Manager) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}
	var errs []error
	for _, name := range m.registry.Names() {
		s, _ := m.registry.Slot(name)
		sess, ok := s.drain()
		if !ok {
			continue
		}
		if err := sess.Close(); err != nil {
			errs = append(errs, err)
		}
		m.log.Info().Str("model", name).Msg("model session closed")
	}
	return errors.Join(errs...)
}
