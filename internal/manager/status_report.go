package manager

import (
	"time"

	"profanityd/pkg/types"
)

// Snapshot returns per-slot snapshots in configuration order plus the active name.
// It never triggers a load.
func (m *Manager) Snapshot() ([]SlotSnapshot, string) {
	names := m.registry.Names()
	out := make([]SlotSnapshot, 0, len(names))
	for _, n := range names {
		s, _ := m.registry.Slot(n)
		out = append(out, s.TrySnapshot())
	}
	return out, m.registry.Active()
}

// Health builds the /health report from a point-in-time snapshot.
func (m *Manager) Health() types.HealthResponse {
	snaps, active := m.Snapshot()
	resp := types.HealthResponse{
		Status:        "healthy",
		ActiveModel:   active,
		Device:        "not set",
		LastError:     make(map[string]*string, len(snaps)),
		UptimeSeconds: time.Since(m.startTime).Seconds(),
		Models:        make([]types.ModelStatus, 0, len(snaps)),
		Host:          m.hostInfo(),
	}
	for _, s := range snaps {
		var lastErr *string
		if s.HasError {
			msg := s.LastError
			lastErr = &msg
		}
		resp.LastError[s.Name] = lastErr
		ms := types.ModelStatus{
			Name:      s.Name,
			Status:    string(s.State),
			LastError: lastErr,
			Path:      s.Path,
			Device:    s.Device,
			Attempts:  s.Attempts,
		}
		if !s.LoadStartedAt.IsZero() {
			ms.LoadStartedAt = s.LoadStartedAt.Unix()
		}
		if !s.LoadCompletedAt.IsZero() {
			ms.LoadCompletedAt = s.LoadCompletedAt.Unix()
		}
		if s.Name == active && s.Device != "" {
			resp.Device = s.Device
		}
		resp.Models = append(resp.Models, ms)
	}
	return resp
}
