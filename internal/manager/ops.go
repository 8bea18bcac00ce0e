package manager

import "context"

// SwitchActive makes target the active model once it is loaded. A NotLoaded or
// Failed target is loaded as part of the switch. On Busy or Failed the active
// model is left unchanged and the matching typed error is returned.
func (m *Manager) SwitchActive(ctx context.Context, target string) (string, error) {
	if _, err := m.registry.Resolve(target); err != nil || target == "" {
		return "", ErrUnknownModel(target)
	}
	out, err := m.EnsureReady(ctx, target)
	if err != nil {
		return "", err
	}
	if out.Kind != OutcomeReady {
		return "", out.Err(target)
	}
	prev := m.registry.swapActive(target)
	m.log.Info().Str("from", prev).Str("to", target).Msg("switched active model")
	m.publisher.Publish(Event{Name: EventSwitch, Model: target, Fields: map[string]any{"previous": prev}})
	return prev, nil
}
