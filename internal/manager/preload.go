package manager

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Preload loads every slot concurrently and returns once all attempts have
// finished. Failures are recorded in their slots, not returned: a model that
// fails here is retried by the next request that needs it.
func (m *Manager) Preload(ctx context.Context) map[string]Outcome {
	names := m.registry.Names()
	results := make([]Outcome, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			out, err := m.EnsureReady(gctx, name)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Only a closed manager fails here; registry names are always known.
		m.log.Error().Err(err).Msg("preload aborted")
	}
	out := make(map[string]Outcome, len(names))
	for i, name := range names {
		out[name] = results[i]
	}
	m.log.Info().Int("models", len(names)).Msg("preload finished")
	return out
}
