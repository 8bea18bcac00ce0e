package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"profanityd/internal/common/fsutil"
	"profanityd/internal/config"
	"profanityd/pkg/types"
)

const modelFile = "model.onnx"

// LoadDir scans a directory for model directories (subdirectories holding a
// model.onnx) and builds a registry from their names, sorted by name.
// ID is the directory name; Path is the absolute directory path.
func LoadDir(dir string) ([]types.Model, error) {
	abs, err := fsutil.AbsPath(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var models []types.Model
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		p := filepath.Join(abs, e.Name())
		if !fsutil.IsFile(filepath.Join(p, modelFile)) {
			continue
		}
		models = append(models, types.Model{ID: e.Name(), Name: e.Name(), Path: p})
	}
	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })
	return models, nil
}

// FromConfig builds the model list in configuration order. When an entry's
// path does not exist and a fallback_path is set, the fallback is used and a
// warning logged. A missing path without fallback is kept as is: the slot
// will fail on load and report the error in /health.
func FromConfig(entries []config.ModelConfig, log zerolog.Logger) ([]types.Model, error) {
	models := make([]types.Model, 0, len(entries))
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("model entry with empty name")
		}
		p, err := fsutil.AbsPath(e.Path)
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", name, err)
		}
		if !fsutil.PathExists(p) && strings.TrimSpace(e.FallbackPath) != "" {
			fb, err := fsutil.AbsPath(e.FallbackPath)
			if err != nil {
				return nil, fmt.Errorf("model %q fallback: %w", name, err)
			}
			log.Warn().Str("model", name).Str("path", p).Str("fallback", fb).Msg("trained model not found, using base model")
			p = fb
		} else if !fsutil.PathExists(p) {
			log.Warn().Str("model", name).Str("path", p).Msg("model path does not exist")
		}
		models = append(models, types.Model{ID: name, Name: name, Path: p, Family: e.Family})
	}
	return models, nil
}

// Resolve returns the configured models, or a models_dir scan when the
// configuration lists none.
func Resolve(cfg config.Config, log zerolog.Logger) ([]types.Model, error) {
	if len(cfg.Models) > 0 {
		return FromConfig(cfg.Models, log)
	}
	models, err := LoadDir(cfg.ModelsDir)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, fmt.Errorf("no model directories with %s found in %s", modelFile, cfg.ModelsDir)
	}
	return models, nil
}
