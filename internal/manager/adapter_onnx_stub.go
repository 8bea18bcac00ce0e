//go:build !onnx

package manager

// This file provides a no-CGO stub for the ONNX adapter. It is compiled when
// the 'onnx' build tag is NOT set, keeping default builds and CI CGO-free.
// The real adapter lives in adapter_onnx.go (tagged 'onnx').

import (
	"context"

	"profanityd/pkg/types"
)

// onnxBuilt indicates whether this binary was compiled with ONNX Runtime support.
const onnxBuilt = false

type onnxAdapter struct {
	opts ONNXOptions
}

// NewONNXAdapter returns an adapter that validates model files and then
// refuses to load: the runtime is not available in this build.
func NewONNXAdapter(opts ONNXOptions) Adapter {
	return &onnxAdapter{opts: opts}
}

func (a *onnxAdapter) Load(ctx context.Context, mdl types.Model) (Session, error) {
	if _, _, err := modelFiles(mdl); err != nil {
		return nil, err
	}
	return nil, ErrDependencyUnavailable("onnx support not built (missing 'onnx' build tag)")
}
