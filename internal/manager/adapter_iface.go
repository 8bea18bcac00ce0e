package manager

import (
	"context"

	"profanityd/pkg/types"
)

// Adapter is the model loader. Concrete implementations (e.g., ONNX Runtime)
// turn a model descriptor into a ready-to-score Session.
type Adapter interface {
	// Load initializes the model. It may take a long time and should honor ctx.
	Load(ctx context.Context, mdl types.Model) (Session, error)
}

// Session is the opaque handle owned by a Loaded slot. Classify is the scorer:
// it may be called concurrently by independent requests.
type Session interface {
	// Classify scores one text. Confidence must be within [0,1].
	Classify(ctx context.Context, text string) (types.Classification, error)
	// Device reports the execution device (e.g., cpu, cuda).
	Device() string
	// Close releases resources associated with the session.
	Close() error
}

// AdapterFunc adapts a plain function to the Adapter interface.
type AdapterFunc func(ctx context.Context, mdl types.Model) (Session, error)

func (f AdapterFunc) Load(ctx context.Context, mdl types.Model) (Session, error) { return f(ctx, mdl) }
