package manager

import (
	"time"

	"github.com/rs/zerolog"

	"profanityd/internal/hostinfo"
	"profanityd/pkg/types"
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	// Models in configuration order; IDs become slot names.
	Models []types.Model
	// DefaultModel is the initial active model. Empty selects the first model.
	DefaultModel string
	// Adapter loads models. Nil falls back to the ONNX adapter built with
	// ONNX options below (a stub unless built with -tags=onnx).
	Adapter Adapter
	// ONNX runtime options used when Adapter is nil.
	ONNX ONNXOptions
	// LoadTimeout bounds a single load attempt (0 disables).
	LoadTimeout time.Duration
	// InferTimeout bounds how long Predict waits for the scorer (0 disables).
	// An overrunning call is abandoned but keeps its session until it returns.
	InferTimeout time.Duration
	// Publisher receives lifecycle events. Nil drops them.
	Publisher EventPublisher
	// Logger receives lifecycle logs. Nil disables logging.
	Logger *zerolog.Logger
	// HostInfo reports host resources for health. Nil uses hostinfo.Collect.
	HostInfo func() *types.HostStatus
}

// ONNXOptions configure the ONNX Runtime adapter.
type ONNXOptions struct {
	// LibraryPath is the onnxruntime shared library. Empty uses the platform default.
	LibraryPath string
	// MaxSeqLen truncates tokenized input (default 512).
	MaxSeqLen int
	// Lowercase applies uncased BERT normalization (default true via config).
	Lowercase bool
	// UseCUDA appends the CUDA execution provider; falls back to CPU on error.
	UseCUDA bool
}

const defaultMaxSeqLen = 512

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) (*Manager, error) {
	reg, err := NewRegistry(cfg.Models, cfg.DefaultModel)
	if err != nil {
		return nil, err
	}
	m := &Manager{
		registry:     reg,
		adapter:      cfg.Adapter,
		loadTimeout:  cfg.LoadTimeout,
		inferTimeout: cfg.InferTimeout,
		publisher:    cfg.Publisher,
		hostInfo:     cfg.HostInfo,
		startTime:    time.Now(),
	}
	m.onnx = cfg.ONNX
	if m.onnx.MaxSeqLen <= 0 {
		m.onnx.MaxSeqLen = defaultMaxSeqLen
	}
	if m.adapter == nil {
		m.adapter = NewONNXAdapter(m.onnx)
	}
	if m.publisher == nil {
		m.publisher = noopPublisher{}
	}
	if cfg.Logger != nil {
		m.log = *cfg.Logger
	} else {
		m.log = zerolog.Nop()
	}
	if m.hostInfo == nil {
		m.hostInfo = hostinfo.Collect
	}
	return m, nil
}
