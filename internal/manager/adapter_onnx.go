//go:build onnx

package manager

import (
	"context"
	"errors"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"profanityd/internal/tokenizer"
	"profanityd/pkg/types"
)

// onnxBuilt indicates this binary was compiled with real ONNX Runtime support.
const onnxBuilt = true

const (
	inputIDs      = "input_ids"
	attentionMask = "attention_mask"
	tokenTypeIDs  = "token_type_ids"
	outputLogits  = "logits"
)

var errSessionClosed = errors.New("onnx session closed")

var (
	ortInitOnce sync.Once
	ortInitErr  error
)

// initRuntime initializes the process-wide ONNX Runtime environment once.
func initRuntime(libPath string) error {
	ortInitOnce.Do(func() {
		if libPath != "" {
			ort.SetSharedLibraryPath(libPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			ortInitErr = ErrDependencyUnavailable("onnxruntime init: " + err.Error())
		}
	})
	return ortInitErr
}

type onnxAdapter struct {
	opts ONNXOptions
}

// NewONNXAdapter returns an adapter backed by ONNX Runtime. Models are
// sequence classifiers with two logits (index 1 = inappropriate).
func NewONNXAdapter(opts ONNXOptions) Adapter {
	return &onnxAdapter{opts: opts}
}

// onnxSession owns one loaded model graph and its tokenizer.
type onnxSession struct {
	// mu guards session: Classify holds it shared across Run, Close exclusively.
	mu         sync.RWMutex
	session    *ort.DynamicAdvancedSession
	tok        *tokenizer.WordPiece
	inputNames []string
	maxSeqLen  int
	device     string
}

func (a *onnxAdapter) Load(ctx context.Context, mdl types.Model) (Session, error) {
	graph, vocab, err := modelFiles(mdl)
	if err != nil {
		return nil, err
	}
	if err := initRuntime(a.opts.LibraryPath); err != nil {
		return nil, err
	}
	tok, err := tokenizer.LoadVocabFile(vocab, a.opts.Lowercase)
	if err != nil {
		return nil, err
	}
	inputs, _, err := ort.GetInputOutputInfo(graph)
	if err != nil {
		return nil, fmt.Errorf("inspect graph: %w", err)
	}
	names := []string{inputIDs, attentionMask}
	for _, in := range inputs {
		if in.Name == tokenTypeIDs {
			names = append(names, tokenTypeIDs)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("session options: %w", err)
	}
	defer opts.Destroy()
	device := "cpu"
	if a.opts.UseCUDA {
		if cuda, err := ort.NewCUDAProviderOptions(); err == nil {
			if err := opts.AppendExecutionProviderCUDA(cuda); err == nil {
				device = "cuda"
			}
			cuda.Destroy()
		}
	}
	sess, err := ort.NewDynamicAdvancedSession(graph, names, []string{outputLogits}, opts)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &onnxSession{session: sess, tok: tok, inputNames: names, maxSeqLen: a.opts.MaxSeqLen, device: device}, nil
}

func (s *onnxSession) Classify(ctx context.Context, text string) (types.Classification, error) {
	if err := ctx.Err(); err != nil {
		return types.Classification{}, err
	}
	enc := s.tok.Encode(text, s.maxSeqLen)
	shape := ort.NewShape(1, int64(len(enc.InputIDs)))
	byName := map[string][]int64{
		inputIDs:      enc.InputIDs,
		attentionMask: enc.AttentionMask,
		tokenTypeIDs:  enc.TokenTypeIDs,
	}
	inputs := make([]ort.Value, 0, len(s.inputNames))
	defer func() {
		for _, v := range inputs {
			_ = v.Destroy()
		}
	}()
	for _, name := range s.inputNames {
		t, err := ort.NewTensor(shape, byName[name])
		if err != nil {
			return types.Classification{}, fmt.Errorf("input tensor %s: %w", name, err)
		}
		inputs = append(inputs, t)
	}
	logits, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 2))
	if err != nil {
		return types.Classification{}, fmt.Errorf("output tensor: %w", err)
	}
	defer logits.Destroy()
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return types.Classification{}, errSessionClosed
	}
	if err := s.session.Run(inputs, []ort.Value{logits}); err != nil {
		return types.Classification{}, err
	}
	return classifyLogits(logits.GetData())
}

func (s *onnxSession) Device() string { return s.device }

func (s *onnxSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	err := s.session.Destroy()
	s.session = nil
	return err
}
