package manager

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"profanityd/pkg/types"
)

const (
	onnxModelFile = "model.onnx"
	onnxVocabFile = "vocab.txt"
	bpeMergesFile = "merges.txt"
)

// bpeFamilies tokenize with byte-level BPE or SentencePiece, which the
// WordPiece tokenizer cannot reproduce.
var bpeFamilies = map[string]bool{
	"roberta":     true,
	"xlm-roberta": true,
	"gpt2":        true,
	"bart":        true,
}

// errUnsupportedTokenizer reports a model whose tokenizer is not WordPiece.
func errUnsupportedTokenizer(mdl types.Model, why string) error {
	return fmt.Errorf("model %q: %s; only WordPiece models with %s are supported", mdl.ID, why, onnxVocabFile)
}

// modelFiles resolves the ONNX graph and vocabulary for a model. Path may be a
// model directory or the .onnx file itself (vocab.txt next to it). Models of a
// BPE family, or shipping merges.txt, are rejected.
func modelFiles(mdl types.Model) (graph, vocab string, err error) {
	if f := strings.ToLower(strings.TrimSpace(mdl.Family)); bpeFamilies[f] {
		return "", "", errUnsupportedTokenizer(mdl, fmt.Sprintf("family %q uses a BPE tokenizer", f))
	}
	p := strings.TrimSpace(mdl.Path)
	if p == "" {
		return "", "", fmt.Errorf("model %q: path is empty", mdl.ID)
	}
	fi, err := os.Stat(p)
	if err != nil {
		return "", "", fmt.Errorf("model %q: %w", mdl.ID, err)
	}
	if fi.IsDir() {
		graph = filepath.Join(p, onnxModelFile)
		vocab = filepath.Join(p, onnxVocabFile)
	} else {
		graph = p
		vocab = filepath.Join(filepath.Dir(p), onnxVocabFile)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(vocab), bpeMergesFile)); err == nil {
		return "", "", errUnsupportedTokenizer(mdl, bpeMergesFile+" found, the model uses a BPE tokenizer")
	}
	for _, f := range []string{graph, vocab} {
		if _, err := os.Stat(f); err != nil {
			return "", "", fmt.Errorf("model %q: %w", mdl.ID, err)
		}
	}
	return graph, vocab, nil
}
