package manager

import (
	"errors"
	"math"

	"profanityd/pkg/types"
)

// softmax returns the normalized exponentials of logits, shifted by the max
// logit for numerical stability.
func softmax(logits []float32) []float64 {
	if len(logits) == 0 {
		return nil
	}
	maxV := float64(logits[0])
	for _, v := range logits[1:] {
		maxV = math.Max(maxV, float64(v))
	}
	out := make([]float64, len(logits))
	var sum float64
	for i, v := range logits {
		out[i] = math.Exp(float64(v) - maxV)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// classifyLogits maps two-class logits to a label: index 1 is inappropriate.
// Confidence is the probability of the winning class.
func classifyLogits(logits []float32) (types.Classification, error) {
	if len(logits) != 2 {
		return types.Classification{}, errors.New("expected 2 logits")
	}
	p := softmax(logits)
	if math.IsNaN(p[0]) || math.IsNaN(p[1]) {
		return types.Classification{}, errors.New("logits produced NaN probabilities")
	}
	if p[1] > p[0] {
		return types.Classification{Label: types.LabelInappropriate, Confidence: p[1]}, nil
	}
	return types.Classification{Label: types.LabelNot, Confidence: p[0]}, nil
}
