package manager

import (
	"math"
	"testing"

	"profanityd/pkg/types"
)

func TestSoftmaxSumsToOne(t *testing.T) {
	p := softmax([]float32{1000, 1001})
	if math.Abs(p[0]+p[1]-1) > 1e-9 {
		t.Fatalf("sum=%v", p[0]+p[1])
	}
	if p[1] <= p[0] {
		t.Fatalf("expected p1 > p0, got %v", p)
	}
	if softmax(nil) != nil {
		t.Fatalf("expected nil for empty logits")
	}
}

func TestClassifyLogits(t *testing.T) {
	cases := []struct {
		logits []float32
		label  string
		conf   float64
	}{
		{[]float32{0, 0}, types.LabelNot, 0.5},
		{[]float32{2, 0}, types.LabelNot, 1 / (1 + math.Exp(-2))},
		{[]float32{-1, 3}, types.LabelInappropriate, 1 / (1 + math.Exp(-4))},
	}
	for _, tc := range cases {
		got, err := classifyLogits(tc.logits)
		if err != nil {
			t.Fatalf("%v: %v", tc.logits, err)
		}
		if got.Label != tc.label || math.Abs(got.Confidence-tc.conf) > 1e-6 {
			t.Fatalf("%v: got %+v want %s/%v", tc.logits, got, tc.label, tc.conf)
		}
	}
}

func TestClassifyLogitsErrors(t *testing.T) {
	if _, err := classifyLogits([]float32{1, 2, 3}); err == nil {
		t.Fatalf("expected error for 3 logits")
	}
	if _, err := classifyLogits([]float32{float32(math.NaN()), 1}); err == nil {
		t.Fatalf("expected error for NaN logits")
	}
}
