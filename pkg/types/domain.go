package types

// Model describes a loadable text-classification model on disk.
type Model struct {
	// Stable identifier for the model, used as the slot name.
	// example: roberta
	ID string `json:"id" example:"roberta"`
	// Human-friendly name.
	// example: RoBERTa Tagalog (large)
	Name string `json:"name" example:"RoBERTa Tagalog (large)"`
	// Path to the model directory (model.onnx + vocab.txt).
	// example: /srv/models/roberta-tagalog-large
	Path string `json:"path" example:"/srv/models/roberta-tagalog-large"`
	// Optional family (e.g., bert, roberta).
	// example: roberta
	Family string `json:"family,omitempty" example:"roberta"`
}

// Label values produced by a classifier.
const (
	LabelInappropriate = "inappropriate"
	LabelNot           = "not"
)

// Classification is the raw output of a scorer for one input text.
type Classification struct {
	Label      string
	Confidence float64
}
