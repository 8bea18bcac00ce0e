package types

import (
	"encoding/json"
)

// PredictRequest is the body of POST /predict.
type PredictRequest struct {
	// Text to classify. Must be non-empty after trimming.
	// example: ang ganda ng araw
	Text string `json:"text" example:"ang ganda ng araw"`
	// Optional model name. If empty, the active model is used.
	// example: bert
	Model string `json:"model,omitempty" example:"bert"`
}

// PredictResponse is returned by POST /predict.
type PredictResponse struct {
	// The input text.
	Text string `json:"text"`
	// True when the text was classified as inappropriate.
	// example: false
	IsInappropriate bool `json:"is_inappropriate" example:"false"`
	// Confidence of the predicted label in [0,1].
	// example: 0.97
	Confidence float64 `json:"confidence" example:"0.97"`
	// Scoring time in milliseconds (excludes any model load).
	// example: 12.5
	ProcessingTimeMS float64 `json:"processing_time_ms" example:"12.5"`
	// Model that served the request.
	// example: bert
	ModelUsed string `json:"model_used" example:"bert"`
}

// SwitchResponse is returned by POST /switch-model/{name}.
type SwitchResponse struct {
	// example: Successfully switched to bert model
	Message string `json:"message" example:"Successfully switched to bert model"`
	// example: bert
	ActiveModel string `json:"active_model" example:"bert"`
	// example: roberta
	PreviousModel string `json:"previous_model" example:"roberta"`
}

// ModelsResponse wraps the list of models returned by GET /models.
type ModelsResponse struct {
	// Configured models in configuration order.
	Models []Model `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: text cannot be empty
	Error string `json:"error" example:"text cannot be empty"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// ModelStatus summarizes one model slot for /health.
type ModelStatus struct {
	// example: roberta
	Name string `json:"name" example:"roberta"`
	// Lifecycle state: not_loaded, loading, loaded or error.
	// example: loaded
	Status string `json:"status" example:"loaded"`
	// Message of the most recent failed load, if any.
	LastError *string `json:"last_error"`
	// example: /srv/models/roberta-tagalog-large
	Path string `json:"path" example:"/srv/models/roberta-tagalog-large"`
	// Execution device of the loaded handle.
	// example: cpu
	Device string `json:"device,omitempty" example:"cpu"`
	// Number of load attempts so far.
	// example: 1
	Attempts uint64 `json:"attempts" example:"1"`
	// Unix seconds of the latest load start (0 when never started).
	LoadStartedAt int64 `json:"load_started_unix,omitempty"`
	// Unix seconds of the latest successful load.
	LoadCompletedAt int64 `json:"load_completed_unix,omitempty"`
}

// HostStatus reports coarse host resources.
type HostStatus struct {
	// example: 8
	CPUs int `json:"cpus" example:"8"`
	// example: 15923
	MemTotalMB uint64 `json:"mem_total_mb" example:"15923"`
	// example: 41.5
	MemUsedPercent float64 `json:"mem_used_percent" example:"41.5"`
}

// HealthResponse is returned by GET /health. Besides the declared fields it
// is serialized with flat "<model>_status" and "<model>_model" keys.
type HealthResponse struct {
	// example: healthy
	Status string `json:"status" example:"healthy"`
	// example: roberta
	ActiveModel string `json:"active_model" example:"roberta"`
	// example: cpu
	Device string `json:"device" example:"cpu"`
	// Last error per model name (null when the latest attempt did not fail).
	LastError map[string]*string `json:"last_error"`
	// example: 3600.5
	UptimeSeconds float64 `json:"uptime_seconds" example:"3600.5"`
	// Per-model details in configuration order.
	Models []ModelStatus `json:"models"`
	// Host resources, omitted when unavailable.
	Host *HostStatus `json:"host,omitempty"`
}

// MarshalJSON adds the flat per-model keys next to the declared fields.
func (h HealthResponse) MarshalJSON() ([]byte, error) {
	type plain HealthResponse
	b, err := json.Marshal(plain(h))
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	// Declared fields win over a colliding flat key (e.g. a model named "active").
	for _, m := range h.Models {
		if _, ok := out[m.Name+"_status"]; !ok {
			out[m.Name+"_status"] = m.Status
		}
		if _, ok := out[m.Name+"_model"]; !ok {
			out[m.Name+"_model"] = m.Path
		}
	}
	return json.Marshal(out)
}
