package apidocs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestDocRegisteredAndValidJSON(t *testing.T) {
	doc, err := swag.ReadDoc()
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}
	var v struct {
		Info  map[string]any `json:"info"`
		Paths map[string]any `json:"paths"`
	}
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		t.Fatalf("doc is not valid JSON: %v", err)
	}
	for _, p := range []string{"/predict", "/health", "/switch-model/{name}", "/models"} {
		if _, ok := v.Paths[p]; !ok {
			t.Fatalf("missing path %s", p)
		}
	}
	if v.Info["title"] != "profanityd API" {
		t.Fatalf("title=%v", v.Info["title"])
	}
}
