package types

import (
	"encoding/json"
	"testing"
)

func TestHealthResponseFlatKeys(t *testing.T) {
	msg := "boom"
	h := HealthResponse{
		Status:      "healthy",
		ActiveModel: "bert",
		LastError:   map[string]*string{"bert": nil, "roberta": &msg},
		Models: []ModelStatus{
			{Name: "bert", Status: "loaded", Path: "/m/bert"},
			{Name: "roberta", Status: "error", Path: "/m/roberta", LastError: &msg},
		},
	}
	b, err := json.Marshal(h)
	if err != nil { t.Fatalf("marshal: %v", err) }
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil { t.Fatalf("unmarshal: %v", err) }
	if out["bert_status"] != "loaded" || out["roberta_status"] != "error" {
		t.Fatalf("flat status keys missing: %s", b)
	}
	if out["roberta_model"] != "/m/roberta" { t.Fatalf("flat model key missing: %s", b) }
	le, ok := out["last_error"].(map[string]any)
	if !ok { t.Fatalf("last_error not an object: %s", b) }
	if le["bert"] != nil || le["roberta"] != "boom" { t.Fatalf("last_error=%v", le) }
}

func TestHealthResponseDeclaredFieldsWin(t *testing.T) {
	h := HealthResponse{
		ActiveModel: "bert",
		Models:      []ModelStatus{{Name: "active", Status: "loaded", Path: "/m/active"}},
	}
	b, err := json.Marshal(h)
	if err != nil { t.Fatalf("marshal: %v", err) }
	var out map[string]any
	_ = json.Unmarshal(b, &out)
	if out["active_model"] != "bert" { t.Fatalf("active_model overwritten: %s", b) }
	if out["active_status"] != "loaded" { t.Fatalf("active_status missing: %s", b) }
}
