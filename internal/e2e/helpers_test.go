package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"profanityd/internal/httpapi"
	"profanityd/internal/manager"
	"profanityd/pkg/types"
)

// keywordSession flags text containing any of its words.
type keywordSession struct {
	words []string
}

func (s keywordSession) Classify(ctx context.Context, text string) (types.Classification, error) {
	lower := strings.ToLower(text)
	for _, w := range s.words {
		if strings.Contains(lower, w) {
			return types.Classification{Label: types.LabelInappropriate, Confidence: 0.95}, nil
		}
	}
	return types.Classification{Label: types.LabelNot, Confidence: 0.9}, nil
}

func (keywordSession) Device() string { return "cpu" }
func (keywordSession) Close() error   { return nil }

// stubAdapter loads keywordSessions. Per-model gates block a load until
// released; per-model errors make it fail.
type stubAdapter struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	fail    map[string]error
	loads   map[string]int
	started chan string
}

func newStubAdapter() *stubAdapter {
	return &stubAdapter{
		gates:   map[string]chan struct{}{},
		fail:    map[string]error{},
		loads:   map[string]int{},
		started: make(chan string, 16),
	}
}

func (a *stubAdapter) Load(ctx context.Context, mdl types.Model) (manager.Session, error) {
	a.mu.Lock()
	a.loads[mdl.ID]++
	gate := a.gates[mdl.ID]
	err := a.fail[mdl.ID]
	a.mu.Unlock()
	a.started <- mdl.ID
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return keywordSession{words: []string{"putang ina", "gago"}}, nil
}

func (a *stubAdapter) gate(id string) chan struct{} {
	g := make(chan struct{})
	a.mu.Lock()
	a.gates[id] = g
	a.mu.Unlock()
	return g
}

func (a *stubAdapter) setFail(id string, err error) {
	a.mu.Lock()
	a.fail[id] = err
	a.mu.Unlock()
}

func (a *stubAdapter) loadCount(id string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loads[id]
}

func (a *stubAdapter) waitStarted(t *testing.T, id string) {
	t.Helper()
	select {
	case got := <-a.started:
		if got != id {
			t.Fatalf("load started for %q, want %q", got, id)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for load of %q", id)
	}
}

func newServer(t *testing.T, ad manager.Adapter, defaultModel string, ids ...string) (*httptest.Server, *manager.Manager) {
	t.Helper()
	models := make([]types.Model, 0, len(ids))
	for _, id := range ids {
		models = append(models, types.Model{ID: id, Name: id, Path: "/models/" + id})
	}
	log := zerolog.Nop()
	mgr, err := manager.NewWithConfig(manager.ManagerConfig{
		Models:       models,
		DefaultModel: defaultModel,
		Adapter:      ad,
		Logger:       &log,
		HostInfo:     func() *types.HostStatus { return nil },
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	srv := httptest.NewServer(httpapi.NewMux(mgr))
	t.Cleanup(func() {
		srv.Close()
		_ = mgr.Close()
	})
	return srv, mgr
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	return do(t, req)
}

func httpPostJSON(t *testing.T, url string, payload string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader([]byte(payload)))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return do(t, req)
}

func do(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}
