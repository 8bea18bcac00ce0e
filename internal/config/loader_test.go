package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func wantBase() Config {
	return Config{
		Addr:               ":9999",
		DefaultModel:       "roberta",
		Preload:            true,
		LoadTimeoutSeconds: 30,
		Models: []ModelConfig{
			{Name: "roberta", Path: "/m/roberta", FallbackPath: "/m/xlm-roberta-base"},
			{Name: "bert", Path: "/m/bert", Family: "bert"},
		},
	}
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", `addr: ":9999"
default_model: roberta
preload: true
load_timeout_seconds: 30
models:
  - name: roberta
    path: /m/roberta
    fallback_path: /m/xlm-roberta-base
  - name: bert
    path: /m/bert
    family: bert
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(wantBase(), cfg); diff != "" {
		t.Fatalf("cfg mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":9999","default_model":"roberta","preload":true,"load_timeout_seconds":30,
"models":[{"name":"roberta","path":"/m/roberta","fallback_path":"/m/xlm-roberta-base"},{"name":"bert","path":"/m/bert","family":"bert"}]}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(wantBase(), cfg); diff != "" {
		t.Fatalf("cfg mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", `addr = ":9999"
default_model = "roberta"
preload = true
load_timeout_seconds = 30

[[models]]
name = "roberta"
path = "/m/roberta"
fallback_path = "/m/xlm-roberta-base"

[[models]]
name = "bert"
path = "/m/bert"
family = "bert"
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(wantBase(), cfg); diff != "" {
		t.Fatalf("cfg mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	if _, err := Load("/definitely/not/a/real/file-12345.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent file")
	}
	d := t.TempDir()
	bad := map[string]string{
		"cfg.txt":  "not supported",
		"bad.yaml": "addr: :8080\n: broken\n",
		"bad.json": `{ "addr": ":8080", "models_dir": }`,
		"bad.toml": "addr=:8080\nmodels_dir\n",
	}
	for name, content := range bad {
		if _, err := Load(writeTempFile(t, d, name, content)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestWithDefaults(t *testing.T) {
	c := Config{}.WithDefaults()
	if c.Addr != DefaultAddr || c.MaxBodyBytes != DefaultMaxBodyBytes || c.MaxSeqLen != DefaultMaxSeqLen {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.LogLevel != "info" || c.LogFormat != "console" {
		t.Fatalf("unexpected log defaults: %+v", c)
	}
	if c.Lowercase == nil || !*c.Lowercase {
		t.Fatalf("lowercase should default to true")
	}
	f := false
	c = Config{Addr: ":1", Lowercase: &f, MaxSeqLen: 128}.WithDefaults()
	if c.Addr != ":1" || *c.Lowercase || c.MaxSeqLen != 128 {
		t.Fatalf("explicit values overwritten: %+v", c)
	}
}

func TestValidate(t *testing.T) {
	if err := wantBase().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	if err := (Config{ModelsDir: "/m"}).Validate(); err != nil {
		t.Fatalf("models_dir only should be valid: %v", err)
	}
	cases := []Config{
		{},
		{Models: []ModelConfig{{Path: "/x"}}},
		{Models: []ModelConfig{{Name: "a"}}},
		{Models: []ModelConfig{{Name: "a", Path: "/x"}, {Name: "a", Path: "/y"}}},
		{ModelsDir: "/m", LoadTimeoutSeconds: -1},
		{ModelsDir: "/m", LogFormat: "xml"},
	}
	for i, c := range cases {
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d: expected error for %+v", i, c)
		}
	}
}

func TestTimeouts(t *testing.T) {
	c := Config{LoadTimeoutSeconds: 3, InferTimeoutSeconds: 1}
	if c.LoadTimeout() != 3*time.Second || c.InferTimeout() != time.Second {
		t.Fatalf("unexpected timeouts")
	}
	if (Config{}).LoadTimeout() != 0 {
		t.Fatalf("zero should disable")
	}
}
