package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"profanityd/internal/config"
)

// options mirrors the command-line flags. Flags only override the config file
// when set explicitly.
type options struct {
	configPath   string
	addr         string
	modelsDir    string
	defaultModel string
	models       []string
	preload      bool
	loadTimeout  int
	inferTimeout int
	maxBodyBytes int64
	logLevel     string
	logFormat    string
	corsEnabled  bool
	corsOrigins  string
	onnxLib      string
	maxSeqLen    int
	useCUDA      bool
}

func newRootCmd() *cobra.Command { return newRootCmdWith(&options{}) }

func newRootCmdWith(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "profanityd",
		Short:         "Multi-model text classification service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", os.Getenv("PROFANITYD_CONFIG"), "Config file (.yaml/.yml, .json, .toml)")
	pf.StringVar(&opts.addr, "addr", envOr("PROFANITYD_ADDR", config.DefaultAddr), "HTTP listen address, e.g. :8000")
	pf.StringVar(&opts.modelsDir, "models-dir", "", "Directory of model directories (each holding model.onnx and vocab.txt)")
	pf.StringVar(&opts.defaultModel, "default-model", "", "Initially active model (defaults to the first configured model)")
	pf.StringArrayVar(&opts.models, "model", nil, "Model as name=path[=fallback_path]; repeatable, replaces the config file's list")
	pf.BoolVar(&opts.preload, "preload", false, "Load all models in the background at startup")
	pf.IntVar(&opts.loadTimeout, "load-timeout", 0, "Model load timeout in seconds (0 disables)")
	pf.IntVar(&opts.inferTimeout, "infer-timeout", 0, "Per-prediction timeout in seconds (0 disables)")
	pf.Int64Var(&opts.maxBodyBytes, "max-body-bytes", config.DefaultMaxBodyBytes, "Maximum JSON request body size")
	pf.StringVar(&opts.logLevel, "log-level", envOr("PROFANITYD_LOG_LEVEL", config.DefaultLogLevel), "Log level: debug|info|warn|error")
	pf.StringVar(&opts.logFormat, "log-format", config.DefaultLogFormat, "Log format: console|json")
	pf.BoolVar(&opts.corsEnabled, "cors", false, "Enable CORS")
	pf.StringVar(&opts.corsOrigins, "cors-origins", "", "Comma-separated allowed origins (default *)")
	pf.StringVar(&opts.onnxLib, "onnx-lib", os.Getenv("ONNXRUNTIME_LIB"), "Path to the onnxruntime shared library")
	pf.IntVar(&opts.maxSeqLen, "max-seq-len", config.DefaultMaxSeqLen, "Maximum tokens per input, including [CLS] and [SEP]")
	pf.BoolVar(&opts.useCUDA, "cuda", false, "Use the CUDA execution provider")

	root.AddCommand(newModelsCmd(opts), newCheckCmd(opts))
	return root
}

// load reads the config file (if any), applies explicitly set flags and
// defaults, and validates the result.
func (o *options) load(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if o.configPath != "" {
		c, err := config.Load(o.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	flags := cmd.Flags()
	set := func(name string) bool { return flags.Changed(name) }
	// Env-backed defaults count as set when the file leaves the field empty.
	if set("addr") || cfg.Addr == "" {
		cfg.Addr = o.addr
	}
	if set("models-dir") {
		cfg.ModelsDir = o.modelsDir
	}
	if set("default-model") {
		cfg.DefaultModel = o.defaultModel
	}
	if set("model") {
		cfg.Models = cfg.Models[:0]
		for _, s := range o.models {
			m, err := parseModelFlag(s)
			if err != nil {
				return cfg, err
			}
			cfg.Models = append(cfg.Models, m)
		}
	}
	if set("preload") {
		cfg.Preload = o.preload
	}
	if set("load-timeout") {
		cfg.LoadTimeoutSeconds = o.loadTimeout
	}
	if set("infer-timeout") {
		cfg.InferTimeoutSeconds = o.inferTimeout
	}
	if set("max-body-bytes") {
		cfg.MaxBodyBytes = o.maxBodyBytes
	}
	if set("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = o.logLevel
	}
	if set("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if set("cors") {
		cfg.CORSEnabled = o.corsEnabled
	}
	if set("cors-origins") {
		cfg.CORSOrigins = splitCSV(o.corsOrigins)
	}
	if set("onnx-lib") || cfg.ONNXLibraryPath == "" {
		cfg.ONNXLibraryPath = o.onnxLib
	}
	if set("max-seq-len") {
		cfg.MaxSeqLen = o.maxSeqLen
	}
	if set("cuda") {
		cfg.UseCUDA = o.useCUDA
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// parseModelFlag parses name=path[=fallback_path].
func parseModelFlag(s string) (config.ModelConfig, error) {
	parts := strings.SplitN(s, "=", 3)
	if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return config.ModelConfig{}, fmt.Errorf("invalid --model %q: want name=path[=fallback_path]", s)
	}
	m := config.ModelConfig{Name: strings.TrimSpace(parts[0]), Path: strings.TrimSpace(parts[1])}
	if len(parts) == 3 {
		m.FallbackPath = strings.TrimSpace(parts[2])
	}
	return m, nil
}

// splitCSV splits a comma-separated list, dropping empty items.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
