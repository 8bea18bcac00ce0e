package manager

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// SanityReport describes runtime checks for external dependencies.
type SanityReport struct {
	ONNXBuilt    bool         `json:"onnx_built"`
	LibraryFound bool         `json:"library_found"`
	LibraryPath  string       `json:"library_path,omitempty"`
	Error        string       `json:"error,omitempty"`
	Models       []ModelCheck `json:"models"`
}

// ModelCheck reports whether a configured model's files are present.
type ModelCheck struct {
	ID    string `json:"id"`
	Path  string `json:"path"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// SanityCheck validates that the inference runtime and model files are available.
// It does not mutate state and never loads a model.
func (m *Manager) SanityCheck() SanityReport {
	r := SanityReport{ONNXBuilt: onnxBuilt}
	for _, mdl := range m.ListModels() {
		mc := ModelCheck{ID: mdl.ID, Path: mdl.Path, OK: true}
		if _, _, err := modelFiles(mdl); err != nil {
			mc.OK = false
			mc.Error = err.Error()
		}
		r.Models = append(r.Models, mc)
	}
	lib := m.onnx.LibraryPath
	if lib == "" {
		lib = discoverONNXLib()
	}
	if lib == "" {
		r.Error = "onnxruntime shared library not found"
		return r
	}
	r.LibraryPath = lib
	if fi, err := os.Stat(lib); err != nil {
		r.Error = err.Error()
	} else if fi.IsDir() {
		r.Error = "onnxruntime path is a directory"
	} else {
		r.LibraryFound = true
	}
	return r
}

// discoverONNXLib looks for the onnxruntime shared library in the library
// search path and a few conventional install locations.
func discoverONNXLib() string {
	name := "libonnxruntime.so"
	envVar := "LD_LIBRARY_PATH"
	switch runtime.GOOS {
	case "darwin":
		name, envVar = "libonnxruntime.dylib", "DYLD_LIBRARY_PATH"
	case "windows":
		name, envVar = "onnxruntime.dll", "PATH"
	}
	dirs := filepath.SplitList(os.Getenv(envVar))
	dirs = append(dirs, "/usr/local/lib", "/usr/lib", "/opt/onnxruntime/lib")
	for _, d := range dirs {
		if strings.TrimSpace(d) == "" {
			continue
		}
		p := filepath.Join(d, name)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
	}
	return ""
}
