// Package manager provides the lifecycle and dispatch core for a fixed set of
// named classification models. It is structured into small files by concern:
//
//   - manager.go: core Manager type, constructor, simple getters.
//   - config.go: ManagerConfig and package defaults; NewWithConfig applies defaults.
//   - types.go: slot states, the legal transition table, snapshots and outcomes.
//   - slot.go: Slot, the per-model state machine (BeginLoad/CompleteLoad/FailLoad).
//   - registry.go: ordered slots plus the atomically swapped active model.
//   - errors.go: typed errors carrying HTTP status codes (IsModelBusy, ...).
//   - ensure.go: EnsureReady, the single-flight, non-blocking loader.
//   - ops.go: SwitchActive.
//   - infer.go: Predict, the request dispatcher.
//   - status_report.go: Snapshot/Health reporting; never triggers a load.
//   - preload.go: optional concurrent warm-up of every slot at startup.
//   - close.go: releases loaded sessions at shutdown.
//   - sanity.go: runtime dependency checks.
//
// Loading never queues: a request that finds its model loading gets a busy
// error and is expected to retry.
//
// Build tags and runtimes:
//
//   - ONNX Runtime (standard):
//     Uses github.com/yalue/onnxruntime_go. Enabled with `-tags=onnx`.
//     Files: adapter_onnx.go. A no-CGO stub exists when the tag is not set:
//     adapter_onnx_stub.go, which validates model files and then reports the
//     runtime as unavailable.
//
// External packages should treat this package as the orchestration layer and use
// public methods only (e.g., NewWithConfig, Predict, SwitchActive, Health).
package manager
