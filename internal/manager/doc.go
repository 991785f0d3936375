// Package manager coordinates classifier loading, admission and prediction.
// It is structured into small files by concern:
//
//   - manager.go: core Manager type, constructor, simple getters.
//   - config.go: ManagerConfig and package defaults.
//   - types.go: internal state types (State, Instance).
//   - errors.go: error types and helpers (IsTooBusy, IsModelNotFound, ...).
//   - helpers.go: registry lookup and disease bindings.
//   - admission.go: per-instance queueing and concurrency limits.
//   - ensure.go: lazy loading of artifacts and schema checks.
//   - evict.go: LRU eviction when MaxLoaded is reached.
//   - predict.go: prediction entry point.
//   - status_report.go: Status reporting.
//   - unload.go: draining and Close.
//
// External packages should use public methods only (New/NewWithConfig,
// Ready, ListModels, Diseases, Status, Predict). Internal types are subject
// to change.
package manager
