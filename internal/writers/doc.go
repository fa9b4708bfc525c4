// Package writers turns run reports and trace records into serialized output.
//
// Design:
//   - Writers own all presentation knowledge (text/TSV layout, JSON/JSONL).
//   - The estimator stays numeric-only; estimate stays orchestration-only.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
