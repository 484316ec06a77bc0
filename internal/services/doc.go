// Package services defines shared utilities consumed by the wizard, the build
// pipeline, and the external provider integrations.
//
// Key responsibilities:
//   - Context helpers that stamp build run IDs, wizard step names, and course
//     unit folders for logging.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures (configuration defect vs external tool vs validation) without
//     string matching.
//
// Provider clients live in subpackages (see gcloud).
package services
