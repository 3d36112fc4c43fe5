// Package provision creates managed volumes and waits for them to export.
//
// The two steps are separate types so the CLI can run them independently:
//   - Provisioner: submit the create request built from configuration
//   - Poller: resolve a volume by name and poll until it is Exported
//
// Polling:
//
// The Poller checks the volume on a fixed interval with no jitter and no
// upper bound. A volume that never exports keeps the caller waiting until
// the context is cancelled or the process is terminated. Tests bound the
// loop with MaxAttempts and replace the sleep with a fake backoff.Timer.
//
// Errors from the cluster (lookup, fetch, create) are never retried.
package provision
