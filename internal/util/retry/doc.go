// Package retry provides backoff helpers for transient Hetzner Cloud API failures.
//
// [WithExponentialBackoff] retries an operation until it succeeds, the retry
// budget is spent, or the error is marked with [Fatal]. [Sleep] is the
// context-aware pause used between whole creation attempts.
package retry
