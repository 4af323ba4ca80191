// Package provisioning creates groups of cloud servers and recovers from
// creations that are accepted by the provider but never become healthy.
//
// # Components
//
//   - Resolver turns image, flavor and network names into provider IDs once per batch.
//   - Provisioner drives one named server through create, wait, delete and retry.
//   - Runner provisions a numbered group sequentially and aggregates the results.
//
// # Provisioner states
//
//	Idle -> Creating -> Observing -> Ready                    (success)
//	                             -> Failed -> Deleting -> Idle (attempt < MaxAttempts)
//	                             -> Failed                    (budget spent, server kept)
//
// A rejected create request is fatal and never retried. A server that was
// accepted but failed or timed out while starting counts as one failure,
// is deleted and recreated after RetryDelay. On the last attempt the failed
// server is left in place so it can be inspected.
//
// The provider is reached only through the Provider interface; the Hetzner
// Cloud implementation lives in internal/platform/hcloud.
package provisioning
