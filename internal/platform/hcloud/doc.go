// Package hcloud implements provisioning.Provider on top of the Hetzner Cloud API.
//
// # Files
//
//   - real_client.go: client construction and options
//   - lookup.go: name to ID resolution for images, server types, networks and servers
//   - server.go: server create, ready wait, delete and delete wait
//   - floating_ip.go: floating IP assignment
//   - wait.go: action and status polling
//   - errors.go: error classification for retry decisions
//
// # Waiting
//
// A created server is ready once every action returned by the create call has
// succeeded and the server reports status "running". A failed action means the
// server will never become ready and is reported as a resource failure. A wait
// that runs past its timeout is reported as a timeout; any other API error is a
// transport error. The provisioner treats all three the same way, but the
// distinction is logged and counted.
//
// # Retry and Timeout Configuration
//
// Individual API calls are retried on lock and rate-limit errors. Parameters
// come from environment variables (see config.LoadTimeouts):
//
//   - HCLOUD_TIMEOUT_SERVER_CREATE: create request timeout (default: 2m)
//   - HCLOUD_TIMEOUT_DELETE: delete request timeout (default: 2m)
//   - HCLOUD_TIMEOUT_ATTACH: floating IP assignment timeout (default: 2m)
//   - HCLOUD_POLL_INTERVAL: status poll interval (default: 2s)
//   - HCLOUD_RETRY_MAX_ATTEMPTS: maximum retries per API call (default: 5)
//   - HCLOUD_RETRY_INITIAL_DELAY: initial retry delay (default: 1s)
//
// # Example Usage
//
//	client := hcloud.NewRealClient(token)
//	resolver := provisioning.NewResolver(client, observer)
//	provisioner := provisioning.NewProvisioner(client, observer)
package hcloud
