// Package labels builds the Hetzner Cloud label set attached to created servers.
//
// Labels use the mkserver.io prefix and identify the group, the index within
// the group and the run that created the server, so a failed instance left in
// place for inspection can be traced back to its batch.
package labels
