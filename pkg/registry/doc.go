// Package registry maps opaque connection identifiers to live Redis sessions.
//
// The registry is the single owner of session lifecycle: Connect opens a
// session with a cancellable bounded-backoff retry loop, Disconnect tears it
// down idempotently, and Lookup hands out the live client to the gateway,
// inspector, and metrics components. Connect and Disconnect are mutually
// exclusive per id, so two racing calls for the same id can never leak a
// duplicate session; operations on distinct ids do not contend.
//
// Reconnecting an id that already has a session terminates the old session
// first (best-effort) and cancels any connect still in flight for that id.
package registry
