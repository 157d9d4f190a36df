// Package gateway forwards ad-hoc commands from the console to a registered
// Redis session and keeps a bounded, most-recent-first history of outcomes.
//
// Commands are tokenized on whitespace only; there is no quoting or escaping
// support. Replies are represented as a tagged variant (Reply) over the Redis
// reply union so callers get a concrete shape instead of an untyped blob.
// A command the server rejects is an expected, recoverable event: it is
// reported inside the Outcome, never as a gateway failure.
package gateway
