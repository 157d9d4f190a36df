// Package serverinfo turns the semi-structured INFO reply of a Redis server
// into a typed Snapshot: version, role, client counts, memory counters,
// hit/miss statistics, per-database keyspace counts, and uptime.
//
// Parsing is deliberately tolerant: unknown fields are ignored and malformed
// values fall back to zero, so the snapshot endpoint keeps working across
// server versions and reduced INFO implementations.
package serverinfo
