package serverinfo

// Snapshot is a typed view over the server's INFO sections. It is recomputed
// per request; the reporter keeps no history.
type Snapshot struct {
	Version string `json:"version"`
	Mode    string `json:"mode"`
	Role    string `json:"role"`

	ConnectedClients         int64 `json:"connected_clients"`
	TotalConnectionsReceived int64 `json:"total_connections_received"`
	TotalCommandsProcessed   int64 `json:"total_commands_processed"`

	UsedMemoryBytes     int64 `json:"used_memory_bytes"`
	UsedMemoryPeakBytes int64 `json:"used_memory_peak_bytes"`
	MaxMemoryBytes      int64 `json:"max_memory_bytes"`

	KeyspaceHits   int64 `json:"keyspace_hits"`
	KeyspaceMisses int64 `json:"keyspace_misses"`
	ExpiredKeys    int64 `json:"expired_keys"`
	EvictedKeys    int64 `json:"evicted_keys"`

	UptimeSeconds int64 `json:"uptime_seconds"`

	Databases []DatabaseInfo `json:"databases"`
}

// DatabaseInfo is the per-database keyspace line (db0, db1, ...).
type DatabaseInfo struct {
	Index   int   `json:"index"`
	Keys    int64 `json:"keys"`
	Expires int64 `json:"expires"`
	AvgTTL  int64 `json:"avg_ttl"`
}
