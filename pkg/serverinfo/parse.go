package serverinfo

import (
	"sort"
	"strconv"
	"strings"
)

// Parse turns the semi-structured INFO reply into a Snapshot. Unknown fields
// are skipped and malformed values fall back to the zero value, so a snapshot
// degrades gracefully across server versions instead of failing.
func Parse(info string) Snapshot {
	var snap Snapshot

	for _, line := range strings.Split(info, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		field, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		switch field {
		case "redis_version":
			snap.Version = value
		case "redis_mode":
			snap.Mode = value
		case "role":
			snap.Role = value
		case "connected_clients":
			snap.ConnectedClients = parseInt(value)
		case "total_connections_received":
			snap.TotalConnectionsReceived = parseInt(value)
		case "total_commands_processed":
			snap.TotalCommandsProcessed = parseInt(value)
		case "used_memory":
			snap.UsedMemoryBytes = parseInt(value)
		case "used_memory_peak":
			snap.UsedMemoryPeakBytes = parseInt(value)
		case "maxmemory":
			snap.MaxMemoryBytes = parseInt(value)
		case "keyspace_hits":
			snap.KeyspaceHits = parseInt(value)
		case "keyspace_misses":
			snap.KeyspaceMisses = parseInt(value)
		case "expired_keys":
			snap.ExpiredKeys = parseInt(value)
		case "evicted_keys":
			snap.EvictedKeys = parseInt(value)
		case "uptime_in_seconds":
			snap.UptimeSeconds = parseInt(value)
		default:
			if idx, ok := databaseIndex(field); ok {
				snap.Databases = append(snap.Databases, parseKeyspace(idx, value))
			}
		}
	}

	sort.Slice(snap.Databases, func(i, j int) bool {
		return snap.Databases[i].Index < snap.Databases[j].Index
	})
	return snap
}

func parseInt(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// databaseIndex matches keyspace section fields of the form "db<N>".
func databaseIndex(field string) (int, bool) {
	rest, ok := strings.CutPrefix(field, "db")
	if !ok || rest == "" {
		return 0, false
	}
	idx, err := strconv.Atoi(rest)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

// parseKeyspace parses "keys=3,expires=1,avg_ttl=0".
func parseKeyspace(idx int, value string) DatabaseInfo {
	info := DatabaseInfo{Index: idx}
	for _, pair := range strings.Split(value, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		switch k {
		case "keys":
			info.Keys = parseInt(v)
		case "expires":
			info.Expires = parseInt(v)
		case "avg_ttl":
			info.AvgTTL = parseInt(v)
		}
	}
	return info
}
