package serverinfo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/redispanel/pkg/registry"
	"github.com/dmitrymomot/redispanel/pkg/serverinfo"
)

const sampleInfo = "# Server\r\n" +
	"redis_version:7.2.4\r\n" +
	"redis_mode:standalone\r\n" +
	"uptime_in_seconds:86400\r\n" +
	"\r\n" +
	"# Clients\r\n" +
	"connected_clients:12\r\n" +
	"\r\n" +
	"# Memory\r\n" +
	"used_memory:1048576\r\n" +
	"used_memory_peak:2097152\r\n" +
	"maxmemory:0\r\n" +
	"\r\n" +
	"# Stats\r\n" +
	"total_connections_received:500\r\n" +
	"total_commands_processed:12345\r\n" +
	"keyspace_hits:900\r\n" +
	"keyspace_misses:100\r\n" +
	"expired_keys:42\r\n" +
	"evicted_keys:0\r\n" +
	"\r\n" +
	"# Replication\r\n" +
	"role:master\r\n" +
	"\r\n" +
	"# Keyspace\r\n" +
	"db0:keys=3,expires=1,avg_ttl=5000\r\n" +
	"db2:keys=10,expires=0,avg_ttl=0\r\n"

func TestParse_TypicalInfo(t *testing.T) {
	t.Parallel()

	snap := serverinfo.Parse(sampleInfo)

	assert.Equal(t, "7.2.4", snap.Version)
	assert.Equal(t, "standalone", snap.Mode)
	assert.Equal(t, "master", snap.Role)
	assert.EqualValues(t, 12, snap.ConnectedClients)
	assert.EqualValues(t, 1048576, snap.UsedMemoryBytes)
	assert.EqualValues(t, 2097152, snap.UsedMemoryPeakBytes)
	assert.EqualValues(t, 900, snap.KeyspaceHits)
	assert.EqualValues(t, 100, snap.KeyspaceMisses)
	assert.EqualValues(t, 42, snap.ExpiredKeys)
	assert.EqualValues(t, 86400, snap.UptimeSeconds)

	require.Len(t, snap.Databases, 2)
	assert.Equal(t, 0, snap.Databases[0].Index)
	assert.EqualValues(t, 3, snap.Databases[0].Keys)
	assert.EqualValues(t, 1, snap.Databases[0].Expires)
	assert.EqualValues(t, 5000, snap.Databases[0].AvgTTL)
	assert.Equal(t, 2, snap.Databases[1].Index)
	assert.EqualValues(t, 10, snap.Databases[1].Keys)
}

func TestParse_ToleratesUnknownAndMalformed(t *testing.T) {
	t.Parallel()

	snap := serverinfo.Parse(
		"redis_version:8.0.0\n" +
			"some_future_field:whatever\n" +
			"connected_clients:not-a-number\n" +
			"line without separator\n" +
			"dbX:keys=1\n" +
			"db1:keys=oops,expires=2\n",
	)

	assert.Equal(t, "8.0.0", snap.Version)
	assert.Zero(t, snap.ConnectedClients)
	require.Len(t, snap.Databases, 1)
	assert.Zero(t, snap.Databases[0].Keys)
	assert.EqualValues(t, 2, snap.Databases[0].Expires)
}

func TestParse_EmptyInput(t *testing.T) {
	t.Parallel()

	snap := serverinfo.Parse("")
	assert.Equal(t, serverinfo.Snapshot{}, snap)
}

func TestReporter_NotConnected(t *testing.T) {
	t.Parallel()

	reg := registry.New(registry.Config{}, nil)
	reporter := serverinfo.New(reg, nil)

	_, err := reporter.Snapshot(context.Background(), "ghost")
	assert.ErrorIs(t, err, registry.ErrNotConnected)
}

