package gateway_test

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/redispanel/pkg/gateway"
	"github.com/dmitrymomot/redispanel/pkg/registry"
)

func setup(t *testing.T) (*miniredis.Miniredis, *registry.Registry, *gateway.Gateway) {
	t.Helper()

	mini := miniredis.RunT(t)
	reg := registry.New(registry.Config{
		RetryBaseDelay: 5 * time.Millisecond,
		RetryMaxDelay:  20 * time.Millisecond,
		MaxAttempts:    3,
		DialTimeout:    time.Second,
	}, nil)
	t.Cleanup(reg.Close)

	host, portStr, err := net.SplitHostPort(mini.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	require.NoError(t, reg.Connect(context.Background(), "test", registry.Profile{
		ID: "test", Host: host, Port: port,
	}))

	return mini, reg, gateway.New(reg, nil)
}

func TestGateway_ExecuteRoundtrip(t *testing.T) {
	t.Parallel()

	_, _, gw := setup(t)
	ctx := context.Background()

	out, err := gw.Execute(ctx, "test", "SET greeting hello")
	require.NoError(t, err)
	assert.Empty(t, out.Error)
	assert.Equal(t, gateway.ReplyStatus, out.Reply.Kind)
	assert.Equal(t, "OK", out.Reply.Text)

	out, err = gw.Execute(ctx, "test", "GET greeting")
	require.NoError(t, err)
	assert.Equal(t, gateway.ReplyText, out.Reply.Kind)
	assert.Equal(t, "hello", out.Reply.Text)
}

func TestGateway_ExecuteMissingKeyIsNullNotError(t *testing.T) {
	t.Parallel()

	_, _, gw := setup(t)

	out, err := gw.Execute(context.Background(), "test", "GET missingkey")
	require.NoError(t, err)
	assert.Empty(t, out.Error)
	assert.Equal(t, gateway.ReplyNull, out.Reply.Kind)
}

func TestGateway_ExecuteIntegerAndArrayReplies(t *testing.T) {
	t.Parallel()

	_, _, gw := setup(t)
	ctx := context.Background()

	out, err := gw.Execute(ctx, "test", "RPUSH letters a b c")
	require.NoError(t, err)
	assert.Equal(t, gateway.ReplyInteger, out.Reply.Kind)
	assert.EqualValues(t, 3, out.Reply.Integer)

	out, err = gw.Execute(ctx, "test", "LRANGE letters 0 -1")
	require.NoError(t, err)
	require.Equal(t, gateway.ReplyArray, out.Reply.Kind)
	require.Len(t, out.Reply.Elements, 3)
	assert.Equal(t, "a", out.Reply.Elements[0].Text)
	assert.Equal(t, "c", out.Reply.Elements[2].Text)
}

func TestGateway_ServerErrorCapturedInOutcome(t *testing.T) {
	t.Parallel()

	_, _, gw := setup(t)

	out, err := gw.Execute(context.Background(), "test", "DEFINITELYNOTACOMMAND foo")
	require.NoError(t, err, "a rejected command is not a gateway fault")
	assert.NotEmpty(t, out.Error)
	assert.Equal(t, gateway.ReplyError, out.Reply.Kind)
}

func TestGateway_EmptyCommand(t *testing.T) {
	t.Parallel()

	_, _, gw := setup(t)

	_, err := gw.Execute(context.Background(), "test", "   ")
	assert.ErrorIs(t, err, gateway.ErrEmptyCommand)
	assert.Empty(t, gw.History("test"))
}

func TestGateway_NotConnectedLeavesNoTrace(t *testing.T) {
	t.Parallel()

	_, _, gw := setup(t)

	_, err := gw.Execute(context.Background(), "ghost", "PING")
	assert.ErrorIs(t, err, registry.ErrNotConnected)
	assert.Empty(t, gw.History("ghost"))
}

func TestGateway_HistoryBoundedMostRecentFirst(t *testing.T) {
	t.Parallel()

	_, _, gw := setup(t)
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		_, err := gw.Execute(ctx, "test", fmt.Sprintf("SET key%d v", i))
		require.NoError(t, err)
	}

	h := gw.History("test")
	require.Len(t, h, gateway.DefaultHistoryLimit)
	assert.Equal(t, "SET key999 v", h[0].Command)
	assert.Equal(t, "SET key950 v", h[len(h)-1].Command)
}

func TestGateway_HistoryIsolatedPerConnection(t *testing.T) {
	t.Parallel()

	_, _, gw := setup(t)

	_, err := gw.Execute(context.Background(), "test", "PING")
	require.NoError(t, err)

	assert.Len(t, gw.History("test"), 1)
	assert.Empty(t, gw.History("other"))

	gw.Forget("test")
	assert.Empty(t, gw.History("test"))
}

func TestGateway_TokenizationCollapsesWhitespace(t *testing.T) {
	t.Parallel()

	_, _, gw := setup(t)

	out, err := gw.Execute(context.Background(), "test", "  SET   spaced   value  ")
	require.NoError(t, err)
	assert.Empty(t, out.Error)

	out, err = gw.Execute(context.Background(), "test", "GET spaced")
	require.NoError(t, err)
	assert.Equal(t, "value", out.Reply.Text)
}
