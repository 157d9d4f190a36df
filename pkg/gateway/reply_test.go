package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyFrom(t *testing.T) {
	t.Parallel()

	t.Run("null", func(t *testing.T) {
		assert.Equal(t, Reply{Kind: ReplyNull}, replyFrom(nil))
	})

	t.Run("integer", func(t *testing.T) {
		assert.Equal(t, Reply{Kind: ReplyInteger, Integer: 42}, replyFrom(int64(42)))
		assert.Equal(t, Reply{Kind: ReplyInteger, Integer: 1}, replyFrom(true))
		assert.Equal(t, Reply{Kind: ReplyInteger, Integer: 0}, replyFrom(false))
	})

	t.Run("status vs text", func(t *testing.T) {
		assert.Equal(t, Reply{Kind: ReplyStatus, Text: "OK"}, replyFrom("OK"))
		assert.Equal(t, Reply{Kind: ReplyStatus, Text: "PONG"}, replyFrom("PONG"))
		assert.Equal(t, Reply{Kind: ReplyStatus, Text: "RESET"}, replyFrom("RESET"))
		assert.Equal(t, Reply{Kind: ReplyText, Text: "hello"}, replyFrom("hello"))
	})

	t.Run("float formatted as text", func(t *testing.T) {
		assert.Equal(t, Reply{Kind: ReplyText, Text: "1.5"}, replyFrom(float64(1.5)))
	})

	t.Run("nested array", func(t *testing.T) {
		r := replyFrom([]any{"a", int64(2), nil, []any{"b"}})
		require.Equal(t, ReplyArray, r.Kind)
		require.Len(t, r.Elements, 4)
		assert.Equal(t, ReplyText, r.Elements[0].Kind)
		assert.Equal(t, ReplyInteger, r.Elements[1].Kind)
		assert.Equal(t, ReplyNull, r.Elements[2].Kind)
		require.Equal(t, ReplyArray, r.Elements[3].Kind)
		assert.Equal(t, "b", r.Elements[3].Elements[0].Text)
	})

	t.Run("map flattened with stable key order", func(t *testing.T) {
		r := replyFrom(map[string]any{"b": int64(2), "a": int64(1)})
		require.Equal(t, ReplyArray, r.Kind)
		require.Len(t, r.Elements, 4)
		assert.Equal(t, "a", r.Elements[0].Text)
		assert.EqualValues(t, 1, r.Elements[1].Integer)
		assert.Equal(t, "b", r.Elements[2].Text)
		assert.EqualValues(t, 2, r.Elements[3].Integer)
	})
}
