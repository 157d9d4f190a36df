package gateway

import (
	"fmt"
	"sort"
	"strconv"
)

// ReplyKind tags a Reply value, mirroring the Redis reply union.
type ReplyKind string

const (
	ReplyNull    ReplyKind = "null"
	ReplyInteger ReplyKind = "integer"
	ReplyText    ReplyKind = "text"
	ReplyStatus  ReplyKind = "status"
	ReplyArray   ReplyKind = "array"
	ReplyError   ReplyKind = "error"
)

// Reply is a tagged variant over the possible Redis reply shapes. Exactly one
// of the value fields is meaningful for a given Kind.
type Reply struct {
	Kind     ReplyKind `json:"kind"`
	Integer  int64     `json:"integer,omitempty"`
	Text     string    `json:"text,omitempty"`
	Elements []Reply   `json:"elements,omitempty"`
}

// statusReplies lists simple-string replies the client surfaces as plain
// strings. The client API does not distinguish simple strings from bulk
// strings, so this is a best-effort whitelist of the common status tokens;
// an unlisted status reply is reported as bulk text, which only affects the
// kind tag, not the text itself.
var statusReplies = map[string]struct{}{
	"OK":     {},
	"PONG":   {},
	"QUEUED": {},
	"RESET":  {},
	"NOKEY":  {},
}

// replyFrom converts a raw go-redis reply value into the tagged variant.
// Map replies (RESP3) are flattened into an array of key/value pairs with a
// stable key order.
func replyFrom(v any) Reply {
	switch val := v.(type) {
	case nil:
		return Reply{Kind: ReplyNull}
	case int64:
		return Reply{Kind: ReplyInteger, Integer: val}
	case int:
		return Reply{Kind: ReplyInteger, Integer: int64(val)}
	case bool:
		n := int64(0)
		if val {
			n = 1
		}
		return Reply{Kind: ReplyInteger, Integer: n}
	case float64:
		return Reply{Kind: ReplyText, Text: strconv.FormatFloat(val, 'f', -1, 64)}
	case string:
		if _, ok := statusReplies[val]; ok {
			return Reply{Kind: ReplyStatus, Text: val}
		}
		return Reply{Kind: ReplyText, Text: val}
	case []byte:
		return Reply{Kind: ReplyText, Text: string(val)}
	case error:
		return Reply{Kind: ReplyError, Text: val.Error()}
	case []any:
		elements := make([]Reply, len(val))
		for i, item := range val {
			elements[i] = replyFrom(item)
		}
		return Reply{Kind: ReplyArray, Elements: elements}
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		elements := make([]Reply, 0, len(val)*2)
		for _, k := range keys {
			elements = append(elements, Reply{Kind: ReplyText, Text: k}, replyFrom(val[k]))
		}
		return Reply{Kind: ReplyArray, Elements: elements}
	default:
		// Unknown reply shapes degrade to their string form rather than fail.
		return Reply{Kind: ReplyText, Text: fmt.Sprintf("%v", val)}
	}
}
