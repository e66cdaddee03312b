package monday

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/aretw0/skylark/pkg/domain"
)

const boardPrefix = "board-"

// Normalizer repairs argument bags before they reach the external tool.
// The zero value is ready to use and logs to slog.Default().
type Normalizer struct {
	Logger *slog.Logger

	// OnCursorStrip is called with every placeholder cursor that is discarded.
	OnCursorStrip func(cursor string)
}

// Normalize repairs args with a zero Normalizer.
func Normalize(op string, args map[string]any) map[string]any {
	return Normalizer{}.Normalize(op, args)
}

// Normalize mutates args in place and returns it. It never fails.
//
//   - a cursor containing "{" or "id_of" is a model placeholder and is removed;
//   - board_id is replaced by a numeric boardId ("board-" prefix stripped);
//   - item-page operations always get includeColumns=true and limit=MaxItemsPerCall.
func (n Normalizer) Normalize(op string, args map[string]any) map[string]any {
	if args == nil {
		args = map[string]any{}
	}
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cursor, ok := args["cursor"].(string); ok && isPlaceholderCursor(cursor) {
		logger.Warn("Stripping hallucinated cursor", "cursor", cursor, "operation", op)
		delete(args, "cursor")
		if n.OnCursorStrip != nil {
			n.OnCursorStrip(cursor)
		}
	}

	if raw, ok := args["board_id"]; ok && truthy(raw) {
		id, valid := coerceBoardID(raw)
		if valid {
			args["boardId"] = id
		} else {
			// Unparseable identifiers are forwarded as null, matching NaN once serialized.
			logger.Warn("Malformed board identifier", "board_id", raw, "operation", op)
			args["boardId"] = nil
		}
		delete(args, "board_id")
	}

	if capped(op) {
		args["includeColumns"] = true
		args["limit"] = domain.MaxItemsPerCall
	}

	return args
}

func isPlaceholderCursor(cursor string) bool {
	return strings.Contains(cursor, "{") || strings.Contains(cursor, "id_of")
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case bool:
		return t
	}
	return true
}

// coerceBoardID strips the board prefix and parses the leading decimal digits.
func coerceBoardID(v any) (int64, bool) {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return int64(t), true
	case int64:
		return t, true
	default:
		return 0, false
	}
	return parseLeadingInt(strings.Replace(s, boardPrefix, "", 1))
}

// parseLeadingInt parses an optionally signed run of decimal digits at the start of s,
// ignoring leading whitespace and any trailing characters.
func parseLeadingInt(s string) (int64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
