package conversation

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/skylark/pkg/domain"
)

var (
	// DefaultMaxInputSize is the per-part text limit (32KB).
	DefaultMaxInputSize = 32 * 1024
	// EnvMaxInputSize is the environment variable to override the default.
	EnvMaxInputSize = "SKYLARK_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// bookkeeping lists provider fields that must never be replayed to the model.
var bookkeeping = []string{"providerMetadata", "callProviderMetadata", "providerExecuted", "state"}

// Sanitize prepares client history for the model. Only text, tool-call and
// tool-result parts survive; provider bookkeeping is removed from tool
// payloads and user text is cleaned with SanitizeInput. Assistant and system
// text is replayed as-is. Turns left without parts are dropped. The input slice is not modified.
func Sanitize(history []domain.Message) ([]domain.Message, error) {
	out := make([]domain.Message, 0, len(history))
	for i, msg := range history {
		switch msg.Role {
		case domain.RoleUser, domain.RoleAssistant, domain.RoleSystem, domain.RoleTool:
		default:
			return nil, fmt.Errorf("%w: message %d has unknown role %q", domain.ErrInvalidHistory, i, msg.Role)
		}

		parts := make([]domain.Part, 0, len(msg.Parts))
		for _, p := range msg.Parts {
			switch p.Type {
			case domain.PartText:
				text := p.Text
				if msg.Role == domain.RoleUser {
					var err error
					if text, err = SanitizeInput(text); err != nil {
						return nil, fmt.Errorf("%w: message %d: %w", domain.ErrInvalidHistory, i, err)
					}
				}
				parts = append(parts, domain.Part{Type: p.Type, Text: text})
			case domain.PartToolCall, domain.PartToolResult:
				p.Input = stripBookkeeping(p.Input)
				p.Output = stripBookkeeping(p.Output)
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}
		msg.Parts = parts
		out = append(out, msg)
	}
	return out, nil
}

func stripBookkeeping(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	clean := make(map[string]any, len(m))
	for k, val := range m {
		clean[k] = val
	}
	for _, k := range bookkeeping {
		delete(clean, k)
	}
	return clean
}

// SanitizeInput cleans user input by enforcing size limits,
// validating UTF-8, and stripping dangerous control characters.
func SanitizeInput(input string) (string, error) {
	limit := maxInputSize()
	if len(input) > limit {
		// Rejected rather than truncated so the model never sees half a question.
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	// Newline, tab and carriage return survive; ESC, NUL, BEL and friends do not.
	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

func maxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
