// Package persona is the humanizer pass applied to every outgoing message.
// Transform is a pure text filter; it never touches intents or suggestions.
package persona

import (
	"strings"

	"wallet-copilot/internal/memory"
)

type Options struct {
	Style memory.InteractionStyle
}

var casualSwaps = [][2]string{
	{"transaction", "tx"},
	{"approximately", "about"},
	{"proceed", "go ahead"},
}

// Transform adapts the register of msg to the inferred interaction style.
// Neutral style passes through unchanged.
func Transform(msg string, opts Options) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return msg
	}
	switch opts.Style {
	case memory.StyleCasual:
		out := msg
		for _, swap := range casualSwaps {
			out = strings.ReplaceAll(out, swap[0], swap[1])
		}
		if !strings.HasSuffix(out, "!") && !strings.HasSuffix(out, "?") {
			out += " \U0001F680"
		}
		return out
	case memory.StyleTechnical:
		// Technical users get the message as-is, minus filler openers.
		for _, opener := range []string{"Hey! ", "Hi there! "} {
			out, found := strings.CutPrefix(msg, opener)
			if found {
				return out
			}
		}
		return msg
	default:
		return msg
	}
}
