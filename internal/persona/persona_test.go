package persona

import (
	"strings"
	"testing"

	"wallet-copilot/internal/memory"
)

func TestTransformNeutralPassthrough(t *testing.T) {
	msg := "Your wallet holds 2 SOL."
	if got := Transform(msg, Options{Style: memory.StyleNeutral}); got != msg {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestTransformCasual(t *testing.T) {
	got := Transform("Review the transaction before you proceed.", Options{Style: memory.StyleCasual})
	if !strings.Contains(got, "tx") || strings.Contains(got, "transaction") {
		t.Fatalf("expected casual word swaps, got %q", got)
	}
	if !strings.Contains(got, "go ahead") {
		t.Fatalf("expected casual word swaps, got %q", got)
	}
	if !strings.HasSuffix(got, "\U0001F680") {
		t.Fatalf("expected casual suffix, got %q", got)
	}
}

func TestTransformCasualSkipsSuffixOnQuestions(t *testing.T) {
	got := Transform("Want me to check your balance?", Options{Style: memory.StyleCasual})
	if !strings.HasSuffix(got, "?") {
		t.Fatalf("questions keep their ending, got %q", got)
	}
}

func TestTransformTechnicalStripsFillerOpener(t *testing.T) {
	got := Transform("Hey! Your wallet holds 2 SOL.", Options{Style: memory.StyleTechnical})
	if got != "Your wallet holds 2 SOL." {
		t.Fatalf("expected filler opener stripped, got %q", got)
	}
}

func TestTransformEmpty(t *testing.T) {
	if got := Transform("   ", Options{Style: memory.StyleCasual}); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
