package solana

import "testing"

func TestIsValidAddress(t *testing.T) {
	valid := []string{
		"So11111111111111111111111111111111111111112",
		"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		"11111111111111111111111111111111",
	}
	for _, addr := range valid {
		if !IsValidAddress(addr) {
			t.Fatalf("expected %q to be valid", addr)
		}
	}

	invalid := []string{
		"",
		"short",
		"So1111111111111111111111111111111111111111111111112", // too long
		"0OIl0OIl0OIl0OIl0OIl0OIl0OIl0OIl",                    // outside the alphabet
		"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",        // decodes past 32 bytes
	}
	for _, addr := range invalid {
		if IsValidAddress(addr) {
			t.Fatalf("expected %q to be invalid", addr)
		}
	}
}

func TestDetectAddress(t *testing.T) {
	addr := "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	cases := []struct {
		text string
		want string
	}{
		{"send 1 USDC to " + addr + " please", addr},
		{"no address here", ""},
		{"", ""},
		{addr, addr},
	}
	for _, tc := range cases {
		if got := DetectAddress(tc.text); got != tc.want {
			t.Fatalf("DetectAddress(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestTruncateAddress(t *testing.T) {
	if got := TruncateAddress("So11111111111111111111111111111111111111112"); got != "So11...1112" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := TruncateAddress("short"); got != "short" {
		t.Fatalf("short addresses pass through, got %q", got)
	}
}
