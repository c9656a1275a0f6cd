// Package solana provides address detection and validation for Solana-format
// (Base58, 32-byte) public keys.
package solana

import (
	"regexp"

	"github.com/mr-tron/base58"
)

// Candidate addresses are Base58 runs of plausible public-key length; each
// candidate is still decoded before being accepted.
var addressPattern = regexp.MustCompile(`[1-9A-HJ-NP-Za-km-z]{32,44}`)

// IsValidAddress reports whether s decodes to a 32-byte Solana public key.
func IsValidAddress(s string) bool {
	if len(s) < 32 || len(s) > 44 {
		return false
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return false
	}
	return len(raw) == 32
}

// DetectAddress scans free text for the first valid Solana address mention.
// Returns "" when no candidate validates.
func DetectAddress(text string) string {
	for _, candidate := range addressPattern.FindAllString(text, -1) {
		if IsValidAddress(candidate) {
			return candidate
		}
	}
	return ""
}

// TruncateAddress renders an address as its first and last four characters,
// the form used in confirmation messages.
func TruncateAddress(addr string) string {
	if len(addr) <= 8 {
		return addr
	}
	return addr[:4] + "..." + addr[len(addr)-4:]
}
