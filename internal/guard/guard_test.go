package guard

import (
	"strings"
	"testing"

	"wallet-copilot/internal/domain"
)

// Wrapped SOL mint: a well-formed 32-byte Base58 address.
const validAddr = "So11111111111111111111111111111111111111112"

func connectedCtx(balance float64) *domain.RequestContext {
	return &domain.RequestContext{
		WalletConnected: true,
		WalletAddress:   validAddr,
		Balance:         balance,
	}
}

func TestValidateTransferRequiresWallet(t *testing.T) {
	resp := ValidateTransfer("1", "SOL", "send 1 SOL to "+validAddr, &domain.RequestContext{})
	if resp.Intent != nil {
		t.Fatalf("expected nil intent, got %+v", resp.Intent)
	}
	if !strings.Contains(strings.ToLower(resp.Message), "connect") {
		t.Fatalf("expected connect-wallet clarification, got %q", resp.Message)
	}
}

func TestValidateTransferRejectsMissingAddress(t *testing.T) {
	resp := ValidateTransfer("1", "SOL", "send 1 SOL to my friend", connectedCtx(10))
	if resp.Intent != nil {
		t.Fatalf("expected nil intent for missing address, got %+v", resp.Intent)
	}
	if !strings.Contains(strings.ToLower(resp.Message), "address") {
		t.Fatalf("expected address clarification, got %q", resp.Message)
	}
}

func TestValidateTransferRejectsMalformedAddress(t *testing.T) {
	// Right length for a candidate but not valid Base58 content (0, O, I, l
	// are outside the alphabet so this run never forms a candidate).
	raw := "send 1 SOL to 0OIl0OIl0OIl0OIl0OIl0OIl0OIl0OIl"
	resp := ValidateTransfer("1", "SOL", raw, connectedCtx(10))
	if resp.Intent != nil {
		t.Fatalf("expected nil intent for malformed address, got %+v", resp.Intent)
	}
	if !strings.Contains(strings.ToLower(resp.Message), "address") {
		t.Fatalf("expected address clarification, got %q", resp.Message)
	}
}

func TestValidateTransferRejectsBadAmounts(t *testing.T) {
	for _, amount := range []string{"abc", "-1", "0", "NaN", "Inf"} {
		resp := ValidateTransfer(amount, "SOL", "send "+amount+" SOL to "+validAddr, connectedCtx(10))
		if resp.Intent != nil {
			t.Fatalf("amount %q: expected nil intent, got %+v", amount, resp.Intent)
		}
	}
}

func TestValidateTransferInsufficientBalance(t *testing.T) {
	resp := ValidateTransfer("15", "SOL", "send 15 SOL to "+validAddr, connectedCtx(10))
	if resp.Intent != nil {
		t.Fatalf("expected nil intent, got %+v", resp.Intent)
	}
	if !strings.Contains(resp.Message, "short 5 SOL") {
		t.Fatalf("expected shortfall of 5 SOL in message, got %q", resp.Message)
	}
	// The plain insufficient-balance case must not do fee arithmetic.
	if strings.Contains(resp.Message, "fee") {
		t.Fatalf("insufficient-balance message should not mention fees, got %q", resp.Message)
	}
}

func TestValidateTransferInsufficientForFees(t *testing.T) {
	// 9.999999 <= 10 but 9.999999 + 0.000005 > 10: fee case, not balance case.
	resp := ValidateTransfer("9.999999", "SOL", "send 9.999999 SOL to "+validAddr, connectedCtx(10))
	if resp.Intent != nil {
		t.Fatalf("expected nil intent, got %+v", resp.Intent)
	}
	if !strings.Contains(resp.Message, "fee") {
		t.Fatalf("expected fee message, got %q", resp.Message)
	}
	// round(10 - 0.000005, 4) rounded down = 9.9999
	if !strings.Contains(resp.Message, "9.9999 SOL") {
		t.Fatalf("expected suggested amount 9.9999, got %q", resp.Message)
	}
}

func TestValidateTransferExactBalanceIsFeeCase(t *testing.T) {
	resp := ValidateTransfer("10", "SOL", "send 10 SOL to "+validAddr, connectedCtx(10))
	if resp.Intent != nil {
		t.Fatalf("expected nil intent, got %+v", resp.Intent)
	}
	if !strings.Contains(resp.Message, "fee") {
		t.Fatalf("amount == balance should fail on fees, got %q", resp.Message)
	}
}

func TestValidateTransferSuccess(t *testing.T) {
	resp := ValidateTransfer("5", "SOL", "Send 5 SOL to "+validAddr, connectedCtx(10))
	if resp.Intent == nil || resp.Intent.Transfer == nil {
		t.Fatalf("expected transfer intent, got %+v", resp.Intent)
	}
	tr := resp.Intent.Transfer
	if tr.Recipient != validAddr || tr.Token != "SOL" || tr.Amount != 5 {
		t.Fatalf("unexpected intent: %+v", tr)
	}
	if !strings.Contains(resp.Message, "So11...1112") {
		t.Fatalf("expected truncated recipient in message, got %q", resp.Message)
	}
	want := []string{"Confirm", "Cancel", "Check my balance"}
	if len(resp.Suggestions) != len(want) {
		t.Fatalf("expected %d suggestions, got %v", len(want), resp.Suggestions)
	}
	for i, s := range want {
		if resp.Suggestions[i] != s {
			t.Fatalf("suggestion %d: expected %q, got %q", i, s, resp.Suggestions[i])
		}
	}
}

func TestValidateTransferSPLNeedsFeeBalance(t *testing.T) {
	resp := ValidateTransfer("100", "USDC", "send 100 USDC to "+validAddr, connectedCtx(0))
	if resp.Intent != nil {
		t.Fatalf("expected nil intent without SOL for fees, got %+v", resp.Intent)
	}
	if !strings.Contains(resp.Message, "fee") {
		t.Fatalf("expected fee message, got %q", resp.Message)
	}
}

func TestValidateTransferSPLSucceedsWithFeeBalance(t *testing.T) {
	// Target-token balance is deliberately not checked here; that lives in
	// the signing layer.
	resp := ValidateTransfer("100", "USDC", "send 100 USDC to "+validAddr, connectedCtx(0.5))
	if resp.Intent == nil || resp.Intent.Transfer == nil {
		t.Fatalf("expected transfer intent, got %+v", resp.Intent)
	}
	if resp.Intent.Transfer.Token != "USDC" {
		t.Fatalf("expected USDC intent, got %+v", resp.Intent.Transfer)
	}
}
