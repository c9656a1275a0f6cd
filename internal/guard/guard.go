// Package guard gates transfer intents behind the safety checks that decide
// whether a transfer may be proposed as executable. A response carrying a nil
// intent must never reach the signing layer.
package guard

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"wallet-copilot/internal/domain"
	"wallet-copilot/internal/solana"

	"github.com/shopspring/decimal"
)

var transferFee = decimal.RequireFromString("0.000005")

var confirmSuggestions = []string{"Confirm", "Cancel", "Check my balance"}

// ValidateTransfer runs the safety sequence for a transfer request, short
// circuiting on the first failed check. Balance arithmetic is decimal-exact;
// display rounding never feeds a comparison.
func ValidateTransfer(amountText, token, rawMessage string, reqCtx *domain.RequestContext) *domain.AssistantResponse {
	if reqCtx == nil || !reqCtx.WalletConnected {
		return &domain.AssistantResponse{
			Message:     "You'll need to connect your wallet before I can send anything. Tap Connect Wallet and try again.",
			Suggestions: []string{"Check my balance", "What can you do?"},
		}
	}

	recipient := solana.DetectAddress(rawMessage)
	if recipient == "" {
		return &domain.AssistantResponse{
			Message:     "I couldn't find a valid Solana address in that message. Paste the recipient's full address and I'll set up the transfer.",
			Suggestions: []string{"Check my balance", "What can you do?"},
		}
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(amountText), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return &domain.AssistantResponse{
			Message:     fmt.Sprintf("%q doesn't look like a valid amount. Tell me how much %s to send, like \"send 0.5 %s to <address>\".", amountText, token, token),
			Suggestions: []string{"Check my balance"},
		}
	}

	token = strings.ToUpper(strings.TrimSpace(token))
	amountDec := decimal.NewFromFloat(amount)
	balanceDec := decimal.NewFromFloat(reqCtx.Balance)

	if token == domain.NativeSymbol {
		if amountDec.GreaterThan(balanceDec) {
			shortfall := amountDec.Sub(balanceDec)
			return &domain.AssistantResponse{
				Message: fmt.Sprintf(
					"You don't have enough SOL for that. You're short %s SOL (balance %s, requested %s).",
					shortfall.String(), balanceDec.String(), amountDec.String(),
				),
				Suggestions: []string{"Check my balance", "Send a smaller amount"},
			}
		}
		if amountDec.Add(transferFee).GreaterThan(balanceDec) {
			suggested := balanceDec.Sub(transferFee).RoundDown(4)
			if suggested.IsNegative() {
				suggested = decimal.Zero
			}
			return &domain.AssistantResponse{
				Message: fmt.Sprintf(
					"That amount doesn't leave room for the network fee. Try sending %s SOL instead, which keeps %s SOL for fees.",
					suggested.String(), transferFee.String(),
				),
				Suggestions: []string{fmt.Sprintf("Send %s SOL", suggested.String()), "Check my balance"},
			}
		}
	} else {
		// SPL transfers still pay the flat fee in SOL. The target token
		// balance itself is left to the signing layer.
		if balanceDec.LessThan(transferFee) {
			return &domain.AssistantResponse{
				Message: fmt.Sprintf(
					"Your SOL balance can't cover the %s SOL network fee for a %s transfer. Top up a little SOL first.",
					transferFee.String(), token,
				),
				Suggestions: []string{"Check my balance"},
			}
		}
	}

	return &domain.AssistantResponse{
		Message: fmt.Sprintf(
			"Ready to send %s %s to %s. Confirm to proceed.",
			amountDec.String(), token, solana.TruncateAddress(recipient),
		),
		Intent: &domain.Intent{
			Action: domain.ActionTransfer,
			Transfer: &domain.TransferIntent{
				Recipient: recipient,
				Token:     token,
				Amount:    amount,
			},
		},
		Suggestions: append([]string(nil), confirmSuggestions...),
	}
}
