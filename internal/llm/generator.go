// Package llm wraps the OpenAI chat API as the model-backed response
// generator. It is a fallible collaborator: callers fall back to the pattern
// router when a call fails.
package llm

import (
	"context"
	"fmt"
	"strings"

	"wallet-copilot/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel/trace"
)

const systemPrompt = `You are a concise assistant embedded in a Solana wallet.
You help with balances, swaps, transfers, token info, market trends and
transaction history. Never invent balances or prices; the wallet context
below is authoritative. Never ask for seed phrases or private keys.`

type Generator struct {
	tracer     trace.Tracer
	client     openai.Client
	model      string
	maxHistory int
}

func NewGenerator(tracer trace.Tracer, apiKey, model string, maxHistory int) *Generator {
	if maxHistory <= 0 {
		maxHistory = 20
	}
	return &Generator{
		tracer:     tracer,
		client:     openai.NewClient(option.WithAPIKey(apiKey)),
		model:      model,
		maxHistory: maxHistory,
	}
}

// Generate produces a free-form reply from the model, given the prompt, the
// recent transcript and the wallet snapshot.
func (g *Generator) Generate(ctx context.Context, prompt string, history []domain.ConversationMessage, reqCtx *domain.RequestContext) (*domain.AssistantResponse, error) {
	_, span := g.tracer.Start(ctx, "llm.generate")
	defer span.End()

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt + "\n\n" + describeWallet(reqCtx)),
	}
	if len(history) > g.maxHistory {
		history = history[len(history)-g.maxHistory:]
	}
	for _, msg := range history {
		switch msg.Role {
		case "assistant":
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}
	messages = append(messages, openai.UserMessage(prompt))

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    g.model,
		Messages: messages,
	})
	if err != nil {
		return nil, domain.NewCollaboratorError("llm.generate", err)
	}
	if len(completion.Choices) == 0 {
		return nil, domain.NewCollaboratorError("llm.generate", fmt.Errorf("empty completion"))
	}

	reply := strings.TrimSpace(completion.Choices[0].Message.Content)
	if reply == "" {
		return nil, domain.NewCollaboratorError("llm.generate", fmt.Errorf("blank reply"))
	}
	return &domain.AssistantResponse{Message: reply}, nil
}

func describeWallet(reqCtx *domain.RequestContext) string {
	if reqCtx == nil || !reqCtx.WalletConnected {
		return "Wallet context: no wallet connected."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Wallet context: address %s, balance %.9f SOL.", reqCtx.WalletAddress, reqCtx.Balance)
	for _, tb := range reqCtx.TokenBalances {
		fmt.Fprintf(&b, " %s: %v.", tb.Symbol, tb.Amount)
	}
	return b.String()
}
