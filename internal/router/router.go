// Package router resolves free text into a typed intent by walking the
// operation catalog in declared order, with a transfer-specific fast path in
// front of it.
package router

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"time"

	"wallet-copilot/internal/catalog"
	"wallet-copilot/internal/domain"
	"wallet-copilot/internal/memory"
	"wallet-copilot/internal/solana"

	"go.opentelemetry.io/otel/trace"
)

var transferVerbs = []string{"send", "transfer", "pay", "give"}

var fallbackSuggestions = []string{"Check my balance", "What's trending today?", "What can you do?"}

type Router struct {
	tracer   trace.Tracer
	catalog  *catalog.Catalog
	sessions *memory.Store
	chat     *smallTalker
}

func New(tracer trace.Tracer, cat *catalog.Catalog, sessions *memory.Store) *Router {
	return NewWithRand(tracer, cat, sessions, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand injects the randomness source used for canned-reply pool
// picks, so tests can pin the draw.
func NewWithRand(tracer trace.Tracer, cat *catalog.Catalog, sessions *memory.Store, rng *rand.Rand) *Router {
	return &Router{
		tracer:   tracer,
		catalog:  cat,
		sessions: sessions,
		chat:     newSmallTalker(rng),
	}
}

// SmallTalk resolves casual chatter to a canned reply without touching any
// session state. Used by the orchestrator to short-circuit before routing.
func (r *Router) SmallTalk(prompt string) (string, bool) {
	return r.chat.Reply(prompt)
}

// Resolve maps a prompt to an operation result. It is total: any panic or
// unexpected failure inside matching or a handler is converted into a fixed
// fallback response. matched reports whether an operation, address mention
// or chat category fired; it is false for the generic redirect and for the
// panic fallback.
func (r *Router) Resolve(ctx context.Context, sessionID, prompt string, reqCtx *domain.RequestContext) (resp *domain.AssistantResponse, matched bool) {
	_, span := r.tracer.Start(ctx, "router.resolve")
	defer span.End()

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("router recovered from panic: %v", rec)
			resp, matched = fallbackResponse(), false
		}
	}()

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return fallbackResponse(), false
	}
	mem := r.sessions.Session(sessionID)

	// Transfer fast path. The strict pattern runs before the catalog so the
	// looser "<amount> <token> to <token>" swap form cannot shadow a
	// transfer that names an address.
	if startsWithTransferVerb(prompt) {
		if m := catalog.TransferPattern().FindStringSubmatch(prompt); m != nil {
			op, _ := r.catalog.Operation(domain.ActionTransfer)
			mem.Update(prompt, op.Name, catalog.ExtractTokens(prompt))
			// Fast-path responses keep the handler's own suggestions
			// (Confirm/Cancel), not the memory-derived ones.
			return op.Handler(ctx, m, reqCtx, r.catalog.Deps()), true
		}
	}

	for _, op := range r.catalog.Operations() {
		m := op.Match(prompt)
		if m == nil {
			continue
		}
		mem.Update(prompt, op.Name, catalog.ExtractTokens(prompt))
		resp := op.Handler(ctx, m, reqCtx, r.catalog.Deps())
		if resp == nil {
			return fallbackResponse(), false
		}
		if tip, ok := mem.Tip(reqCtx); ok {
			resp.Message += "\n\n" + tip
		}
		resp.Suggestions = mem.Suggestions()
		return resp, true
	}

	if addr := solana.DetectAddress(prompt); addr != "" {
		return &domain.AssistantResponse{
			Message: "That looks like a Solana address. Want to send something to " +
				solana.TruncateAddress(addr) + "? Tell me the amount, like \"send 0.5 SOL to " + addr + "\".",
			Suggestions: []string{"Send 0.5 SOL to " + addr, "Check my balance"},
		}, true
	}

	if reply, ok := r.chat.Reply(prompt); ok {
		return &domain.AssistantResponse{
			Message:     reply,
			Suggestions: mem.Suggestions(),
		}, true
	}

	return &domain.AssistantResponse{
		Message:     "I'm best with wallet things: balances, swaps, transfers, token info, market trends and transaction history. What would you like to do?",
		Suggestions: append([]string(nil), fallbackSuggestions...),
	}, false
}

func startsWithTransferVerb(prompt string) bool {
	lower := strings.ToLower(prompt)
	for _, verb := range transferVerbs {
		if strings.HasPrefix(lower, verb+" ") {
			return true
		}
	}
	return false
}

func fallbackResponse() *domain.AssistantResponse {
	return &domain.AssistantResponse{
		Message:     "Something went sideways on my end. Your wallet is untouched; give it another try.",
		Suggestions: append([]string(nil), fallbackSuggestions...),
	}
}
