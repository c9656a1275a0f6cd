package service

import (
	"context"
	"log"

	"wallet-copilot/internal/catalog"
	"wallet-copilot/internal/domain"
	"wallet-copilot/internal/memory"
	"wallet-copilot/internal/persona"
	"wallet-copilot/internal/registry"
	"wallet-copilot/internal/router"

	"go.opentelemetry.io/otel/trace"
)

// WalletStateProvider supplies the current wallet snapshot for a session.
type WalletStateProvider interface {
	WalletState(ctx context.Context, sessionID string) (*domain.RequestContext, error)
}

// TranscriptStore persists role-tagged conversation messages.
type TranscriptStore interface {
	AppendMessage(ctx context.Context, sessionID, role, content string) error
	RecentMessages(ctx context.Context, sessionID string, limit int) ([]domain.ConversationMessage, error)
}

// ResponseGenerator is the model-backed text generator, consulted only when
// the pattern router has nothing to say.
type ResponseGenerator interface {
	Generate(ctx context.Context, prompt string, history []domain.ConversationMessage, reqCtx *domain.RequestContext) (*domain.AssistantResponse, error)
}

type ProcessOptions struct {
	IncludeMarketData bool
	IncludeTokenData  bool
	FullAnalysis      bool
	Expertise         domain.ExpertiseLevel
}

var smallTalkSuggestions = []string{"Check my balance", "What's trending today?", "What can you do?"}

var apologySuggestions = []string{"Check my balance", "What's trending today?", "What can you do?"}

// AssistantService is the session orchestrator wrapping the intent router
// with small-talk short-circuiting, context assembly, persona formatting and
// data enrichment. ProcessMessage is total: it never returns an error.
type AssistantService struct {
	tracer      trace.Tracer
	router      *router.Router
	sessions    *memory.Store
	wallet      WalletStateProvider
	transcripts TranscriptStore
	generator   ResponseGenerator
	prices      *PriceService
	maxHistory  int
}

func NewAssistantService(
	tracer trace.Tracer,
	rt *router.Router,
	sessions *memory.Store,
	wallet WalletStateProvider,
	transcripts TranscriptStore,
	generator ResponseGenerator,
	prices *PriceService,
	maxHistory int,
) *AssistantService {
	if maxHistory <= 0 {
		maxHistory = 20
	}
	return &AssistantService{
		tracer:      tracer,
		router:      rt,
		sessions:    sessions,
		wallet:      wallet,
		transcripts: transcripts,
		generator:   generator,
		prices:      prices,
		maxHistory:  maxHistory,
	}
}

// ProcessMessage handles one user turn end to end.
func (s *AssistantService) ProcessMessage(ctx context.Context, sessionID, text string, opts ProcessOptions) (resp *domain.AssistantResponse) {
	ctx, span := s.tracer.Start(ctx, "assistant-service.process-message")
	defer span.End()

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("assistant service recovered from panic: %v", rec)
			resp = apologyResponse()
		}
	}()

	// Casual chatter skips routing entirely so it never pollutes the
	// session memory with non-operational topics.
	if reply, ok := s.router.SmallTalk(text); ok {
		return &domain.AssistantResponse{
			Message:     reply,
			Suggestions: append([]string(nil), smallTalkSuggestions...),
		}
	}

	reqCtx := s.assembleContext(ctx, sessionID, text, opts)

	resp, matched := s.router.Resolve(ctx, sessionID, text, reqCtx)
	if !matched && s.generator != nil {
		if generated := s.tryGenerate(ctx, sessionID, text, reqCtx); generated != nil {
			generated.Suggestions = resp.Suggestions
			resp = generated
		}
	}

	style := s.sessions.Session(sessionID).Style()
	resp.Message = persona.Transform(resp.Message, persona.Options{Style: style})

	s.enrich(ctx, resp, text, reqCtx, opts)
	s.appendTranscript(ctx, sessionID, text, resp.Message)
	return resp
}

func (s *AssistantService) assembleContext(ctx context.Context, sessionID, text string, opts ProcessOptions) *domain.RequestContext {
	reqCtx := &domain.RequestContext{Prompt: text, Expertise: opts.Expertise}
	if s.wallet == nil {
		return reqCtx
	}
	state, err := s.wallet.WalletState(ctx, sessionID)
	if err != nil || state == nil {
		// A wallet-provider failure degrades to a disconnected snapshot.
		log.Printf("wallet state unavailable for session %s: %v", sessionID, err)
		return reqCtx
	}
	state.Prompt = text
	if state.Expertise == "" {
		state.Expertise = opts.Expertise
	}
	return state
}

func (s *AssistantService) tryGenerate(ctx context.Context, sessionID, text string, reqCtx *domain.RequestContext) *domain.AssistantResponse {
	var history []domain.ConversationMessage
	if s.transcripts != nil {
		msgs, err := s.transcripts.RecentMessages(ctx, sessionID, s.maxHistory)
		if err != nil {
			log.Printf("transcript fetch failed for session %s: %v", sessionID, err)
		} else {
			history = msgs
		}
	}
	generated, err := s.generator.Generate(ctx, text, history, reqCtx)
	if err != nil {
		log.Printf("generator failed for session %s: %v", sessionID, err)
		return nil
	}
	return generated
}

// enrich merges optional data payloads into the response. Existing data keys
// are never overwritten.
func (s *AssistantService) enrich(ctx context.Context, resp *domain.AssistantResponse, text string, reqCtx *domain.RequestContext, opts ProcessOptions) {
	if opts.IncludeMarketData || opts.FullAnalysis {
		if market := s.marketData(ctx); len(market) > 0 {
			resp.MergeData(map[string]any{"market": market})
		}
	}
	if opts.IncludeTokenData || opts.FullAnalysis {
		var descriptors []domain.TokenDescriptor
		for _, sym := range catalog.ExtractTokens(text) {
			if td, ok := registry.Lookup(sym); ok {
				descriptors = append(descriptors, td)
			}
		}
		if len(descriptors) > 0 {
			resp.MergeData(map[string]any{"tokens": descriptors})
		}
	}
	if opts.FullAnalysis && reqCtx != nil && reqCtx.WalletConnected {
		resp.MergeData(map[string]any{
			"wallet": map[string]any{
				"address":   reqCtx.WalletAddress,
				"balance":   reqCtx.Balance,
				"tokens":    reqCtx.TokenBalances,
				"expertise": reqCtx.Expertise,
			},
		})
	}
}

func (s *AssistantService) marketData(ctx context.Context) []*domain.PriceSnapshot {
	if s.prices == nil {
		return nil
	}
	var out []*domain.PriceSnapshot
	for _, sym := range registry.Symbols() {
		snap, err := s.prices.GetCurrentPrice(ctx, sym)
		if err != nil {
			continue
		}
		out = append(out, snap)
	}
	return out
}

func (s *AssistantService) appendTranscript(ctx context.Context, sessionID, userText, reply string) {
	if s.transcripts == nil {
		return
	}
	if err := s.transcripts.AppendMessage(ctx, sessionID, "user", userText); err != nil {
		log.Printf("transcript append failed for session %s: %v", sessionID, err)
		return
	}
	if err := s.transcripts.AppendMessage(ctx, sessionID, "assistant", reply); err != nil {
		log.Printf("transcript append failed for session %s: %v", sessionID, err)
	}
}

// EndSession tears down the per-session dialogue state.
func (s *AssistantService) EndSession(sessionID string) {
	s.sessions.Drop(sessionID)
}

func apologyResponse() *domain.AssistantResponse {
	return &domain.AssistantResponse{
		Message:     "Sorry, I hit a snag processing that. Nothing was sent from your wallet, please try again.",
		Suggestions: append([]string(nil), apologySuggestions...),
	}
}
