package tui

import (
	"context"
	"testing"

	"wallet-copilot/internal/domain"
	"wallet-copilot/internal/service"

	tea "github.com/charmbracelet/bubbletea"
)

type stubAssistant struct {
	calls int
	resp  *domain.AssistantResponse
}

func (s *stubAssistant) ProcessMessage(ctx context.Context, sessionID, text string, opts service.ProcessOptions) *domain.AssistantResponse {
	s.calls++
	if s.resp != nil {
		return s.resp
	}
	return &domain.AssistantResponse{Message: "ok"}
}

func TestChatModelInitialState(t *testing.T) {
	m := NewChatModel(&stubAssistant{}, "tui:test")
	if m.IsWaiting() {
		t.Fatal("expected not waiting initially")
	}
	if m.MessageCount() != 0 {
		t.Fatalf("expected 0 messages, got %d", m.MessageCount())
	}
	if m.View() == "" {
		t.Fatal("expected non-empty initial view")
	}
}

func TestChatModelSendMessage(t *testing.T) {
	m := NewChatModel(&stubAssistant{}, "tui:test")
	m.input.SetValue("check my balance")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	cm := updated.(ChatModel)
	if !cm.IsWaiting() {
		t.Fatal("expected waiting after sending message")
	}
	if cm.MessageCount() != 1 {
		t.Fatalf("expected 1 message, got %d", cm.MessageCount())
	}
	if cmd == nil {
		t.Fatal("expected non-nil cmd for assistant call")
	}
}

func TestChatModelEmptyMessageIgnored(t *testing.T) {
	m := NewChatModel(&stubAssistant{}, "tui:test")
	m.input.SetValue("")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	cm := updated.(ChatModel)
	if cm.IsWaiting() {
		t.Fatal("expected not waiting for empty message")
	}
	if cm.MessageCount() != 0 {
		t.Fatalf("expected 0 messages, got %d", cm.MessageCount())
	}
}

func TestChatModelReceiveReply(t *testing.T) {
	m := NewChatModel(&stubAssistant{}, "tui:test")
	m.waiting = true
	m.messages = append(m.messages, chatMessage{Role: "user", Content: "check my balance"})

	reply := &domain.AssistantResponse{
		Message:     "Your wallet holds 2 SOL.",
		Suggestions: []string{"Swap 1 SOL to USDC"},
	}
	updated, _ := m.Update(assistantReplyMsg(reply))
	cm := updated.(ChatModel)
	if cm.IsWaiting() {
		t.Fatal("expected not waiting after receiving reply")
	}
	if cm.MessageCount() != 2 {
		t.Fatalf("expected 2 messages, got %d", cm.MessageCount())
	}
}

func TestChatModelAssistantCmdCallsOrchestrator(t *testing.T) {
	stub := &stubAssistant{resp: &domain.AssistantResponse{Message: "hi"}}
	m := NewChatModel(stub, "tui:test")

	msg := m.askAssistantCmd("hello")()
	reply, ok := msg.(assistantReplyMsg)
	if !ok {
		t.Fatalf("expected reply message, got %T", msg)
	}
	if (*domain.AssistantResponse)(reply).Message != "hi" {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if stub.calls != 1 {
		t.Fatalf("expected one orchestrator call, got %d", stub.calls)
	}
}

func TestChatModelNilAssistantErrors(t *testing.T) {
	m := NewChatModel(nil, "tui:test")
	msg := m.askAssistantCmd("hello")()
	if _, ok := msg.(assistantErrMsg); !ok {
		t.Fatalf("expected error message, got %T", msg)
	}
}

func TestChatModelQuitKeys(t *testing.T) {
	m := NewChatModel(&stubAssistant{}, "tui:test")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command on ctrl+c")
	}
}
