package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wallet-copilot/internal/domain"
	"wallet-copilot/internal/service"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type assistantReplyMsg *domain.AssistantResponse
type assistantErrMsg struct{ err error }

// Assistant is the orchestrator capability the chat screen talks to.
type Assistant interface {
	ProcessMessage(ctx context.Context, sessionID, text string, opts service.ProcessOptions) *domain.AssistantResponse
}

type chatMessage struct {
	Role        string
	Content     string
	Suggestions []string
	Time        time.Time
}

// ChatModel is the Bubble Tea model for the assistant chat screen.
type ChatModel struct {
	assistant Assistant
	sessionID string
	messages  []chatMessage
	input     textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	waiting   bool
	err       error
	width     int
	height    int
	ready     bool
}

func NewChatModel(assistant Assistant, sessionID string) ChatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask about your wallet..."
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(SpinnerColor)

	return ChatModel{
		assistant: assistant,
		sessionID: sessionID,
		input:     ti,
		spinner:   sp,
		width:     80,
		height:    24,
	}
}

func (m ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 6
		m.ready = false
		return m, nil

	case assistantReplyMsg:
		resp := (*domain.AssistantResponse)(msg)
		m.messages = append(m.messages, chatMessage{
			Role:        "assistant",
			Content:     resp.Message,
			Suggestions: resp.Suggestions,
			Time:        time.Now(),
		})
		m.waiting = false
		m.err = nil
		m.viewport.SetContent(m.renderMessages())
		m.viewport.GotoBottom()
		return m, nil

	case assistantErrMsg:
		m.waiting = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.waiting {
				break
			}
			text := strings.TrimSpace(m.input.Value())
			if text != "" {
				m.messages = append(m.messages, chatMessage{
					Role:    "user",
					Content: text,
					Time:    time.Now(),
				})
				m.input.SetValue("")
				m.waiting = true
				m.viewport.SetContent(m.renderMessages())
				m.viewport.GotoBottom()
				return m, tea.Batch(
					m.askAssistantCmd(text),
					m.spinner.Tick,
				)
			}
		}

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.waiting {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m ChatModel) View() string {
	var sections []string

	sections = append(sections, HeaderStyle.Render("  Wallet Copilot"))
	sections = append(sections, SubtextStyle.Render(strings.Repeat("─", max(m.width-2, 10))))

	if !m.ready {
		m.initViewport()
	}
	sections = append(sections, m.viewport.View())

	sections = append(sections, SubtextStyle.Render(strings.Repeat("─", max(m.width-2, 10))))

	if m.waiting {
		sections = append(sections, fmt.Sprintf("  %s Thinking...", m.spinner.View()))
	} else {
		if m.err != nil {
			sections = append(sections, ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
		}
		sections = append(sections, "  "+m.input.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// IsWaiting reports whether a turn is in flight (for testing).
func (m ChatModel) IsWaiting() bool { return m.waiting }

// MessageCount returns the number of transcript entries (for testing).
func (m ChatModel) MessageCount() int { return len(m.messages) }

func (m *ChatModel) initViewport() {
	vpHeight := m.height - 6
	if vpHeight < 3 {
		vpHeight = 3
	}
	vpWidth := m.width - 2
	if vpWidth < 10 {
		vpWidth = 10
	}
	m.viewport = viewport.New(vpWidth, vpHeight)
	m.viewport.SetContent(m.renderMessages())
	m.ready = true
}

func (m ChatModel) renderMessages() string {
	if len(m.messages) == 0 {
		return SubtextStyle.Render("  Ask about balances, swaps, token info, trends or history.")
	}

	var lines []string
	for _, msg := range m.messages {
		timestamp := SubtextStyle.Render(msg.Time.Format("15:04"))
		switch msg.Role {
		case "user":
			lines = append(lines, fmt.Sprintf("  %s  %s %s",
				timestamp,
				UserMsgStyle.Render("You:"),
				msg.Content,
			))
		case "assistant":
			lines = append(lines, fmt.Sprintf("  %s  %s",
				timestamp,
				AssistantMsgStyle.Render("Copilot:"),
			))
			for _, line := range strings.Split(msg.Content, "\n") {
				lines = append(lines, "         "+line)
			}
			if len(msg.Suggestions) > 0 {
				lines = append(lines, "         "+SubtextStyle.Render("Try: "+strings.Join(msg.Suggestions, " | ")))
			}
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

func (m ChatModel) askAssistantCmd(text string) tea.Cmd {
	sessionID := m.sessionID
	assistant := m.assistant
	return func() tea.Msg {
		if assistant == nil {
			return assistantErrMsg{err: fmt.Errorf("assistant not available")}
		}
		resp := assistant.ProcessMessage(context.Background(), sessionID, text, service.ProcessOptions{})
		return assistantReplyMsg(resp)
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
