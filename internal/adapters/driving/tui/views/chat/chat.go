// Package chat provides the conversation view for the TUI.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-rag/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sercha-rag/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sercha-rag/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-rag/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-rag/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driving"
)

const (
	senderUser      = "user"
	senderAssistant = "assistant"
)

// entry is one rendered turn of the transcript.
type entry struct {
	sender   string
	text     string
	answer   *domain.QueryAnswer
	err      error
	question string
}

// View is the chat view: a scrollable transcript above an input line.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	query   driving.QueryService
	options domain.QueryOptions

	viewport viewport.Model
	input    *input.ChatInput
	status   *status.Bar

	// history is what the pipeline sees; failed answers are left out.
	history    []domain.Message
	transcript []entry
	thinking   bool
	err        error

	width  int
	height int
	ready  bool
}

// NewView creates a new chat view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	query driving.QueryService,
	opts domain.QueryOptions,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		ctx:      context.Background(),
		styles:   s,
		keymap:   km,
		query:    query,
		options:  opts,
		viewport: viewport.New(80, 20),
		input:    input.NewChatInput(s),
		status:   status.NewBar(s, km),
		width:    80,
		height:   24,
	}
	v.refresh()
	return v
}

// SetContext sets the context used for pipeline calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init starts the input cursor.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AnswerReceived:
		v.handleAnswer(msg)
		return v, nil

	case messages.StatsLoaded:
		if msg.Err == nil {
			v.status.SetStats(msg.Stats)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.status.SetState(status.StateError)
		v.status.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Send):
		return v, v.send()

	case key.Matches(msg, v.keymap.Documents):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewDocuments}
		}

	case key.Matches(msg, v.keymap.PageUp), key.Matches(msg, v.keymap.PageDown):
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// send records the question and returns the command that answers it.
// Questions are ignored while an answer is pending.
func (v *View) send() tea.Cmd {
	question := strings.TrimSpace(v.input.Value())
	if question == "" || v.thinking {
		return nil
	}

	v.input.Reset()
	v.thinking = true
	v.err = nil
	v.status.Clear()
	v.status.SetState(status.StateThinking)

	v.history = append(v.history, domain.Message{
		Sender:    senderUser,
		Message:   question,
		Timestamp: time.Now(),
	})
	v.transcript = append(v.transcript, entry{sender: senderUser, text: question})
	v.refresh()

	return v.ask(question)
}

// ask returns a command that runs the pipeline over a copy of the history.
func (v *View) ask(question string) tea.Cmd {
	history := make([]domain.Message, len(v.history))
	copy(history, v.history)
	ctx := v.ctx
	opts := v.options
	query := v.query

	return func() tea.Msg {
		if query == nil {
			return messages.AnswerReceived{Question: question, Err: fmt.Errorf("query service not available")}
		}
		answer, err := query.Answer(ctx, history, opts)
		return messages.AnswerReceived{Question: question, Answer: answer, Err: err}
	}
}

func (v *View) handleAnswer(msg messages.AnswerReceived) {
	v.thinking = false

	if msg.Err != nil {
		v.err = msg.Err
		v.status.SetState(status.StateError)
		v.status.SetMessage(msg.Err.Error())
		v.transcript = append(v.transcript, entry{sender: senderAssistant, err: msg.Err, question: msg.Question})
		v.refresh()
		return
	}

	v.status.Clear()
	v.transcript = append(v.transcript, entry{sender: senderAssistant, answer: msg.Answer, question: msg.Question})
	if msg.Answer != nil && msg.Answer.Success {
		v.history = append(v.history, domain.Message{
			Sender:    senderAssistant,
			Message:   msg.Answer.Suggestion,
			Timestamp: time.Now(),
		})
	}
	v.refresh()
}

// refresh re-renders the transcript into the viewport and follows the tail.
func (v *View) refresh() {
	v.viewport.SetContent(v.renderTranscript())
	v.viewport.GotoBottom()
}

func (v *View) renderTranscript() string {
	if len(v.transcript) == 0 {
		return v.styles.Muted.Render("Ask a question about your indexed documents.")
	}

	wrap := lipgloss.NewStyle().Width(v.contentWidth())
	parts := make([]string, 0, len(v.transcript)+1)
	for i := range v.transcript {
		parts = append(parts, v.renderEntry(&v.transcript[i], wrap))
	}
	if v.thinking {
		parts = append(parts, v.styles.AssistantLabel.Render("Assistant: ")+v.styles.Muted.Render("..."))
	}
	return strings.Join(parts, "\n\n")
}

func (v *View) renderEntry(e *entry, wrap lipgloss.Style) string {
	if e.sender == senderUser {
		return v.styles.UserLabel.Render("You: ") + wrap.Render(e.text)
	}

	label := v.styles.AssistantLabel.Render("Assistant: ")
	if e.err != nil {
		return label + v.styles.Error.Render(fmt.Sprintf("Error: %s", e.err.Error()))
	}
	if e.answer == nil {
		return label + v.styles.Muted.Render("(no answer)")
	}
	if !e.answer.Success {
		return label + v.styles.Error.Render(fmt.Sprintf("Error: %s", e.answer.Error))
	}

	var b strings.Builder
	b.WriteString(label)
	b.WriteString(wrap.Render(e.answer.Suggestion))
	b.WriteString("\n")
	b.WriteString(v.styles.Confidence(e.answer.Confidence).Render(
		fmt.Sprintf("confidence %.2f", e.answer.Confidence)))
	if e.answer.QueryType != "" {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf(" | %s", e.answer.QueryType.String())))
	}
	if len(e.answer.Sources) > 0 {
		names := make([]string, len(e.answer.Sources))
		for i, src := range e.answer.Sources {
			names[i] = fmt.Sprintf("%s (%.2f)", src.Filename, src.Similarity)
		}
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Sources: " + strings.Join(names, ", ")))
	}
	return b.String()
}

func (v *View) contentWidth() int {
	w := v.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// View renders the chat view.
func (v *View) View() string {
	title := v.styles.Title.Render("sercha-rag")
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		v.viewport.View(),
		v.input.View(),
		v.status.View(),
	)
}

// SetDimensions sizes the transcript to the space left by the other rows.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.status.SetWidth(width)

	// title, input and status bar
	reserved := lipgloss.Height(v.styles.Title.Render("sercha-rag")) + v.input.Height() + 1
	vpHeight := height - reserved
	if vpHeight < 3 {
		vpHeight = 3
	}
	v.viewport.Width = width
	v.viewport.Height = vpHeight
	v.refresh()
}

// History returns the messages sent to the pipeline so far.
func (v *View) History() []domain.Message {
	return v.history
}

// Thinking reports whether an answer is pending.
func (v *View) Thinking() bool {
	return v.thinking
}

// Input returns the chat input component.
func (v *View) Input() *input.ChatInput {
	return v.input
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Reset clears the conversation.
func (v *View) Reset() {
	v.history = nil
	v.transcript = nil
	v.thinking = false
	v.err = nil
	v.input.Reset()
	v.status.Clear()
	v.refresh()
}
