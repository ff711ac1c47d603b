package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jstrand/ashline/internal/assistant"
	"github.com/jstrand/ashline/internal/models"
)

// chunkMsg carries one streamed fragment of the assistant's reply.
// ok=false marks the end of the stream.
type chunkMsg struct {
	text string
	ok   bool
}

// ChatModel is the interactive support-conversation view. The transcript
// lives only in this model; nothing here touches the store.
type ChatModel struct {
	client   *assistant.Client
	messages []assistant.ChatMessage

	viewport viewport.Model
	textarea textarea.Model

	chunks  chan string
	waiting bool
	ready   bool
	width   int
	height  int
}

func NewChat(client *assistant.Client, profile *models.Profile) ChatModel {
	ta := textarea.New()
	ta.Placeholder = "Type your message..."
	ta.Focus()
	ta.SetHeight(2)
	ta.ShowLineNumbers = false

	greeting := fmt.Sprintf("Hi %s. I'm here to support your journey quitting %s. How are you feeling today?",
		profile.Name, profile.Addiction)

	return ChatModel{
		client:   client,
		textarea: ta,
		messages: []assistant.ChatMessage{{Role: "model", Text: greeting}},
	}
}

func (m ChatModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - m.textarea.Height() - 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(msg.Width - 2)
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			return m.send(input)
		}

	case chunkMsg:
		if !msg.ok {
			m.waiting = false
			m.chunks = nil
			return m, nil
		}
		// Stream into the trailing model message.
		m.messages[len(m.messages)-1].Text += msg.text
		m.refreshTranscript()
		return m, m.awaitChunk()
	}

	var taCmd, vpCmd tea.Cmd
	m.textarea, taCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(taCmd, vpCmd)
}

// send appends the user turn plus an empty model turn to stream into, and
// kicks off the backend call.
func (m ChatModel) send(input string) (tea.Model, tea.Cmd) {
	history := make([]assistant.ChatMessage, len(m.messages))
	copy(history, m.messages)

	m.messages = append(m.messages,
		assistant.ChatMessage{Role: "user", Text: input},
		assistant.ChatMessage{Role: "model", Text: ""},
	)
	m.textarea.Reset()
	m.refreshTranscript()

	m.waiting = true
	m.chunks = make(chan string, 16)
	chunks := m.chunks
	client := m.client

	stream := func() tea.Msg {
		go func() {
			client.StreamReply(context.Background(), history, input, func(text string) {
				chunks <- text
			})
			close(chunks)
		}()
		return nil
	}

	return m, tea.Batch(stream, m.awaitChunk())
}

func (m ChatModel) awaitChunk() tea.Cmd {
	chunks := m.chunks
	return func() tea.Msg {
		text, ok := <-chunks
		return chunkMsg{text: text, ok: ok}
	}
}

func (m *ChatModel) refreshTranscript() {
	if !m.ready {
		return
	}

	var b strings.Builder
	for _, msg := range m.messages {
		if msg.Role == "user" {
			b.WriteString(userLabelStyle.Render("You"))
		} else {
			b.WriteString(modelLabelStyle.Render("ashline"))
		}
		b.WriteString("\n")
		b.WriteString(msg.Text)
		b.WriteString("\n\n")
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m ChatModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	status := "enter to send · esc to quit"
	if m.waiting {
		status = "thinking..."
	}

	return fmt.Sprintf("%s\n%s\n%s",
		m.viewport.View(),
		m.textarea.View(),
		statusStyle.Render(status),
	)
}
