// Package assistant brokers supportive text from the Gemini API. Every
// call degrades to a fixed local string on any failure: no network, no
// key, quota, or a malformed response all leave the app fully usable.
// Nothing produced here is persisted unless the caller explicitly saves it.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/jstrand/ashline/internal/constants"
	"github.com/jstrand/ashline/internal/models"
)

const defaultModel = "gemini-2.5-flash"

// ChatMessage is one turn of the support conversation. Ephemeral: the chat
// transcript is never written to the store.
type ChatMessage struct {
	Role string // "user" or "model"
	Text string
}

// Client wraps the generative backend. A nil inner client means offline
// mode; all methods then return their fallbacks immediately.
type Client struct {
	inner *genai.Client
	model string
}

// New builds a client from the API key. An empty key is not an error: the
// returned client simply serves fallbacks.
func New(ctx context.Context, apiKey string) *Client {
	c := &Client{model: defaultModel}
	if apiKey == "" {
		return c
	}

	inner, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return c
	}
	c.inner = inner
	return c
}

// Offline reports whether the client has no usable backend.
func (c *Client) Offline() bool {
	return c.inner == nil
}

func (c *Client) generate(ctx context.Context, prompt, fallback string) string {
	if c.inner == nil {
		return fallback
	}

	resp, err := c.inner.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return fallback
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return fallback
	}
	return text
}

// DailyQuote returns a short motivational quote for the addiction kind.
func (c *Client) DailyQuote(ctx context.Context, addiction models.Addiction) string {
	prompt := fmt.Sprintf(
		"Generate a short, powerful, minimalist motivational quote for someone quitting %s. "+
			"Do not include quotes (\"\") in the output string. Maximum 20 words.", addiction)
	return c.generate(ctx, prompt, constants.FallbackQuote)
}

// Alternatives suggests coping mechanisms matched to the craving
// intensity, one suggestion per line.
func (c *Client) Alternatives(ctx context.Context, addiction models.Addiction, intensity int) []string {
	if c.inner == nil {
		return constants.FallbackAlternatives
	}

	prompt := fmt.Sprintf(
		"Suggest 3 specific, actionable alternative coping mechanisms or substitutes for a heavy user "+
			"(intensity %d/10) of %s. Return as a simple bulleted list.", intensity, addiction)

	text := c.generate(ctx, prompt, "")
	lines := splitSuggestions(text)
	if len(lines) == 0 {
		return constants.FallbackAlternatives
	}
	return lines
}

// JournalPrompt returns one open-ended reflection prompt for the mood.
func (c *Client) JournalPrompt(ctx context.Context, mood models.Mood) string {
	prompt := fmt.Sprintf(
		"Generate one thoughtful, deep journal reflection prompt for someone in recovery "+
			"who is feeling %s today. Short and open-ended.", mood)
	return c.generate(ctx, prompt, constants.FallbackJournalPrompt)
}

// StreamReply streams a conversational reply, invoking onChunk for each
// text fragment. On any failure it emits a single apology chunk instead of
// returning an error; the conversation must never crash the caller.
func (c *Client) StreamReply(ctx context.Context, history []ChatMessage, message string, onChunk func(string)) {
	if c.inner == nil {
		onChunk(constants.FallbackChatReply)
		return
	}

	var priorContent []*genai.Content
	for _, msg := range history {
		var role genai.Role = genai.RoleUser
		if msg.Role == "model" {
			role = genai.RoleModel
		}
		priorContent = append(priorContent, genai.NewContentFromText(msg.Text, role))
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(constants.AssistantPersona, genai.RoleUser),
	}

	chat, err := c.inner.Chats.Create(ctx, c.model, config, priorContent)
	if err != nil {
		onChunk(constants.FallbackChatReply)
		return
	}

	emitted := false
	for resp, err := range chat.SendMessageStream(ctx, genai.Part{Text: message}) {
		if err != nil {
			if !emitted {
				onChunk(constants.FallbackChatReply)
			}
			return
		}
		if text := resp.Text(); text != "" {
			onChunk(text)
			emitted = true
		}
	}

	if !emitted {
		onChunk(constants.FallbackChatReply)
	}
}

// splitSuggestions flattens a bulleted response into clean lines.
func splitSuggestions(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• \t")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
