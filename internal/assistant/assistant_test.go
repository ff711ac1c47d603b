package assistant

import (
	"context"
	"reflect"
	"testing"

	"github.com/jstrand/ashline/internal/constants"
	"github.com/jstrand/ashline/internal/models"
)

func TestNew_EmptyKeyIsOffline(t *testing.T) {
	c := New(context.Background(), "")
	if !c.Offline() {
		t.Error("client with no API key should be offline")
	}
}

func TestOfflineFallbacks(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, "")

	if got := c.DailyQuote(ctx, models.AddictionCigarettes); got != constants.FallbackQuote {
		t.Errorf("DailyQuote = %q, want fallback", got)
	}
	if got := c.JournalPrompt(ctx, models.MoodBad); got != constants.FallbackJournalPrompt {
		t.Errorf("JournalPrompt = %q, want fallback", got)
	}
	if got := c.Alternatives(ctx, models.AddictionVape, 8); !reflect.DeepEqual(got, constants.FallbackAlternatives) {
		t.Errorf("Alternatives = %v, want fallbacks", got)
	}
}

func TestStreamReply_OfflineEmitsSingleFallback(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, "")

	var chunks []string
	c.StreamReply(ctx, []ChatMessage{{Role: "user", Text: "hi"}}, "I had a rough day", func(s string) {
		chunks = append(chunks, s)
	})

	if len(chunks) != 1 {
		t.Fatalf("expected exactly one chunk, got %d", len(chunks))
	}
	if chunks[0] != constants.FallbackChatReply {
		t.Errorf("chunk = %q, want fallback reply", chunks[0])
	}
}

func TestSplitSuggestions(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "dashes",
			in:   "- Go for a walk\n- Drink water\n- Call someone",
			want: []string{"Go for a walk", "Drink water", "Call someone"},
		},
		{
			name: "asterisks and blanks",
			in:   "* First\n\n  * Second\n",
			want: []string{"First", "Second"},
		},
		{
			name: "unicode bullets",
			in:   "• Breathe deeply\n• Stretch",
			want: []string{"Breathe deeply", "Stretch"},
		},
		{
			name: "empty",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitSuggestions(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitSuggestions(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
