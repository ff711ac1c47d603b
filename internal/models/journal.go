package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Mood string

const (
	MoodGreat    Mood = "great"
	MoodGood     Mood = "good"
	MoodNeutral  Mood = "neutral"
	MoodBad      Mood = "bad"
	MoodTerrible Mood = "terrible"
)

func Moods() []Mood {
	return []Mood{MoodGreat, MoodGood, MoodNeutral, MoodBad, MoodTerrible}
}

func ParseMood(s string) (Mood, error) {
	for _, m := range Moods() {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mood: %q", s)
}

// JournalEntry is a dated piece of reflective writing. Title holds the
// prompt the entry was written against, if any. Tags is reserved.
type JournalEntry struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Mood    Mood      `json:"mood"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Tags    []string  `json:"tags"`
}

// NewJournalEntry validates and builds a journal entry with a fresh id.
func NewJournalEntry(date time.Time, mood Mood, title, content string) (*JournalEntry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("journal content is required")
	}
	if _, err := ParseMood(string(mood)); err != nil {
		return nil, err
	}
	return &JournalEntry{
		ID:      uuid.New().String(),
		Date:    date,
		Mood:    mood,
		Title:   title,
		Content: content,
		Tags:    []string{},
	}, nil
}
