// Package summarizer provides a stand-in for an AI summarization backend.
package summarizer

import (
	"context"
	"strings"
	"time"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/summary"
)

// Simulated truncates content to the requested word budget after a fixed delay.
type Simulated struct {
	latency time.Duration
}

func NewSimulated(latency time.Duration) *Simulated {
	return &Simulated{latency: latency}
}

func (s *Simulated) Summarize(ctx context.Context, content string, opts summary.Options) (*summary.Generated, error) {
	if s.latency > 0 {
		t := time.NewTimer(s.latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	opts = opts.Normalized()
	words := strings.Fields(content)
	kept := words
	if n := opts.Length.Words(); len(kept) > n {
		kept = kept[:n]
	}
	text := strings.Join(kept, " ")

	g := &summary.Generated{
		Original: summary.TextStats{Length: len(content), Words: len(words)},
		Summary: summary.Text{
			Text:   text + "...",
			Length: len(text),
			Words:  len(kept),
		},
	}
	if *opts.IncludeKeyPoints {
		g.KeyPoints = []string{
			"Key point extracted from the content 1",
			"Key point extracted from the content 2",
			"Key point extracted from the content 3",
		}
	}
	if opts.GenerateQuestions {
		g.StudyQuestions = []string{
			"What is the main idea of the text?",
			"Which key concepts are mentioned?",
			"How do these concepts relate to each other?",
		}
	}
	return g, nil
}
