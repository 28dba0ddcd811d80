package classify

import (
	"strings"

	"civiscore/internal/models"
)

// polarityIncrement is the fixed per-keyword contribution to a bill's score.
const polarityIncrement = 0.1

// Classifier derives a bill's polarity score and topic tags from its text.
// Keyword sets are immutable configuration injected at construction so tests
// can supply fixtures.
type Classifier struct {
	progressive  []string
	conservative []string
	topics       []models.Topic
}

type Config struct {
	ProgressiveKeywords  []string
	ConservativeKeywords []string
	Topics               []models.Topic
}

func New(cfg Config) *Classifier {
	return &Classifier{
		progressive:  lowerAll(cfg.ProgressiveKeywords),
		conservative: lowerAll(cfg.ConservativeKeywords),
		topics:       cfg.Topics,
	}
}

// BuildText concatenates the scoring-relevant bill fields into one lowercase
// blob. Same inputs always produce the same blob.
func BuildText(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.ToLower(strings.Join(kept, " "))
}

// PolarityScore is the deterministic bag-of-keywords score in [-1, 1].
// Each progressive keyword present adds +0.1, each conservative keyword
// present adds -0.1; zero matches yield exactly 0.
func (c *Classifier) PolarityScore(text string) float64 {
	text = strings.ToLower(text)
	score := 0.0
	for _, kw := range c.progressive {
		if strings.Contains(text, kw) {
			score += polarityIncrement
		}
	}
	for _, kw := range c.conservative {
		if strings.Contains(text, kw) {
			score -= polarityIncrement
		}
	}
	return Clamp(score, -1, 1)
}

// TopicsFor returns the ids of every topic with at least one keyword present
// in the text. Topics are independent; a bill may match zero or several.
func (c *Classifier) TopicsFor(text string) []string {
	text = strings.ToLower(text)
	ids := make([]string, 0)
	for _, t := range c.topics {
		for _, kw := range t.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				ids = append(ids, t.ID)
				break
			}
		}
	}
	return ids
}

func (c *Classifier) Topics() []models.Topic {
	return c.topics
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
