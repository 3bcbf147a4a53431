package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// ProportionTolerance is the allowed floating-point drift when checking that
// group proportions sum to 1.0.
const ProportionTolerance = 1e-6

// Sentiment is a classification label returned by the analysis service.
// The string values are part of the wire contract.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Valid reports whether the label is one of the known sentiment values.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// AnalysisRequest is the request body sent to the analysis endpoint.
type AnalysisRequest struct {
	URL string `json:"url"`
}

// SentimentGroup aggregates the comments classified under one label.
type SentimentGroup struct {
	Label      Sentiment `json:"label" yaml:"label"`
	Count      int       `json:"count" yaml:"count"`
	Proportion float64   `json:"proportion" yaml:"proportion"`
}

// NotableComment is a comment the service selected as representative.
type NotableComment struct {
	CommentID string    `json:"comment_id" yaml:"comment_id"`
	Snippet   string    `json:"snippet" yaml:"snippet"`
	Sentiment Sentiment `json:"sentiment" yaml:"sentiment"`
	Score     int       `json:"score" yaml:"score"`
}

// AnalysisResult is the response schema of the analysis service.
// Unknown extra fields in the response are tolerated and dropped.
type AnalysisResult struct {
	PostTitle        string           `json:"post_title" yaml:"post_title"`
	OverallSentiment Sentiment        `json:"overall_sentiment" yaml:"overall_sentiment"`
	Groups           []SentimentGroup `json:"groups" yaml:"groups"`
	Controversy      float64          `json:"controversy" yaml:"controversy"`
	Keywords         []string         `json:"keywords" yaml:"keywords"`
	NotableComments  []NotableComment `json:"notable_comments" yaml:"notable_comments"`
}

// Validate checks the result against the response schema invariants:
// valid enum labels, unique group labels, non-negative counts, proportions
// in [0,1] summing to ~1.0, and unique notable comment IDs.
func (r *AnalysisResult) Validate() error {
	if !r.OverallSentiment.Valid() {
		return fmt.Errorf("invalid or missing overall_sentiment %q", r.OverallSentiment)
	}

	seenLabels := make(map[Sentiment]bool, len(r.Groups))
	proportionSum := 0.0
	for i, g := range r.Groups {
		if !g.Label.Valid() {
			return fmt.Errorf("groups[%d]: invalid label %q", i, g.Label)
		}
		if seenLabels[g.Label] {
			return fmt.Errorf("groups[%d]: duplicate label %q", i, g.Label)
		}
		seenLabels[g.Label] = true
		if g.Count < 0 {
			return fmt.Errorf("groups[%d]: negative count %d", i, g.Count)
		}
		if g.Proportion < 0 || g.Proportion > 1 {
			return fmt.Errorf("groups[%d]: proportion %v outside [0,1]", i, g.Proportion)
		}
		proportionSum += g.Proportion
	}
	if len(r.Groups) > 0 && math.Abs(proportionSum-1.0) > ProportionTolerance {
		return fmt.Errorf("group proportions sum to %v, expected 1.0", proportionSum)
	}

	seenIDs := make(map[string]bool, len(r.NotableComments))
	for i, c := range r.NotableComments {
		if c.CommentID == "" {
			return fmt.Errorf("notable_comments[%d]: empty comment_id", i)
		}
		if seenIDs[c.CommentID] {
			return fmt.Errorf("notable_comments[%d]: duplicate comment_id %q", i, c.CommentID)
		}
		seenIDs[c.CommentID] = true
		if !c.Sentiment.Valid() {
			return fmt.Errorf("notable_comments[%d]: invalid sentiment %q", i, c.Sentiment)
		}
	}

	return nil
}

// TotalComments returns the number of classified comments implied by the
// response (the sum of all group counts).
func (r *AnalysisResult) TotalComments() int {
	total := 0
	for _, g := range r.Groups {
		total += g.Count
	}
	return total
}

// CanonicalText serializes the result to its canonical text form, used for
// clipboard export and history storage. Parsing it back with
// ParseCanonicalText yields a field-for-field equal result.
func (r *AnalysisResult) CanonicalText() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize result: %w", err)
	}
	return string(data), nil
}

// ParseCanonicalText parses the canonical text form back into a result and
// re-validates it against the schema.
func ParseCanonicalText(text string) (*AnalysisResult, error) {
	var result AnalysisResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("failed to parse result: %w", err)
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return &result, nil
}

// ValidateURL checks user input before dispatch. Blank or whitespace-only
// input never reaches the network.
func ValidateURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("please enter a Reddit URL")
	}
	return trimmed, nil
}
