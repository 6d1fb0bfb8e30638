package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ErrInvalidSentiment is returned when a string is not a known sentiment
var ErrInvalidSentiment = goerr.New("invalid sentiment")

// Sentiment classifies the tone of a feedback
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// AllSentiments returns all valid sentiments in display order
func AllSentiments() []Sentiment {
	return []Sentiment{
		SentimentPositive,
		SentimentNeutral,
		SentimentNegative,
	}
}

// IsValid checks if the sentiment is one of the enumerated values
func (s Sentiment) IsValid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	default:
		return false
	}
}

func (s Sentiment) String() string {
	return string(s)
}

// Label returns the upper case label used in exported reports
func (s Sentiment) Label() string {
	return strings.ToUpper(string(s))
}

// ParseSentiment parses a string into a Sentiment. Matching is exact.
func ParseSentiment(s string) (Sentiment, error) {
	sentiment := Sentiment(s)
	if !sentiment.IsValid() {
		return "", goerr.Wrap(ErrInvalidSentiment, "failed to parse sentiment", goerr.V("sentiment", s))
	}
	return sentiment, nil
}
