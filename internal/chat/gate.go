package chat

import "strings"

// RefusalMessage is the fixed assistant reply recorded when the gate
// declines a query.
const RefusalMessage = "Only travel-related questions are supported."

// Gate decides whether a chat query may be forwarded to the
// generative-language dependency.
type Gate interface {
	Allow(query string) bool
}

var travelKeywords = []string{
	"flight", "airline", "baggage", "seat", "layover", "ticket", "visa",
	"passport", "check-in", "departure", "arrival", "duration", "price",
	"travel", "cancellation", "airport", "boarding", "time", "delay",
	"schedule", "policy", "round trip",
}

// KeywordGate admits a query when it contains at least one allow-listed
// substring, compared case-insensitively. Literal containment, not intent
// classification.
type KeywordGate struct {
	keywords []string
}

func NewKeywordGate() *KeywordGate {
	return &KeywordGate{keywords: travelKeywords}
}

// NewKeywordGateWithList builds a gate over a deployment-specific allow-list.
func NewKeywordGateWithList(keywords []string) *KeywordGate {
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return &KeywordGate{keywords: lowered}
}

func (g *KeywordGate) Allow(query string) bool {
	q := strings.ToLower(query)
	for _, keyword := range g.keywords {
		if strings.Contains(q, keyword) {
			return true
		}
	}
	return false
}
