package models

// OfferCard is one flight offer rendered for display: price with the
// session's currency symbol, duration pre-formatted, segments verbatim.
type OfferCard struct {
	Kind     string    `json:"kind"`
	Price    string    `json:"price"`
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

// BuildCard formats an offer for the presentation layer. Offers with zero
// segments still produce a valid card.
func BuildCard(offer FlightOffer, symbol string) OfferCard {
	segments := offer.Segments
	if segments == nil {
		segments = []Segment{}
	}
	return OfferCard{
		Kind:     offer.Kind.Title(),
		Price:    symbol + FormatPrice(offer.Price),
		Duration: offer.Duration.Display(),
		Segments: segments,
	}
}

// SummaryResult tags dependency failures distinctly from genuine model
// output so callers never present an error string as an AI summary.
type SummaryResult struct {
	Text   string `json:"text,omitempty"`
	Failed bool   `json:"failed,omitempty"`
	Error  string `json:"error,omitempty"`
}

type SearchResponse struct {
	SessionID string        `json:"session_id"`
	Currency  string        `json:"currency"`
	Symbol    string        `json:"symbol"`
	Cards     []OfferCard   `json:"cards"`
	Summary   SummaryResult `json:"summary"`
}

type TranscriptEntry struct {
	Speaker string `json:"speaker"`
	Message string `json:"message"`
}

const (
	SpeakerUser      = "user"
	SpeakerAssistant = "assistant"
)

type ChatResponse struct {
	SessionID  string            `json:"session_id"`
	Reply      string            `json:"reply"`
	Rejected   bool              `json:"rejected"`
	Transcript []TranscriptEntry `json:"transcript"`
}

type SessionResponse struct {
	SessionID  string            `json:"session_id"`
	Cards      []OfferCard       `json:"cards"`
	Summary    SummaryResult     `json:"summary"`
	Transcript []TranscriptEntry `json:"transcript"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
