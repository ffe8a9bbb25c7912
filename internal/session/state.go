// Package session holds per-user-session state between UI interactions:
// the last search's offers, the generated summary, the seeded conversation,
// and the chat transcript.
package session

import (
	"time"

	"github.com/avikram/aeroscout/internal/chat"
	"github.com/avikram/aeroscout/internal/models"
)

// State is everything cached for one user session. It is created empty when
// the session begins and destroyed with it; nothing persists across sessions.
type State struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CachedOffers  []models.FlightOffer `json:"cached_offers,omitempty"`
	CurrencyCode  string               `json:"currency_code,omitempty"`
	DisplaySymbol string               `json:"display_symbol,omitempty"`
	Summary       models.SummaryResult `json:"summary"`
	Conversation  *chat.Conversation   `json:"conversation,omitempty"`

	// Transcript is append-only and survives later searches unless the
	// service is configured to clear it.
	Transcript []models.TranscriptEntry `json:"transcript,omitempty"`
}

func NewState(id string) *State {
	return &State{ID: id}
}

// HasResults reports whether a successful search has populated this session.
func (s *State) HasResults() bool {
	return len(s.CachedOffers) > 0
}

// ReplaceResults overwrites offers, currency, summary, and conversation as
// one unit. Previous values are discarded, never merged. Offers are capped
// at models.MaxOffers. The transcript is left alone.
func (s *State) ReplaceResults(offers []models.FlightOffer, currencyCode, symbol string, summary models.SummaryResult, conv *chat.Conversation) {
	if len(offers) > models.MaxOffers {
		offers = offers[:models.MaxOffers]
	}
	s.CachedOffers = offers
	s.CurrencyCode = currencyCode
	s.DisplaySymbol = symbol
	s.Summary = summary
	s.Conversation = conv
}

// AppendTranscript records one (speaker, message) pair at the end of the
// transcript. Entries are never rewritten.
func (s *State) AppendTranscript(speaker, message string) {
	s.Transcript = append(s.Transcript, models.TranscriptEntry{
		Speaker: speaker,
		Message: message,
	})
}

func (s *State) ClearTranscript() {
	s.Transcript = nil
}
