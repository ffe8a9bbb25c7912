// Package assistant wires the search, summarization, and chat steps into
// per-session interactions. Each interaction is one synchronous
// request/response cycle; no two interactions for the same session run
// concurrently.
package assistant

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/avikram/aeroscout/internal/chat"
	"github.com/avikram/aeroscout/internal/gateway"
	"github.com/avikram/aeroscout/internal/models"
	"github.com/avikram/aeroscout/internal/session"
	"github.com/avikram/aeroscout/internal/summary"
	"github.com/avikram/aeroscout/pkg/currency"
)

// ErrNoActiveSearch is returned when a chat arrives before any successful
// search has seeded a conversation for the session.
var ErrNoActiveSearch = errors.New("no active search: search for flights to start chatting")

// ErrSessionNotFound is returned when an interaction names a session the
// store has never seen.
var ErrSessionNotFound = errors.New("session not found")

type Config struct {
	// ClearTranscriptOnSearch wipes prior chat history when a new search
	// succeeds. Off by default: the transcript normally survives searches.
	ClearTranscriptOnSearch bool
}

type Service struct {
	gateway    gateway.Gateway
	summarizer *summary.Summarizer
	responder  *chat.Responder
	store      session.Store
	config     Config
}

func NewService(gw gateway.Gateway, summarizer *summary.Summarizer, responder *chat.Responder, store session.Store, config Config) *Service {
	return &Service{
		gateway:    gw,
		summarizer: summarizer,
		responder:  responder,
		store:      store,
		config:     config,
	}
}

// SearchOutcome reports whether the search refreshed the session or left the
// previously cached results visible.
type SearchOutcome struct {
	State      *session.State
	NewResults bool
}

// Search runs the full pipeline for one form submission: resolve currency,
// query the gateway, summarize, seed the conversation, and overwrite the
// session's cached results as a unit. A failed or empty search leaves the
// existing cached state untouched.
func (s *Service) Search(ctx context.Context, sessionID string, query models.SearchQuery) (*SearchOutcome, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	state, err := s.loadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	currencyCode := currency.Resolve(query.Origin)
	symbol := currency.SymbolFor(currencyCode)

	offers, err := s.gateway.Search(ctx, query, currencyCode)
	if err != nil {
		return nil, err
	}

	if len(offers) == 0 {
		// Valid terminal outcome: no summarization, no conversation seed.
		return &SearchOutcome{State: state}, nil
	}

	if len(offers) > models.MaxOffers {
		offers = offers[:models.MaxOffers]
	}

	prompt := summary.ComposePrompt(offers, symbol)

	var result models.SummaryResult
	var conv *chat.Conversation
	text, sumErr := s.summarizer.Summarize(ctx, prompt)
	if sumErr != nil {
		log.Printf("session %s: %v", state.ID, sumErr)
		result = models.SummaryResult{Failed: true, Error: sumErr.Error()}
	} else {
		result = models.SummaryResult{Text: text}
		conv = chat.Start(prompt, text)
	}

	state.ReplaceResults(offers, currencyCode, symbol, result, conv)
	if s.config.ClearTranscriptOnSearch {
		state.ClearTranscript()
	}

	if err := s.store.Save(ctx, state); err != nil {
		return nil, err
	}
	return &SearchOutcome{State: state, NewResults: true}, nil
}

// ChatOutcome carries one answered (or refused) chat interaction.
type ChatOutcome struct {
	State    *session.State
	Reply    string
	Rejected bool
}

// Ask answers one follow-up question scoped to the session's cached results.
// Accepted and rejected queries both append a (user, query) and an
// (assistant, reply-or-refusal) transcript entry, in that order. A dependency
// failure appends nothing and leaves the session usable.
func (s *Service) Ask(ctx context.Context, sessionID, message string) (*ChatOutcome, error) {
	q := models.ChatQuery{Message: message}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, ErrSessionNotFound
	}
	if state.Conversation == nil {
		return nil, ErrNoActiveSearch
	}

	reply, rejected, err := s.responder.Ask(ctx, state.Conversation, message)
	if err != nil {
		return nil, err
	}

	state.AppendTranscript(models.SpeakerUser, message)
	state.AppendTranscript(models.SpeakerAssistant, reply)

	if err := s.store.Save(ctx, state); err != nil {
		return nil, err
	}
	return &ChatOutcome{State: state, Reply: reply, Rejected: rejected}, nil
}

// Session returns the cached state for rendering, or ErrSessionNotFound.
func (s *Service) Session(ctx context.Context, sessionID string) (*session.State, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, ErrSessionNotFound
	}
	return state, nil
}

// EndSession destroys a session and everything cached for it.
func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

func (s *Service) loadOrCreate(ctx context.Context, sessionID string) (*session.State, error) {
	if sessionID == "" {
		return session.NewState(uuid.NewString()), nil
	}
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = session.NewState(sessionID)
	}
	return state, nil
}
