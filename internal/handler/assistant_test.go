package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avikram/aeroscout/internal/assistant"
	"github.com/avikram/aeroscout/internal/chat"
	"github.com/avikram/aeroscout/internal/gateway"
	"github.com/avikram/aeroscout/internal/llm"
	"github.com/avikram/aeroscout/internal/models"
	"github.com/avikram/aeroscout/internal/session"
	"github.com/avikram/aeroscout/internal/summary"
)

type stubGateway struct {
	offers []models.FlightOffer
	err    error
}

func (s *stubGateway) Search(ctx context.Context, query models.SearchQuery, currencyCode string) ([]models.FlightOffer, error) {
	return s.offers, s.err
}

type stubGenerator struct {
	generated string
	reply     string
	chatErr   error
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return s.generated, nil
}

func (s *stubGenerator) Chat(ctx context.Context, history []llm.Message, query string) (string, error) {
	return s.reply, s.chatErr
}

func newHandler(gw *stubGateway, gen *stubGenerator) *AssistantHandler {
	svc := assistant.NewService(
		gw,
		summary.NewSummarizer(gen),
		chat.NewResponder(gen, chat.NewKeywordGate()),
		session.NewMemoryStore(),
		assistant.Config{},
	)
	return NewAssistantHandler(svc)
}

func sampleOffers() []models.FlightOffer {
	return []models.FlightOffer{{
		Kind:     models.KindOneWay,
		Price:    4500,
		Duration: models.NewDuration(135),
		Segments: []models.Segment{{
			Airline:   "Air India",
			Departure: models.AirportEvent{Name: "Delhi", Code: "DEL", LocalTime: "10:00"},
			Arrival:   models.AirportEvent{Name: "Mumbai", Code: "BOM", LocalTime: "12:15"},
		}},
	}}
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func registerRoutes(e *echo.Echo, h *AssistantHandler) {
	v1 := e.Group("/api/v1")
	v1.POST("/flights/search", h.Search)
	v1.POST("/chat", h.Chat)
	v1.GET("/session/:id", h.Session)
	v1.DELETE("/session/:id", h.EndSession)
	e.GET("/health", HealthHandler)
}

func TestSearchEndpoint(t *testing.T) {
	h := newHandler(&stubGateway{offers: sampleOffers()}, &stubGenerator{generated: "a summary"})
	e := echo.New()
	registerRoutes(e, h)

	rec := doJSON(e, http.MethodPost, "/api/v1/flights/search",
		`{"origin":"DEL","destination":"BOM","departure_date":"2025-06-01"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, "INR", resp.Currency)
	assert.Equal(t, "₹", resp.Symbol)
	assert.Equal(t, "a summary", resp.Summary.Text)
	require.Len(t, resp.Cards, 1)
	assert.Equal(t, "2h 15m", resp.Cards[0].Duration)
	assert.Equal(t, "Air India", resp.Cards[0].Segments[0].Airline)
}

func TestSearchEndpointValidation(t *testing.T) {
	h := newHandler(&stubGateway{}, &stubGenerator{})
	e := echo.New()
	registerRoutes(e, h)

	rec := doJSON(e, http.MethodPost, "/api/v1/flights/search",
		`{"destination":"BOM","departure_date":"2025-06-01"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error)
}

func TestSearchEndpointGatewayDown(t *testing.T) {
	gw := &stubGateway{err: &gateway.UnavailableError{StatusCode: 503, Err: errors.New("upstream down")}}
	h := newHandler(gw, &stubGenerator{})
	e := echo.New()
	registerRoutes(e, h)

	rec := doJSON(e, http.MethodPost, "/api/v1/flights/search",
		`{"origin":"DEL","destination":"BOM","departure_date":"2025-06-01"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "gateway_unavailable", resp.Error)
	assert.NotContains(t, resp.Message, "upstream down", "upstream details stay out of client responses")
}

func TestChatEndpoint(t *testing.T) {
	h := newHandler(&stubGateway{offers: sampleOffers()}, &stubGenerator{generated: "a summary", reply: "25kg checked"})
	e := echo.New()
	registerRoutes(e, h)

	rec := doJSON(e, http.MethodPost, "/api/v1/flights/search",
		`{"origin":"DEL","destination":"BOM","departure_date":"2025-06-01"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var search models.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &search))

	rec = doJSON(e, http.MethodPost, "/api/v1/chat",
		`{"session_id":"`+search.SessionID+`","message":"what is the baggage allowance?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Rejected)
	assert.Equal(t, "25kg checked", resp.Reply)
	require.Len(t, resp.Transcript, 2)
	assert.Equal(t, models.SpeakerUser, resp.Transcript[0].Speaker)
}

func TestChatEndpointRejected(t *testing.T) {
	h := newHandler(&stubGateway{offers: sampleOffers()}, &stubGenerator{generated: "a summary"})
	e := echo.New()
	registerRoutes(e, h)

	rec := doJSON(e, http.MethodPost, "/api/v1/flights/search",
		`{"origin":"DEL","destination":"BOM","departure_date":"2025-06-01"}`)
	var search models.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &search))

	rec = doJSON(e, http.MethodPost, "/api/v1/chat",
		`{"session_id":"`+search.SessionID+`","message":"recommend a good restaurant"}`)
	require.Equal(t, http.StatusOK, rec.Code, "a refusal is still a successful interaction")

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Rejected)
	assert.Equal(t, chat.RefusalMessage, resp.Reply)
}

func TestChatEndpointErrors(t *testing.T) {
	h := newHandler(&stubGateway{offers: sampleOffers()}, &stubGenerator{generated: "a summary"})
	e := echo.New()
	registerRoutes(e, h)

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{
			name:     "unknown session",
			body:     `{"session_id":"does-not-exist","message":"flight status?"}`,
			wantCode: http.StatusNotFound,
			wantErr:  "session_not_found",
		},
		{
			name:     "empty message",
			body:     `{"session_id":"does-not-exist","message":""}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "validation_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(e, http.MethodPost, "/api/v1/chat", tt.body)
			require.Equal(t, tt.wantCode, rec.Code)

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantErr, resp.Error)
		})
	}
}

func TestChatEndpointBeforeSearch(t *testing.T) {
	store := session.NewMemoryStore()
	gen := &stubGenerator{}
	svc := assistant.NewService(&stubGateway{}, summary.NewSummarizer(gen),
		chat.NewResponder(gen, chat.NewKeywordGate()), store, assistant.Config{})
	h := NewAssistantHandler(svc)
	e := echo.New()
	registerRoutes(e, h)

	require.NoError(t, store.Save(context.Background(), session.NewState("fresh")))

	rec := doJSON(e, http.MethodPost, "/api/v1/chat",
		`{"session_id":"fresh","message":"flight status?"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "no_active_search", resp.Error)
}

func TestSessionEndpoints(t *testing.T) {
	h := newHandler(&stubGateway{offers: sampleOffers()}, &stubGenerator{generated: "a summary"})
	e := echo.New()
	registerRoutes(e, h)

	rec := doJSON(e, http.MethodPost, "/api/v1/flights/search",
		`{"origin":"DEL","destination":"BOM","departure_date":"2025-06-01"}`)
	var search models.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &search))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session/"+search.SessionID, nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var sess models.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	assert.Equal(t, search.SessionID, sess.SessionID)
	assert.Len(t, sess.Cards, 1)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/session/"+search.SessionID, nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/session/"+search.SessionID, nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	e := echo.New()
	e.GET("/health", HealthHandler)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
