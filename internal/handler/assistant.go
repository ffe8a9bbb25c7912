package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avikram/aeroscout/internal/assistant"
	"github.com/avikram/aeroscout/internal/chat"
	"github.com/avikram/aeroscout/internal/gateway"
	"github.com/avikram/aeroscout/internal/models"
	"github.com/avikram/aeroscout/internal/session"
)

type AssistantHandler struct {
	service *assistant.Service
}

func NewAssistantHandler(service *assistant.Service) *AssistantHandler {
	return &AssistantHandler{service: service}
}

// Search handles one form submission. The session_id query parameter binds
// the search to an existing session; when omitted a new session is created.
func (h *AssistantHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()

	var query models.SearchQuery
	if err := c.Bind(&query); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	outcome, err := h.service.Search(ctx, c.QueryParam("session_id"), query)
	if err != nil {
		return searchError(c, err)
	}

	state := outcome.State
	return c.JSON(http.StatusOK, models.SearchResponse{
		SessionID: state.ID,
		Currency:  state.CurrencyCode,
		Symbol:    state.DisplaySymbol,
		Cards:     buildCards(state),
		Summary:   state.Summary,
	})
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// Chat answers one follow-up question against the session's cached offers.
func (h *AssistantHandler) Chat(c echo.Context) error {
	ctx := c.Request().Context()

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	outcome, err := h.service.Ask(ctx, req.SessionID, req.Message)
	if err != nil {
		return chatError(c, err)
	}

	return c.JSON(http.StatusOK, models.ChatResponse{
		SessionID:  outcome.State.ID,
		Reply:      outcome.Reply,
		Rejected:   outcome.Rejected,
		Transcript: outcome.State.Transcript,
	})
}

// Session renders everything cached for a session: cards, summary, transcript.
func (h *AssistantHandler) Session(c echo.Context) error {
	state, err := h.service.Session(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, assistant.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "session_not_found",
				Message: err.Error(),
				Code:    http.StatusNotFound,
			})
		}
		return internalError(c, err)
	}

	return c.JSON(http.StatusOK, models.SessionResponse{
		SessionID:  state.ID,
		Cards:      buildCards(state),
		Summary:    state.Summary,
		Transcript: state.Transcript,
	})
}

// EndSession destroys a session.
func (h *AssistantHandler) EndSession(c echo.Context) error {
	if err := h.service.EndSession(c.Request().Context(), c.Param("id")); err != nil {
		return internalError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func buildCards(state *session.State) []models.OfferCard {
	cards := make([]models.OfferCard, 0, len(state.CachedOffers))
	for _, offer := range state.CachedOffers {
		cards = append(cards, models.BuildCard(offer, state.DisplaySymbol))
	}
	return cards
}

func searchError(c echo.Context, err error) error {
	var validation models.ValidationError
	if errors.As(err, &validation) {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: validation.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	var unavailable *gateway.UnavailableError
	if errors.As(err, &unavailable) {
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "gateway_unavailable",
			Message: "Flight search is unavailable; no new results.",
			Code:    http.StatusBadGateway,
		})
	}

	return internalError(c, err)
}

func chatError(c echo.Context, err error) error {
	var validation models.ValidationError
	if errors.As(err, &validation) {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: validation.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if errors.Is(err, assistant.ErrSessionNotFound) {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "session_not_found",
			Message: err.Error(),
			Code:    http.StatusNotFound,
		})
	}

	if errors.Is(err, assistant.ErrNoActiveSearch) {
		return c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "no_active_search",
			Message: err.Error(),
			Code:    http.StatusConflict,
		})
	}

	var chatErr *chat.Error
	if errors.As(err, &chatErr) {
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "chat_failed",
			Message: chatErr.Error(),
			Code:    http.StatusBadGateway,
		})
	}

	return internalError(c, err)
}

func internalError(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
		Code:    http.StatusInternalServerError,
	})
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
