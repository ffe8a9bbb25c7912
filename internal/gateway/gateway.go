package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avikram/aeroscout/internal/models"
)

// Gateway executes one flight search against the external search dependency.
// The currency code is resolved by the caller from the origin airport.
type Gateway interface {
	Search(ctx context.Context, query models.SearchQuery, currencyCode string) ([]models.FlightOffer, error)
}

// HTTPClient lets tests substitute the transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// UnavailableError covers every non-success outcome from the search
// dependency: transport failures, non-2xx statuses, and undecodable bodies.
// No offers are produced and the caller keeps whatever it had.
type UnavailableError struct {
	StatusCode int
	Err        error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return "search gateway unavailable: " + e.Err.Error()
	}
	return fmt.Sprintf("search gateway unavailable: status %d", e.StatusCode)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}
