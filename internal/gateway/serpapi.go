package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/avikram/aeroscout/internal/models"
	"github.com/avikram/aeroscout/internal/ratelimit"
)

const (
	serpAPIURL = "https://serpapi.com/search.json"

	// Fixed locale tag sent with every search.
	localeTag = "en"

	limiterKey = "serpapi"
)

type serpResponse struct {
	BestFlights []serpOffer `json:"best_flights"`
}

type serpOffer struct {
	Price         float64                `json:"price"`
	TotalDuration models.DurationMinutes `json:"total_duration"`
	Type          string                 `json:"type"`
	Flights       []serpSegment          `json:"flights"`
}

type serpSegment struct {
	Airline          string      `json:"airline"`
	DepartureAirport serpAirport `json:"departure_airport"`
	ArrivalAirport   serpAirport `json:"arrival_airport"`
}

type serpAirport struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Time string `json:"time"`
}

// SerpAPI queries the google_flights engine of serpapi.com. One Search call
// is one HTTP GET; there is no retry and no timeout beyond the caller's
// context.
type SerpAPI struct {
	apiKey  string
	baseURL string
	client  HTTPClient
	limiter *ratelimit.DependencyLimiter
}

type Option func(*SerpAPI)

func WithHTTPClient(client HTTPClient) Option {
	return func(g *SerpAPI) {
		g.client = client
	}
}

func WithBaseURL(baseURL string) Option {
	return func(g *SerpAPI) {
		g.baseURL = baseURL
	}
}

func WithLimiter(limiter *ratelimit.DependencyLimiter) Option {
	return func(g *SerpAPI) {
		g.limiter = limiter
	}
}

func NewSerpAPI(apiKey string, opts ...Option) *SerpAPI {
	g := &SerpAPI{
		apiKey:  apiKey,
		baseURL: serpAPIURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *SerpAPI) Search(ctx context.Context, query models.SearchQuery, currencyCode string) ([]models.FlightOffer, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx, limiterKey); err != nil {
			return nil, &UnavailableError{Err: err}
		}
	}

	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("departure_id", query.Origin)
	params.Set("arrival_id", query.Destination)
	params.Set("outbound_date", query.DepartureDate)
	if query.ReturnDate != nil && *query.ReturnDate != "" {
		params.Set("return_date", *query.ReturnDate)
	}
	params.Set("currency", currencyCode)
	params.Set("hl", localeTag)
	params.Set("api_key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UnavailableError{StatusCode: resp.StatusCode}
	}

	var body serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &UnavailableError{Err: err}
	}

	// A response without best_flights is a valid "no results" outcome.
	offers := make([]models.FlightOffer, 0, len(body.BestFlights))
	for _, raw := range body.BestFlights {
		offers = append(offers, normalize(raw))
	}
	return offers, nil
}

func normalize(raw serpOffer) models.FlightOffer {
	segments := make([]models.Segment, 0, len(raw.Flights))
	for _, s := range raw.Flights {
		airline := s.Airline
		if airline == "" {
			airline = "Unknown"
		}
		segments = append(segments, models.Segment{
			Airline: airline,
			Departure: models.AirportEvent{
				Name:      s.DepartureAirport.Name,
				Code:      s.DepartureAirport.ID,
				LocalTime: s.DepartureAirport.Time,
			},
			Arrival: models.AirportEvent{
				Name:      s.ArrivalAirport.Name,
				Code:      s.ArrivalAirport.ID,
				LocalTime: s.ArrivalAirport.Time,
			},
		})
	}

	return models.FlightOffer{
		Kind:     models.ParseOfferKind(raw.Type),
		Price:    raw.Price,
		Duration: raw.TotalDuration,
		Segments: segments,
	}
}
