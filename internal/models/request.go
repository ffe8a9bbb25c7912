package models

import "time"

type SearchQuery struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureDate string  `json:"departure_date"`
	ReturnDate    *string `json:"return_date,omitempty"`
	Passengers    int     `json:"passengers"`
}

// Validate fills defaults and checks required fields. Origin and destination
// are accepted as typed; they are not checked against a real IATA table and
// reach the search dependency unmodified.
func (q *SearchQuery) Validate() error {
	if q.Origin == "" {
		return ErrMissingOrigin
	}
	if q.Destination == "" {
		return ErrMissingDestination
	}
	if q.DepartureDate == "" {
		return ErrMissingDepartureDate
	}
	if _, err := time.Parse("2006-01-02", q.DepartureDate); err != nil {
		return ErrInvalidDate
	}
	if q.ReturnDate != nil && *q.ReturnDate != "" {
		if _, err := time.Parse("2006-01-02", *q.ReturnDate); err != nil {
			return ErrInvalidDate
		}
	}
	if q.Passengers <= 0 {
		q.Passengers = 1
	}
	return nil
}

type ChatQuery struct {
	Message string `json:"message"`
}

func (q *ChatQuery) Validate() error {
	if q.Message == "" {
		return ErrMissingMessage
	}
	return nil
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin        ValidationError = "origin is required"
	ErrMissingDestination   ValidationError = "destination is required"
	ErrMissingDepartureDate ValidationError = "departure_date is required"
	ErrInvalidDate          ValidationError = "dates must use YYYY-MM-DD"
	ErrMissingMessage       ValidationError = "message is required"
)
