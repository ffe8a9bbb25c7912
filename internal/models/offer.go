package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// MaxOffers caps how many offers are ever cached, summarized, or displayed,
// regardless of how many the search dependency returns.
const MaxOffers = 5

type OfferKind string

const (
	KindOneWay    OfferKind = "one_way"
	KindRoundTrip OfferKind = "round_trip"
	KindMultiCity OfferKind = "multi_city"
	KindUnknown   OfferKind = "unknown"
)

// ParseOfferKind normalizes the free-text trip type reported by the search
// dependency. Anything unrecognized maps to KindUnknown.
func ParseOfferKind(s string) OfferKind {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")
	switch normalized {
	case "one_way", "oneway":
		return KindOneWay
	case "round_trip", "roundtrip":
		return KindRoundTrip
	case "multi_city", "multicity":
		return KindMultiCity
	default:
		return KindUnknown
	}
}

// Title renders the kind the way flight cards caption it: the first letter
// of every word is uppercased and underscores survive ("one_way" -> "One_Way").
func (k OfferKind) Title() string {
	var b strings.Builder
	prevLetter := false
	for _, r := range string(k) {
		isLetter := unicode.IsLetter(r)
		switch {
		case isLetter && !prevLetter:
			b.WriteRune(unicode.ToUpper(r))
		case isLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = isLetter
	}
	return b.String()
}

// DurationMinutes carries the total duration exactly as the search dependency
// reported it. Values that parse as an integer minute count are split into
// hours/minutes for display; everything else is shown verbatim.
type DurationMinutes struct {
	Raw     string
	Minutes int
	Valid   bool
}

func NewDuration(minutes int) DurationMinutes {
	return DurationMinutes{
		Raw:     strconv.Itoa(minutes),
		Minutes: minutes,
		Valid:   true,
	}
}

func (d *DurationMinutes) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = DurationMinutes{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		d.Raw = s
	} else {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		d.Raw = n.String()
	}

	if m, err := strconv.Atoi(strings.TrimSpace(d.Raw)); err == nil {
		d.Minutes = m
		d.Valid = true
	}
	return nil
}

func (d DurationMinutes) MarshalJSON() ([]byte, error) {
	if d.Valid {
		return json.Marshal(d.Minutes)
	}
	if d.Raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(d.Raw)
}

// String is the raw value used in summary prompts ("135", or "N/A" when the
// dependency sent nothing usable).
func (d DurationMinutes) String() string {
	if d.Raw == "" {
		return "N/A"
	}
	return d.Raw
}

// Display formats the duration for flight cards: "2h 15m" when the minute
// count parsed, otherwise the raw value with a fixed unit suffix.
func (d DurationMinutes) Display() string {
	if d.Valid {
		return fmt.Sprintf("%dh %dm", d.Minutes/60, d.Minutes%60)
	}
	return d.String() + " min"
}

type AirportEvent struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	LocalTime string `json:"local_time"`
}

type Segment struct {
	Airline   string       `json:"airline"`
	Departure AirportEvent `json:"departure"`
	Arrival   AirportEvent `json:"arrival"`
}

type FlightOffer struct {
	Kind     OfferKind       `json:"kind"`
	Price    float64         `json:"price"`
	Duration DurationMinutes `json:"total_duration_minutes"`
	Segments []Segment       `json:"segments"`
}

// FormatPrice renders the currency-less magnitude without trailing zeros,
// matching how prices appear on cards and in summary prompts.
func FormatPrice(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
