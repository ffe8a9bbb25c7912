// Package summary turns a batch of flight offers into a natural-language
// comparison via a single generative-language call.
package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/avikram/aeroscout/internal/llm"
	"github.com/avikram/aeroscout/internal/models"
)

const promptInstructions = `Summarize the following flights and include:
- Price, duration, stops, and airlines
- Baggage policy, seat comfort, amenities, and cancellation rules for each airline
- Recommendation for best overall, best value, and most comfortable`

// ComposePrompt renders one line per offer, capped at models.MaxOffers, under
// a fixed instruction block. Durations appear as the raw minute value the
// search dependency reported.
func ComposePrompt(offers []models.FlightOffer, symbol string) string {
	if len(offers) > models.MaxOffers {
		offers = offers[:models.MaxOffers]
	}

	lines := make([]string, 0, len(offers))
	for _, offer := range offers {
		segments := make([]string, 0, len(offer.Segments))
		for _, seg := range offer.Segments {
			segments = append(segments, fmt.Sprintf("%s from %s to %s",
				seg.Airline, seg.Departure.Code, seg.Arrival.Code))
		}
		lines = append(lines, fmt.Sprintf("%s flight costing %s%s, duration %s minutes, segments: %s.",
			offer.Kind.Title(),
			symbol,
			models.FormatPrice(offer.Price),
			offer.Duration.String(),
			strings.Join(segments, ", ")))
	}

	return promptInstructions + "\n\nFlights:\n" + strings.Join(lines, "\n")
}

// Error tags a summarization failure so callers never mistake dependency
// error text for model output.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return "summary generation failed: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Summarizer struct {
	generator llm.Generator
}

func NewSummarizer(generator llm.Generator) *Summarizer {
	return &Summarizer{generator: generator}
}

// Summarize issues exactly one generation call with the composed prompt.
func (s *Summarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", &Error{Err: err}
	}
	return text, nil
}
