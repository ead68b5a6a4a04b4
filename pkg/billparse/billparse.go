// Package billparse extracts structured billing fields from printable
// documents. Several interchangeable Parser implementations compete on
// the same document and a Composite picks the most confident answer.
//
// Every parser honors the same contract: expected failure modes
// (unreadable document, network error, malformed reply) are absorbed and
// reported as a zero-confidence BillDetails rather than an error, so the
// composite can treat all outcomes uniformly. A non-nil error from Parse
// signals an unexpected failure; the composite logs it and excludes that
// parser from selection.
package billparse

import (
	"context"
	"math"
)

// BillDetails is the extraction result exchanged between parsers and
// callers. All fields except Confidence are optional: a nil pointer
// means the parser could not find that field. The zero value is the
// canonical "no usable data" result.
type BillDetails struct {
	// Amount is the amount due on the bill, currency-agnostic.
	Amount *float64 `json:"amount,omitempty"`

	// ServiceProvider is the display name of the billing company.
	ServiceProvider *string `json:"serviceProvider,omitempty"`

	// PaymentPortal is an absolute URL for making payments.
	PaymentPortal *string `json:"paymentPortal,omitempty"`

	// DueDate is the due date as extracted; format is parser-dependent
	// and not guaranteed to be a calendar-parseable date.
	DueDate *string `json:"dueDate,omitempty"`

	// Confidence estimates how trustworthy the extracted values are,
	// in [0, 1] rounded to 2 decimal places. 0 means no usable data.
	Confidence float64 `json:"confidence"`
}

// Parser extracts bill details from a printable document.
type Parser interface {
	// Name is a stable human-readable identifier for the implementation.
	Name() string

	// Parse extracts bill details from the raw document bytes. It must
	// not return an error for ordinary extraction failures; those
	// resolve to BillDetails{} (confidence 0) instead.
	Parse(ctx context.Context, doc []byte) (BillDetails, error)
}

// RoundConfidence rounds a confidence score to 2 decimal places.
func RoundConfidence(c float64) float64 {
	return math.Round(c*100) / 100
}
