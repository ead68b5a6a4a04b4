// Package parsepdf extracts bill details from the plain text of a PDF
// using ordered regex pattern tables and per-field scoring heuristics.
// Pattern tables are data: each entry's position in its table determines
// its confidence, so reordering or adding patterns is a data change
// rather than a control-flow change.
package parsepdf

import (
	"context"

	"github.com/paytrack/billparse/pkg/billparse"
	"github.com/paytrack/billparse/pkg/logx"
	"github.com/paytrack/billparse/pkg/pdfx"
	"github.com/paytrack/billparse/pkg/ptrx"
)

// scoredField pairs an extracted value with a heuristic confidence.
// ok is false when the field could not be found; confidence is then 0.
type scoredField[T any] struct {
	value      T
	ok         bool
	confidence float64
}

// Parser is the heuristic text-based bill parser. It obtains plain text
// from a pdfx.TextExtractor and runs four independent field extractors
// over it.
type Parser struct {
	extractor pdfx.TextExtractor
}

// New creates a Parser using the default PDF text extractor.
func New() *Parser {
	return NewWithExtractor(pdfx.New())
}

// NewWithExtractor creates a Parser over a custom text extractor.
func NewWithExtractor(extractor pdfx.TextExtractor) *Parser {
	return &Parser{extractor: extractor}
}

// Name implements billparse.Parser.
func (p *Parser) Name() string {
	return "pdf-text"
}

// Parse extracts bill details from doc. A document the extractor cannot
// read resolves to the zero-confidence result, never an error.
func (p *Parser) Parse(ctx context.Context, doc []byte) (billparse.BillDetails, error) {
	text, err := p.extractor.ExtractText(doc)
	if err != nil {
		logx.WithField("parser", p.Name()).
			WithError(err).
			Debug("text extraction failed")
		return billparse.BillDetails{}, nil
	}

	amount := extractAmount(text)
	provider := extractProvider(text)
	portal := extractPaymentPortal(text)
	dueDate := extractDueDate(text)

	overall := (amount.confidence + provider.confidence + portal.confidence + dueDate.confidence) / 4

	details := billparse.BillDetails{
		Confidence: billparse.RoundConfidence(overall),
	}
	if amount.ok {
		details.Amount = ptrx.Float64(amount.value)
	}
	if provider.ok {
		details.ServiceProvider = ptrx.String(provider.value)
	}
	if portal.ok {
		details.PaymentPortal = ptrx.String(portal.value)
	}
	if dueDate.ok {
		details.DueDate = ptrx.String(dueDate.value)
	}

	return details, nil
}

// patternConfidence derives a confidence from a pattern's position in
// its table: the most specific pattern sits at index 0.
func patternConfidence(index int) float64 {
	return 1 - float64(index)*0.15
}
