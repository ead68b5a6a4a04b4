package parsepdf_test

import (
	"context"
	"errors"
	"io"
	"math"
	"os"
	"testing"

	"github.com/paytrack/billparse/pkg/billparse/parsers/parsepdf"
	"github.com/paytrack/billparse/pkg/logx"
	"github.com/paytrack/billparse/pkg/ptrx"
)

func TestMain(m *testing.M) {
	logx.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// stubExtractor returns canned text instead of reading a real PDF.
type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) ExtractText(_ []byte) (string, error) {
	return s.text, s.err
}

const sampleBill = `Georgia Power
Account Number: 1047-2231

Service period 12/01/2025 to 12/31/2025
Previous balance $130.12 received, thank you.

Pay online at www.georgiapower.com/billing

Total Amount Due: $142.55
Due Date: January 15, 2026
`

func TestParse_ExtractsAllFields(t *testing.T) {
	p := parsepdf.NewWithExtractor(stubExtractor{text: sampleBill})

	got, err := p.Parse(context.Background(), []byte("pdf-bytes"))
	if err != nil {
		t.Fatal(err)
	}

	if ptrx.ToFloat64(got.Amount) != 142.55 {
		t.Fatalf("expected amount 142.55, got %v", got.Amount)
	}
	if ptrx.ToString(got.ServiceProvider) != "Georgia Power" {
		t.Fatalf("expected provider Georgia Power, got %v", got.ServiceProvider)
	}
	if ptrx.ToString(got.PaymentPortal) != "https://www.georgiapower.com/billing" {
		t.Fatalf("expected normalized portal URL, got %v", got.PaymentPortal)
	}
	if ptrx.ToString(got.DueDate) != "January 15, 2026" {
		t.Fatalf("expected due date January 15, 2026, got %v", got.DueDate)
	}

	if got.Confidence <= 0 || got.Confidence > 1 {
		t.Fatalf("confidence out of range: %v", got.Confidence)
	}
	if math.Round(got.Confidence*100)/100 != got.Confidence {
		t.Fatalf("confidence not rounded to 2 decimals: %v", got.Confidence)
	}
}

func TestParse_KnownProviderAnyCase(t *testing.T) {
	p := parsepdf.NewWithExtractor(stubExtractor{
		text: "your electric service from GEORGIA power is summarized below",
	})

	got, err := p.Parse(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if ptrx.ToString(got.ServiceProvider) != "Georgia Power" {
		t.Fatalf("expected canonical Georgia Power, got %v", got.ServiceProvider)
	}
}

func TestParse_ExtractionFailureResolvesToZero(t *testing.T) {
	p := parsepdf.NewWithExtractor(stubExtractor{err: errors.New("corrupt document")})

	got, err := p.Parse(context.Background(), []byte("not a pdf"))
	if err != nil {
		t.Fatalf("expected no error for an unreadable document, got %v", err)
	}
	if got.Confidence != 0 {
		t.Fatalf("expected confidence 0, got %v", got.Confidence)
	}
	if got.Amount != nil || got.ServiceProvider != nil || got.PaymentPortal != nil || got.DueDate != nil {
		t.Fatalf("expected all fields absent, got %+v", got)
	}
}

func TestParse_EmptyTextResolvesToZeroConfidence(t *testing.T) {
	p := parsepdf.NewWithExtractor(stubExtractor{text: "lorem ipsum with no billing data"})

	got, err := p.Parse(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Confidence != 0 {
		t.Fatalf("expected confidence 0 for text without fields, got %v", got.Confidence)
	}
}

func TestName(t *testing.T) {
	if parsepdf.New().Name() != "pdf-text" {
		t.Fatal("unexpected parser name")
	}
}
