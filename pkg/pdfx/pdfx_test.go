package pdfx_test

import (
	"testing"

	"github.com/paytrack/billparse/pkg/errx"
	"github.com/paytrack/billparse/pkg/pdfx"
)

func TestExtractText_GarbageBytes(t *testing.T) {
	inputs := map[string][]byte{
		"empty":      nil,
		"not a pdf":  []byte("this is plain text, not a pdf"),
		"bad header": []byte("%PDF-1.7\ngarbage trailer"),
	}

	extractor := pdfx.New()
	for name, data := range inputs {
		text, err := extractor.ExtractText(data)
		if err == nil {
			t.Errorf("%s: expected an error, got text %q", name, text)
			continue
		}

		var coded *errx.Error
		if !errx.As(err, &coded) {
			t.Errorf("%s: expected a registered error, got %T: %v", name, err, err)
			continue
		}
		if coded.Code != pdfx.ErrUnreadable.Code {
			t.Errorf("%s: code = %s, want %s", name, coded.Code, pdfx.ErrUnreadable.Code)
		}
	}
}
