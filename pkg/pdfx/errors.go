package pdfx

import "github.com/paytrack/billparse/pkg/errx"

var (
	errorRegistry = errx.NewRegistry("PDFX")

	ErrUnreadable = errorRegistry.Register(
		"DOCUMENT_UNREADABLE",
		errx.TypeValidation,
		"Document could not be read as a PDF",
	)

	ErrNoText = errorRegistry.Register(
		"NO_TEXT",
		errx.TypeValidation,
		"Document contains no extractable text",
	)
)
