package billparse

import "github.com/paytrack/billparse/pkg/errx"

var (
	errorRegistry = errx.NewRegistry("BILLPARSE")

	// ErrNoParsers is returned by Composite.Parse when it was built
	// with an empty parser list. This is a configuration error on the
	// caller's side, not an extraction failure.
	ErrNoParsers = errorRegistry.Register(
		"NO_PARSERS_REGISTERED",
		errx.TypeValidation,
		"No parsers registered",
	)
)
