package parseclaude

import (
	"strings"

	"github.com/paytrack/billparse/pkg/errx"
)

var (
	errorRegistry = errx.NewRegistry("CLAUDE")

	ErrAPIRequest = errorRegistry.Register(
		"API_REQUEST_FAILED",
		errx.TypeExternal,
		"Failed to make request to Anthropic API",
	)

	ErrAPIUnauthorized = errorRegistry.Register(
		"API_UNAUTHORIZED",
		errx.TypeExternal,
		"Invalid or missing Anthropic API key",
	)

	ErrAPIRateLimit = errorRegistry.Register(
		"API_RATE_LIMIT",
		errx.TypeExternal,
		"Anthropic API rate limit exceeded",
	)

	ErrUnexpectedResponse = errorRegistry.Register(
		"UNEXPECTED_RESPONSE",
		errx.TypeExternal,
		"Unexpected response shape from Anthropic API",
	)

	ErrJSONParsing = errorRegistry.Register(
		"JSON_PARSING_FAILED",
		errx.TypeExternal,
		"Model reply is not valid JSON",
	)
)

// ParseAPIError maps an Anthropic SDK error onto a registered code.
func ParseAPIError(err error) *errx.Error {
	if err == nil {
		return nil
	}

	var coded *errx.Error
	if errx.As(err, &coded) {
		return coded
	}

	errLower := strings.ToLower(err.Error())

	var code *errx.ErrorCode
	switch {
	case strings.Contains(errLower, "unauthorized") ||
		strings.Contains(errLower, "invalid x-api-key") ||
		strings.Contains(errLower, "authentication"):
		code = ErrAPIUnauthorized
	case strings.Contains(errLower, "rate limit") || strings.Contains(errLower, "rate_limit"):
		code = ErrAPIRateLimit
	default:
		code = ErrAPIRequest
	}

	return errorRegistry.NewWithCause(code, err)
}
