// Package parseclaude extracts bill details by sending the document to
// Anthropic Claude with a strict-JSON instruction prompt and defensively
// parsing the reply.
package parseclaude

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"regexp"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/paytrack/billparse/pkg/billparse"
	"github.com/paytrack/billparse/pkg/logx"
	"github.com/paytrack/billparse/pkg/ptrx"
)

const (
	defaultModel     = anthropic.Model("claude-sonnet-4-5-20250929")
	defaultMaxTokens = 1024
)

const extractionPrompt = `You are a bill parsing assistant. Extract the following information from this bill text and return ONLY valid JSON with no markdown, no code blocks, no explanations.

Extract these fields from the attached PDF document:
- amount: The total amount due (number, no dollar signs or commas)
- serviceProvider: The company/service provider name (string)
- paymentPortal: Any website URL for making payments (string, full URL with https://)
- dueDate: The payment due date (string, format YYYY-MM-DD)

Rules:
- If a field is not found, use null
- For amount, extract only the total due or amount due (not balance, not previous charges)
- For serviceProvider, extract the main company name at the top of the bill
- For paymentPortal, look for "pay online at", "visit", or any payment URLs
- For dueDate, look for "due date", "payment due", "please pay by"
- Always convert dueDate to ISO 8601 format YYYY-MM-DD, even if the bill uses MM/DD/YYYY or other formats.

Return JSON only:`

// reply is the JSON object the model is instructed to emit. JSON null
// and absent keys both land as nil pointers.
type reply struct {
	Amount          *float64 `json:"amount"`
	ServiceProvider *string  `json:"serviceProvider"`
	PaymentPortal   *string  `json:"paymentPortal"`
	DueDate         *string  `json:"dueDate"`
}

// messageCreator is the slice of the Anthropic client the parser uses;
// tests substitute a fake.
type messageCreator interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Parser extracts bill details using Anthropic Claude.
type Parser struct {
	messages  messageCreator
	model     anthropic.Model
	maxTokens int64
}

// New creates a Parser. An empty apiKey falls back to the
// ANTHROPIC_API_KEY environment variable. No network I/O happens during
// construction.
func New(apiKey string, opts ...option.RequestOption) *Parser {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	options := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := anthropic.NewClient(options...)

	return &Parser{
		messages:  &client.Messages,
		model:     defaultModel,
		maxTokens: defaultMaxTokens,
	}
}

// Name implements billparse.Parser.
func (p *Parser) Name() string {
	return "anthropic-claude"
}

// Parse sends doc to Claude and maps the reply into BillDetails.
// Confidence is the fraction of the four fields the model filled in. Any
// failure in the pipeline resolves to the zero-confidence result.
func (p *Parser) Parse(ctx context.Context, doc []byte) (billparse.BillDetails, error) {
	r, err := p.complete(ctx, doc)
	if err != nil {
		logx.WithField("parser", p.Name()).
			WithError(err).
			Warn("bill extraction failed")
		return billparse.BillDetails{}, nil
	}
	return detailsFromReply(r), nil
}

// complete performs the raw exchange: base64 document block plus the
// instruction prompt in a single user message, first text content block
// back, fences stripped, JSON decoded.
func (p *Parser) complete(ctx context.Context, doc []byte) (reply, error) {
	encoded := base64.StdEncoding.EncodeToString(doc)

	message, err := p.messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{Data: encoded}),
				anthropic.NewTextBlock(extractionPrompt),
			),
		},
	})
	if err != nil {
		return reply{}, ParseAPIError(err)
	}

	if len(message.Content) == 0 || message.Content[0].Type != "text" {
		return reply{}, errorRegistry.New(ErrUnexpectedResponse)
	}

	text := stripCodeFences(strings.TrimSpace(message.Content[0].Text))

	var r reply
	if err := json.Unmarshal([]byte(text), &r); err != nil {
		return reply{}, errorRegistry.NewWithCause(ErrJSONParsing, err).
			WithDetail("reply", text)
	}
	return r, nil
}

var (
	fenceOpenJSON = regexp.MustCompile("(?i)^```json\\s*")
	fenceOpen     = regexp.MustCompile("^```\\s*")
	fenceClose    = regexp.MustCompile("```\\s*$")
)

// stripCodeFences removes leading/trailing Markdown code fences the
// model sometimes wraps its JSON in, despite instructions.
func stripCodeFences(s string) string {
	s = fenceOpenJSON.ReplaceAllString(s, "")
	s = fenceOpen.ReplaceAllString(s, "")
	s = fenceClose.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func detailsFromReply(r reply) billparse.BillDetails {
	extracted := 0
	if r.Amount != nil {
		extracted++
	}
	if ptrx.ToString(r.ServiceProvider) != "" {
		extracted++
	}
	if ptrx.ToString(r.PaymentPortal) != "" {
		extracted++
	}
	if ptrx.ToString(r.DueDate) != "" {
		extracted++
	}

	return billparse.BillDetails{
		Amount:          r.Amount,
		ServiceProvider: r.ServiceProvider,
		PaymentPortal:   r.PaymentPortal,
		DueDate:         r.DueDate,
		Confidence:      billparse.RoundConfidence(float64(extracted) / 4),
	}
}
