// Package parseopenai extracts bill details by sending the document to
// the OpenAI chat completions API with the same strict-JSON instruction
// prompt and defensive reply handling as the Claude parser.
package parseopenai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"regexp"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"

	"github.com/paytrack/billparse/pkg/billparse"
	"github.com/paytrack/billparse/pkg/logx"
	"github.com/paytrack/billparse/pkg/ptrx"
)

const (
	defaultModel     = openai.ChatModelGPT4o
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

type reply struct {
	Amount          *float64 `json:"amount"`
	ServiceProvider *string  `json:"serviceProvider"`
	PaymentPortal   *string  `json:"paymentPortal"`
	DueDate         *string  `json:"dueDate"`
}

// completionCreator is the slice of the OpenAI client the parser uses;
// tests substitute a fake.
type completionCreator interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Parser extracts bill details using OpenAI chat completions.
type Parser struct {
	completions completionCreator
	model       openai.ChatModel
	maxTokens   int64
}

// New creates a Parser. An empty apiKey falls back to the
// OPENAI_API_KEY environment variable. No network I/O happens during
// construction.
func New(apiKey string, opts ...option.RequestOption) *Parser {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	options := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := openai.NewClient(options...)

	return &Parser{
		completions: &client.Chat.Completions,
		model:       defaultModel,
		maxTokens:   defaultMaxTokens,
	}
}

// Name implements billparse.Parser.
func (p *Parser) Name() string {
	return "openai-gpt"
}

// Parse sends doc to OpenAI and maps the reply into BillDetails.
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

func (p *Parser) complete(ctx context.Context, doc []byte) (reply, error) {
	fileData := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(doc)

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.FileContentPart(openai.ChatCompletionContentPartFileFileParam{
			FileData: param.NewOpt(fileData),
			Filename: param.NewOpt("bill.pdf"),
		}),
		openai.TextContentPart(extractionPrompt),
	}

	completion, err := p.completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               p.model,
		MaxCompletionTokens: openai.Int(p.maxTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(parts),
		},
	})
	if err != nil {
		return reply{}, ParseAPIError(err)
	}

	if len(completion.Choices) == 0 {
		return reply{}, errorRegistry.New(ErrUnexpectedResponse)
	}

	text := stripCodeFences(strings.TrimSpace(completion.Choices[0].Message.Content))

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
