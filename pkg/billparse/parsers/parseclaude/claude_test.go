package parseclaude

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/paytrack/billparse/pkg/errx"
	"github.com/paytrack/billparse/pkg/logx"
	"github.com/paytrack/billparse/pkg/ptrx"
)

func TestMain(m *testing.M) {
	logx.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type fakeMessages struct {
	message *anthropic.Message
	err     error
	params  anthropic.MessageNewParams
}

func (f *fakeMessages) New(_ context.Context, params anthropic.MessageNewParams, _ ...option.RequestOption) (*anthropic.Message, error) {
	f.params = params
	return f.message, f.err
}

func textMessage(s string) *anthropic.Message {
	return &anthropic.Message{
		Content: []anthropic.ContentBlockUnion{{Type: "text", Text: s}},
	}
}

func newTestParser(fake *fakeMessages) *Parser {
	return &Parser{messages: fake, model: defaultModel, maxTokens: defaultMaxTokens}
}

func TestParse_FullReply(t *testing.T) {
	fake := &fakeMessages{message: textMessage(`{
		"amount": 142.55,
		"serviceProvider": "Georgia Power",
		"paymentPortal": "https://www.georgiapower.com/billing",
		"dueDate": "2026-01-15"
	}`)}

	details, err := newTestParser(fake).Parse(context.Background(), []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ptrx.ToFloat64(details.Amount) != 142.55 {
		t.Errorf("amount = %v, want 142.55", ptrx.ToFloat64(details.Amount))
	}
	if ptrx.ToString(details.ServiceProvider) != "Georgia Power" {
		t.Errorf("serviceProvider = %q", ptrx.ToString(details.ServiceProvider))
	}
	if ptrx.ToString(details.DueDate) != "2026-01-15" {
		t.Errorf("dueDate = %q", ptrx.ToString(details.DueDate))
	}
	if details.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", details.Confidence)
	}

	if fake.params.Model != defaultModel {
		t.Errorf("model = %v, want %v", fake.params.Model, defaultModel)
	}
	if fake.params.MaxTokens != defaultMaxTokens {
		t.Errorf("maxTokens = %v, want %v", fake.params.MaxTokens, defaultMaxTokens)
	}
	if len(fake.params.Messages) != 1 {
		t.Fatalf("expected a single user message, got %d", len(fake.params.Messages))
	}
	if len(fake.params.Messages[0].Content) != 2 {
		t.Errorf("expected document plus prompt blocks, got %d", len(fake.params.Messages[0].Content))
	}
}

func TestParse_FencedReplyEqualsUnfenced(t *testing.T) {
	const payload = `{"amount": 88.1, "serviceProvider": "Comcast", "paymentPortal": null, "dueDate": null}`

	plain := &fakeMessages{message: textMessage(payload)}
	fenced := &fakeMessages{message: textMessage("```json\n" + payload + "\n```")}

	got, err := newTestParser(fenced).Parse(context.Background(), []byte("doc"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, err := newTestParser(plain).Parse(context.Background(), []byte("doc"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ptrx.ToFloat64(got.Amount) != ptrx.ToFloat64(want.Amount) ||
		ptrx.ToString(got.ServiceProvider) != ptrx.ToString(want.ServiceProvider) ||
		got.Confidence != want.Confidence {
		t.Errorf("fenced reply parsed to %+v, unfenced to %+v", got, want)
	}
	if got.Confidence != 0.5 {
		t.Errorf("confidence = %v, want 0.5 with two fields null", got.Confidence)
	}
}

func TestParse_APIErrorResolvesToZero(t *testing.T) {
	fake := &fakeMessages{err: errors.New("429: rate limit exceeded")}

	details, err := newTestParser(fake).Parse(context.Background(), []byte("doc"))
	if err != nil {
		t.Fatalf("expected failures to resolve, got %v", err)
	}
	if details.Confidence != 0 || details.Amount != nil {
		t.Errorf("expected zero-confidence result, got %+v", details)
	}
}

func TestParse_NonTextBlockResolvesToZero(t *testing.T) {
	fake := &fakeMessages{message: &anthropic.Message{
		Content: []anthropic.ContentBlockUnion{{Type: "tool_use"}},
	}}

	details, err := newTestParser(fake).Parse(context.Background(), []byte("doc"))
	if err != nil {
		t.Fatalf("expected failures to resolve, got %v", err)
	}
	if details.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", details.Confidence)
	}
}

func TestParse_MalformedJSONResolvesToZero(t *testing.T) {
	fake := &fakeMessages{message: textMessage("Sure! The amount due is $142.55.")}

	details, err := newTestParser(fake).Parse(context.Background(), []byte("doc"))
	if err != nil {
		t.Fatalf("expected failures to resolve, got %v", err)
	}
	if details.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", details.Confidence)
	}
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"```JSON\n{\"a\":1}\n```", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := stripCodeFences(tc.in); got != tc.want {
			t.Errorf("stripCodeFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseAPIError(t *testing.T) {
	cases := []struct {
		err  error
		code *errx.ErrorCode
	}{
		{errors.New("401: invalid x-api-key"), ErrAPIUnauthorized},
		{errors.New("429: rate_limit_error"), ErrAPIRateLimit},
		{errors.New("connection reset by peer"), ErrAPIRequest},
	}

	for _, tc := range cases {
		mapped := ParseAPIError(tc.err)
		if mapped.Code != tc.code.Code {
			t.Errorf("ParseAPIError(%v) code = %s, want %s", tc.err, mapped.Code, tc.code.Code)
		}
		if !errors.Is(mapped, tc.err) {
			t.Errorf("ParseAPIError(%v) does not wrap the cause", tc.err)
		}
	}

	if ParseAPIError(nil) != nil {
		t.Error("ParseAPIError(nil) should be nil")
	}
}

func TestName(t *testing.T) {
	if got := (&Parser{}).Name(); got != "anthropic-claude" {
		t.Errorf("Name() = %q", got)
	}
}
