package billparse

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/paytrack/billparse/pkg/asyncx"
	"github.com/paytrack/billparse/pkg/logx"
)

// unserializable is logged in place of a result that cannot be rendered
// as JSON; logging must never abort the selection pipeline.
const unserializable = "<unserializable>"

// CompositeOption configures a Composite.
type CompositeOption func(*Composite)

// WithTimeout bounds every parser invocation to d. A parser that does
// not settle in time is scored at confidence 0 instead of stalling the
// whole parse call. Zero (the default) means no per-parser timeout.
func WithTimeout(d time.Duration) CompositeOption {
	return func(c *Composite) {
		c.timeout = d
	}
}

// Composite fans a parse request out to every registered parser
// concurrently, waits for all of them to settle, and returns the
// highest-confidence result. Registration order is the tie-break: when
// two parsers score equally, the one registered first wins.
type Composite struct {
	parsers []Parser
	timeout time.Duration
}

// NewComposite creates a composite over the given parsers. The parser
// list is fixed at construction.
func NewComposite(parsers []Parser, opts ...CompositeOption) *Composite {
	c := &Composite{
		parsers: append([]Parser(nil), parsers...),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements Parser.
func (c *Composite) Name() string {
	return "composite"
}

// Parse runs all registered parsers against doc and returns the best
// fulfilled result. Rejected parsers are logged and excluded; if nothing
// settles above confidence 0, the canonical zero-value BillDetails is
// returned. The only error Parse itself produces is ErrNoParsers.
func (c *Composite) Parse(ctx context.Context, doc []byte) (BillDetails, error) {
	if len(c.parsers) == 0 {
		return BillDetails{}, errorRegistry.New(ErrNoParsers)
	}

	requestID := uuid.NewString()

	fns := make([]func(context.Context) (BillDetails, error), len(c.parsers))
	for i, parser := range c.parsers {
		fns[i] = c.invoke(parser, doc)
	}

	settled := asyncx.AllSettled(ctx, fns...)

	fulfilled := make([]BillDetails, 0, len(settled))
	for i, res := range settled {
		entry := logx.WithFields(logx.Fields{
			"request_id": requestID,
			"parser":     c.parsers[i].Name(),
		})
		if res.OK() {
			entry.WithFields(logx.Fields{
				"status":     "fulfilled",
				"confidence": res.Value.Confidence,
				"details":    marshalForLog(res.Value),
			}).Info("parser settled")
			fulfilled = append(fulfilled, res.Value)
		} else {
			entry.WithField("status", "rejected").
				WithError(res.Err).
				Warn("parser rejected")
		}
	}

	sort.SliceStable(fulfilled, func(i, j int) bool {
		return fulfilled[i].Confidence > fulfilled[j].Confidence
	})

	if len(fulfilled) == 0 || fulfilled[0].Confidence == 0 {
		logx.WithField("request_id", requestID).
			Info("no usable parser results, returning default")
		return BillDetails{}, nil
	}

	selected := fulfilled[0]
	logx.WithFields(logx.Fields{
		"request_id": requestID,
		"confidence": selected.Confidence,
		"details":    marshalForLog(selected),
	}).Info("selected parser result")

	return selected, nil
}

// invoke adapts one parser call into an asyncx task, applying the
// optional per-parser timeout.
func (c *Composite) invoke(parser Parser, doc []byte) func(context.Context) (BillDetails, error) {
	return func(ctx context.Context) (BillDetails, error) {
		if c.timeout <= 0 {
			return parser.Parse(ctx, doc)
		}

		details, err := asyncx.WithTimeout(ctx, c.timeout, func(ctx context.Context) (BillDetails, error) {
			return parser.Parse(ctx, doc)
		})
		if errors.Is(err, context.DeadlineExceeded) {
			return BillDetails{}, nil
		}
		return details, err
	}
}

func marshalForLog(details BillDetails) string {
	data, err := json.Marshal(details)
	if err != nil {
		return unserializable
	}
	return string(data)
}
