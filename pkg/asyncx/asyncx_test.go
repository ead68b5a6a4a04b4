package asyncx_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/paytrack/billparse/pkg/asyncx"
)

func TestAllSettled_KeepsInputOrder(t *testing.T) {
	slow := func(ctx context.Context) (int, error) {
		time.Sleep(20 * time.Millisecond)
		return 1, nil
	}
	fast := func(ctx context.Context) (int, error) {
		return 2, nil
	}

	results := asyncx.AllSettled(context.Background(), slow, fast)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Value != 1 || results[1].Value != 2 {
		t.Errorf("results out of input order: %+v", results)
	}
}

func TestAllSettled_FailureDoesNotAffectSiblings(t *testing.T) {
	boom := errors.New("boom")

	results := asyncx.AllSettled(context.Background(),
		func(ctx context.Context) (string, error) { return "", boom },
		func(ctx context.Context) (string, error) { return "ok", nil },
	)

	if results[0].OK() || !errors.Is(results[0].Err, boom) {
		t.Errorf("expected first result to carry the error, got %+v", results[0])
	}
	if !results[1].OK() || results[1].Value != "ok" {
		t.Errorf("expected second result to settle normally, got %+v", results[1])
	}
}

func TestAllSettled_NoFns(t *testing.T) {
	results := asyncx.AllSettled[int](context.Background())
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestWithTimeout_CompletesInTime(t *testing.T) {
	v, err := asyncx.WithTimeout(context.Background(), time.Second,
		func(ctx context.Context) (int, error) { return 42, nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Errorf("value = %d, want 42", v)
	}
}

func TestWithTimeout_DeadlineExceeded(t *testing.T) {
	start := time.Now()
	v, err := asyncx.WithTimeout(context.Background(), 20*time.Millisecond,
		func(ctx context.Context) (int, error) {
			<-ctx.Done()
			return 99, ctx.Err()
		})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
	if v != 0 {
		t.Errorf("expected zero value on timeout, got %d", v)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("timeout took %v, expected prompt return", elapsed)
	}
}
