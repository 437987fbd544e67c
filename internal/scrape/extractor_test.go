package scrape

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type sequenceReader struct {
	responses []func() (string, error)
	calls     int
}

func (r *sequenceReader) Read(_ context.Context, _ string) (string, error) {
	i := r.calls
	r.calls++
	if i >= len(r.responses) {
		i = len(r.responses) - 1
	}
	return r.responses[i]()
}

func validPage() string {
	cols := []fixtureColumn{
		{ymdt: "2026030206", tmpr: "2", wetr: "맑음", prob: "10%", amt: "-", humid: "60%", wind: "북서 3.2"},
	}
	return fixturePage(cols, false, 0)
}

func TestExtract_RetriesTransientFailure(t *testing.T) {
	reader := &sequenceReader{responses: []func() (string, error){
		func() (string, error) { return "", errors.New("connection reset") },
		func() (string, error) { return validPage(), nil },
	}}

	result, err := NewExtractor(reader).Extract(context.Background(), "https://example.com/today/1", "1")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if reader.calls != 2 {
		t.Errorf("calls = %d, want 2", reader.calls)
	}
	if len(result.Hourly) != 1 {
		t.Errorf("len(Hourly) = %d, want 1", len(result.Hourly))
	}
}

func TestExtract_TimeoutIsPermanent(t *testing.T) {
	reader := &sequenceReader{responses: []func() (string, error){
		func() (string, error) { return "", fmt.Errorf("wait: %w", ErrExtractionTimeout) },
	}}

	_, err := NewExtractor(reader).Extract(context.Background(), "https://example.com/today/1", "1")
	if !errors.Is(err, ErrExtractionTimeout) {
		t.Fatalf("err = %v, want ErrExtractionTimeout", err)
	}
	if reader.calls != 1 {
		t.Errorf("calls = %d, want 1 (timeouts must not retry)", reader.calls)
	}
}

func TestExtract_CancelledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := &sequenceReader{responses: []func() (string, error){
		func() (string, error) { return "", errors.New("connection reset") },
	}}
	_, err := NewExtractor(reader).Extract(ctx, "https://example.com/today/1", "1")
	if err == nil {
		t.Fatal("Extract with cancelled context succeeded")
	}
	if reader.calls > 1 {
		t.Errorf("calls = %d, want at most 1", reader.calls)
	}
}
