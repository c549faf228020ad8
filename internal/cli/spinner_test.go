package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerBasic(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "Testing...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.Cancelled() {
		t.Error("Cancelled() = true after Stop, want false")
	}
	if !strings.Contains(buf.String(), "Testing...") {
		t.Errorf("spinner output %q does not contain message", buf.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerTo(ctx, &bytes.Buffer{}, "Testing with context...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerTo(ctx, &bytes.Buffer{}, "Testing with timeout...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinnerTo(context.Background(), &bytes.Buffer{}, "Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinnerTo(context.Background(), &bytes.Buffer{}, "never started")
	s.Stop()
}

func TestSpinnerStopWithMessage(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "Testing success...")
	s.Start()
	s.StopWithSuccess("Done!")
	if !strings.Contains(buf.String(), "Done!") {
		t.Errorf("output %q missing success message", buf.String())
	}

	buf.Reset()
	s = newSpinnerTo(context.Background(), &buf, "Testing error...")
	s.Start()
	s.StopWithError("Failed!")
	if !strings.Contains(buf.String(), "Failed!") {
		t.Errorf("output %q missing error message", buf.String())
	}
}
