package graceful

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"
)

func TestGracefulContext(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	ctx, cancel := Context(context.Background())
	defer cancel()

	go func() {
		time.Sleep(100 * time.Millisecond)
		if err := syscall.Kill(syscall.Getpid(), syscall.SIGINT); err != nil {
			t.Errorf("Failed to send SIGINT: %v", err)
		}
	}()

	select {
	case <-ctx.Done():
		if !errors.Is(ctx.Err(), context.Canceled) {
			t.Errorf("Expected context.Canceled error, got %v", ctx.Err())
		}
		if !errors.Is(context.Cause(ctx), ErrShutdown) {
			t.Errorf("Expected ErrShutdown cause, got %v", context.Cause(ctx))
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Test timed out waiting for context to be canceled.")
	}

	// the log line is written just before cancel, so it is visible here.
	if !strings.Contains(buf.String(), "interrupt") {
		t.Errorf("expected signal name in log, got %q", buf.String())
	}
}

func TestGracefulContext_CancelWithoutSignal(t *testing.T) {
	ctx, cancel := Context(context.Background())
	cancel()

	select {
	case <-ctx.Done():
		if cause := context.Cause(ctx); !errors.Is(cause, context.Canceled) {
			t.Errorf("Expected context.Canceled cause, got %v", cause)
		}
	case <-time.After(time.Second):
		t.Fatal("context not canceled")
	}
}
