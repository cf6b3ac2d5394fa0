package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newCapturingLogger() (*ContextLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, nil))
	return NewContextLogger(l), &buf
}

func TestContextLogger_WithContext(t *testing.T) {
	cl, buf := newCapturingLogger()

	ctx := context.Background()
	ctx = WithRunID(ctx, "run-123")
	ctx = WithRecordID(ctx, "bm-9")
	ctx = WithStage(ctx, "tokenize")

	cl.WithContext(ctx).Info("processing")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid log JSON: %v", err)
	}

	if entry["analytics.run.id"] != "run-123" {
		t.Errorf("missing run id, got %v", entry["analytics.run.id"])
	}
	if entry["analytics.record.id"] != "bm-9" {
		t.Errorf("missing record id, got %v", entry["analytics.record.id"])
	}
	if entry["analytics.stage"] != "tokenize" {
		t.Errorf("missing stage, got %v", entry["analytics.stage"])
	}
}

func TestContextLogger_WithContextEmpty(t *testing.T) {
	cl, buf := newCapturingLogger()

	cl.WithContext(context.Background()).Info("plain")

	out := buf.String()
	if strings.Contains(out, "analytics.run.id") {
		t.Error("unexpected run id field on empty context")
	}
}

func TestContextLogger_LogError(t *testing.T) {
	cl, buf := newCapturingLogger()

	cl.LogError(context.Background(), "analyze", errors.New("boom"))

	out := buf.String()
	if !strings.Contains(out, "operation failed") {
		t.Errorf("expected failure message, got %s", out)
	}
	if !strings.Contains(out, "boom") {
		t.Errorf("expected error detail, got %s", out)
	}
}

func TestContextLogger_LogDuration(t *testing.T) {
	cl, buf := newCapturingLogger()

	cl.LogDuration(context.Background(), "analyze", 42)

	out := buf.String()
	if !strings.Contains(out, "operation completed") {
		t.Errorf("expected completion message, got %s", out)
	}
	if !strings.Contains(out, "42") {
		t.Errorf("expected duration, got %s", out)
	}
}
