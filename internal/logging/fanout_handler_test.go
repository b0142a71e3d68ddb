package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

func TestNewFanoutHandlerCollapses(t *testing.T) {
	if _, ok := newFanoutHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler when every handler is nil")
	}
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := newFanoutHandler(nil, inner); h != inner {
		t.Fatal("expected single non-nil handler to be returned unwrapped")
	}
}

func TestFanoutHandlerRespectsEachLevel(t *testing.T) {
	var infoBuf, warnBuf bytes.Buffer
	h := newFanoutHandler(
		slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug to be disabled")
	}

	logger := slog.New(h).With(slog.String("sheet", "lecture.xlsx"))
	logger.Info("info message")

	if !bytes.Contains(infoBuf.Bytes(), []byte(`"sheet"`)) {
		t.Fatalf("expected attribute in info output, got %q", infoBuf.String())
	}
	if warnBuf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", warnBuf.String())
	}
}
