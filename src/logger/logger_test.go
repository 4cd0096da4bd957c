package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{" warn ", slog.LevelWarn, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}

func TestFromContext(t *testing.T) {
	assert.Same(t, L, FromContext(context.Background()))

	var buf bytes.Buffer
	reqLogger := slog.New(slog.NewTextHandler(&buf, nil)).With("requestID", "abc")
	ctx := WithContext(context.Background(), reqLogger)

	FromContext(ctx).Info("hello")
	assert.Contains(t, buf.String(), "requestID=abc")
}
