package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesFieldsAndSource(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo)

	log.Info(context.Background(), "saved", String("path", "assets/a.png"), Int("frames", 4))

	out := buf.String()
	assert.Contains(t, out, "msg=saved")
	assert.Contains(t, out, "path=assets/a.png")
	assert.Contains(t, out, "frames=4")
	assert.Contains(t, out, "logger_test.go")
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelWarn)

	log.Info(context.Background(), "hidden")
	log.Debug(context.Background(), "hidden too")
	log.Warn(context.Background(), "shown", Error(errors.New("font missing")))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "font missing")
}

func TestWithAndNamed(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelDebug).With(String("run_id", "abc")).Named("diagram")

	log.Debug(context.Background(), "drawn", Float64("scale", 2))

	out := buf.String()
	assert.Contains(t, out, "run_id=abc")
	assert.Contains(t, out, "diagram.scale=2")
}

func TestSetLevelString(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"verbose", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := SetLevelString(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, levelVar.Level())
		})
	}
	SetLevel(slog.LevelInfo)
}

func TestInitWriter_Global(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWriter(&buf))
	Named("app").Info(context.Background(), "ready")
	assert.Contains(t, buf.String(), "ready")

	assert.Error(t, InitWriter(nil))
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Error(context.Background(), "dropped")
	})
}
