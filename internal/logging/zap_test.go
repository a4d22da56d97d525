package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Backend: BackendZap, Level: "debug", Writer: &buf})
	require.NoError(t, err)

	log.With("component", "store").Info(context.Background(), "logged in", "email", "a@b.com")

	line := strings.TrimSpace(buf.String())
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &rec))

	assert.Equal(t, "info", rec["level"])
	assert.Equal(t, "logged in", rec["msg"])
	assert.Equal(t, "store", rec["component"])
	assert.Equal(t, "a@b.com", rec["email"])
}

func TestZapLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Backend: BackendZap, Level: "warn", Writer: &buf})
	require.NoError(t, err)

	ctx := context.Background()
	log.Debug(ctx, "dbg")
	log.Info(ctx, "inf")
	log.Warn(ctx, "wrn")

	out := buf.String()
	assert.NotContains(t, out, "dbg")
	assert.NotContains(t, out, "inf")
	assert.Contains(t, out, "wrn")
}

func TestNew_Backends(t *testing.T) {
	var buf bytes.Buffer

	l, err := New(Options{Writer: &buf})
	require.NoError(t, err)
	assert.IsType(t, &SlogLogger{}, l)

	l, err = New(Options{Backend: BackendSlog, Format: "json", Writer: &buf})
	require.NoError(t, err)
	l.Info(context.Background(), "hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	_, err = New(Options{Backend: "logrus"})
	require.Error(t, err)
}

func TestNop_Discards(t *testing.T) {
	l := Nop()
	l.Error(context.Background(), "nothing", "k", 1)
	l.With("a", "b").Info(context.Background(), "still nothing")
}
