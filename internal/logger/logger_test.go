package logger

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &entry))
		entries = append(entries, entry)
	}
	return entries
}

// TestNewLoggerWithWriter_RoleAndTimestamp verifies that entries written
// through the diode writer carry the role and a timestamp once the logger
// is closed.
func TestNewLoggerWithWriter_RoleAndTimestamp(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter("test-role", &buf)

	l.Info().Msg("hello")
	require.NoError(t, l.Close())

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "test-role", entries[0]["role"])
	assert.Contains(t, entries[0], "time")
	assert.Equal(t, "hello", entries[0]["message"])
}

// TestNewLogger_CallerFieldName verifies that the caller field is named "func".
func TestNewLogger_CallerFieldName(t *testing.T) {
	l := NewLogger("caller-role")
	defer l.Close()
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

func TestSetLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(prev)

	require.NoError(t, SetLevel("warn"))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	assert.Error(t, SetLevel("loud"))
}

// TestNop_DiscardsOutput verifies that a Nop logger produces no output.
func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String(), "Nop logger should produce no output")
	assert.NoError(t, l.Close())
}

// TestGetChildLogger_InheritsFields verifies that the child logger inherits
// context fields (e.g. "role") from the parent.
func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := &Logger{Logger: zerolog.New(&buf).With().Str("role", "inherited-role").Logger()}

	child := parent.GetChildLogger()
	assert.NotSame(t, parent, child)
	child.Info().Msg("child message")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "inherited-role", entries[0]["role"])
}

func TestWithCorrelationID_TagsEveryLine(t *testing.T) {
	var buf bytes.Buffer
	base := &Logger{Logger: zerolog.New(&buf)}

	ctx, reqLog := base.WithCorrelationID(context.Background(), "550e8400-e29b-41d4-a716-446655440000")
	reqLog.Info().Msg("direct")
	FromContext(ctx).Warn().Msg("from context")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", e[CorrelationIDField])
	}
}

func TestWithCorrelationID_DoesNotTouchParent(t *testing.T) {
	var buf bytes.Buffer
	base := &Logger{Logger: zerolog.New(&buf)}

	_, _ = base.WithCorrelationID(context.Background(), "id-1")
	base.Info().Msg("parent")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0], CorrelationIDField)
}

// TestFromContext_NotNil verifies that FromContext never returns nil, even
// when no logger has been explicitly attached to the context.
func TestFromContext_NotNil(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
}

// TestFromRequest_ReturnsAttachedLogger verifies that FromRequest returns the
// logger attached to the request's context.
func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("req-key", "req-value").Logger()
	ctx := zl.WithContext(context.Background())

	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)

	l := FromRequest(req)
	require.NotNil(t, l)
	l.Info().Msg("from request")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "req-value", entries[0]["req-key"])
}

func TestFromContextOr(t *testing.T) {
	var fallbackBuf, attachedBuf bytes.Buffer
	fallback := &Logger{Logger: zerolog.New(&fallbackBuf)}

	t.Run("bare context uses fallback", func(t *testing.T) {
		FromContextOr(context.Background(), fallback).Error().Msg("fault")

		assert.Contains(t, fallbackBuf.String(), "fault")
	})

	t.Run("attached logger wins", func(t *testing.T) {
		attached := zerolog.New(&attachedBuf)
		ctx := attached.WithContext(context.Background())

		FromContextOr(ctx, Nop()).Error().Msg("fault")

		assert.Contains(t, attachedBuf.String(), "fault")
	})

	t.Run("nil fallback", func(t *testing.T) {
		require.NotNil(t, FromContextOr(context.Background(), nil))
	})
}
