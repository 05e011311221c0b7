package genid_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/DangerosoDavo/genid"
)

var sampleSummary = genid.KillSummary{
	Entity:     "unit",
	Requested:  3,
	Killed:     2,
	Before:     1,
	After:      2,
	Dependents: 4,
	Duration:   1500 * time.Microsecond,
}

func TestJSONLinesObserver(t *testing.T) {
	var buf bytes.Buffer
	observer := genid.NewJSONLinesObserver(&buf, "")
	observer.KillCommitted(sampleSummary)
	observer.KillCommitted(sampleSummary)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var record map[string]any
	require.NoError(t, gojson.Unmarshal([]byte(lines[0]), &record))
	require.Equal(t, "genid", record["source"])
	require.Equal(t, "unit", record["entity"])
	require.EqualValues(t, 2, record["killed"])
	require.EqualValues(t, 4, record["dependents"])
	require.InDelta(t, 1.5, record["duration_ms"], 1e-9)
	require.Contains(t, record, "timestamp")
}

func TestLoggingObserverFormats(t *testing.T) {
	t.Run("key value", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		genid.NewLoggingObserver(logger, genid.LogFormatKeyValue).KillCommitted(sampleSummary)
		require.Contains(t, buf.String(), "msg=\"kill batch committed\"")
		require.Contains(t, buf.String(), "killed=2")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		genid.NewLoggingObserver(logger, genid.LogFormatJSON).KillCommitted(sampleSummary)

		var record map[string]any
		require.NoError(t, gojson.Unmarshal(buf.Bytes(), &record))
		var payload map[string]any
		require.NoError(t, gojson.Unmarshal([]byte(record["msg"].(string)), &payload))
		require.Equal(t, "unit", payload["entity"])
	})

	t.Run("disabled level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
		genid.NewLoggingObserver(logger, genid.LogFormatKeyValue).KillCommitted(sampleSummary)
		require.Zero(t, buf.Len())
	})
}

func TestObserversFanOut(t *testing.T) {
	var a, b int
	observer := genid.Observers(
		nil,
		genid.ObserverFunc(func(genid.KillSummary) { a++ }),
		genid.ObserverFunc(func(genid.KillSummary) { b++ }),
	)
	observer.KillCommitted(sampleSummary)
	require.Equal(t, 1, a)
	require.Equal(t, 1, b)

	require.NotPanics(t, func() {
		genid.Observers().KillCommitted(sampleSummary)
		genid.NewLoggingObserver(nil, genid.LogFormatJSON).KillCommitted(sampleSummary)
	})
}
