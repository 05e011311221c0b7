package genid

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	gojson "github.com/goccy/go-json"
)

// KillSummary describes one kill batch committed through an Arena.
type KillSummary struct {
	Entity     string
	Requested  int
	Killed     int
	Before     uint32
	After      uint32
	Dependents int
	Duration   time.Duration
}

// Observer receives a summary after every committed kill batch.
type Observer interface {
	KillCommitted(summary KillSummary)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(KillSummary)

func (f ObserverFunc) KillCommitted(summary KillSummary) { f(summary) }

type noopObserver struct{}

func (noopObserver) KillCommitted(KillSummary) {}

type compositeObserver struct {
	observers []Observer
}

func (c compositeObserver) KillCommitted(summary KillSummary) {
	for _, observer := range c.observers {
		observer.KillCommitted(summary)
	}
}

// Observers fans summaries out to every non-nil observer.
func Observers(observers ...Observer) Observer {
	var kept []Observer
	for _, o := range observers {
		if o != nil {
			kept = append(kept, o)
		}
	}
	switch len(kept) {
	case 0:
		return noopObserver{}
	case 1:
		return kept[0]
	default:
		return compositeObserver{observers: kept}
	}
}

// LogFormat selects how LoggingObserver renders a summary.
type LogFormat int

const (
	// LogFormatKeyValue logs each field as a structured attribute.
	LogFormatKeyValue LogFormat = iota
	// LogFormatJSON logs the summary as a single JSON message.
	LogFormatJSON
)

type loggingObserver struct {
	logger *slog.Logger
	format LogFormat
}

// NewLoggingObserver logs summaries at debug level.
func NewLoggingObserver(logger *slog.Logger, format LogFormat) Observer {
	if logger == nil {
		return noopObserver{}
	}
	return loggingObserver{logger: logger, format: format}
}

func (o loggingObserver) KillCommitted(summary KillSummary) {
	ctx := context.Background()
	if !o.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	if o.format == LogFormatJSON {
		data, err := gojson.Marshal(summaryPayload(summary))
		if err != nil {
			o.logger.Error("kill summary marshal error", "entity", summary.Entity, "err", err)
			return
		}
		o.logger.Debug(string(data))
		return
	}
	o.logger.LogAttrs(ctx, slog.LevelDebug, "kill batch committed",
		slog.String("entity", summary.Entity),
		slog.Int("requested", summary.Requested),
		slog.Int("killed", summary.Killed),
		slog.Any("before", summary.Before),
		slog.Any("after", summary.After),
		slog.Int("dependents", summary.Dependents),
		slog.Duration("duration", summary.Duration),
	)
}

func summaryPayload(summary KillSummary) map[string]any {
	return map[string]any{
		"entity":      summary.Entity,
		"requested":   summary.Requested,
		"killed":      summary.Killed,
		"before":      summary.Before,
		"after":       summary.After,
		"dependents":  summary.Dependents,
		"duration_ms": float64(summary.Duration) / float64(time.Millisecond),
	}
}

// JSONLinesObserver writes one JSON object per summary to an io.Writer.
type JSONLinesObserver struct {
	mu     sync.Mutex
	w      io.Writer
	source string
	now    func() time.Time
}

// NewJSONLinesObserver writes summaries to w, tagging each with source.
func NewJSONLinesObserver(w io.Writer, source string) *JSONLinesObserver {
	if source == "" {
		source = "genid"
	}
	return &JSONLinesObserver{w: w, source: source, now: time.Now}
}

func (o *JSONLinesObserver) KillCommitted(summary KillSummary) {
	if o.w == nil {
		return
	}
	record := summaryPayload(summary)
	record["source"] = o.source
	record["timestamp"] = o.now().UnixNano()
	payload, err := gojson.Marshal(record)
	if err != nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = o.w.Write(append(payload, '\n'))
}
