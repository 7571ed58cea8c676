// Package telemetry records structured per-turn events as JSON lines.
//
// Events never contain raw user text, model output or tool payloads; only sizes,
// durations, names and error categories.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultEventsFile is used when event output is switched on without a path.
const DefaultEventsFile = ".agent/events.jsonl"

// Recorder writes events. A nil *Recorder is valid and drops everything.
type Recorder struct {
	log *zap.Logger
}

// Nop returns a recorder that drops all events.
func Nop() *Recorder { return &Recorder{log: zap.NewNop()} }

// New returns a recorder writing one JSON object per event to ws.
func New(ws zapcore.WriteSyncer) *Recorder {
	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		MessageKey:     "event",
		TimeKey:        "time",
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		LineEnding:     zapcore.DefaultLineEnding,
	})
	core := zapcore.NewCore(enc, zapcore.Lock(ws), zapcore.DebugLevel)
	return &Recorder{log: zap.New(core)}
}

// Open appends events to the file at path, creating parent directories.
// An empty path yields a Nop recorder. The returned func closes the file.
func Open(path string) (*Recorder, func() error, error) {
	if path == "" {
		return Nop(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("telemetry: mkdir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return New(f), f.Close, nil
}

// Emit writes event with fields, tagging it with the turn ID carried by ctx.
func (r *Recorder) Emit(ctx context.Context, event string, fields ...zap.Field) {
	if r == nil || r.log == nil {
		return
	}
	if id, ok := TurnIDFromContext(ctx); ok {
		fields = append(fields, zap.String("turn_id", id))
	}
	r.log.Info(event, fields...)
}
