package log

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// Testing returns a context and wires the default [slog.Logger] to the
// provided [testing.TB]. Records are printed through t.Log with timestamps
// relative to the call.
func Testing(t testing.TB) context.Context {
	start := time.Now()
	h := slog.NewTextHandler(tbWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(g []string, a slog.Attr) slog.Attr {
			if g == nil && a.Key == "time" {
				return slog.String("time", "+"+time.Since(start).String())
			}
			return a
		},
	})
	prev := slog.Default()
	slog.SetDefault(slog.New(WrapHandler(h)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return context.Background()
}

type tbWriter struct {
	t testing.TB
}

func (w tbWriter) Write(b []byte) (int, error) {
	w.t.Log(strings.TrimSuffix(string(b), "\n"))
	return len(b), nil
}
