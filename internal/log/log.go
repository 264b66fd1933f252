// Package log carries per-request logging context through the module.
//
// Handlers installed with [WrapHandler] pick up [slog.Attr] values stored on
// a [context.Context] by [With], so call sites deep in a batch run or feed
// load emit the job and row identifiers without threading a logger around.
package log

import (
	"context"
	"log/slog"
	"slices"
)

type ctxkey int

const (
	_ ctxkey = iota

	// AttrsKey retrieves the extra logging attributes stored by [With]. The
	// value is a [slog.Value] of kind Group when present.
	attrsKey
)

// With returns a context carrying the arguments as [slog.Attr] values, in
// addition to any the context already holds. Arguments are converted the way
// [slog.Logger.Log] converts its trailing arguments.
func With(ctx context.Context, args ...any) context.Context {
	attrs := argsToAttrs(args)
	if v, ok := ctx.Value(attrsKey).(slog.Value); ok {
		attrs = append(v.Group(), attrs...)
	}
	// Later keys win.
	seen := make(map[string]struct{}, len(attrs))
	dup := func(a slog.Attr) bool {
		_, rm := seen[a.Key]
		seen[a.Key] = struct{}{}
		return rm
	}
	slices.Reverse(attrs)
	attrs = slices.DeleteFunc(attrs, dup)
	slices.Reverse(attrs)
	return context.WithValue(ctx, attrsKey, slog.GroupValue(attrs...))
}

// WrapHandler wraps the provided handler with an interceptor that adds the
// attributes stored by [With] to every record.
func WrapHandler(next slog.Handler) slog.Handler {
	return handler{next: next}
}

var _ slog.Handler = handler{}

type handler struct {
	next slog.Handler
}

// Enabled implements [slog.Handler].
func (h handler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.next.Enabled(ctx, l)
}

// Handle implements [slog.Handler].
func (h handler) Handle(ctx context.Context, r slog.Record) error {
	if v, ok := ctx.Value(attrsKey).(slog.Value); ok {
		r.AddAttrs(v.Group()...)
	}
	return h.next.Handle(ctx, r)
}

// WithAttrs implements [slog.Handler].
func (h handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return handler{next: h.next.WithAttrs(attrs)}
}

// WithGroup implements [slog.Handler].
func (h handler) WithGroup(name string) slog.Handler {
	return handler{next: h.next.WithGroup(name)}
}

func argsToAttrs(args []any) []slog.Attr {
	const badKey = `!BADKEY`
	var attrs []slog.Attr
	for len(args) > 0 {
		switch x := args[0].(type) {
		case string:
			if len(args) == 1 {
				attrs = append(attrs, slog.String(badKey, x))
				args = nil
				continue
			}
			attrs = append(attrs, slog.Any(x, args[1]))
			args = args[2:]
		case slog.Attr:
			attrs = append(attrs, x)
			args = args[1:]
		default:
			attrs = append(attrs, slog.Any(badKey, x))
			args = args[1:]
		}
	}
	return attrs
}
