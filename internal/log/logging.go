// Package log provides helpers for creating a configured slog.Logger.
//
// When a log file path is not provided, logs are written to stdout for
// non-error levels and to stderr for errors. When stdout is reserved (protoc
// plugin mode, where stdout carries the CodeGeneratorResponse) every record
// goes to stderr instead.
package log

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
)

// LevelTrace is below Debug; it also enables the raw protoc exchange dump.
const LevelTrace slog.Level = -8

var levelNames = map[string]slog.Level{
	"trace": LevelTrace,
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLevel maps a --log.level value to a slog.Level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	if l, ok := levelNames[s]; ok {
		return l
	}
	return slog.LevelInfo
}

// Route sends records with Min <= level < Max to H.
type Route struct {
	Min, Max slog.Level
	H        slog.Handler
}

func (r Route) accepts(ctx context.Context, level slog.Level) bool {
	return level >= r.Min && level < r.Max && r.H.Enabled(ctx, level)
}

// Router is a slog.Handler dispatching every record to all routes that accept its level.
type Router []Route

func (rt Router) Enabled(ctx context.Context, level slog.Level) bool {
	for _, r := range rt {
		if r.accepts(ctx, level) {
			return true
		}
	}
	return false
}

func (rt Router) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, r := range rt {
		if r.accepts(ctx, rec.Level) {
			errs = append(errs, r.H.Handle(ctx, rec.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (rt Router) WithAttrs(attrs []slog.Attr) slog.Handler {
	return rt.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (rt Router) WithGroup(name string) slog.Handler {
	return rt.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (rt Router) each(fn func(slog.Handler) slog.Handler) Router {
	out := make(Router, len(rt))
	for i, r := range rt {
		out[i] = Route{Min: r.Min, Max: r.Max, H: fn(r.H)}
	}
	return out
}

const levelMax = slog.Level(math.MaxInt)

func textHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && a.Value.Any() == LevelTrace {
				a.Value = slog.StringValue("TRACE")
			}
			return a
		},
	})
}

// Outputs are the console streams SetupLogger writes to.
type Outputs struct {
	Stdout io.Writer
	Stderr io.Writer
}

// StdOutputs returns the process stdout and stderr.
func StdOutputs() Outputs {
	return Outputs{Stdout: os.Stdout, Stderr: os.Stderr}
}

// SetupLogger builds a slog.Logger with console and optional file handlers.
// With stdoutReserved nothing is ever written to out.Stdout.
func SetupLogger(logLevel, logFile string, stdoutReserved bool, out Outputs) (*slog.Logger, []io.Closer, error) {
	level := ParseLevel(logLevel)

	var router Router
	if logFile != "" || stdoutReserved {
		router = append(router, Route{Min: level, Max: levelMax, H: textHandler(out.Stderr, level)})
	} else {
		router = append(router,
			Route{Min: level, Max: slog.LevelError, H: textHandler(out.Stdout, level)},
			Route{Min: slog.LevelError, Max: levelMax, H: textHandler(out.Stderr, level)},
		)
	}

	var closeFiles []io.Closer
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		closeFiles = append(closeFiles, f)
		router = append(router, Route{Min: level, Max: levelMax, H: textHandler(f, level)})
	}
	return slog.New(router), closeFiles, nil
}
