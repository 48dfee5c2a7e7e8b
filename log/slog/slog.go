//go:build go1.21

// Package slog adapts a *slog.Logger to codebook.Logger.
//
// The codebook logs at Debug for every issue and redemption and at Warn
// for self-heal and rejected writes. Keys are already fingerprinted, so
// records never carry a redeemable code.
package slog

import (
	"context"
	stdslog "log/slog"

	"github.com/unkn0wn-root/clockwork/codebook"
)

var _ codebook.Logger = Logger{}

type Logger struct{ L *stdslog.Logger }

// New tags every record with component=codebook. A nil l uses
// slog.Default().
func New(l *stdslog.Logger) Logger {
	if l == nil {
		l = stdslog.Default()
	}
	return Logger{L: l.With("component", "codebook")}
}

func (s Logger) Debug(msg string, f codebook.Fields) { s.log(stdslog.LevelDebug, msg, f) }
func (s Logger) Info(msg string, f codebook.Fields)  { s.log(stdslog.LevelInfo, msg, f) }
func (s Logger) Warn(msg string, f codebook.Fields)  { s.log(stdslog.LevelWarn, msg, f) }
func (s Logger) Error(msg string, f codebook.Fields) { s.log(stdslog.LevelError, msg, f) }

func (s Logger) log(level stdslog.Level, msg string, f codebook.Fields) {
	ctx := context.Background()
	// skip building attrs for filtered levels; Redeem logs on every call
	if !s.L.Enabled(ctx, level) {
		return
	}
	s.L.LogAttrs(ctx, level, msg, attrs(f)...)
}

func attrs(f codebook.Fields) []stdslog.Attr {
	if len(f) == 0 {
		return nil
	}
	out := make([]stdslog.Attr, 0, len(f))
	for k, v := range f {
		if err, ok := v.(error); ok {
			out = append(out, stdslog.String(k, err.Error()))
			continue
		}
		out = append(out, stdslog.Any(k, v))
	}
	return out
}
