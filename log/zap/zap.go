// Package zap adapts a *zap.Logger to codebook.Logger.
package zap

import (
	"sort"

	"github.com/unkn0wn-root/clockwork/codebook"
	"go.uber.org/zap"
)

var _ codebook.Logger = Logger{}

type Logger struct{ L *zap.Logger }

func New(l *zap.Logger) Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return Logger{L: l.Named("codebook")}
}

func (z Logger) Debug(msg string, f codebook.Fields) { z.L.Debug(msg, zf(f)...) }
func (z Logger) Info(msg string, f codebook.Fields)  { z.L.Info(msg, zf(f)...) }
func (z Logger) Warn(msg string, f codebook.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z Logger) Error(msg string, f codebook.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f codebook.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	// stable field order in encoded output
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(f))
	for _, k := range keys {
		switch v := f[k].(type) {
		case error:
			out = append(out, zap.NamedError(k, v))
		default:
			out = append(out, zap.Any(k, v))
		}
	}
	return out
}
