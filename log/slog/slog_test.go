package slog

import (
	"bytes"
	"encoding/json"
	"errors"
	stdslog "log/slog"
	"testing"

	"github.com/unkn0wn-root/clockwork/codebook"
)

func TestLoggerWritesAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{L: stdslog.New(stdslog.NewJSONHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelDebug}))}

	l.Debug("redeemed code", codebook.Fields{"key": "0a1b", "count": 2})

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}
	if rec["msg"] != "redeemed code" || rec["level"] != "DEBUG" {
		t.Fatalf("record: %v", rec)
	}
	if rec["key"] != "0a1b" || rec["count"] != float64(2) {
		t.Fatalf("attrs: %v", rec)
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{L: stdslog.New(stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelWarn}))}

	l.Info("quiet", nil)
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered, got %q", buf.String())
	}
	l.Warn("loud", nil)
	if buf.Len() == 0 {
		t.Fatalf("warn should be written")
	}
}

func TestNewTagsComponentAndFlattensErrors(t *testing.T) {
	var buf bytes.Buffer
	l := New(stdslog.New(stdslog.NewJSONHandler(&buf, nil)))

	l.Error("Revoke failed", codebook.Fields{"delErr": errors.New("provider down")})

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}
	if rec["component"] != "codebook" || rec["delErr"] != "provider down" {
		t.Fatalf("record: %v", rec)
	}
}
