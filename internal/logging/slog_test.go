package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func newBufferedLogger() (*SlogLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewSlogLogger(slog.New(slog.NewJSONHandler(buf, nil))), buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	out := map[string]any{}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid log line %q: %v", buf.String(), err)
	}
	return out
}

func TestInfo_WritesMessageAndAttrs(t *testing.T) {
	l, buf := newBufferedLogger()

	l.Info(context.Background(), "access granted", "email", "a@x.com")

	line := decodeLine(t, buf)
	if line["msg"] != "access granted" {
		t.Fatalf("msg = %v", line["msg"])
	}
	if line["email"] != "a@x.com" {
		t.Fatalf("email = %v", line["email"])
	}
	if line["level"] != "INFO" {
		t.Fatalf("level = %v", line["level"])
	}
}

func TestWith_PropagatesAttrs(t *testing.T) {
	l, buf := newBufferedLogger()

	child := l.With("component", "httpapi")
	child.Error(context.Background(), "issuance failed")

	line := decodeLine(t, buf)
	if line["component"] != "httpapi" {
		t.Fatalf("component = %v", line["component"])
	}
	if line["level"] != "ERROR" {
		t.Fatalf("level = %v", line["level"])
	}
}
