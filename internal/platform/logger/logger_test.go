package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" info ":  zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) got %v want %v", in, got, want)
		}
	}
}

func TestRequestScopedChild(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Writer: &buf})

	ctx := WithRequestID(context.Background(), "req-42")
	C(ctx).Info().Msg("hello")
	Named("ics").Info().Msg("named")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-42"`) {
		t.Fatalf("expected request id in %q", out)
	}
	if !strings.Contains(out, `"component":"ics"`) {
		t.Fatalf("expected component in %q", out)
	}

	if WithRequestID(ctx, "") != ctx {
		t.Fatalf("empty id should leave ctx unchanged")
	}
}
