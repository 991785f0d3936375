package httpapi

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"":      LevelOff,
		"off":   LevelOff,
		"error": LevelError,
		"info":  LevelInfo,
		"debug": LevelDebug,
		"weird": LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestLogLevel_Overrides(t *testing.T) {
	r := httptest.NewRequest("GET", "/x?log=debug", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("query override failed: %v", got)
	}
	r = httptest.NewRequest("GET", "/x?log=1", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("legacy query override failed: %v", got)
	}
	r = httptest.NewRequest("GET", "/x", nil)
	r.Header.Set("X-Log-Level", "error")
	if got := requestLogLevel(r); got != LevelError {
		t.Fatalf("header override failed: %v", got)
	}
	SetDefaultLogLevel("info")
	defer SetDefaultLogLevel("off")
	if got := requestLogLevel(httptest.NewRequest("GET", "/x", nil)); got != LevelInfo {
		t.Fatalf("default level: %v", got)
	}
}

func TestLogPredict_OmitsValues(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer func() { zlog = nil }()

	r := httptest.NewRequest("POST", "/api/v1/predict?log=info", strings.NewReader(`{"values":{"age":"secret-42"}}`))
	logPredict(r, "lung_cancer", 422, time.Now(), errors.New("invalid input"))
	out := buf.String()
	if !strings.Contains(out, `"disease":"lung_cancer"`) || !strings.Contains(out, `"status":422`) {
		t.Fatalf("unexpected log line: %s", out)
	}
	if strings.Contains(out, "secret-42") {
		t.Fatalf("submitted values leaked into log: %s", out)
	}

	buf.Reset()
	logPredict(httptest.NewRequest("POST", "/api/v1/predict?log=off", nil), "x", 200, time.Now(), nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output when logging is off, got %s", buf.String())
	}
}
