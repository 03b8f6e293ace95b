package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sysai-relay/backend/global"

	"github.com/rs/zerolog"
)

func TestLoggingCapturesStatus(t *testing.T) {
	var buf bytes.Buffer
	orig := global.Logger
	global.Logger = zerolog.New(&buf)
	t.Cleanup(func() { global.Logger = orig })

	h := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/agent/info/ghost", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	line := buf.String()
	if !strings.Contains(line, `"status":404`) {
		t.Errorf("log line missing status: %s", line)
	}
	if !strings.Contains(line, "/api/agent/info/ghost") {
		t.Errorf("log line missing path: %s", line)
	}
}

func TestLoggingDefaultsTo200(t *testing.T) {
	var buf bytes.Buffer
	orig := global.Logger
	global.Logger = zerolog.New(&buf)
	t.Cleanup(func() { global.Logger = orig })

	h := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok")) // implicit 200
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.Contains(buf.String(), `"status":200`) {
		t.Errorf("log line missing implicit 200: %s", buf.String())
	}
}
