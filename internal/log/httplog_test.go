package log

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHTTPMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core).Sugar()

	tests := []struct {
		name   string
		status int
		body   string
		level  zapcore.Level
	}{
		{"ok", 0, "hello", zapcore.InfoLevel},
		{"not found", http.StatusNotFound, "", zapcore.InfoLevel},
		{"failure", http.StatusInternalServerError, "boom", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := HTTPMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				w.Write([]byte(tt.body))
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/convert", nil))

			entries := logs.TakeAll()
			if len(entries) != 1 {
				t.Fatalf("len(entries) = %d, expected 1", len(entries))
			}
			e := entries[0]
			if e.Level != tt.level {
				t.Errorf("Level = %v, expected %v", e.Level, tt.level)
			}
			fields := e.ContextMap()
			expected := tt.status
			if expected == 0 {
				expected = http.StatusOK
			}
			if fields["status"] != int64(expected) {
				t.Errorf("status = %v, expected %d", fields["status"], expected)
			}
			if fields["size"] != int64(len(tt.body)) {
				t.Errorf("size = %v, expected %d", fields["size"], len(tt.body))
			}
			if fields["path"] != "/convert" {
				t.Errorf("path = %v, expected /convert", fields["path"])
			}
		})
	}
}

func TestInitWithFile(t *testing.T) {
	path := t.TempDir() + "/univtime.log"
	if err := InitWithOptions(Options{File: path}); err != nil {
		t.Fatalf("InitWithOptions: %v", err)
	}
	if GetZapLogger() == nil {
		t.Fatal("GetZapLogger returned nil")
	}
	Infow("test entry", "k", 1)
	Sync()
}
