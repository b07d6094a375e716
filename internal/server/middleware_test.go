package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/altbeat/jukebox/internal/shared"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRecover(t *testing.T) {
	handler := Recover(shared.NewLogger(nil))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	allowed := []string{"http://localhost:5173"}

	t.Run("Allowed Origin Gets Headers", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/albums/search", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()
		CORS(allowed)(okHandler()).ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
			t.Errorf("allow-origin = %q", got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Errorf("allow-credentials = %q", got)
		}
	})

	t.Run("Unknown Origin Gets No Headers", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/albums/search", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		CORS(allowed)(okHandler()).ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("allow-origin = %q, want empty", got)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("non-preflight requests still pass through, status = %d", rec.Code)
		}
	})

	t.Run("Preflight From Allowed Origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/lists", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()
		CORS(allowed)(okHandler()).ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Methods"); got == "" {
			t.Error("missing allow-methods header")
		}
	})

	t.Run("Preflight From Unknown Origin Is Forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/lists", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		CORS(allowed)(okHandler()).ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("Wildcard Allows Everything", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "http://anywhere.example")
		rec := httptest.NewRecorder()
		CORS([]string{"*"})(okHandler()).ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://anywhere.example" {
			t.Errorf("allow-origin = %q", got)
		}
	})

	t.Run("Same Origin Requests Skip CORS", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		rec := httptest.NewRecorder()
		CORS(allowed)(okHandler()).ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("allow-origin = %q, want empty", got)
		}
	})
}
