package server

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/altbeat/jukebox/internal/shared"
)

func TestSessionManager(t *testing.T) {
	manager := NewSessionManager("test-secret")

	t.Run("Issue And Verify Round Trip", func(t *testing.T) {
		token, err := manager.Issue("user-1")
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		userID, err := manager.Verify(token)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if userID != "user-1" {
			t.Errorf("user id = %q, want user-1", userID)
		}
	})

	t.Run("Rejects Garbage Token", func(t *testing.T) {
		if _, err := manager.Verify("not.a.token"); !errors.Is(err, shared.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("Rejects Token From A Different Secret", func(t *testing.T) {
		other := NewSessionManager("different-secret")
		token, err := other.Issue("user-1")
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		if _, err := manager.Verify(token); !errors.Is(err, shared.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized for foreign signature, got %v", err)
		}
	})

	t.Run("Cookie Round Trip", func(t *testing.T) {
		token, err := manager.Issue("user-1")
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		rec := httptest.NewRecorder()
		manager.SetCookie(rec, httptest.NewRequest("GET", "/", nil), token)

		req := httptest.NewRequest("GET", "/", nil)
		for _, cookie := range rec.Result().Cookies() {
			req.AddCookie(cookie)
		}
		if got := manager.sessionUserID(req); got != "user-1" {
			t.Errorf("sessionUserID = %q, want user-1", got)
		}
	})

	t.Run("No Cookie Means Anonymous", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		if got := manager.sessionUserID(req); got != "" {
			t.Errorf("sessionUserID = %q, want empty", got)
		}
	})

	t.Run("ClearCookie Expires The Session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		manager.ClearCookie(rec)

		cookies := rec.Result().Cookies()
		if len(cookies) != 1 || cookies[0].MaxAge != -1 {
			t.Errorf("expected one expiring cookie, got %+v", cookies)
		}
	})
}
