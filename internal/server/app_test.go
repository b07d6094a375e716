package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/altbeat/jukebox/internal/models"
	"github.com/altbeat/jukebox/internal/services"
	"github.com/altbeat/jukebox/internal/shared"
	jbtest "github.com/altbeat/jukebox/internal/testing"
)

// testAlbumID is a well-formed Spotify album id.
const testAlbumID = "4LH4d3cOWNNsVw41Gqt2kv"

func testConfig() *shared.Config {
	config := shared.DefaultConfig()
	config.Session.Secret = "test-secret"
	config.Server.AllowedOrigins = []string{"http://localhost:5173"}
	return config
}

func newTestApp(t *testing.T, provider services.Provider) *App {
	t.Helper()
	if provider == nil {
		provider = &jbtest.MockProvider{}
	}
	db := jbtest.MustOpenDB(t)
	return NewApp(testConfig(), shared.NewLogger(nil), db, provider)
}

func createTestUser(t *testing.T, a *App, spotifyID string) *models.User {
	t.Helper()
	user := models.NewUser(0, spotifyID, "Test "+spotifyID, spotifyID+"@example.com")
	user.SetRefreshToken("refresh-" + spotifyID)
	if err := a.users.Create(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func sessionCookie(t *testing.T, a *App, userID string) *http.Cookie {
	t.Helper()
	token, err := a.sessions.Issue(userID)
	if err != nil {
		t.Fatalf("failed to issue session: %v", err)
	}
	return &http.Cookie{Name: SessionCookie, Value: token}
}

func doRequest(t *testing.T, a *App, method, target string, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.RemoteAddr = "127.0.0.1:9999"
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body %q: %v", rec.Body.String(), err)
	}
	return body
}

func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	if body := decodeBody(t, rec); body["error"] != code {
		t.Errorf("error code = %v, want %s", body["error"], code)
	}
}

func TestPreflight(t *testing.T) {
	preflight := func(t *testing.T, a *App, origin string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodOptions, "/api/lists", nil)
		req.RemoteAddr = "127.0.0.1:9999"
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		a.Router().ServeHTTP(rec, req)
		return rec
	}

	t.Run("Allowed Origin Gets CORS Headers", func(t *testing.T) {
		a := newTestApp(t, nil)
		rec := preflight(t, a, "http://localhost:5173")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
			t.Errorf("Access-Control-Allow-Origin = %q, want the request origin", got)
		}
		if methods := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(methods, http.MethodPost) {
			t.Errorf("Access-Control-Allow-Methods = %q, want POST included", methods)
		}
	})

	t.Run("Unknown Origin Is Forbidden", func(t *testing.T) {
		a := newTestApp(t, nil)
		rec := preflight(t, a, "http://evil.example")

		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
		if rec.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Error("unknown origin should not receive CORS headers")
		}
	})

	t.Run("Simple Request Carries Allow Origin", func(t *testing.T) {
		a := newTestApp(t, nil)
		req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
		req.RemoteAddr = "127.0.0.1:9999"
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()
		a.Router().ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
			t.Errorf("Access-Control-Allow-Origin = %q, want the request origin", got)
		}
	})
}

func TestAuthEndpoints(t *testing.T) {
	t.Run("Session Without Cookie Is Unauthorized", func(t *testing.T) {
		a := newTestApp(t, nil)
		rec := doRequest(t, a, http.MethodGet, "/api/auth/session", "", nil)
		assertErrorCode(t, rec, http.StatusUnauthorized, codeUnauthorized)
	})

	t.Run("Session With Cookie Returns User", func(t *testing.T) {
		a := newTestApp(t, nil)
		user := createTestUser(t, a, "spot1")

		rec := doRequest(t, a, http.MethodGet, "/api/auth/session", "", sessionCookie(t, a, user.ID()))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		body := decodeBody(t, rec)
		userBody, ok := body["user"].(map[string]any)
		if !ok {
			t.Fatalf("expected user object, got %v", body)
		}
		if userBody["id"] != user.ID() {
			t.Errorf("user id = %v, want %s", userBody["id"], user.ID())
		}
		if userBody["spotify_id"] != "spot1" {
			t.Errorf("spotify id = %v, want spot1", userBody["spotify_id"])
		}
	})

	t.Run("Login Redirects To Provider", func(t *testing.T) {
		a := newTestApp(t, nil)
		rec := doRequest(t, a, http.MethodGet, "/api/auth/login", "", nil)
		if rec.Code != http.StatusFound {
			t.Fatalf("status = %d, want 302", rec.Code)
		}
		if loc := rec.Header().Get("Location"); !strings.Contains(loc, "state=") {
			t.Errorf("redirect location missing state: %s", loc)
		}
	})

	t.Run("Callback Rejects State Mismatch", func(t *testing.T) {
		a := newTestApp(t, nil)
		req := httptest.NewRequest(http.MethodGet, "/api/auth/callback?code=abc&state=forged", nil)
		req.RemoteAddr = "127.0.0.1:9999"
		req.AddCookie(&http.Cookie{Name: stateCookie, Value: "issued"})
		rec := httptest.NewRecorder()
		a.Router().ServeHTTP(rec, req)
		assertErrorCode(t, rec, http.StatusBadRequest, codeInvalidBody)
	})
}

func TestAlbumEndpoints(t *testing.T) {
	t.Run("Search Requires Query", func(t *testing.T) {
		a := newTestApp(t, nil)
		rec := doRequest(t, a, http.MethodGet, "/api/albums/search", "", nil)
		assertErrorCode(t, rec, http.StatusBadRequest, codeMissingQuery)
	})

	t.Run("Search Returns And Caches Results", func(t *testing.T) {
		calls := 0
		provider := &jbtest.MockProvider{
			SearchAlbumsFn: func(ctx context.Context, token, query string, limit int) ([]services.SpotifyAlbum, error) {
				calls++
				return []services.SpotifyAlbum{{ID: testAlbumID, Name: "OK Computer"}}, nil
			},
		}
		a := newTestApp(t, provider)

		for i := 0; i < 2; i++ {
			rec := doRequest(t, a, http.MethodGet, "/api/albums/search?q=OK+Computer", "", nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			body := decodeBody(t, rec)
			albums, ok := body["albums"].([]any)
			if !ok || len(albums) != 1 {
				t.Fatalf("expected one album, got %v", body)
			}
		}

		if calls != 1 {
			t.Errorf("upstream called %d times, want 1 (second hit should be cached)", calls)
		}
	})

	t.Run("Search Rejects Bad Limit", func(t *testing.T) {
		a := newTestApp(t, nil)
		rec := doRequest(t, a, http.MethodGet, "/api/albums/search?q=test&limit=51", "", nil)
		assertErrorCode(t, rec, http.StatusBadRequest, codeInvalidBody)
	})

	t.Run("Get Rejects Malformed ID", func(t *testing.T) {
		a := newTestApp(t, nil)
		rec := doRequest(t, a, http.MethodGet, "/api/albums/not-valid!", "", nil)
		assertErrorCode(t, rec, http.StatusBadRequest, codeAlbumInvalid)
	})

	t.Run("Get Maps Upstream 404", func(t *testing.T) {
		provider := &jbtest.MockProvider{
			AlbumFn: func(ctx context.Context, token, albumID string) (*services.SpotifyAlbum, error) {
				return nil, &services.APIError{Status: http.StatusNotFound, Endpoint: "/albums/" + albumID}
			},
		}
		a := newTestApp(t, provider)
		rec := doRequest(t, a, http.MethodGet, "/api/albums/"+testAlbumID, "", nil)
		assertErrorCode(t, rec, http.StatusNotFound, codeNotFound)
	})

	t.Run("Upstream Outage Maps To 503", func(t *testing.T) {
		provider := &jbtest.MockProvider{
			SearchAlbumsFn: func(ctx context.Context, token, query string, limit int) ([]services.SpotifyAlbum, error) {
				return nil, &services.APIError{Status: http.StatusBadGateway, Endpoint: "/search"}
			},
		}
		a := newTestApp(t, provider)
		rec := doRequest(t, a, http.MethodGet, "/api/albums/search?q=down", "", nil)
		assertErrorCode(t, rec, http.StatusServiceUnavailable, codeServiceUnavailable)
	})

	t.Run("Batch Enforces ID Budget", func(t *testing.T) {
		a := newTestApp(t, nil)
		ids := make([]string, services.MaxBatchAlbums+1)
		for i := range ids {
			ids[i] = testAlbumID
		}
		rec := doRequest(t, a, http.MethodGet, "/api/albums?ids="+strings.Join(ids, ","), "", nil)
		assertErrorCode(t, rec, http.StatusBadRequest, codeAlbumInvalid)
	})
}

func TestReviewEndpoints(t *testing.T) {
	t.Run("Create Requires Session", func(t *testing.T) {
		a := newTestApp(t, nil)
		rec := doRequest(t, a, http.MethodPost, "/api/albums/"+testAlbumID+"/reviews", `{"rating":7}`, nil)
		assertErrorCode(t, rec, http.StatusUnauthorized, codeUnauthorized)
	})

	t.Run("Create Rejects Out Of Range Rating", func(t *testing.T) {
		a := newTestApp(t, nil)
		user := createTestUser(t, a, "spot1")
		cookie := sessionCookie(t, a, user.ID())

		for _, rating := range []int{0, 11, -3} {
			rec := doRequest(t, a, http.MethodPost, "/api/albums/"+testAlbumID+"/reviews",
				fmt.Sprintf(`{"rating":%d}`, rating), cookie)
			assertErrorCode(t, rec, http.StatusBadRequest, codeRatingInvalid)
		}
	})

	t.Run("Create Rejects Over Long Body", func(t *testing.T) {
		a := newTestApp(t, nil)
		user := createTestUser(t, a, "spot1")

		long := strings.Repeat("x", models.MaxReviewBodyLen+1)
		rec := doRequest(t, a, http.MethodPost, "/api/albums/"+testAlbumID+"/reviews",
			fmt.Sprintf(`{"rating":7,"body":%q}`, long), sessionCookie(t, a, user.ID()))
		assertErrorCode(t, rec, http.StatusBadRequest, codeBodyTooLong)
	})

	t.Run("Create Echoes Review With Author", func(t *testing.T) {
		a := newTestApp(t, nil)
		user := createTestUser(t, a, "spot1")

		rec := doRequest(t, a, http.MethodPost, "/api/albums/"+testAlbumID+"/reviews",
			`{"rating":9,"body":"A landmark record."}`, sessionCookie(t, a, user.ID()))
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
		}

		body := decodeBody(t, rec)
		if body["rating"] != float64(9) {
			t.Errorf("rating = %v, want 9", body["rating"])
		}
		if body["album_id"] != testAlbumID {
			t.Errorf("album_id = %v, want %s", body["album_id"], testAlbumID)
		}
		userBody, ok := body["user"].(map[string]any)
		if !ok {
			t.Fatalf("expected user object, got %v", body)
		}
		if userBody["display_name"] != user.DisplayName() {
			t.Errorf("display_name = %v, want %s", userBody["display_name"], user.DisplayName())
		}
	})

	t.Run("List Returns Newest First", func(t *testing.T) {
		a := newTestApp(t, nil)
		user := createTestUser(t, a, "spot1")
		cookie := sessionCookie(t, a, user.ID())

		for i := 1; i <= 3; i++ {
			rec := doRequest(t, a, http.MethodPost, "/api/albums/"+testAlbumID+"/reviews",
				fmt.Sprintf(`{"rating":%d}`, i), cookie)
			if rec.Code != http.StatusCreated {
				t.Fatalf("review %d: status = %d", i, rec.Code)
			}
		}

		rec := doRequest(t, a, http.MethodGet, "/api/albums/"+testAlbumID+"/reviews", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		body := decodeBody(t, rec)
		reviews, ok := body["reviews"].([]any)
		if !ok || len(reviews) != 3 {
			t.Fatalf("expected 3 reviews, got %v", body)
		}
	})
}

func TestListEndpoints(t *testing.T) {
	create := func(t *testing.T, a *App, cookie *http.Cookie, payload string) map[string]any {
		t.Helper()
		rec := doRequest(t, a, http.MethodPost, "/api/lists", payload, cookie)
		if rec.Code != http.StatusCreated {
			t.Fatalf("list create status = %d (body %s)", rec.Code, rec.Body.String())
		}
		return decodeBody(t, rec)
	}

	addItem := func(t *testing.T, a *App, cookie *http.Cookie, listID, albumID string) {
		t.Helper()
		rec := doRequest(t, a, http.MethodPost, "/api/lists/"+listID+"/items",
			fmt.Sprintf(`{"album_id":%q}`, albumID), cookie)
		if rec.Code != http.StatusCreated {
			t.Fatalf("add item status = %d (body %s)", rec.Code, rec.Body.String())
		}
	}

	albumIDs := []string{
		"4LH4d3cOWNNsVw41Gqt2kv",
		"6dVIqQ8qmQ5GBnJ9shOYGE",
		"7dxKtc08dYeRVHt3Xlb3kq",
	}

	t.Run("Create Validates Title", func(t *testing.T) {
		a := newTestApp(t, nil)
		user := createTestUser(t, a, "spot1")
		cookie := sessionCookie(t, a, user.ID())

		rec := doRequest(t, a, http.MethodPost, "/api/lists", `{"title":"   "}`, cookie)
		assertErrorCode(t, rec, http.StatusBadRequest, codeTitleInvalid)

		long := strings.Repeat("t", models.MaxListTitleLen+1)
		rec = doRequest(t, a, http.MethodPost, "/api/lists", fmt.Sprintf(`{"title":%q}`, long), cookie)
		assertErrorCode(t, rec, http.StatusBadRequest, codeTitleInvalid)
	})

	t.Run("Items Keep Insertion Order", func(t *testing.T) {
		a := newTestApp(t, nil)
		user := createTestUser(t, a, "spot1")
		cookie := sessionCookie(t, a, user.ID())

		created := create(t, a, cookie, `{"title":"Favorites","ranked":true}`)
		listID := created["id"].(string)

		for _, albumID := range albumIDs {
			addItem(t, a, cookie, listID, albumID)
		}

		rec := doRequest(t, a, http.MethodGet, "/api/lists/"+listID, "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		body := decodeBody(t, rec)
		items, ok := body["items"].([]any)
		if !ok || len(items) != 3 {
			t.Fatalf("expected 3 items, got %v", body)
		}
		for i, raw := range items {
			item := raw.(map[string]any)
			if item["album_id"] != albumIDs[i] {
				t.Errorf("item %d = %v, want %s", i, item["album_id"], albumIDs[i])
			}
		}
	})

	t.Run("Reorder Applies Permutation", func(t *testing.T) {
		a := newTestApp(t, nil)
		user := createTestUser(t, a, "spot1")
		cookie := sessionCookie(t, a, user.ID())

		created := create(t, a, cookie, `{"title":"Favorites","ranked":true}`)
		listID := created["id"].(string)
		for _, albumID := range albumIDs {
			addItem(t, a, cookie, listID, albumID)
		}

		order := fmt.Sprintf(`{"order":[%q,%q,%q]}`, albumIDs[2], albumIDs[0], albumIDs[1])
		rec := doRequest(t, a, http.MethodPost, "/api/lists/"+listID+"/reorder", order, cookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("reorder status = %d (body %s)", rec.Code, rec.Body.String())
		}

		body := decodeBody(t, rec)
		items := body["items"].([]any)
		want := []string{albumIDs[2], albumIDs[0], albumIDs[1]}
		for i, raw := range items {
			item := raw.(map[string]any)
			if item["album_id"] != want[i] {
				t.Errorf("position %d = %v, want %s", i, item["album_id"], want[i])
			}
		}
	})

	t.Run("Reorder Rejects Duplicates", func(t *testing.T) {
		a := newTestApp(t, nil)
		user := createTestUser(t, a, "spot1")
		cookie := sessionCookie(t, a, user.ID())

		created := create(t, a, cookie, `{"title":"Favorites"}`)
		listID := created["id"].(string)
		addItem(t, a, cookie, listID, albumIDs[0])
		addItem(t, a, cookie, listID, albumIDs[1])

		order := fmt.Sprintf(`{"order":[%q,%q]}`, albumIDs[0], albumIDs[0])
		rec := doRequest(t, a, http.MethodPost, "/api/lists/"+listID+"/reorder", order, cookie)
		assertErrorCode(t, rec, http.StatusBadRequest, codeOrderDuplicate)
	})

	t.Run("Reorder Rejects Membership Mismatch", func(t *testing.T) {
		a := newTestApp(t, nil)
		user := createTestUser(t, a, "spot1")
		cookie := sessionCookie(t, a, user.ID())

		created := create(t, a, cookie, `{"title":"Favorites"}`)
		listID := created["id"].(string)
		addItem(t, a, cookie, listID, albumIDs[0])
		addItem(t, a, cookie, listID, albumIDs[1])

		// Right size, wrong membership.
		order := fmt.Sprintf(`{"order":[%q,%q]}`, albumIDs[0], albumIDs[2])
		rec := doRequest(t, a, http.MethodPost, "/api/lists/"+listID+"/reorder", order, cookie)
		assertErrorCode(t, rec, http.StatusBadRequest, codeOrderMismatch)

		// Wrong size.
		order = fmt.Sprintf(`{"order":[%q]}`, albumIDs[0])
		rec = doRequest(t, a, http.MethodPost, "/api/lists/"+listID+"/reorder", order, cookie)
		assertErrorCode(t, rec, http.StatusBadRequest, codeOrderMismatch)
	})

	t.Run("Foreign List Reads As Not Found", func(t *testing.T) {
		a := newTestApp(t, nil)
		owner := createTestUser(t, a, "owner")
		intruder := createTestUser(t, a, "intruder")

		created := create(t, a, sessionCookie(t, a, owner.ID()), `{"title":"Private"}`)
		listID := created["id"].(string)

		rec := doRequest(t, a, http.MethodPut, "/api/lists/"+listID, `{"title":"Hijacked"}`,
			sessionCookie(t, a, intruder.ID()))
		assertErrorCode(t, rec, http.StatusNotFound, codeNotFound)
	})

	t.Run("User Lists", func(t *testing.T) {
		a := newTestApp(t, nil)
		user := createTestUser(t, a, "spot1")
		cookie := sessionCookie(t, a, user.ID())

		create(t, a, cookie, `{"title":"First"}`)
		create(t, a, cookie, `{"title":"Second","ranked":true}`)

		rec := doRequest(t, a, http.MethodGet, "/api/users/"+user.ID()+"/lists", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		body := decodeBody(t, rec)
		lists, ok := body["lists"].([]any)
		if !ok || len(lists) != 2 {
			t.Fatalf("expected 2 lists, got %v", body)
		}
	})
}

func TestProfileEndpoints(t *testing.T) {
	t.Run("Get Requires Session", func(t *testing.T) {
		a := newTestApp(t, nil)
		rec := doRequest(t, a, http.MethodGet, "/api/profile", "", nil)
		assertErrorCode(t, rec, http.StatusUnauthorized, codeUnauthorized)
	})

	t.Run("Update Validates Fields", func(t *testing.T) {
		a := newTestApp(t, nil)
		user := createTestUser(t, a, "spot1")
		cookie := sessionCookie(t, a, user.ID())

		rec := doRequest(t, a, http.MethodPut, "/api/profile", `{"display_name":"  "}`, cookie)
		assertErrorCode(t, rec, http.StatusBadRequest, codeProfileInvalid)

		long := strings.Repeat("b", models.MaxBioLen+1)
		rec = doRequest(t, a, http.MethodPut, "/api/profile", fmt.Sprintf(`{"bio":%q}`, long), cookie)
		assertErrorCode(t, rec, http.StatusBadRequest, codeProfileInvalid)
	})

	t.Run("Update Persists Changes", func(t *testing.T) {
		a := newTestApp(t, nil)
		user := createTestUser(t, a, "spot1")
		cookie := sessionCookie(t, a, user.ID())

		rec := doRequest(t, a, http.MethodPut, "/api/profile", `{"display_name":"New Name","bio":"Hi."}`, cookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
		}

		updated, err := a.users.Get(user.ID())
		if err != nil {
			t.Fatalf("failed to re-read user: %v", err)
		}
		if updated.DisplayName() != "New Name" || updated.Bio() != "Hi." {
			t.Errorf("profile not persisted: %q / %q", updated.DisplayName(), updated.Bio())
		}
	})

	t.Run("Avatar Upload", func(t *testing.T) {
		a := newTestApp(t, nil)
		a.config.Server.UploadDir = t.TempDir()
		user := createTestUser(t, a, "spot1")
		cookie := sessionCookie(t, a, user.ID())

		upload := func(filename string) *httptest.ResponseRecorder {
			var buf bytes.Buffer
			form := multipart.NewWriter(&buf)
			part, err := form.CreateFormFile("avatar", filename)
			if err != nil {
				t.Fatalf("failed to build form: %v", err)
			}
			part.Write([]byte("fake-image-bytes"))
			form.Close()

			req := httptest.NewRequest(http.MethodPost, "/api/profile/avatar", &buf)
			req.RemoteAddr = "127.0.0.1:9999"
			req.Header.Set("Content-Type", form.FormDataContentType())
			req.AddCookie(cookie)
			rec := httptest.NewRecorder()
			a.Router().ServeHTTP(rec, req)
			return rec
		}

		rec := upload("me.png")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
		}
		updated, err := a.users.Get(user.ID())
		if err != nil {
			t.Fatalf("failed to re-read user: %v", err)
		}
		if !strings.HasPrefix(updated.AvatarURL(), "/uploads/") {
			t.Errorf("avatar URL = %q, want /uploads/ prefix", updated.AvatarURL())
		}

		rec = upload("malware.exe")
		assertErrorCode(t, rec, http.StatusBadRequest, codeProfileInvalid)
	})
}
