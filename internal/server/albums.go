package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/altbeat/jukebox/internal/models"
	"github.com/altbeat/jukebox/internal/services"
)

// AlbumSearch proxies album text search through the TTL cache.
//
// Results are memoized per access context and normalized query so repeated
// searches stay off the upstream API for the cache's TTL.
func (a *App) AlbumSearch(w http.ResponseWriter, r *http.Request) {
	query := NormalizeQuery(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, codeMissingQuery)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			writeError(w, http.StatusBadRequest, codeInvalidBody)
			return
		}
		limit = parsed
	}

	access, err := a.accessContext(r)
	if err != nil {
		a.logger.Error("access context resolution failed", "error", err)
		status, code := upstreamStatus(err)
		writeError(w, status, code)
		return
	}

	key := CacheKey(access.Namespace, "search", query, strconv.Itoa(limit))
	if cached, ok := a.searchCache.Get(key); ok {
		writeJSON(w, http.StatusOK, map[string]any{"albums": cached})
		return
	}

	albums, err := a.provider.SearchAlbums(r.Context(), access.Token, query, limit)
	if err != nil {
		a.logger.Error("album search failed", "query", query, "error", err)
		status, code := upstreamStatus(err)
		writeError(w, status, code)
		return
	}

	a.searchCache.Set(key, albums)
	writeJSON(w, http.StatusOK, map[string]any{"albums": albums})
}

// AlbumBatch retrieves up to [services.MaxBatchAlbums] albums by a
// comma-separated ids parameter.
func (a *App) AlbumBatch(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("ids"))
	if raw == "" {
		writeError(w, http.StatusBadRequest, codeMissingQuery)
		return
	}

	ids := strings.Split(raw, ",")
	if len(ids) > services.MaxBatchAlbums {
		writeError(w, http.StatusBadRequest, codeAlbumInvalid)
		return
	}
	for i, id := range ids {
		ids[i] = strings.TrimSpace(id)
		if !models.ValidAlbumID(ids[i]) {
			writeError(w, http.StatusBadRequest, codeAlbumInvalid)
			return
		}
	}

	access, err := a.accessContext(r)
	if err != nil {
		a.logger.Error("access context resolution failed", "error", err)
		status, code := upstreamStatus(err)
		writeError(w, status, code)
		return
	}

	albums, err := a.provider.SeveralAlbums(r.Context(), access.Token, ids)
	if err != nil {
		a.logger.Error("album batch fetch failed", "error", err)
		status, code := upstreamStatus(err)
		writeError(w, status, code)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"albums": albums})
}

// AlbumGet retrieves one album by id through the longer-lived album cache.
func (a *App) AlbumGet(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("id")
	if !models.ValidAlbumID(albumID) {
		writeError(w, http.StatusBadRequest, codeAlbumInvalid)
		return
	}

	access, err := a.accessContext(r)
	if err != nil {
		a.logger.Error("access context resolution failed", "error", err)
		status, code := upstreamStatus(err)
		writeError(w, status, code)
		return
	}

	key := CacheKey(access.Namespace, "album", albumID)
	if cached, ok := a.albumCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	album, err := a.provider.Album(r.Context(), access.Token, albumID)
	if err != nil {
		var apiErr *services.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			writeError(w, http.StatusNotFound, codeNotFound)
			return
		}
		a.logger.Error("album fetch failed", "album", albumID, "error", err)
		status, code := upstreamStatus(err)
		writeError(w, status, code)
		return
	}

	a.albumCache.Set(key, album)
	writeJSON(w, http.StatusOK, album)
}
