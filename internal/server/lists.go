package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/altbeat/jukebox/internal/models"
	"github.com/altbeat/jukebox/internal/shared"
)

// listResponse is the JSON shape for lists; Items is populated on single-list reads.
type listResponse struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Ranked      bool               `json:"ranked"`
	CreatedAt   string             `json:"created_at"`
	Items       []listItemResponse `json:"items,omitempty"`
}

type listItemResponse struct {
	AlbumID  string `json:"album_id"`
	Position int    `json:"position"`
}

func toListResponse(l *models.List, items []models.ListItem) listResponse {
	resp := listResponse{
		ID:          l.ID(),
		UserID:      l.UserID(),
		Title:       l.Title(),
		Description: l.Description(),
		Ranked:      l.Ranked(),
		CreatedAt:   l.CreatedAt().UTC().Format("2006-01-02T15:04:05Z"),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, listItemResponse{AlbumID: item.AlbumID, Position: item.Position})
	}
	return resp
}

// ownedList loads a list and verifies the requester owns it.
//
// Ownership mismatch is reported as not-found so list ids cannot be probed.
func (a *App) ownedList(w http.ResponseWriter, r *http.Request) *models.List {
	list, err := a.lists.Get(r.PathValue("id"))
	if err != nil || list.UserID() != UserID(r.Context()) {
		writeError(w, http.StatusNotFound, codeNotFound)
		return nil
	}
	return list
}

// ListCreate creates a new album list for the authenticated user.
func (a *App) ListCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Ranked      bool   `json:"ranked"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidBody)
		return
	}

	if strings.TrimSpace(body.Title) == "" || len(body.Title) > models.MaxListTitleLen {
		writeError(w, http.StatusBadRequest, codeTitleInvalid)
		return
	}

	list := models.NewList(0, UserID(r.Context()), body.Title, body.Description, body.Ranked)
	if err := a.lists.Create(list); err != nil {
		a.logger.Error("list create failed", "user", list.UserID(), "error", err)
		writeError(w, http.StatusInternalServerError, codeInternalError)
		return
	}

	writeJSON(w, http.StatusCreated, toListResponse(list, nil))
}

// ListGet returns a list with its items in rank order.
func (a *App) ListGet(w http.ResponseWriter, r *http.Request) {
	list, err := a.lists.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, codeNotFound)
		return
	}

	items, err := a.lists.Items(list.ID())
	if err != nil {
		a.logger.Error("list items read failed", "list", list.ID(), "error", err)
		writeError(w, http.StatusInternalServerError, codeInternalError)
		return
	}

	writeJSON(w, http.StatusOK, toListResponse(list, items))
}

// ListUpdate modifies a list's title, description, or ranked flag.
func (a *App) ListUpdate(w http.ResponseWriter, r *http.Request) {
	list := a.ownedList(w, r)
	if list == nil {
		return
	}

	var body struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Ranked      *bool   `json:"ranked"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidBody)
		return
	}

	if body.Title != nil {
		if strings.TrimSpace(*body.Title) == "" || len(*body.Title) > models.MaxListTitleLen {
			writeError(w, http.StatusBadRequest, codeTitleInvalid)
			return
		}
		list.SetTitle(*body.Title)
	}
	if body.Description != nil {
		list.SetDescription(*body.Description)
	}
	if body.Ranked != nil {
		list.SetRanked(*body.Ranked)
	}

	if err := a.lists.Update(list); err != nil {
		a.logger.Error("list update failed", "list", list.ID(), "error", err)
		writeError(w, http.StatusInternalServerError, codeInternalError)
		return
	}

	writeJSON(w, http.StatusOK, toListResponse(list, nil))
}

// ListAddItem appends an album to the end of an owned list.
func (a *App) ListAddItem(w http.ResponseWriter, r *http.Request) {
	list := a.ownedList(w, r)
	if list == nil {
		return
	}

	var body struct {
		AlbumID string `json:"album_id"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidBody)
		return
	}
	if !models.ValidAlbumID(body.AlbumID) {
		writeError(w, http.StatusBadRequest, codeAlbumInvalid)
		return
	}

	item, err := a.lists.AddItem(list.ID(), body.AlbumID)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, codeAlbumInvalid)
			return
		}
		a.logger.Error("list item add failed", "list", list.ID(), "error", err)
		writeError(w, http.StatusInternalServerError, codeInternalError)
		return
	}

	writeJSON(w, http.StatusCreated, listItemResponse{AlbumID: item.AlbumID, Position: item.Position})
}

// ListReorder replaces an owned list's ordering with the submitted permutation.
func (a *App) ListReorder(w http.ResponseWriter, r *http.Request) {
	list := a.ownedList(w, r)
	if list == nil {
		return
	}

	var body struct {
		Order []string `json:"order"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidBody)
		return
	}

	if err := a.lists.Reorder(list.ID(), body.Order); err != nil {
		switch {
		case errors.Is(err, shared.ErrOrderDuplicate):
			writeError(w, http.StatusBadRequest, codeOrderDuplicate)
		case errors.Is(err, shared.ErrOrderMismatch):
			writeError(w, http.StatusBadRequest, codeOrderMismatch)
		default:
			a.logger.Error("list reorder failed", "list", list.ID(), "error", err)
			writeError(w, http.StatusInternalServerError, codeInternalError)
		}
		return
	}

	items, err := a.lists.Items(list.ID())
	if err != nil {
		a.logger.Error("list items read failed", "list", list.ID(), "error", err)
		writeError(w, http.StatusInternalServerError, codeInternalError)
		return
	}

	writeJSON(w, http.StatusOK, toListResponse(list, items))
}

// UserLists returns all lists belonging to a user.
func (a *App) UserLists(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	if _, err := a.users.Get(userID); err != nil {
		writeError(w, http.StatusNotFound, codeNotFound)
		return
	}

	lists, err := a.lists.List(map[string]any{"user_id": userID})
	if err != nil {
		a.logger.Error("user lists read failed", "user", userID, "error", err)
		writeError(w, http.StatusInternalServerError, codeInternalError)
		return
	}

	responses := make([]listResponse, 0, len(lists))
	for _, list := range lists {
		responses = append(responses, toListResponse(list, nil))
	}

	writeJSON(w, http.StatusOK, map[string]any{"lists": responses})
}
