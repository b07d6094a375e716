package server

import (
	"encoding/json"
	"net/http"
)

// Machine-readable error codes returned in JSON error bodies.
const (
	codeRatingInvalid      = "rating_invalid"
	codeBodyTooLong        = "body_too_long"
	codeAlbumInvalid       = "album_invalid"
	codeTitleInvalid       = "title_invalid"
	codeProfileInvalid     = "profile_invalid"
	codeOrderMismatch      = "order_mismatch"
	codeOrderDuplicate     = "order_duplicate"
	codeMissingQuery       = "missing_query"
	codeInvalidBody        = "invalid_body"
	codeUnauthorized       = "unauthorized"
	codeNotFound           = "not_found"
	codeRateLimited        = "rate_limited"
	codeUpstreamError      = "upstream_error"
	codeInternalError      = "internal_error"
	codeServiceUnavailable = "service_unavailable"
)

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error body with a machine-readable code.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
