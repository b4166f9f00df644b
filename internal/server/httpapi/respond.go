package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pkozlov/flowdeck/internal/common"
)

// errorBody is the error payload shape shared by all endpoints.
type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorBody{Detail: detail})
}

// writeError maps domain sentinels to HTTP statuses. Anything unrecognized is
// reported as a 500 with a generic detail so internals do not leak.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrUsernameTaken):
		writeDetail(w, http.StatusConflict, "username already taken")
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken):
		writeDetail(w, http.StatusUnauthorized, "invalid credentials")
	default:
		writeDetail(w, http.StatusInternalServerError, "internal server error")
	}
}
