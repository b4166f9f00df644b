package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkozlov/flowdeck/internal/server/models"
)

// identityResponse is the public shape of a user.
type identityResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// diagramResponse is the public shape of a diagram. Content is passed through
// verbatim.
type diagramResponse struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	UserID    int64           `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Content   json.RawMessage `json:"content"`
}

func toDiagramResponse(d *models.Diagram) diagramResponse {
	return diagramResponse{
		ID:        d.ID,
		Title:     d.Title,
		UserID:    d.UserID,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
		Content:   d.Content,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeDetail(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := a.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	a.logger.Info(r.Context(), "user registered", "username", user.Username)
	writeJSON(w, http.StatusCreated, identityResponse{ID: user.ID, Username: user.Username})
}

// handleLogin implements the OAuth2 password flow: credentials arrive as
// application/x-www-form-urlencoded fields and a bearer token is returned.
func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid form body")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		writeDetail(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, err := a.users.Login(r.Context(), username, password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := a.users.GetByID(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, identityResponse{ID: user.ID, Username: user.Username})
}

func (a *API) handleListDiagrams(w http.ResponseWriter, r *http.Request) {
	list, err := a.diagrams.List(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]diagramResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDiagramResponse(d))
	}
	writeJSON(w, http.StatusOK, out)
}

type createDiagramRequest struct {
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content"`
}

func (a *API) handleCreateDiagram(w http.ResponseWriter, r *http.Request) {
	var req createDiagramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		writeDetail(w, http.StatusBadRequest, "title is required")
		return
	}

	d, err := a.diagrams.Create(r.Context(), userIDFromContext(r.Context()), req.Title, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDiagramResponse(d))
}

func diagramID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func (a *API) handleGetDiagram(w http.ResponseWriter, r *http.Request) {
	id, ok := diagramID(r)
	if !ok {
		writeDetail(w, http.StatusBadRequest, "invalid diagram id")
		return
	}

	d, err := a.diagrams.Get(r.Context(), userIDFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDiagramResponse(d))
}

type updateDiagramRequest struct {
	Title   *string         `json:"title"`
	Content json.RawMessage `json:"content"`
}

func (a *API) handleUpdateDiagram(w http.ResponseWriter, r *http.Request) {
	id, ok := diagramID(r)
	if !ok {
		writeDetail(w, http.StatusBadRequest, "invalid diagram id")
		return
	}

	var req updateDiagramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := &models.DiagramUpdate{Title: req.Title, Content: req.Content}
	d, err := a.diagrams.Update(r.Context(), userIDFromContext(r.Context()), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDiagramResponse(d))
}

func (a *API) handleDeleteDiagram(w http.ResponseWriter, r *http.Request) {
	id, ok := diagramID(r)
	if !ok {
		writeDetail(w, http.StatusBadRequest, "invalid diagram id")
		return
	}

	if err := a.diagrams.Delete(r.Context(), userIDFromContext(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
