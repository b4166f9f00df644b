package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkozlov/flowdeck/internal/logging"
	"github.com/pkozlov/flowdeck/internal/server/config"
	"github.com/pkozlov/flowdeck/internal/server/repositories/repomanager"
	"github.com/pkozlov/flowdeck/internal/server/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		SecretKey:                   "test-secret",
		AccessTokenValidityDuration: time.Minute,
		CORSAllowedOrigins:          []string{"*"},
	}
	m := repomanager.NewInMemoryRepositoryManager()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	api := New(
		services.NewUserService(nil, m, cfg),
		services.NewDiagramService(nil, m),
		cfg,
		logger,
	)

	srv := httptest.NewServer(api.Router())
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, method, url, token string, body io.Reader, contentType string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, data
}

func registerAndLogin(t *testing.T, srv *httptest.Server, username, password string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, _ := doRequest(t, http.MethodPost, srv.URL+"/auth/register", "", bytes.NewReader(body), "application/json")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	resp, data := doRequest(t, http.MethodPost, srv.URL+"/auth/login", "",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(data, &login))
	assert.Equal(t, "bearer", login.TokenType)
	require.NotEmpty(t, login.AccessToken)
	return login.AccessToken
}

func TestRegister_DuplicateUsername(t *testing.T) {
	srv := newTestServer(t)

	body := `{"username":"alice","password":"p"}`
	resp, _ := doRequest(t, http.MethodPost, srv.URL+"/auth/register", "", strings.NewReader(body), "application/json")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, data := doRequest(t, http.MethodPost, srv.URL+"/auth/register", "", strings.NewReader(body), "application/json")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var e struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(data, &e))
	assert.Equal(t, "username already taken", e.Detail)
}

func TestRegister_MissingFields(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doRequest(t, http.MethodPost, srv.URL+"/auth/register", "",
		strings.NewReader(`{"username":"alice"}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := newTestServer(t)
	registerAndLogin(t, srv, "alice", "right")

	form := url.Values{}
	form.Set("username", "alice")
	form.Set("password", "wrong")
	resp, _ := doRequest(t, http.MethodPost, srv.URL+"/auth/login", "",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMe_RequiresToken(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doRequest(t, http.MethodGet, srv.URL+"/users/me", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodGet, srv.URL+"/users/me", "garbage", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMe_ReturnsIdentity(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "alice", "p")

	resp, data := doRequest(t, http.MethodGet, srv.URL+"/users/me", token, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var identity struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(data, &identity))
	assert.Equal(t, "alice", identity.Username)
	assert.NotZero(t, identity.ID)
}

type diagramJSON struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	UserID    int64           `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Content   json.RawMessage `json:"content"`
}

func createDiagram(t *testing.T, srv *httptest.Server, token, title, content string) diagramJSON {
	t.Helper()

	body := `{"title":"` + title + `","content":` + content + `}`
	resp, data := doRequest(t, http.MethodPost, srv.URL+"/diagrams", token, strings.NewReader(body), "application/json")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var d diagramJSON
	require.NoError(t, json.Unmarshal(data, &d))
	return d
}

func TestDiagrams_CrudRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "alice", "p")

	created := createDiagram(t, srv, token, "flow", `{"nodes":[]}`)
	assert.Equal(t, "flow", created.Title)
	assert.JSONEq(t, `{"nodes":[]}`, string(created.Content))
	assert.True(t, created.UpdatedAt.Equal(created.CreatedAt))

	resp, data := doRequest(t, http.MethodGet, srv.URL+"/diagrams", token, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []diagramJSON
	require.NoError(t, json.Unmarshal(data, &list))
	require.Len(t, list, 1)

	patch := `{"title":"renamed"}`
	resp, data = doRequest(t, http.MethodPut, srv.URL+"/diagrams/1", token, strings.NewReader(patch), "application/json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated diagramJSON
	require.NoError(t, json.Unmarshal(data, &updated))
	assert.Equal(t, "renamed", updated.Title)
	assert.JSONEq(t, `{"nodes":[]}`, string(updated.Content))

	resp, _ = doRequest(t, http.MethodDelete, srv.URL+"/diagrams/1", token, nil, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodGet, srv.URL+"/diagrams/1", token, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDiagrams_ListOrderedByUpdate(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "alice", "p")

	first := createDiagram(t, srv, token, "first", `{}`)
	createDiagram(t, srv, token, "second", `{}`)

	// touch the first one so it surfaces
	resp, _ := doRequest(t, http.MethodPut, srv.URL+"/diagrams/1", token,
		strings.NewReader(`{"content":{"v":2}}`), "application/json")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, data := doRequest(t, http.MethodGet, srv.URL+"/diagrams", token, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []diagramJSON
	require.NoError(t, json.Unmarshal(data, &list))
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
}

func TestDiagrams_ForeignRowsAreInvisible(t *testing.T) {
	srv := newTestServer(t)
	alice := registerAndLogin(t, srv, "alice", "p")
	bob := registerAndLogin(t, srv, "bob", "p")

	d := createDiagram(t, srv, alice, "private", `{}`)

	resp, _ := doRequest(t, http.MethodGet, srv.URL+"/diagrams/1", bob, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodPut, srv.URL+"/diagrams/1", bob,
		strings.NewReader(`{"title":"stolen"}`), "application/json")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodDelete, srv.URL+"/diagrams/1", bob, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// still intact for the owner
	resp, data := doRequest(t, http.MethodGet, srv.URL+"/diagrams/1", alice, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got diagramJSON
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, d.Title, got.Title)
}

func TestDiagrams_InvalidID(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "alice", "p")

	resp, _ := doRequest(t, http.MethodGet, srv.URL+"/diagrams/abc", token, nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
