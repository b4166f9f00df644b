package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkozlov/flowdeck/internal/client/models"
	"github.com/pkozlov/flowdeck/internal/common"
	"github.com/pkozlov/flowdeck/internal/logging"
)

// HTTPClient implements Client over plain REST.
//
// The token source and the unauthorized hook are injected at the composition
// boundary: the client itself holds no session state.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger

	// tokenFn returns the current bearer token, "" when absent.
	tokenFn func() string
	// onUnauthorized runs once per 401 response, before the error is
	// returned to the caller. Used for global session invalidation.
	onUnauthorized func()
}

// NewHTTPClient returns a client for the API at baseURL. The timeout applies
// per request; there are no retries.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
		tokenFn: func() string { return "" },
	}
}

// SetTokenSource installs the function the client calls to obtain the
// current bearer token.
func (c *HTTPClient) SetTokenSource(fn func() string) {
	if fn != nil {
		c.tokenFn = fn
	}
}

// SetUnauthorizedHook installs the global 401 handler.
func (c *HTTPClient) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// detailBody is the error payload shape: {"detail": "..."}.
type detailBody struct {
	Detail string `json:"detail"`
}

// loginResponse is the body of a successful POST /auth/login.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokenFn(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
		return nil
	}

	var detail detailBody
	_ = json.NewDecoder(resp.Body).Decode(&detail)

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.logger.Warn(ctx, "unauthorized response, invalidating session", "path", path)
		c.onUnauthorized()
	}

	return &Error{Status: resp.StatusCode, Detail: detail.Detail}
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, body, "application/json", out)
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) (*models.Identity, error) {
	in := map[string]string{"username": username, "password": password}
	var identity models.Identity
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", in, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// Login posts credentials as application/x-www-form-urlencoded, the format
// the backend's OAuth2 password flow expects.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var res loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &res)
	if err != nil {
		return "", err
	}
	return res.AccessToken, nil
}

func (c *HTTPClient) GetMe(ctx context.Context) (*models.Identity, error) {
	var identity models.Identity
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, "", &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (c *HTTPClient) ListDiagrams(ctx context.Context) ([]models.Diagram, error) {
	var diagrams []models.Diagram
	if err := c.do(ctx, http.MethodGet, "/diagrams", nil, "", &diagrams); err != nil {
		return nil, err
	}
	return diagrams, nil
}

func (c *HTTPClient) CreateDiagram(ctx context.Context, data models.CreateDiagram) (*models.Diagram, error) {
	var d models.Diagram
	if err := c.doJSON(ctx, http.MethodPost, "/diagrams", data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *HTTPClient) GetDiagram(ctx context.Context, id int64) (*models.Diagram, error) {
	var d models.Diagram
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/diagrams/%d", id), nil, "", &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *HTTPClient) UpdateDiagram(ctx context.Context, id int64, patch models.DiagramPatch) (*models.Diagram, error) {
	var d models.Diagram
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/diagrams/%d", id), patch, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *HTTPClient) DeleteDiagram(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/diagrams/%d", id), nil, "", nil)
}
