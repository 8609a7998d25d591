package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/wardrobe/internal/client/models"
	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/dmitrijs2005/wardrobe/internal/logging"
	"github.com/dmitrijs2005/wardrobe/internal/netx"
	"github.com/google/uuid"
)

const (
	sessionPath = "/auth/session"
	logoutPath  = "/auth/logout"
)

// maxErrorBody caps how much of a failed response is read for its detail.
const maxErrorBody = 64 << 10

// HTTPClient talks JSON to the wardrobe backend. Authentication rides on the
// cookie jar; a 401 from anything but the session check calls the
// unauthorized handler.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	log     logging.Logger

	mu             sync.RWMutex
	onUnauthorized func(ctx context.Context)
}

// NewHTTPClient builds a client for the backend at baseURL. jar may be nil.
func NewHTTPClient(baseURL string, timeout time.Duration, jar http.CookieJar, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api url %q must be absolute", baseURL)
	}

	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout, Jar: jar},
		log:     log,
	}, nil
}

// BaseURL returns the backend root the client was built for.
func (c *HTTPClient) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// SetUnauthorizedHandler registers fn to run after any 401 except from the
// session check.
func (c *HTTPClient) SetUnauthorizedHandler(fn func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *HTTPClient) unauthorized(ctx context.Context) {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()

	if fn != nil {
		fn(ctx)
	}
}

func (c *HTTPClient) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	reqID := uuid.NewString()
	ctx := logging.WithRequestID(req.Context(), reqID)
	req.Header.Set(common.RequestIDHeaderName, reqID)
	req.Header.Set("Accept", "application/json")

	log := c.log.With("method", req.Method, "path", req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		mapped := mapTransportError(err)
		log.Warn(ctx, "backend unreachable", "error", mapped)
		return mapped
	}
	defer resp.Body.Close()

	log.Debug(ctx, "backend responded", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := newAPIError(resp.StatusCode, raw)
		log.Info(ctx, "backend request failed", "status", resp.StatusCode, "detail", apiErr.Message)

		if resp.StatusCode == http.StatusUnauthorized && c.expiresSession(req.URL.Path) {
			c.unauthorized(ctx)
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", common.ErrRequestFailed, req.URL.Path, err)
	}
	return nil
}

// expiresSession reports whether a 401 on path means the session expired.
// The session check and logout handle their own 401s.
func (c *HTTPClient) expiresSession(path string) bool {
	switch path {
	case c.baseURL.Path + sessionPath, c.baseURL.Path + logoutPath:
		return false
	}
	return true
}

func (c *HTTPClient) Session(ctx context.Context) (models.Identity, error) {
	var id models.Identity
	if err := c.doJSON(ctx, http.MethodGet, sessionPath, nil, nil, &id); err != nil {
		return models.Identity{}, err
	}
	if id.IsZero() {
		return models.Identity{}, &APIError{Kind: common.ErrUnauthorized, Status: http.StatusOK, Message: "Unauthorized"}
	}
	return id, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (models.Identity, string, error) {
	var resp loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, credentialsRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return models.Identity{}, "", err
	}
	return models.Identity{UserID: resp.UserID, Username: resp.Username, Email: resp.Email}, resp.Message, nil
}

func (c *HTTPClient) Signup(ctx context.Context, username, email, password string) (string, string, error) {
	var resp loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/signup", nil,
		credentialsRequest{Username: username, Email: email, Password: password}, &resp)
	if err != nil {
		return "", "", err
	}
	return resp.UserID, resp.Message, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, logoutPath, nil, nil, nil)
}

func (c *HTTPClient) ListOutfits(ctx context.Context) ([]models.Outfit, error) {
	var resp outfitsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/outfit/get-outfits", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Outfits, nil
}

func (c *HTTPClient) UploadOutfit(ctx context.Context, file models.UploadFile) (UploadResult, error) {
	body, contentType, err := netx.MultipartFile("file", file.Name, file.ContentType, file.Data)
	if err != nil {
		return UploadResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/outfit/upload-outfit", nil), body)
	if err != nil {
		return UploadResult{}, err
	}
	req.Header.Set("Content-Type", contentType)

	var res UploadResult
	if err := c.do(req, &res); err != nil {
		return UploadResult{}, err
	}
	return res, nil
}

func (c *HTTPClient) DeleteOutfit(ctx context.Context, outfitID string) (string, error) {
	var resp messageResponse
	q := url.Values{"outfit_id": {outfitID}}
	if err := c.doJSON(ctx, http.MethodDelete, "/outfit/delete-outfit", q, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *HTTPClient) UpdateOutfit(ctx context.Context, outfitID string, tags models.Tags) (string, error) {
	if tags == nil {
		tags = models.Tags{}
	}
	var resp messageResponse
	err := c.doJSON(ctx, http.MethodPut, "/outfit/update-outfit", nil, updateOutfitRequest{OutfitID: outfitID, Tags: tags}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *HTTPClient) SuggestOutfits(ctx context.Context, in SuggestRequest) (models.SuggestionResult, error) {
	var resp suggestResponse
	if err := c.doJSON(ctx, http.MethodPost, "/outfit/suggest-outfit", nil, in, &resp); err != nil {
		return models.SuggestionResult{}, err
	}
	return models.SuggestionResult{Outfits: resp.Outfits, CompositeImageURL: resp.CompositeImageURL}, nil
}

func (c *HTTPClient) CreateWeeklyPlan(ctx context.Context, temperature *float64) (string, error) {
	var resp messageResponse
	if err := c.doJSON(ctx, http.MethodPut, "/weekly/create-plan", nil, createPlanRequest{Temperature: temperature}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *HTTPClient) GetWeeklyPlans(ctx context.Context) ([]models.BackendWeeklyPlan, error) {
	var resp weeklyPlansResponse
	if err := c.doJSON(ctx, http.MethodGet, "/weekly/plan", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.WeeklyPlans, nil
}

func (c *HTTPClient) OutfitChat(ctx context.Context, in ChatRequest) (ChatReply, error) {
	var resp ChatReply
	if err := c.doJSON(ctx, http.MethodPost, "/chat/outfit-chat", nil, in, &resp); err != nil {
		return ChatReply{}, err
	}
	return resp, nil
}

var _ Client = (*HTTPClient)(nil)
