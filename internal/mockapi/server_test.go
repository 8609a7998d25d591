package mockapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/wardrobe/internal/logging"
	"github.com/dmitrijs2005/wardrobe/internal/netx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	srv    *Server
	ts     *httptest.Server
	client *http.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	srv := New(Config{BcryptCost: 4, PlanDays: 3}, logging.Nop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testEnv{srv: srv, ts: ts, client: &http.Client{Jar: jar}}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var rdr *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	} else {
		rdr = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.ts.URL+path, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	status, _ := e.do(t, http.MethodPost, "/auth/signup", map[string]string{"username": "ann", "email": "ann@example.com", "password": "pw"})
	require.Equal(t, http.StatusCreated, status)
	status, _ = e.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "ann@example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, status)
}

func (e *testEnv) upload(t *testing.T, name, contentType string) (int, map[string]any) {
	t.Helper()

	body, formType, err := netx.MultipartFile("file", name, contentType, []byte("data"))
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, e.ts.URL+"/outfit/upload-outfit", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", formType)

	resp, err := e.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestSession_RequiresCookie(t *testing.T) {
	e := newTestEnv(t)

	status, body := e.do(t, http.MethodGet, "/auth/session", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Not authenticated", body["detail"])

	e.login(t)
	status, body = e.do(t, http.MethodGet, "/auth/session", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ann", body["username"])
	assert.NotEmpty(t, body["user_id"])
}

func TestLogin_WrongPassword(t *testing.T) {
	e := newTestEnv(t)
	e.login(t)

	status, body := e.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "ann@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", body["detail"])
}

func TestSignup_DuplicateEmail(t *testing.T) {
	e := newTestEnv(t)
	e.login(t)

	status, body := e.do(t, http.MethodPost, "/auth/signup", map[string]string{"username": "bob", "email": "ANN@example.com", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already registered", body["detail"])
}

func TestLogout_ClearsCookie(t *testing.T) {
	e := newTestEnv(t)
	e.login(t)

	status, _ := e.do(t, http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = e.do(t, http.MethodGet, "/auth/session", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestOutfitLifecycle(t *testing.T) {
	e := newTestEnv(t)
	e.login(t)

	status, body := e.upload(t, "white_shirt.png", "image/png")
	require.Equal(t, http.StatusCreated, status)
	id, _ := body["outfit_id"].(string)
	require.NotEmpty(t, id)

	_, body = e.do(t, http.MethodGet, "/outfit/get-outfits", nil)
	outfits := body["outfits"].([]any)
	require.Len(t, outfits, 1)
	tags := outfits[0].(map[string]any)["tags"].(map[string]any)
	assert.Equal(t, "Shirt", tags["category"])
	assert.Equal(t, "White", tags["color"])

	status, _ = e.do(t, http.MethodPut, "/outfit/update-outfit", map[string]any{"outfit_id": id, "tags": map[string]any{"category": "Blouse"}})
	require.Equal(t, http.StatusOK, status)
	_, body = e.do(t, http.MethodGet, "/outfit/get-outfits", nil)
	tags = body["outfits"].([]any)[0].(map[string]any)["tags"].(map[string]any)
	assert.Equal(t, map[string]any{"category": "Blouse"}, tags)

	status, _ = e.do(t, http.MethodDelete, "/outfit/delete-outfit?outfit_id="+id, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = e.do(t, http.MethodDelete, "/outfit/delete-outfit?outfit_id="+id, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Outfit not found", body["detail"])
}

func TestUpload_RejectsNonImage(t *testing.T) {
	e := newTestEnv(t)
	e.login(t)

	status, body := e.upload(t, "notes.txt", "text/plain")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "File must be an image", body["detail"])
}

func TestDelete_MissingIDIsValidationError(t *testing.T) {
	e := newTestEnv(t)
	e.login(t)

	status, body := e.do(t, http.MethodDelete, "/outfit/delete-outfit", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	detail := body["detail"].([]any)
	require.Len(t, detail, 1)
	assert.Equal(t, "Field required", detail[0].(map[string]any)["msg"])
}

func TestSuggestAndWeeklyPlan(t *testing.T) {
	e := newTestEnv(t)
	e.login(t)

	status, body := e.do(t, http.MethodPost, "/outfit/suggest-outfit", map[string]any{"temperature": 22})
	assert.Equal(t, http.StatusBadRequest, status, "empty wardrobe")
	assert.Contains(t, body["detail"], "No outfits found")

	for _, name := range []string{"white_shirt.png", "blue_jeans.png", "sneakers.png"} {
		status, _ := e.upload(t, name, "image/png")
		require.Equal(t, http.StatusCreated, status)
	}

	status, body = e.do(t, http.MethodPost, "/outfit/suggest-outfit", map[string]any{"temperature": 22, "query": "casual"})
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["outfits"], 3)
	assert.NotEmpty(t, body["composite_image_url"])

	status, _ = e.do(t, http.MethodPut, "/weekly/create-plan", map[string]any{"temperature": 22})
	require.Equal(t, http.StatusOK, status)

	_, body = e.do(t, http.MethodGet, "/weekly/plan", nil)
	plans := body["weekly_plans"].([]any)
	require.Len(t, plans, 1)
	daily := plans[0].(map[string]any)["daily_plans"].(map[string]any)
	assert.Len(t, daily, 3)
	assert.Contains(t, daily, "day1")
	assert.Contains(t, daily, "day3")
}

func TestChat(t *testing.T) {
	e := newTestEnv(t)
	e.login(t)

	status, _ := e.do(t, http.MethodPost, "/chat/outfit-chat", map[string]any{"message": "  "})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, body := e.do(t, http.MethodPost, "/chat/outfit-chat", map[string]any{"message": "hello"})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["response"])
}

func TestFaultInjection(t *testing.T) {
	e := newTestEnv(t)
	e.login(t)

	e.srv.Fail(http.MethodGet, "/outfit/get-outfits", http.StatusInternalServerError, "boom")
	status, body := e.do(t, http.MethodGet, "/outfit/get-outfits", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "boom", body["detail"])
	assert.Equal(t, 1, e.srv.Calls(http.MethodGet, "/outfit/get-outfits"))

	e.srv.Reset()
	status, _ = e.do(t, http.MethodGet, "/outfit/get-outfits", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, e.srv.Calls(http.MethodGet, "/outfit/get-outfits"))
}

func TestCORS_AllowsFrontendWithCredentials(t *testing.T) {
	e := newTestEnv(t)

	req, err := http.NewRequest(http.MethodOptions, e.ts.URL+"/outfit/get-outfits", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	resp, err := e.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
	assert.Zero(t, e.srv.Calls(http.MethodOptions, "/outfit/get-outfits"), "preflight is answered before the handlers")

	req.Header.Set("Origin", "http://evil.example")
	resp2, err := e.client.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Empty(t, resp2.Header.Get("Access-Control-Allow-Origin"))
}
