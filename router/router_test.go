package router_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-menu/config"
	"github.com/yeremiapane/restaurant-menu/models"
	"github.com/yeremiapane/restaurant-menu/router"
	"github.com/yeremiapane/restaurant-menu/services"
	"github.com/yeremiapane/restaurant-menu/testutil"
	"gorm.io/gorm"
)

const clientID = "client-123.apps.googleusercontent.com"

var stateRe = regexp.MustCompile(`state=([A-Z0-9]{32})`)

type browser struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client
}

func newApp(t *testing.T) (*browser, *gorm.DB, *testutil.FakeProvider) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	provider := testutil.NewFakeProvider(clientID, "sub-1", "Ada", "ada@example.com")
	auth := services.NewAuthService(services.NewUserService(db), provider, clientID)
	cfg := config.App{
		SessionName:    "restaurant_session",
		SessionSecret:  "0123456789abcdef0123456789abcdef",
		CORSOrigin:     "*",
		LoginRateLimit: 100,
		RequestsPerIP:  1000,
	}

	server := httptest.NewServer(router.SetupRouter(cfg, db, auth))
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &browser{t: t, server: server, client: client}, db, provider
}

func (b *browser) do(method, path, contentType string, body io.Reader) (*http.Response, string) {
	b.t.Helper()
	req, err := http.NewRequest(method, b.server.URL+path, body)
	require.NoError(b.t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	res, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	require.NoError(b.t, err)
	return res, string(raw)
}

func (b *browser) get(path string) (*http.Response, string) {
	return b.do(http.MethodGet, path, "", nil)
}

func (b *browser) connect(state, code string) (*http.Response, string) {
	return b.do(http.MethodPost, "/gconnect?state="+state,
		"application/octet-stream; charset=utf-8", strings.NewReader(code))
}

func (b *browser) submit(path string, form url.Values) (*http.Response, string) {
	return b.do(http.MethodPost, path, "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
}

func (b *browser) login() string {
	b.t.Helper()
	res, body := b.get("/login")
	require.Equal(b.t, http.StatusOK, res.StatusCode)
	m := stateRe.FindStringSubmatch(body)
	require.Len(b.t, m, 2, "login page must carry a state token")
	return m[1]
}

func TestSignInFlow(t *testing.T) {
	b, db, provider := newApp(t)

	res, _ := b.get("/restaurant/new/")
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/login", res.Header.Get("Location"))

	state := b.login()

	res, body := b.connect(state, "one-time-code")
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "Welcome, Ada!")
	assert.Equal(t, "one-time-code", provider.LastCode)

	res, body = b.connect(state, "one-time-code")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Current user is already connected.")
	assert.Equal(t, 1, provider.UserInfoCalls)

	var users int64
	db.Model(&models.User{}).Count(&users)
	assert.Equal(t, int64(1), users)

	res, _ = b.submit("/restaurant/new/", url.Values{"name": {"Bistro"}})
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/restaurant/", res.Header.Get("Location"))

	res, body = b.get("/restaurant/")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "you are now logged in as Ada")
	assert.Contains(t, body, "New Restaurant Bistro Successfully Created")
	assert.Contains(t, body, "Add Restaurant")

	res, body = b.get("/gdisconnect")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "User successfully disconnected.")
	assert.Equal(t, "token-sub-1", provider.LastRevoked)

	res, _ = b.get("/gdisconnect")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = b.get("/restaurant/new/")
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/login", res.Header.Get("Location"))
}

func TestSignIn_StateMismatch(t *testing.T) {
	b, db, provider := newApp(t)

	res, _ := b.connect("NOSESSIONSTATE", "code")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	b.login()
	res, body := b.connect(strings.Repeat("A", 32), "code")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	assert.Equal(t, false, envelope["status"])
	assert.Equal(t, services.ErrInvalidState.Error(), envelope["message"])

	assert.Zero(t, provider.ExchangeCalls)
	var users int64
	db.Model(&models.User{}).Count(&users)
	assert.Zero(t, users)

	res, _ = b.get("/restaurant/new/")
	assert.Equal(t, http.StatusFound, res.StatusCode, "session must stay anonymous")
}

func TestSignIn_AudienceMismatch(t *testing.T) {
	b, _, provider := newApp(t)
	provider.Info.IssuedTo = "someone-else"

	res, _ := b.connect(b.login(), "code")
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Zero(t, provider.UserInfoCalls)
}

func TestJSONEndpoints_NoAuthAndCORS(t *testing.T) {
	b, db, _ := newApp(t)
	owner := testutil.SeedUser(t, db, "Ada", "ada@example.com")
	restaurant := testutil.SeedRestaurant(t, db, owner, "Bistro")
	testutil.SeedMenuItem(t, db, restaurant, "Soup", "$4.00")

	for _, path := range []string{
		"/restaurant/JSON",
		"/restaurant/1/menu/JSON",
		"/restaurant/1/menu/1/JSON",
	} {
		res, body := b.get(path)
		assert.Equal(t, http.StatusOK, res.StatusCode, path)
		assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"), path)
		assert.True(t, json.Valid([]byte(body)), path)
	}
}

func TestJSONEndpoints_Preflight(t *testing.T) {
	b, _, _ := newApp(t)

	for _, path := range []string{
		"/restaurant/JSON",
		"/restaurant/1/menu/JSON",
		"/restaurant/1/menu/1/JSON",
	} {
		req, err := http.NewRequest(http.MethodOptions, b.server.URL+path, nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "https://example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)

		res, err := b.client.Do(req)
		require.NoError(t, err)
		res.Body.Close()

		assert.Equal(t, http.StatusNoContent, res.StatusCode, path)
		assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"), path)
		assert.Contains(t, res.Header.Get("Access-Control-Allow-Methods"), "GET", path)
	}
}

func TestPublicPages(t *testing.T) {
	b, db, _ := newApp(t)
	owner := testutil.SeedUser(t, db, "Ada", "ada@example.com")
	restaurant := testutil.SeedRestaurant(t, db, owner, "Bistro")
	testutil.SeedMenuItem(t, db, restaurant, "Soup", "$4.00")

	for _, path := range []string{"/", "/restaurant/", "/restaurant/1/", "/restaurant/1/menu/"} {
		res, body := b.get(path)
		assert.Equal(t, http.StatusOK, res.StatusCode, path)
		assert.Contains(t, body, "Bistro", path)
		assert.NotEmpty(t, res.Header.Get("Content-Security-Policy"), path)
	}

	res, _ := b.get("/ping")
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
