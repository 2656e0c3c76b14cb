package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/EpicYoshiMaster/splat-title-quiz/internal/quiz"
	"github.com/EpicYoshiMaster/splat-title-quiz/internal/store"
	"github.com/EpicYoshiMaster/splat-title-quiz/internal/types"
)

// newTestApp builds an App over a small fixed title set with a temporary file store
func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return &App{
		Adjectives:      []string{"Ink Zealot", "Ink Lover", "Ink Master"},
		Subjects:        []string{"Squid", "Octopus"},
		GameSessions:    make(map[string]*GameState),
		Cache:           store.NewFileCache(t.TempDir(), time.Hour),
		LimiterMap:      make(map[string]*rate.Limiter),
		SessionTimeout:  time.Hour,
		CookieMaxAge:    time.Hour,
		StaticCacheAge:  time.Minute,
		RateLimitRPS:    1000,
		RateLimitBurst:  1000,
		CleanupSchedule: DefaultCleanupSchedule,
		StartTime:       time.Now(),
	}
}

type apiResponse struct {
	State     types.StateResponse  `json:"state"`
	Match     quiz.MatchResult     `json:"match"`
	Action    quiz.ActionResult    `json:"action"`
	Actions   []quiz.ActionResult  `json:"actions"`
	Selection quiz.SelectionCursor `json:"selection"`
	GaveUp    int                  `json:"gaveUp"`
	Message   string               `json:"message"`
	Error     string               `json:"error"`
}

// client replays the session cookie across requests like a browser would
type client struct {
	t       *testing.T
	router  *gin.Engine
	cookie  *http.Cookie
	headers map[string]string
}

func newClient(t *testing.T, router *gin.Engine) *client {
	return &client{t: t, router: router, headers: map[string]string{"Accept": "application/json"}}
}

func (c *client) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == SessionCookieName {
			c.cookie = ck
		}
	}
	return w
}

func (c *client) post(path string, form url.Values) apiResponse {
	c.t.Helper()
	w := c.do(http.MethodPost, path, form)
	if w.Code != http.StatusOK {
		c.t.Fatalf("POST %s returned status %d, want 200: %s", path, w.Code, w.Body.String())
	}
	return decode(c.t, w)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return resp
}

// TestLoadTitles checks blank and duplicate entries are dropped
func TestLoadTitles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.json")
	data := `{"Adjective": ["Fresh", " ", "Fresh", "Bold"], "Subject": ["Squid", ""]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := loadTitles(path)
	if err != nil {
		t.Fatalf("loadTitles failed: %v", err)
	}
	if len(got.Adjective) != 2 || got.Adjective[0] != "Fresh" || got.Adjective[1] != "Bold" {
		t.Errorf("adjectives = %v, want [Fresh Bold]", got.Adjective)
	}
	if len(got.Subject) != 1 {
		t.Errorf("subjects = %v, want [Squid]", got.Subject)
	}
}

// TestLoadTitlesErrors checks missing files and empty lists are rejected
func TestLoadTitlesErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := loadTitles(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte(`{"Adjective": ["Fresh"], "Subject": []}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadTitles(empty); err == nil {
		t.Error("expected error for empty subject list")
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{"Adjective": [`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadTitles(broken); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

// TestNewAppFromEnv checks configuration is read from the environment
func TestNewAppFromEnv(t *testing.T) {
	dir := t.TempDir()
	titles := filepath.Join(dir, "titles.json")
	if err := os.WriteFile(titles, []byte(`{"Adjective": ["Fresh"], "Subject": ["Squid"]}`), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TITLES_PATH", titles)
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("STORE_PATH", filepath.Join(dir, "quiz.db"))
	t.Setenv("SESSION_TIMEOUT", "15m")
	t.Setenv("RATE_LIMIT_RPS", "3")
	t.Setenv("ENV", "production")

	app, err := newApp()
	if err != nil {
		t.Fatalf("newApp failed: %v", err)
	}
	defer app.Cache.Close()

	if _, ok := app.Cache.(*store.SQLiteCache); !ok {
		t.Errorf("cache = %T, want *store.SQLiteCache", app.Cache)
	}
	if app.SessionTimeout != 15*time.Minute {
		t.Errorf("SessionTimeout = %v, want 15m", app.SessionTimeout)
	}
	if app.RateLimitRPS != 3 {
		t.Errorf("RateLimitRPS = %d, want 3", app.RateLimitRPS)
	}
	if !app.IsProduction {
		t.Error("expected production mode")
	}
	if len(app.Adjectives) != 1 || len(app.Subjects) != 1 {
		t.Errorf("unexpected lists: %v %v", app.Adjectives, app.Subjects)
	}
}

// TestNewAppUnknownBackend checks an unknown store backend fails startup
func TestNewAppUnknownBackend(t *testing.T) {
	t.Setenv("TITLES_PATH", "data/titles.json")
	t.Setenv("STORE_BACKEND", "redis")
	if _, err := newApp(); err == nil {
		t.Error("expected error for unknown backend")
	}
}

// TestCacheHeaders checks static assets are cacheable only in production
func TestCacheHeaders(t *testing.T) {
	for _, production := range []bool{false, true} {
		app := newTestApp(t)
		app.IsProduction = production
		router := gin.New()
		router.Use(app.applyCacheHeaders)
		router.GET("/static/app.js", func(c *gin.Context) { c.String(http.StatusOK, "") })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
		cc := w.Header().Get("Cache-Control")
		if production && !strings.Contains(cc, "public") {
			t.Errorf("production Cache-Control = %q, want public", cc)
		}
		if !production && !strings.Contains(cc, "no-store") {
			t.Errorf("development Cache-Control = %q, want no-store", cc)
		}
	}
}
