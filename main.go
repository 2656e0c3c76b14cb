package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	ginGzip "github.com/gin-contrib/gzip"

	"github.com/EpicYoshiMaster/splat-title-quiz/internal/store"
)

func main() {
	_ = godotenv.Load()

	app, err := newApp()
	if err != nil {
		logFatal("Failed to initialize: %v", err)
	}
	logInfo("Starting Splatoon Title Quiz in %s mode", envName(app.IsProduction))

	router := app.setupRouter()
	if err := app.run(router); err != nil {
		logFatal("Server failed: %v", err)
	}
}

// newApp reads configuration from the environment, loads the word lists and
// opens the snapshot cache.
func newApp() (*App, error) {
	app := &App{
		GameSessions:    make(map[string]*GameState),
		LimiterMap:      make(map[string]*rate.Limiter),
		IsProduction:    os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production",
		SessionTimeout:  getEnvDuration("SESSION_TIMEOUT", 2*time.Hour),
		CookieMaxAge:    getEnvDuration("COOKIE_MAX_AGE", 2*time.Hour),
		StaticCacheAge:  getEnvDuration("STATIC_CACHE_AGE", 5*time.Minute),
		RateLimitRPS:    getEnvInt("RATE_LIMIT_RPS", 20),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 40),
		CleanupSchedule: getEnvString("CLEANUP_SCHEDULE", DefaultCleanupSchedule),
		StartTime:       time.Now(),
	}

	data, err := loadTitles(getEnvString("TITLES_PATH", DefaultTitlesPath))
	if err != nil {
		return nil, fmt.Errorf("load titles: %w", err)
	}
	app.Adjectives = data.Adjective
	app.Subjects = data.Subject
	logInfo("Loaded %d adjectives and %d subjects", len(app.Adjectives), len(app.Subjects))

	backend := getEnvString("STORE_BACKEND", store.BackendFile)
	defaultPath := DefaultStorePath
	if strings.EqualFold(backend, store.BackendSQLite) {
		defaultPath = DefaultSQLitePath
	}
	cache, err := store.Open(backend, getEnvString("STORE_PATH", defaultPath), app.SessionTimeout)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", backend, err)
	}
	app.Cache = cache
	logInfo("Using %s snapshot store", backend)
	return app, nil
}

// loadTitles reads the canonical word lists, dropping blank and duplicate entries.
func loadTitles(path string) (TitleData, error) {
	logInfo("Loading titles from %s", path)
	raw, err := os.ReadFile(path)
	if err != nil {
		return TitleData{}, err
	}
	var data TitleData
	if err := json.Unmarshal(raw, &data); err != nil {
		return TitleData{}, err
	}
	clean := func(words []string) []string {
		kept := lo.Filter(words, func(w string, _ int) bool {
			if strings.TrimSpace(w) == "" {
				logWarn("Skipping blank title entry")
				return false
			}
			return true
		})
		return lo.Uniq(kept)
	}
	data.Adjective = clean(data.Adjective)
	data.Subject = clean(data.Subject)
	if len(data.Adjective) == 0 || len(data.Subject) == 0 {
		return TitleData{}, errors.New("title lists must not be empty")
	}
	return data, nil
}

// setupRouter builds the gin engine with middleware, templates and routes.
func (app *App) setupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif"})))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.Use(requestIDMiddleware())
	router.Use(func(c *gin.Context) {
		app.applyCacheHeaders(c)
	})

	if app.IsProduction && dirExists("dist") {
		logInfo("Serving assets from dist/ directory")
		router.LoadHTMLGlob("dist/templates/*.html")
		router.Static("/static", "./dist/static")
	} else {
		logInfo("Serving development assets from source directories")
		router.LoadHTMLGlob("templates/*.html")
		router.Static("/static", "./static")
	}

	limited := app.rateLimitMiddleware()

	router.GET(RouteHome, app.homeHandler)
	router.GET(RouteState, app.stateHandler)
	router.GET(RouteResults, app.resultsHandler)
	router.GET(RouteHealthz, app.healthzHandler)

	router.POST(RouteGuess, limited, app.guessHandler)
	router.POST(RouteHint, limited, app.hintHandler)
	router.POST(RouteReveal, limited, app.revealHandler)
	router.POST(RouteRandomHint, limited, app.randomHintHandler)
	router.POST(RouteRandomReveal, limited, app.randomRevealHandler)
	router.POST(RouteGiveUp, limited, app.giveUpHandler)
	router.POST(RouteReset, limited, app.resetHandler)
	router.POST(RouteSelect, limited, app.selectHandler)
	router.POST(RoutePause, limited, app.pauseHandler)
	router.POST(RouteResume, limited, app.resumeHandler)

	return router
}

// run serves HTTP and the cleanup scheduler until a shutdown signal arrives.
func (app *App) run(router *gin.Engine) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	port := getEnvString("PORT", "8080")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	scheduler, err := app.startCleanupScheduler()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logInfo("Server starting on http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logInfo("Shutdown signal received, shutting down server gracefully...")
		<-scheduler.Stop().Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
			return err
		}
		return nil
	})

	err = g.Wait()
	if cerr := app.Cache.Close(); cerr != nil {
		logWarn("Failed to close snapshot store: %v", cerr)
	}
	logInfo("Server shutdown complete")
	return err
}

// applyCacheHeaders lets static assets be cached in production and disables
// caching for everything else.
func (app *App) applyCacheHeaders(c *gin.Context) {
	if app.IsProduction && strings.HasPrefix(c.Request.URL.Path, "/static/") {
		cachecontrol.New(cachecontrol.Config{
			Public: true,
			MaxAge: cachecontrol.Duration(app.StaticCacheAge),
		})(c)
		c.Header("Vary", "Accept-Encoding")
		return
	}
	cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	})(c)
}

func envName(production bool) string {
	return map[bool]string{true: "production", false: "development"}[production]
}
