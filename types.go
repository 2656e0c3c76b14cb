package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/EpicYoshiMaster/splat-title-quiz/internal/quiz"
	"github.com/EpicYoshiMaster/splat-title-quiz/internal/store"
	"github.com/EpicYoshiMaster/splat-title-quiz/internal/types"
)

// TitleData is the JSON structure for loading the canonical word lists
type TitleData = types.TitleData

// GameState is a player's in-memory quiz session
type GameState struct {
	Quiz           *quiz.Session
	LastAccessTime time.Time
}

// App holds the loaded word lists, live sessions and server configuration
type App struct {
	Adjectives []string // canonical adjective list, as loaded
	Subjects   []string // canonical subject list, as loaded

	GameSessions map[string]*GameState
	SessionMutex sync.RWMutex // Protects GameSessions and every session in it

	Cache store.Cache

	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex

	IsProduction    bool
	SessionTimeout  time.Duration
	CookieMaxAge    time.Duration
	StaticCacheAge  time.Duration
	RateLimitRPS    int
	RateLimitBurst  int
	CleanupSchedule string
	StartTime       time.Time
}
