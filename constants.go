package main

// Session configuration constants
const (
	SessionCookieName = "session_id"
)

// Route constants
const (
	RouteHome         = "/"
	RouteState        = "/state"
	RouteGuess        = "/guess"
	RouteHint         = "/hint"
	RouteReveal       = "/reveal"
	RouteRandomHint   = "/random-hint"
	RouteRandomReveal = "/random-reveal"
	RouteGiveUp       = "/give-up"
	RouteReset        = "/reset"
	RouteSelect       = "/select"
	RoutePause        = "/pause"
	RouteResume       = "/resume"
	RouteResults      = "/results"
	RouteHealthz      = "/healthz"
)

// Default locations, overridable from the environment
const (
	DefaultTitlesPath      = "data/titles.json"
	DefaultStorePath       = "data/sessions"
	DefaultSQLitePath      = "data/quiz.db"
	DefaultCleanupSchedule = "@every 30m"
)

// Error message constants
const (
	ErrorUnknownSide     = "Unknown title list."
	ErrorInvalidIndex    = "Title index out of range."
	ErrorInvalidDelta    = "Navigation step must be a number."
	ErrorNothingEligible = "Every title has already been found."
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)

type contextKey string
