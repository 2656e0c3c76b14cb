package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EpicYoshiMaster/splat-title-quiz/internal/quiz"
	"github.com/EpicYoshiMaster/splat-title-quiz/internal/types"
)

// homeHandler renders the quiz page for the current session.
func (app *App) homeHandler(c *gin.Context) {
	var state types.StateResponse
	app.viewSession(c, func(s *quiz.Session) {
		state = buildStateResponse(s)
	})
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title": "Splatoon Title Quiz",
		"state": state,
	})
}

// stateHandler returns the current session state as JSON.
func (app *App) stateHandler(c *gin.Context) {
	var state types.StateResponse
	app.viewSession(c, func(s *quiz.Session) {
		state = buildStateResponse(s)
	})
	c.JSON(http.StatusOK, gin.H{"state": state})
}

// guessHandler checks the submitted text against one title list.
func (app *App) guessHandler(c *gin.Context) {
	side, ok := formSide(c)
	if !ok {
		return
	}
	text := c.PostForm("text")

	var match quiz.MatchResult
	state, err := app.withSession(c, func(s *quiz.Session) error {
		var err error
		match, err = s.CheckInput(side, text)
		return err
	})
	if err != nil {
		app.badRequest(c, err)
		return
	}
	if match.Matched {
		logInfo("[request_id=%v] Session %s found %s #%d", requestID(c), app.getOrCreateSession(c), side, match.Index)
	}
	if match.EasterEgg != "" {
		triggerEvent(c, "easter-egg", match.EasterEgg)
	}
	app.respond(c, state, gin.H{"match": match})
}

// hintHandler advances the hint on one title.
func (app *App) hintHandler(c *gin.Context) {
	app.titleAction(c, (*quiz.Session).Hint)
}

// revealHandler reveals one title outright.
func (app *App) revealHandler(c *gin.Context) {
	app.titleAction(c, (*quiz.Session).Reveal)
}

func (app *App) titleAction(c *gin.Context, apply func(*quiz.Session, quiz.Side, int) (quiz.ActionResult, error)) {
	side, ok := formSide(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(strings.TrimSpace(c.PostForm("index")))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrorInvalidIndex})
		return
	}

	var action quiz.ActionResult
	state, err := app.withSession(c, func(s *quiz.Session) error {
		var err error
		action, err = apply(s, side, index)
		return err
	})
	if err != nil {
		app.badRequest(c, err)
		return
	}
	app.respond(c, state, gin.H{"action": action})
}

// randomHintHandler hints one random unfound title per list.
func (app *App) randomHintHandler(c *gin.Context) {
	app.randomAction(c, (*quiz.Session).RandomHint)
}

// randomRevealHandler reveals one random unfound title per list.
func (app *App) randomRevealHandler(c *gin.Context) {
	app.randomAction(c, (*quiz.Session).RandomReveal)
}

func (app *App) randomAction(c *gin.Context, apply func(*quiz.Session) ([]quiz.ActionResult, error)) {
	var actions []quiz.ActionResult
	state, err := app.withSession(c, func(s *quiz.Session) error {
		var err error
		actions, err = apply(s)
		return err
	})
	if errors.Is(err, quiz.ErrNoEligibleTitle) {
		app.respond(c, state, gin.H{"actions": []quiz.ActionResult{}, "message": ErrorNothingEligible})
		return
	}
	if err != nil {
		app.badRequest(c, err)
		return
	}
	app.respond(c, state, gin.H{"actions": actions})
}

// giveUpHandler marks every remaining title found and stops the timer.
func (app *App) giveUpHandler(c *gin.Context) {
	var count int
	state, _ := app.withSession(c, func(s *quiz.Session) error {
		count = s.GiveUpAll()
		return nil
	})
	logInfo("[request_id=%v] Session %s gave up with %d titles left", requestID(c), app.getOrCreateSession(c), count)
	app.respond(c, state, gin.H{"gaveUp": count})
}

// resetHandler discards the session and starts over under a new session ID.
func (app *App) resetHandler(c *gin.Context) {
	app.respond(c, app.resetSession(c), nil)
}

// selectHandler moves a list's selection cursor by delta.
func (app *App) selectHandler(c *gin.Context) {
	side, ok := formSide(c)
	if !ok {
		return
	}
	delta, err := strconv.Atoi(strings.TrimSpace(c.PostForm("delta")))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrorInvalidDelta})
		return
	}

	var cursor quiz.SelectionCursor
	state, err := app.withSession(c, func(s *quiz.Session) error {
		var err error
		cursor, err = s.Navigate(side, delta)
		return err
	})
	if err != nil {
		app.badRequest(c, err)
		return
	}
	app.respond(c, state, gin.H{"selection": cursor})
}

// pauseHandler stops the play timer.
func (app *App) pauseHandler(c *gin.Context) {
	state, _ := app.withSession(c, func(s *quiz.Session) error {
		s.Pause()
		return nil
	})
	app.respond(c, state, nil)
}

// resumeHandler restarts the play timer when play is in progress.
func (app *App) resumeHandler(c *gin.Context) {
	state, _ := app.withSession(c, func(s *quiz.Session) error {
		s.Resume()
		return nil
	})
	app.respond(c, state, nil)
}

// resultsHandler returns the plain-text results summary.
func (app *App) resultsHandler(c *gin.Context) {
	var summary quiz.Summary
	app.viewSession(c, func(s *quiz.Session) {
		summary = quiz.Summarize(s, time.Now())
	})
	c.String(http.StatusOK, summary.String())
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	app.SessionMutex.RLock()
	active := len(app.GameSessions)
	app.SessionMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"env":             envName(app.IsProduction),
		"adjectives":      len(app.Adjectives),
		"subjects":        len(app.Subjects),
		"active_sessions": active,
		"uptime":          formatUptime(time.Since(app.StartTime)),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

// respond sends the state as JSON to script and HTMX callers and redirects
// plain form posts back to the page.
func (app *App) respond(c *gin.Context, state types.StateResponse, extra gin.H) {
	if !wantsJSON(c) {
		c.Redirect(http.StatusSeeOther, RouteHome)
		return
	}
	body := gin.H{"state": state}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// badRequest maps core errors to a 400 JSON response.
func (app *App) badRequest(c *gin.Context, err error) {
	msg := err.Error()
	switch {
	case errors.Is(err, quiz.ErrUnknownSide):
		msg = ErrorUnknownSide
	case errors.Is(err, quiz.ErrIndexOutOfRange):
		msg = ErrorInvalidIndex
	}
	logWarn("[request_id=%v] Rejected request: %v", requestID(c), err)
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}

// formSide parses the side form field, answering 400 when it is not a known list.
func formSide(c *gin.Context) (quiz.Side, bool) {
	side, err := quiz.ParseSide(c.PostForm("side"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrorUnknownSide})
		return "", false
	}
	return side, true
}

func wantsJSON(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true" || strings.Contains(c.GetHeader("Accept"), "application/json")
}

// triggerEvent sets an HX-Trigger header carrying a single named event.
func triggerEvent(c *gin.Context, name string, detail any) {
	b, err := json.Marshal(map[string]any{name: detail})
	if err != nil {
		logWarn("Failed to marshal HX-Trigger payload: %v", err)
		return
	}
	c.Header("HX-Trigger", string(b))
}

func requestID(c *gin.Context) string {
	id, _ := c.Request.Context().Value(requestIDKey).(string)
	return id
}
