package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/EpicYoshiMaster/splat-title-quiz/internal/quiz"
	"github.com/EpicYoshiMaster/splat-title-quiz/internal/store"
	"github.com/EpicYoshiMaster/splat-title-quiz/internal/types"
)

const helpText = `Type a title word to guess it. Commands:
  :hint a|s N      hint title N of the adjective or subject list
  :reveal a|s N    reveal title N
  :random-hint     hint one random title on each list
  :random-reveal   reveal one random title on each list
  :list a|s        show a list
  :pause, :resume  stop or restart the timer
  :giveup          reveal everything and stop
  :reset           start over
  :results         show the results summary
  :quit            leave
`

var errQuit = errors.New("quit")

// game is one terminal play-through.
type game struct {
	cfg        *Config
	adjectives []string
	subjects   []string
	session    *quiz.Session
	cache      store.Cache
	out        io.Writer
}

func play(ctx context.Context, cfg *Config, in io.Reader, out io.Writer) error {
	data, err := readTitles(cfg.titles)
	if err != nil {
		return err
	}
	logf(cfg, "loaded %d adjectives and %d subjects from %s", len(data.Adjective), len(data.Subject), cfg.titles)

	g := &game{
		cfg:        cfg,
		adjectives: data.Adjective,
		subjects:   data.Subject,
		session:    quiz.NewSession(data.Adjective, data.Subject),
		out:        out,
	}

	if cfg.session != "" {
		g.cache, err = store.Open(cfg.store, cfg.resolvedStorePath(), cfg.sessionTimeout)
		if err != nil {
			return err
		}
		defer g.cache.Close()

		if restored, ok := store.LoadSession(ctx, g.cache, cfg.session, g.session); ok {
			g.session = restored
			logf(cfg, "resumed session %s from %s store", cfg.session, cfg.store)
		}
	}

	fmt.Fprint(out, helpText)
	g.printProgress()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		err := g.execute(scanner.Text())
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		g.save(ctx)
	}
	g.save(ctx)
	return scanner.Err()
}

func readTitles(path string) (types.TitleData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return types.TitleData{}, fmt.Errorf("read titles: %w", err)
	}
	var data types.TitleData
	if err := json.Unmarshal(raw, &data); err != nil {
		return types.TitleData{}, fmt.Errorf("parse titles %s: %w", path, err)
	}
	return data, nil
}

func (g *game) save(ctx context.Context) {
	if g.cache == nil {
		return
	}
	if err := store.SaveSession(ctx, g.cache, g.cfg.session, g.session); err != nil {
		logf(g.cfg, "failed to save session %s: %v", g.cfg.session, err)
	}
}

// execute runs one line of input.
func (g *game) execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if !strings.HasPrefix(line, ":") {
		return g.guess(line)
	}

	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		fmt.Fprint(g.out, helpText)
		return nil
	}
	switch strings.ToLower(fields[0]) {
	case "hint":
		return g.titleAction(fields[1:], g.session.Hint, "Hinted")
	case "reveal":
		return g.titleAction(fields[1:], g.session.Reveal, "Revealed")
	case "random-hint":
		return g.randomAction(g.session.RandomHint, "Hinted")
	case "random-reveal":
		return g.randomAction(g.session.RandomReveal, "Revealed")
	case "list":
		return g.list(fields[1:])
	case "pause":
		g.session.Pause()
		fmt.Fprintf(g.out, "Paused at %s\n", quiz.FormatTime(g.session.Elapsed()))
	case "resume":
		g.session.Resume()
		g.printProgress()
	case "giveup":
		n := g.session.GiveUpAll()
		fmt.Fprintf(g.out, "Gave up with %d titles left.\n", n)
		fmt.Fprint(g.out, quiz.Summarize(g.session, time.Now()).String())
	case "reset":
		g.session = quiz.NewSession(g.adjectives, g.subjects)
		fmt.Fprintln(g.out, "Started over.")
		g.printProgress()
	case "results":
		fmt.Fprint(g.out, quiz.Summarize(g.session, time.Now()).String())
	case "quit", "exit":
		return errQuit
	case "help":
		fmt.Fprint(g.out, helpText)
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
	return nil
}

// guess checks text against the adjectives first, then the subjects.
func (g *game) guess(text string) error {
	hit := false
	for _, side := range quiz.Sides {
		result, err := g.session.CheckInput(side, text)
		if err != nil {
			return err
		}
		if result.EasterEgg != "" && side == quiz.SideAdjective {
			fmt.Fprintf(g.out, "%s!\n", result.EasterEgg)
		}
		if result.Index < 0 {
			continue
		}
		hit = true
		title := g.session.Titles(side)[result.Index].Text
		if result.Duplicate {
			fmt.Fprintf(g.out, "Already found %s: %s\n", side, title)
			continue
		}
		fmt.Fprintf(g.out, "Found %s: %s\n", side, title)
	}
	if !hit {
		fmt.Fprintln(g.out, "No match.")
		return nil
	}
	g.printProgress()
	if g.session.Complete() {
		fmt.Fprint(g.out, quiz.Summarize(g.session, time.Now()).String())
	}
	return nil
}

// titleAction parses "<side> <N>" with N counted from 1, as :list shows it.
func (g *game) titleAction(args []string, apply func(quiz.Side, int) (quiz.ActionResult, error), verb string) error {
	if len(args) != 2 {
		return errors.New("expected a list (a or s) and a title number")
	}
	side, err := quiz.ParseSide(args[0])
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid title number %q", args[1])
	}
	result, err := apply(side, n-1)
	if err != nil {
		return err
	}
	g.printAction(result, verb)
	return nil
}

func (g *game) randomAction(apply func() ([]quiz.ActionResult, error), verb string) error {
	results, err := apply()
	if errors.Is(err, quiz.ErrNoEligibleTitle) {
		fmt.Fprintln(g.out, "Every title has already been found.")
		return nil
	}
	if err != nil {
		return err
	}
	for _, result := range results {
		g.printAction(result, verb)
	}
	return nil
}

func (g *game) printAction(result quiz.ActionResult, verb string) {
	if !result.Applied {
		fmt.Fprintf(g.out, "%s #%d is already found: %s\n", result.Side, result.Index+1, result.Record.Text)
		return
	}
	fmt.Fprintf(g.out, "%s %s #%d: %s\n", verb, result.Side, result.Index+1, quiz.DisplayTitle(result.Record))
	logf(g.cfg, "%s hint position %d on %s #%d", verb, result.Record.LastRevealedIndex, result.Side, result.Index+1)
	if g.session.Complete() {
		fmt.Fprint(g.out, quiz.Summarize(g.session, time.Now()).String())
	}
}

func (g *game) list(args []string) error {
	if len(args) != 1 {
		return errors.New("expected a list (a or s)")
	}
	side, err := quiz.ParseSide(args[0])
	if err != nil {
		return err
	}
	for i, t := range g.session.Titles(side) {
		fmt.Fprintf(g.out, "%4d. %s\n", i+1, quiz.DisplayTitle(t))
	}
	return nil
}

func (g *game) printProgress() {
	aFound, aTotal := quiz.Progress(g.session.Adjectives)
	sFound, sTotal := quiz.Progress(g.session.Subjects)
	fmt.Fprintf(g.out, "Adjectives %d/%d | Subjects %d/%d | %s\n",
		aFound, aTotal, sFound, sTotal, quiz.FormatTime(g.session.Elapsed()))
}
