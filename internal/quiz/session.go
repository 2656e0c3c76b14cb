package quiz

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrUnknownSide     = errors.New("unknown side")
	ErrIndexOutOfRange = errors.New("title index out of range")
	ErrNoEligibleTitle = errors.New("no eligible title")
)

// nowFunc is swapped out in tests.
var nowFunc = time.Now

// Side selects one of the two title lists.
type Side string

const (
	SideAdjective Side = "adjective"
	SideSubject   Side = "subject"
)

// Sides lists both sides in display order.
var Sides = []Side{SideAdjective, SideSubject}

// ParseSide accepts the side name or its first letter, in any case.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "adjective", "adjectives", "a":
		return SideAdjective, nil
	case "subject", "subjects", "s":
		return SideSubject, nil
	}
	return "", ErrUnknownSide
}

// EasterEggs are trigger phrases checked against player input.
var EasterEggs = []string{"Fresh", "Booyah", "Woomy", "Veemo", "Staying Fresh"}

// Session is the full state of one play session.
type Session struct {
	Adjectives         []TitleRecord   `json:"adjectives"`
	Subjects           []TitleRecord   `json:"subjects"`
	AdjectiveSelection SelectionCursor `json:"adjectiveSelection"`
	SubjectSelection   SelectionCursor `json:"subjectSelection"`
	AdjectiveInput     string          `json:"adjectiveInput"`
	SubjectInput       string          `json:"subjectInput"`
	HintCount          int             `json:"hintCount"`
	RevealCount        int             `json:"revealCount"`
	Timer              Timer           `json:"timer"`
	GaveUp             bool            `json:"gaveUp"`
}

// MatchResult describes what CheckInput did with a piece of input.
type MatchResult struct {
	Matched   bool   `json:"matched"`
	Duplicate bool   `json:"duplicate"`
	Index     int    `json:"index"`
	EasterEgg string `json:"easterEgg,omitempty"`
}

// ActionResult describes a hint or reveal on one title.
type ActionResult struct {
	Side    Side        `json:"side"`
	Index   int         `json:"index"`
	Applied bool        `json:"applied"`
	Record  TitleRecord `json:"record"`
}

// NewSession builds a session from the two canonical word lists.
func NewSession(adjectives, subjects []string) *Session {
	return &Session{
		Adjectives: NewTitles(adjectives),
		Subjects:   NewTitles(subjects),
	}
}

// Titles returns the list for side.
func (s *Session) Titles(side Side) []TitleRecord {
	if side == SideSubject {
		return s.Subjects
	}
	return s.Adjectives
}

func (s *Session) list(side Side) (*[]TitleRecord, *SelectionCursor, *string, error) {
	switch side {
	case SideAdjective:
		return &s.Adjectives, &s.AdjectiveSelection, &s.AdjectiveInput, nil
	case SideSubject:
		return &s.Subjects, &s.SubjectSelection, &s.SubjectInput, nil
	}
	return nil, nil, nil, ErrUnknownSide
}

// Selection returns the cursor for side.
func (s *Session) Selection(side Side) SelectionCursor {
	if side == SideSubject {
		return s.SubjectSelection
	}
	return s.AdjectiveSelection
}

// Input returns the stored player input for side.
func (s *Session) Input(side Side) string {
	if side == SideSubject {
		return s.SubjectInput
	}
	return s.AdjectiveInput
}

// CheckInput stores text as the current input for side and, when it names an
// unfound title, marks that title found and clears the input.
func (s *Session) CheckInput(side Side, text string) (MatchResult, error) {
	titles, cursor, input, err := s.list(side)
	if err != nil {
		return MatchResult{}, err
	}
	*input = text
	result := MatchResult{Index: -1}

	for _, egg := range EasterEggs {
		if TitlesMatch(egg, text) {
			result.EasterEgg = egg
			break
		}
	}

	idx := FindMatch(*titles, text)
	if idx < 0 {
		return result, nil
	}
	result.Index = idx
	*cursor = Focus(idx)

	if (*titles)[idx].Found {
		result.Duplicate = true
		return result, nil
	}

	(*titles)[idx].Found = true
	*input = ""
	result.Matched = true
	s.touch()
	return result, nil
}

// Hint advances the hint state of the title at index.
func (s *Session) Hint(side Side, index int) (ActionResult, error) {
	titles, cursor, _, err := s.list(side)
	if err != nil {
		return ActionResult{}, err
	}
	if index < 0 || index >= len(*titles) {
		return ActionResult{}, ErrIndexOutOfRange
	}
	*cursor = Focus(index)

	prev, next := Surrounding(index, *titles, IsFound)
	updated, applied := AdvanceHint((*titles)[index], prev, next)
	if applied {
		(*titles)[index] = updated
		s.HintCount++
		s.touch()
	}
	return ActionResult{Side: side, Index: index, Applied: applied, Record: updated}, nil
}

// Reveal completes the title at index without hinting.
func (s *Session) Reveal(side Side, index int) (ActionResult, error) {
	titles, cursor, _, err := s.list(side)
	if err != nil {
		return ActionResult{}, err
	}
	if index < 0 || index >= len(*titles) {
		return ActionResult{}, ErrIndexOutOfRange
	}
	*cursor = Focus(index)

	updated, applied := Reveal((*titles)[index])
	if applied {
		(*titles)[index] = updated
		s.RevealCount++
		s.touch()
	}
	return ActionResult{Side: side, Index: index, Applied: applied, Record: updated}, nil
}

// RandomHint hints one random unfound adjective and one random unfound subject.
// Sides with nothing left are skipped; ErrNoEligibleTitle means both were.
func (s *Session) RandomHint() ([]ActionResult, error) {
	return s.randomAction(s.Hint)
}

// RandomReveal reveals one random unfound adjective and one random unfound subject.
func (s *Session) RandomReveal() ([]ActionResult, error) {
	return s.randomAction(s.Reveal)
}

func (s *Session) randomAction(apply func(Side, int) (ActionResult, error)) ([]ActionResult, error) {
	var results []ActionResult
	for _, side := range Sides {
		_, idx, ok := PickRandom(IsUnfound, s.Titles(side))
		if !ok {
			continue
		}
		res, err := apply(side, idx)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	if len(results) == 0 {
		return nil, ErrNoEligibleTitle
	}
	return results, nil
}

// GiveUpAll forces every remaining title to found and ends play.
func (s *Session) GiveUpAll() int {
	count := 0
	for _, titles := range []*[]TitleRecord{&s.Adjectives, &s.Subjects} {
		for i := range *titles {
			if updated, ok := GiveUp((*titles)[i]); ok {
				(*titles)[i] = updated
				count++
			}
		}
	}
	s.GaveUp = true
	s.Timer.Stop(nowFunc())
	return count
}

// Navigate moves the cursor for side by delta. It does nothing until the list
// has at least one found or hinted title.
func (s *Session) Navigate(side Side, delta int) (SelectionCursor, error) {
	titles, cursor, _, err := s.list(side)
	if err != nil {
		return SelectionCursor{}, err
	}
	if !Started(*titles) {
		return *cursor, nil
	}
	*cursor = Translate(*cursor, delta, len(*titles))
	return *cursor, nil
}

// Complete reports whether every title on both sides is found.
func (s *Session) Complete() bool {
	return AllFound(s.Adjectives) && AllFound(s.Subjects)
}

// Pause stops the play timer.
func (s *Session) Pause() {
	s.Timer.Stop(nowFunc())
}

// Resume restarts the play timer if play is still in progress.
func (s *Session) Resume() {
	if s.GaveUp || s.Complete() {
		return
	}
	if Started(s.Adjectives) || Started(s.Subjects) {
		s.Timer.Start(nowFunc())
	}
}

// Elapsed returns the total play time so far.
func (s *Session) Elapsed() time.Duration {
	return s.Timer.Total(nowFunc())
}

// touch keeps the timer in step with progress: running while play continues,
// stopped once everything is found.
func (s *Session) touch() {
	now := nowFunc()
	if s.Complete() {
		s.Timer.Stop(now)
		return
	}
	s.Timer.Start(now)
}
