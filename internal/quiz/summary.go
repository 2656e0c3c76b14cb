package quiz

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

// SideSummary tallies how the titles of one list were completed.
type SideSummary struct {
	Side     Side `json:"side"`
	Total    int  `json:"total"`
	Found    int  `json:"found"`
	Guessed  int  `json:"guessed"`
	Hinted   int  `json:"hinted"`
	Revealed int  `json:"revealed"`
	GaveUp   int  `json:"gaveUp"`
}

// Summary is the results screen for a session.
type Summary struct {
	Sides    []SideSummary `json:"sides"`
	Hints    int           `json:"hints"`
	Reveals  int           `json:"reveals"`
	Elapsed  time.Duration `json:"elapsed"`
	Complete bool          `json:"complete"`
	GaveUp   bool          `json:"gaveUp"`
}

func summarizeSide(side Side, list []TitleRecord) SideSummary {
	found, total := Progress(list)
	return SideSummary{
		Side:  side,
		Total: total,
		Found: found,
		// Revealed and given-up titles may also have been hinted first.
		Revealed: lo.CountBy(list, func(t TitleRecord) bool { return t.Found && t.Revealed }),
		GaveUp:   lo.CountBy(list, func(t TitleRecord) bool { return t.Found && t.GaveUp }),
		Hinted: lo.CountBy(list, func(t TitleRecord) bool {
			return t.Found && t.Hinted && !t.Revealed && !t.GaveUp
		}),
		Guessed: lo.CountBy(list, func(t TitleRecord) bool {
			return t.Found && !t.Hinted && !t.Revealed && !t.GaveUp
		}),
	}
}

// Summarize builds the results for s as of now.
func Summarize(s *Session, now time.Time) Summary {
	return Summary{
		Sides: lo.Map(Sides, func(side Side, _ int) SideSummary {
			return summarizeSide(side, s.Titles(side))
		}),
		Hints:    s.HintCount,
		Reveals:  s.RevealCount,
		Elapsed:  s.Timer.Total(now),
		Complete: s.Complete(),
		GaveUp:   s.GaveUp,
	}
}

// String renders the summary as a plain-text block suitable for sharing.
func (sum Summary) String() string {
	var b strings.Builder
	b.WriteString("Splatoon Title Quiz\n")
	for _, side := range sum.Sides {
		name := "Adjectives"
		if side.Side == SideSubject {
			name = "Subjects"
		}
		fmt.Fprintf(&b, "%s: %d/%d (guessed %d, hinted %d, revealed %d",
			name, side.Found, side.Total, side.Guessed, side.Hinted, side.Revealed)
		if side.GaveUp > 0 {
			fmt.Fprintf(&b, ", gave up %d", side.GaveUp)
		}
		b.WriteString(")\n")
	}
	fmt.Fprintf(&b, "Hints: %d | Reveals: %d\n", sum.Hints, sum.Reveals)
	fmt.Fprintf(&b, "Time: %s", FormatTime(sum.Elapsed))
	switch {
	case sum.GaveUp:
		b.WriteString(" (gave up)")
	case sum.Complete:
		b.WriteString(" (complete)")
	}
	b.WriteString("\n")
	return b.String()
}
