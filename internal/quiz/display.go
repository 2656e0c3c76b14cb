package quiz

import (
	"fmt"
	"strings"
	"time"
)

// HiddenTitle is shown for a title that has neither been found nor hinted.
const HiddenTitle = "???"

// DisplayTitle returns the text a player should see for t.
func DisplayTitle(t TitleRecord) string {
	if t.Found {
		return t.Text
	}
	if !t.Hinted {
		return HiddenTitle
	}
	var b strings.Builder
	for i, r := range []rune(t.Text) {
		if i <= t.LastRevealedIndex || IsFreeCharacter(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// FormatTime renders d as H:MM:SS, truncated to whole seconds.
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	hours := total / 3600
	total %= 3600
	return fmt.Sprintf("%d:%02d:%02d", hours, total/60, total%60)
}
