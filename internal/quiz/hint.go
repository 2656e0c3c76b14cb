package quiz

// Surrounding returns the nearest records before and after index that satisfy
// pred. Either result is nil when no such record exists.
func Surrounding(index int, list []TitleRecord, pred func(TitleRecord) bool) (prev, next *TitleRecord) {
	for i := min(index, len(list)) - 1; i >= 0; i-- {
		if pred(list[i]) {
			t := list[i]
			prev = &t
			break
		}
	}
	for i := max(index+1, 0); i < len(list); i++ {
		if pred(list[i]) {
			t := list[i]
			next = &t
			break
		}
	}
	return prev, next
}

// AdvanceHint unlocks the next character of record that actually costs a hint.
// Free characters, and characters shared at the same position by both prev and
// next, are unlocked along the way at no cost. The returned bool is false when
// record was already found, in which case it is returned unchanged and no hint
// should be counted.
func AdvanceHint(record TitleRecord, prev, next *TitleRecord) (TitleRecord, bool) {
	if record.Found {
		return record, false
	}

	text := []rune(record.Text)
	var prevText, nextText []rune
	if prev != nil {
		prevText = []rune(prev.Text)
	}
	if next != nil {
		nextText = []rune(next.Text)
	}

	trivial := func(i int) bool {
		if prev == nil || next == nil {
			return false
		}
		if i >= len(prevText) || i >= len(nextText) {
			return false
		}
		return prevText[i] == text[i] && nextText[i] == text[i]
	}

	record.Hinted = true
	i := record.LastRevealedIndex + 1
	for i < len(text) && (trivial(i) || IsFreeCharacter(text[i])) {
		i++
	}

	record.LastRevealedIndex = i
	if record.LastRevealedIndex >= len(text) {
		record.Found = true
	}
	return record, true
}

// Reveal completes record immediately. The returned bool is false when record
// was already found.
func Reveal(record TitleRecord) (TitleRecord, bool) {
	if record.Found {
		return record, false
	}
	record.Found = true
	record.Revealed = true
	return record, true
}

// GiveUp forces an unfound record to found for the give-up action.
func GiveUp(record TitleRecord) (TitleRecord, bool) {
	if record.Found {
		return record, false
	}
	record.Found = true
	record.GaveUp = true
	return record, true
}
