package timefmt

import "fmt"

// Status tells whether a countdown is still ahead of zero or already overdue.
type Status int

const (
	Positive Status = iota
	Negative
)

const (
	positiveGlyph = "🟢"
	negativeGlyph = "🔴"
)

// Format renders signed seconds as [-]MM:SS. Minutes are never truncated.
func Format(seconds int) string {
	abs := uint(seconds)
	prefix := ""
	if seconds < 0 {
		abs = uint(-(seconds + 1)) + 1
		prefix = "-"
	}
	return fmt.Sprintf("%s%02d:%02d", prefix, abs/60, abs%60)
}

// StatusOf reports Negative only for values below zero.
func StatusOf(seconds int) Status {
	if seconds < 0 {
		return Negative
	}
	return Positive
}

// Glyph returns the title decoration for the status.
func (status Status) Glyph() string {
	if status == Negative {
		return negativeGlyph
	}
	return positiveGlyph
}

func (status Status) String() string {
	if status == Negative {
		return "negative"
	}
	return "positive"
}
