package window

import "fyne.io/fyne/v2"

// KeyAction is what a qualifying key press means to the timer.
type KeyAction int

const (
	KeyIgnored KeyAction = iota
	KeyDigit
	KeyEnter
	KeyCancel
)

var digitKeys = map[fyne.KeyName]rune{
	fyne.Key0: '0',
	fyne.Key1: '1',
	fyne.Key2: '2',
	fyne.Key3: '3',
	fyne.Key4: '4',
	fyne.Key5: '5',
	fyne.Key6: '6',
	fyne.Key7: '7',
	fyne.Key8: '8',
	fyne.Key9: '9',
}

// ClassifyKey maps a key name to a timer action and, for digits, the digit rune.
func ClassifyKey(name fyne.KeyName) (KeyAction, rune) {
	if digit, ok := digitKeys[name]; ok {
		return KeyDigit, digit
	}
	switch name {
	case fyne.KeyReturn, fyne.KeyEnter:
		return KeyEnter, 0
	case fyne.KeyEscape:
		return KeyCancel, 0
	}
	return KeyIgnored, 0
}
