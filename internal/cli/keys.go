package cli

import "strings"

// keyAction is what a key press asks the player to do.
type keyAction int

const (
	actionNone keyAction = iota
	actionMove
	actionDouble
	actionScramble
	actionSolve
	actionReset
	actionInput
	actionQuit
)

const faceKeys = "udrlfb"

// mapKey translates a key press. Lowercase face letters are base turns,
// uppercase are prime turns, and a preceding "2" makes either a double
// turn. For actionMove the returned string is the notation token.
func mapKey(key string, double bool) (keyAction, string) {
	switch key {
	case "ctrl+c", "esc", "q":
		return actionQuit, ""
	case "2":
		return actionDouble, ""
	case "s":
		return actionScramble, ""
	case "o", "enter":
		return actionSolve, ""
	case "n":
		return actionReset, ""
	case "/", ":":
		return actionInput, ""
	}

	if len(key) != 1 {
		return actionNone, ""
	}
	lower := strings.ToLower(key)
	if !strings.Contains(faceKeys, lower) {
		return actionNone, ""
	}

	token := strings.ToUpper(key)
	switch {
	case double:
		token += "2"
	case key != lower:
		token += "'"
	}
	return actionMove, token
}
