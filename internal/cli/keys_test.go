package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapKey(t *testing.T) {
	tests := []struct {
		key    string
		double bool
		action keyAction
		token  string
	}{
		{"r", false, actionMove, "R"},
		{"R", false, actionMove, "R'"},
		{"u", true, actionMove, "U2"},
		{"U", true, actionMove, "U2"},
		{"b", false, actionMove, "B"},
		{"L", false, actionMove, "L'"},
		{"2", false, actionDouble, ""},
		{"s", false, actionScramble, ""},
		{"o", false, actionSolve, ""},
		{"enter", false, actionSolve, ""},
		{"n", false, actionReset, ""},
		{"/", false, actionInput, ""},
		{"q", false, actionQuit, ""},
		{"ctrl+c", false, actionQuit, ""},
		{"x", false, actionNone, ""},
		{"M", false, actionNone, ""},
		{"left", false, actionNone, ""},
	}

	for _, tt := range tests {
		action, token := mapKey(tt.key, tt.double)
		assert.Equal(t, tt.action, action, "key %q", tt.key)
		assert.Equal(t, tt.token, token, "key %q", tt.key)
	}
}
