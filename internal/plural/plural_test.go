package plural

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPluralize_Rule(t *testing.T) {
	cases := []struct {
		count int
		want  string
	}{
		{0, "c"},
		{1, "a"},
		{-1, "a"},
		{2, "b"},
		{3, "b"},
		{-3, "b"},
		{4, "b"},
		{5, "c"},
		{11, "c"},
		// The rule checks |n| directly, so 22 takes the 5+ form even though
		// natural Polish wants the 2-4 form here. Same as the UI always displayed.
		{12, "c"},
		{22, "c"},
		{-22, "c"},
		{125, "c"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Pluralize(tc.count, "a", "b", "c"), "count=%d", tc.count)
	}
}

func TestPattern_KnownWords(t *testing.T) {
	assert.Equal(t, "sprzęt", Pattern(1, "equipment"))
	assert.Equal(t, "sprzęty", Pattern(3, "equipment"))
	assert.Equal(t, "sprzętów", Pattern(7, "equipment"))
	assert.Equal(t, "drukarek", Pattern(5, "printer"))
	assert.Equal(t, "użytkowników", Pattern(2, "user"))
}

func TestPattern_UnknownFallsBackVerbatim(t *testing.T) {
	assert.Equal(t, "3 widget", Pattern(3, "widget"))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "1 komputer", FormatCount(1, "computer"))
	assert.Equal(t, "4 komputery", FormatCount(4, "computer"))
	assert.Equal(t, "10 komputerów", FormatCount(10, "computer"))

	// nieznany wzorzec: licznik pojawia się dwa razy, tak jak w UI
	assert.Equal(t, "3 3 widget", FormatCount(3, "widget"))
}
