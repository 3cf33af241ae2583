package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		s1, s2   string
		expected int
	}{
		{"identical", "Beverly Hills", "Beverly Hills", 0},
		{"both empty", "", "", 0},
		{"first empty", "", "abc", 3},
		{"second empty", "abcd", "", 4},
		{"single substitution", "abc", "abd", 1},
		{"multibyte runes", "Zürich", "Zürich", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Distance(tt.s1, tt.s2, 0))
		})
	}
}

func TestDistance_NonNegativeAndBounded(t *testing.T) {
	pairs := [][2]string{
		{"Los Angeles", "Beverly Hills"},
		{"ab", "ba"},
		{"Saint-Denis", "St Denis"},
	}
	for _, p := range pairs {
		d := Distance(p[0], p[1], DefaultMaxOffset)
		assert.GreaterOrEqual(t, d, 0)
		assert.LessOrEqual(t, d, len([]rune(p[0]))+len([]rune(p[1])))
	}
}

func TestClosest(t *testing.T) {
	candidates := []string{
		"Los Angeles California",
		"Beverly Hills Los Angeles California",
	}
	assert.Equal(t, 1, Closest("Beverly Hills Los Angeles", candidates))
	assert.Equal(t, -1, Closest("anything", nil))
}
