package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateLevel(t *testing.T) {
	tests := []struct {
		name  string
		xp    int
		level int
	}{
		{"zero XP", 0, 1},
		{"just under level 2", 299, 1},
		{"exactly level 2", 300, 2},
		{"mid level 2", 500, 2},
		{"exactly level 3", 700, 3}, // 300 + 400
		{"exactly level 4", 1200, 4}, // 300 + 400 + 500
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.level, CalculateLevel(tt.xp))
		})
	}
}

func TestXPForNextLevel(t *testing.T) {
	assert.Equal(t, 300, XPForNextLevel(1))
	assert.Equal(t, 400, XPForNextLevel(2))
	assert.Equal(t, 1200, XPForNextLevel(10))
}

func TestXPProgress(t *testing.T) {
	level, toNext := XPProgress(0)
	assert.Equal(t, 1, level)
	assert.Equal(t, 300, toNext)

	level, toNext = XPProgress(450)
	assert.Equal(t, 2, level)
	assert.Equal(t, 250, toNext)
}
