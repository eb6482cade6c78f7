package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifficultyBadge(t *testing.T) {
	assert.Contains(t, DifficultyBadge("medium"), "MEDIUM")
	assert.Contains(t, DifficultyBadge("hard"), "HARD")
}

func TestVerdict(t *testing.T) {
	assert.Equal(t, Correct.Render("90%"), Verdict(true).Render("90%"))
	assert.Equal(t, Incorrect.Render("40%"), Verdict(false).Render("40%"))
}
