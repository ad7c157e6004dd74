package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreboard(t *testing.T) {
	t.Run("Touch registers a name at zero without resetting wins", func(t *testing.T) {
		// Given: a scoreboard with one win for alice
		board := NewScoreboard()
		board.Touch("alice")
		board.AddWin("alice")

		// When: alice reconnects and is touched again
		board.Touch("alice")

		// Then: her score is kept
		assert.Equal(t, []scoreEntry{{Name: "alice", Score: 1}}, board.Entries())
	})

	t.Run("Entries sort by score descending, name ascending on ties", func(t *testing.T) {
		// Given: three named players with mixed scores
		board := NewScoreboard()
		board.Touch("carol")
		board.Touch("bob")
		board.AddWin("bob")
		board.AddWin("bob")
		board.Touch("alice")
		board.AddWin("alice")
		board.AddWin("alice")

		// When: listing the entries
		entries := board.Entries()

		// Then: the order is deterministic
		assert.Equal(t, []scoreEntry{
			{Name: "alice", Score: 2},
			{Name: "bob", Score: 2},
			{Name: "carol", Score: 0},
		}, entries)
	})

	t.Run("Clear wipes every entry", func(t *testing.T) {
		// Given: a scoreboard with entries
		board := NewScoreboard()
		board.AddWin("alice")

		// When: clearing it
		board.Clear()

		// Then: the board is empty
		assert.Empty(t, board.Entries())
	})
}
