package game

import "sort"

// Scoreboard keys scores on display name, not connection, so a
// reconnecting user under the same name keeps their total. It is not
// safe for concurrent use; the session serializes access.
type Scoreboard struct {
	scores map[string]int
}

func NewScoreboard() *Scoreboard {
	return &Scoreboard{scores: make(map[string]int)}
}

// Touch registers a name with a zero score if it is new.
func (that *Scoreboard) Touch(name string) {
	if _, ok := that.scores[name]; !ok {
		that.scores[name] = 0
	}
}

func (that *Scoreboard) AddWin(name string) {
	that.scores[name]++
}

func (that *Scoreboard) Clear() {
	that.scores = make(map[string]int)
}

// Entries returns the scores sorted by score descending, name
// ascending on ties.
func (that *Scoreboard) Entries() []scoreEntry {
	entries := make([]scoreEntry, 0, len(that.scores))
	for name, score := range that.scores {
		entries = append(entries, scoreEntry{Name: name, Score: score})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})

	return entries
}
