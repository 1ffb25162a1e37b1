package history

import (
	"math"
	"slices"
)

// Rank orders distinct commands by relevance. commands are in file order
// (oldest first). Every occurrence at 1-based position n adds
// log(n)*10 + len(command), so frequent and recent commands rise. Ties keep
// the most recent command first. Blacklisted commands are dropped.
func Rank(commands []string, blacklist *Blacklist) []string {
	type ranked struct {
		cmd    string
		score  float64
		recent int
	}

	index := make(map[string]int, len(commands))
	var items []ranked
	for i, cmd := range commands {
		if cmd == "" || blacklist.Contains(cmd) {
			continue
		}
		score := math.Log(float64(i+1))*10 + float64(len(cmd))
		if at, ok := index[cmd]; ok {
			items[at].score += score
			items[at].recent = i
			continue
		}
		index[cmd] = len(items)
		items = append(items, ranked{cmd: cmd, score: score, recent: i})
	}

	slices.SortStableFunc(items, func(a, b ranked) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		default:
			return b.recent - a.recent
		}
	})

	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.cmd
	}
	return out
}
