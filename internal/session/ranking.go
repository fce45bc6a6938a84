package session

import (
	"sort"
	"time"
)

// RankEntry is one row of a reveal ranking.
type RankEntry struct {
	Name  string
	Count int
}

// rankBy tallies the name pick selects from each ballot and orders the
// result deterministically: higher count first, ties broken by the
// earliest ballot naming the target, then by name. Two clients ranking
// the same ballots always produce the same order.
func rankBy(votes map[string]Vote, pick func(Vote) string) []RankEntry {
	counts := map[string]int{}
	firstNamed := map[string]time.Time{}
	for _, v := range votes {
		name := pick(v)
		if name == "" {
			continue
		}
		counts[name]++
		if t, ok := firstNamed[name]; !ok || v.SubmittedAt.Before(t) {
			firstNamed[name] = v.SubmittedAt
		}
	}

	entries := make([]RankEntry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, RankEntry{Name: name, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		ti, tj := firstNamed[entries[i].Name], firstNamed[entries[j].Name]
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// RankMVP ranks participants by positive picks.
func RankMVP(votes map[string]Vote) []RankEntry {
	return rankBy(votes, func(v Vote) string { return v.MVPName })
}

// RankLosers ranks participants by negative picks.
func RankLosers(votes map[string]Vote) []RankEntry {
	return rankBy(votes, func(v Vote) string { return v.LoserName })
}
