// Package outfit holds the two clothing recommendation engines: a
// quick threshold ladder for single-label summaries, and a
// multi-dimensional rule set for detailed briefings. Both are built as
// explicit immutable values; there is no package-level mutable table.
package outfit

import (
	"fmt"
	"sort"
)

// LadderEntry pairs an inclusive minimum temperature with its label.
type LadderEntry struct {
	MinTemp int
	Label   string
}

// Ladder is an ordered list of entries, strictly descending by
// threshold, terminated by a catch-all. Recommend returns the label of
// the first entry whose threshold is at or below the temperature.
type Ladder struct {
	entries []LadderEntry
}

// NewLadder copies and orders the entries. An empty ladder is invalid:
// every temperature must resolve to some label.
func NewLadder(entries []LadderEntry) (*Ladder, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("ladder requires at least one entry")
	}
	sorted := make([]LadderEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinTemp > sorted[j].MinTemp
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].MinTemp == sorted[i-1].MinTemp {
			return nil, fmt.Errorf("duplicate ladder threshold %d", sorted[i].MinTemp)
		}
	}
	return &Ladder{entries: sorted}, nil
}

// Recommend scans from the highest threshold down and returns the
// first matching label. Temperatures below the lowest threshold fall
// through to the catch-all entry.
func (l *Ladder) Recommend(temp int) string {
	for _, e := range l.entries {
		if temp >= e.MinTemp {
			return e.Label
		}
	}
	return l.entries[len(l.entries)-1].Label
}

// DefaultLadder returns the stock running-outfit ladder. The catch-all
// threshold sits below any plausible surface temperature.
func DefaultLadder() *Ladder {
	l, err := NewLadder([]LadderEntry{
		{MinTemp: 20, Label: "Singlet and shorts"},
		{MinTemp: 15, Label: "Short-sleeve tee and shorts"},
		{MinTemp: 10, Label: "Short or long sleeve tee, shorts or capri tights"},
		{MinTemp: 5, Label: "Long-sleeve tee, leggings, light windbreaker or vest"},
		{MinTemp: 0, Label: "Thermal top, leggings, windbreaker, gloves, ear warmers"},
		{MinTemp: -7, Label: "Thermal base layer, fleece top and bottom, windproof jacket, full winter kit"},
		{MinTemp: -99, Label: "Indoor training recommended (too cold)"},
	})
	if err != nil {
		panic(err)
	}
	return l
}
