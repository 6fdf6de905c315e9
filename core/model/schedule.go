package model

import "fmt"

// Schedule is the engine's primary output: one on/off state per (pump, slot)
// pair. It is immutable once returned by a solve or baseline run.
type Schedule struct {
	pumpIDs []string
	horizon int
	on      []bool // row-major, pump index * horizon + slot
}

// NewSchedule creates an all-off schedule for the given pumps and horizon.
func NewSchedule(pumpIDs []string, horizon int) *Schedule {
	ids := make([]string, len(pumpIDs))
	copy(ids, pumpIDs)
	return &Schedule{
		pumpIDs: ids,
		horizon: horizon,
		on:      make([]bool, len(pumpIDs)*horizon),
	}
}

// PumpIDs returns the pump identifiers, in catalog order.
func (s *Schedule) PumpIDs() []string {
	ids := make([]string, len(s.pumpIDs))
	copy(ids, s.pumpIDs)
	return ids
}

// Horizon returns the number of slots covered.
func (s *Schedule) Horizon() int { return s.horizon }

// Set flips the state of pump p at slot t.
func (s *Schedule) Set(p, t int, active bool) {
	s.on[p*s.horizon+t] = active
}

// On reports whether pump p is active during slot t.
func (s *Schedule) On(p, t int) bool {
	return s.on[p*s.horizon+t]
}

// ActiveSlots returns the number of slots pump p runs over the horizon.
func (s *Schedule) ActiveSlots(p int) int {
	var n int
	for t := 0; t < s.horizon; t++ {
		if s.On(p, t) {
			n++
		}
	}
	return n
}

// Startups counts off-to-on transitions for pump p. With dailyReset the
// previous state is considered off at every 24-slot boundary, so a pump
// running across midnight is charged a new startup on the next day.
func (s *Schedule) Startups(p int, dailyReset bool) int {
	var count int
	prev := false
	for t := 0; t < s.horizon; t++ {
		if dailyReset && t%SlotsPerDay == 0 {
			prev = false
		}
		if s.On(p, t) && !prev {
			count++
		}
		prev = s.On(p, t)
	}
	return count
}

// StartupsByDay counts off-to-on transitions for pump p split by day block.
func (s *Schedule) StartupsByDay(p int, dailyReset bool) []int {
	days := (s.horizon + SlotsPerDay - 1) / SlotsPerDay
	counts := make([]int, days)
	prev := false
	for t := 0; t < s.horizon; t++ {
		if dailyReset && t%SlotsPerDay == 0 {
			prev = false
		}
		if s.On(p, t) && !prev {
			counts[t/SlotsPerDay]++
		}
		prev = s.On(p, t)
	}
	return counts
}

// String renders the schedule as a compact pump-by-slot matrix for logs.
func (s *Schedule) String() string {
	out := ""
	for p, id := range s.pumpIDs {
		row := make([]byte, s.horizon)
		for t := 0; t < s.horizon; t++ {
			if s.On(p, t) {
				row[t] = '1'
			} else {
				row[t] = '0'
			}
		}
		out += fmt.Sprintf("%s %s\n", id, row)
	}
	return out
}
