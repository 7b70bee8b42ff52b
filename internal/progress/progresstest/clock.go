// Package progresstest drives bubbletea timers on a virtual clock.
package progresstest

import (
	"sort"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type timer struct {
	at   time.Duration
	fire func(time.Time) tea.Msg
	seq  int
}

// Clock is a virtual clock whose Schedule method satisfies progress.Scheduler.
// Timers are registered when the returned command is executed, like tea.Tick.
type Clock struct {
	base   time.Time
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []timer
}

// NewClock returns a clock positioned at zero
func NewClock() *Clock {
	return &Clock{base: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
}

// Schedule registers fn to fire d after the command executes
func (c *Clock) Schedule(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.seq++
		c.timers = append(c.timers, timer{at: c.now + d, fire: fn, seq: c.seq})
		return nil
	}
}

// Now returns the elapsed virtual time
func (c *Clock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending returns the number of registered timers that have not fired
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// pop removes the earliest timer due at or before limit
func (c *Clock) pop(limit time.Duration) (tea.Msg, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.timers) == 0 {
		return nil, false
	}
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].at == c.timers[j].at {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].at < c.timers[j].at
	})
	next := c.timers[0]
	if next.at > limit {
		return nil, false
	}
	c.timers = c.timers[1:]
	c.now = next.at
	return next.fire(c.base.Add(next.at)), true
}

func (c *Clock) set(now time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if now > c.now {
		c.now = now
	}
}
