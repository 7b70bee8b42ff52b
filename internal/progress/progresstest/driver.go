package progresstest

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Driver runs an Update function the way a bubbletea program would, but
// synchronously and on a virtual clock. Results of commands triggered by
// Dispatch are held in Inbox until Deliver is called, which lets tests
// interleave backend results with animation time.
type Driver struct {
	Clock  *Clock
	Inbox  []tea.Msg
	Update func(tea.Msg) tea.Cmd

	// Observe is called after every message handled by Update
	Observe func(tea.Msg)
}

// NewDriver creates a driver for update on clock
func NewDriver(clock *Clock, update func(tea.Msg) tea.Cmd) *Driver {
	return &Driver{Clock: clock, Update: update}
}

// Dispatch hands msg to Update and executes the resulting commands.
// Produced messages are queued in Inbox.
func (d *Driver) Dispatch(msg tea.Msg) {
	d.Inbox = append(d.Inbox, d.handle(msg)...)
}

// Exec executes cmd and queues its messages in Inbox
func (d *Driver) Exec(cmd tea.Cmd) {
	d.Inbox = append(d.Inbox, d.exec(cmd)...)
}

// Send dispatches msg and delivers everything it produces
func (d *Driver) Send(msg tea.Msg) {
	d.Dispatch(msg)
	d.Deliver()
}

// Deliver feeds queued messages to Update until the inbox is empty
func (d *Driver) Deliver() {
	for len(d.Inbox) > 0 {
		msg := d.Inbox[0]
		d.Inbox = d.Inbox[1:]
		d.Inbox = append(d.Inbox, d.handle(msg)...)
	}
}

// Advance moves the clock forward by dur, firing due timers in order.
// Messages produced by timers are delivered immediately; Inbox is left alone.
func (d *Driver) Advance(dur time.Duration) {
	limit := d.Clock.Now() + dur
	for {
		msg, ok := d.Clock.pop(limit)
		if !ok {
			break
		}
		queue := []tea.Msg{msg}
		for len(queue) > 0 {
			next := queue[0]
			queue = queue[1:]
			queue = append(queue, d.handle(next)...)
		}
	}
	d.Clock.set(limit)
}

func (d *Driver) handle(msg tea.Msg) []tea.Msg {
	cmd := d.Update(msg)
	if d.Observe != nil {
		d.Observe(msg)
	}
	return d.exec(cmd)
}

func (d *Driver) exec(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, d.exec(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}
