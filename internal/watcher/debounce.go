package watcher

import (
	"fmt"
	"sync"
	"time"
)

// Debouncer holds back events from an inner watcher until a file has been
// quiet for a delay. An editor save (write a temporary file, rename it over
// the translator, touch it again) reaches the reader as one event whose Op
// combines every change seen.
//
// Watch, Unwatch, IsWatching and WatchedPaths go straight to the inner
// watcher. All pending state is owned by a single goroutine.
type Debouncer struct {
	Watcher

	delay  time.Duration
	events chan Event
	errors chan error

	flush   chan chan struct{}
	pending chan chan int

	done     chan struct{}
	exited   chan struct{}
	once     sync.Once
	closeErr error
}

// change is an event waiting for its file to go quiet.
type change struct {
	event Event
	due   time.Time
}

// NewDebouncer wraps inner. A non-positive delay uses the default.
func NewDebouncer(inner Watcher, delay time.Duration) *Debouncer {
	defaults := DefaultConfig()
	if delay <= 0 {
		delay = defaults.DebounceDelay
	}

	d := &Debouncer{
		Watcher: inner,
		delay:   delay,
		events:  make(chan Event, defaults.BufferSize),
		errors:  make(chan error, defaults.BufferSize),
		flush:   make(chan chan struct{}),
		pending: make(chan chan int),
		done:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
	go d.run()
	return d
}

// Events returns the debounced event channel. It is closed by Close or
// when the inner watcher stops.
func (d *Debouncer) Events() <-chan Event {
	return d.events
}

// Errors returns the inner watcher's errors plus dropped-event reports.
func (d *Debouncer) Errors() <-chan error {
	return d.errors
}

// Close discards pending changes and closes the inner watcher.
func (d *Debouncer) Close() error {
	d.once.Do(func() {
		close(d.done)
		<-d.exited
		d.closeErr = d.Watcher.Close()
	})
	return d.closeErr
}

// Flush delivers every pending change now.
func (d *Debouncer) Flush() {
	reply := make(chan struct{})
	select {
	case d.flush <- reply:
		<-reply
	case <-d.exited:
	}
}

// Pending returns the number of files with changes not yet delivered.
func (d *Debouncer) Pending() int {
	reply := make(chan int, 1)
	select {
	case d.pending <- reply:
		return <-reply
	case <-d.exited:
		return 0
	}
}

func (d *Debouncer) run() {
	defer close(d.exited)
	defer close(d.errors)
	defer close(d.events)

	changes := make(map[string]*change)
	timer := time.NewTimer(d.delay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-d.done:
			return

		case ev, ok := <-d.Watcher.Events():
			if !ok {
				return
			}
			due := time.Now().Add(d.delay)
			if c, seen := changes[ev.Path]; seen {
				c.event.Op |= ev.Op
				c.event.Timestamp = ev.Timestamp
				c.due = due
			} else {
				changes[ev.Path] = &change{event: ev, due: due}
			}
			d.rearm(timer, changes)

		case err, ok := <-d.Watcher.Errors():
			if !ok {
				return
			}
			d.report(err)

		case now := <-timer.C:
			d.release(changes, func(c *change) bool { return !c.due.After(now) })
			d.rearm(timer, changes)

		case reply := <-d.flush:
			d.release(changes, func(*change) bool { return true })
			timer.Stop()
			close(reply)

		case reply := <-d.pending:
			reply <- len(changes)
		}
	}
}

// release delivers and forgets the changes selected by ready.
func (d *Debouncer) release(changes map[string]*change, ready func(*change) bool) {
	for path, c := range changes {
		if !ready(c) {
			continue
		}
		delete(changes, path)
		select {
		case d.events <- c.event:
		default:
			d.report(fmt.Errorf("event channel full, dropping %s event for %s", c.event.Op, path))
		}
	}
}

// rearm points the timer at the earliest due change, or stops it.
func (d *Debouncer) rearm(timer *time.Timer, changes map[string]*change) {
	var next time.Time
	for _, c := range changes {
		if next.IsZero() || c.due.Before(next) {
			next = c.due
		}
	}
	if next.IsZero() {
		timer.Stop()
		return
	}
	timer.Reset(time.Until(next))
}

func (d *Debouncer) report(err error) {
	select {
	case d.errors <- err:
	default:
	}
}

var _ Watcher = (*Debouncer)(nil)
