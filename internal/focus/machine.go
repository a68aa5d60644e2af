// Package focus owns the lifecycle of the one gallery item in focus:
// gesture-triggered selection, trigger throttling and scheduled release.
package focus

import (
	"log"
	"math/rand"
	"sync"
	"time"
)

// Timing defaults. A trigger is accepted only after Cooldown has elapsed
// since the previous accepted trigger, and a focused item is released
// HoldDuration after it was selected.
const (
	Cooldown     = 5 * time.Second
	HoldDuration = 5 * time.Second
)

// State is an immutable snapshot of the machine. A zero FocusedID means no
// item is focused.
type State struct {
	FocusedID    string
	FocusedSince time.Time
}

// scheduleFunc schedules fn to run after d and returns a cancel function.
// Injectable so tests can fire releases deterministically.
type scheduleFunc func(d time.Duration, fn func()) (cancel func() bool)

func realSchedule(d time.Duration, fn func()) func() bool {
	t := time.AfterFunc(d, fn)
	return t.Stop
}

// Machine is the focus state machine. All transitions are serialized under
// one mutex: even if gesture samples arrive in a burst, at most one trigger
// succeeds per cooldown window.
type Machine struct {
	mu            sync.Mutex
	clock         func() time.Time
	schedule      scheduleFunc
	rng           *rand.Rand
	cooldown      time.Duration
	hold          time.Duration
	items         []string
	focusedID     string
	focusedSince  time.Time
	lastTrigger   time.Time
	cancelRelease func() bool
	generation    uint64
	closed        bool
	onChange      []func(State)
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock replaces the wall clock, for tests.
func WithClock(clock func() time.Time) Option {
	return func(m *Machine) { m.clock = clock }
}

// WithSchedule replaces the release scheduler, for tests.
func WithSchedule(schedule func(d time.Duration, fn func()) func() bool) Option {
	return func(m *Machine) { m.schedule = schedule }
}

// WithRand replaces the selection RNG, for deterministic tests.
func WithRand(rng *rand.Rand) Option {
	return func(m *Machine) { m.rng = rng }
}

// WithTiming overrides the cooldown and hold durations.
func WithTiming(cooldown, hold time.Duration) Option {
	return func(m *Machine) {
		m.cooldown = cooldown
		m.hold = hold
	}
}

// New creates a Machine in the Idle state with no items.
func New(opts ...Option) *Machine {
	m := &Machine{
		clock:    time.Now,
		schedule: realSchedule,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		cooldown: Cooldown,
		hold:     HoldDuration,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetItems replaces the selectable item ids. With an empty set every
// trigger is a no-op.
func (m *Machine) SetItems(ids []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]string(nil), ids...)
}

// OnChange registers a callback invoked after every state transition with
// the new state. Callbacks run outside the machine's lock, in registration
// order.
func (m *Machine) OnChange(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = append(m.onChange, fn)
}

// Trigger handles one detected gesture. It selects a random item and
// schedules its release, unless an item is already focused, the cooldown
// has not elapsed, the collection is empty, or the machine is closed.
// A rejected trigger leaves the cooldown window untouched.
// Returns whether a new item entered focus.
func (m *Machine) Trigger() bool {
	m.mu.Lock()

	if m.closed || m.focusedID != "" {
		m.mu.Unlock()
		return false
	}

	now := m.clock()
	if !m.lastTrigger.IsZero() && now.Sub(m.lastTrigger) < m.cooldown {
		m.mu.Unlock()
		return false
	}

	if len(m.items) == 0 {
		m.mu.Unlock()
		log.Println("focus: gesture ignored, collection is empty")
		return false
	}

	// Selection is uniform over the full collection, independent of
	// prior focus history.
	m.focusedID = m.items[m.rng.Intn(len(m.items))]
	m.focusedSince = now
	m.lastTrigger = now
	m.generation++

	gen := m.generation
	m.cancelRelease = m.schedule(m.hold, func() {
		m.release(gen)
	})

	state := m.snapshotLocked()
	notify := m.onChange
	m.mu.Unlock()

	for _, fn := range notify {
		fn(state)
	}
	return true
}

// release is the deferred auto-release. The generation guard discards
// stale timer callbacks that fire after Close or after a newer focus.
func (m *Machine) release(gen uint64) {
	m.mu.Lock()

	if m.closed || gen != m.generation || m.focusedID == "" {
		m.mu.Unlock()
		return
	}

	m.focusedID = ""
	m.focusedSince = time.Time{}
	m.cancelRelease = nil

	state := m.snapshotLocked()
	notify := m.onChange
	m.mu.Unlock()

	for _, fn := range notify {
		fn(state)
	}
}

// Snapshot returns the current state.
func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// FocusedID returns the focused item id, or "" when idle.
func (m *Machine) FocusedID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.focusedID
}

func (m *Machine) snapshotLocked() State {
	return State{
		FocusedID:    m.focusedID,
		FocusedSince: m.focusedSince,
	}
}

// Close tears the machine down: the pending release is canceled and all
// further triggers and timer callbacks become no-ops. No state is written
// after Close returns.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true

	if m.cancelRelease != nil {
		m.cancelRelease()
		m.cancelRelease = nil
	}
}
