// Package state provides thread-safe state management for the application.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-ephem/internal/almanac"
	"github.com/litescript/ls-ephem/internal/astro"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventBodyRisen EventType = "BODY_RISEN"
	EventBodySet   EventType = "BODY_SET"
)

// Event records a body crossing the horizon between two compute cycles.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Body      string    `json:"body"`
	Azimuth   float64   `json:"azimuth"`
}

// TimeSeries is a single data point with timestamp.
type TimeSeries struct {
	Timestamp time.Time
	Value     float64
}

// BodyHistory tracks altitude samples for one body, for sparklines.
type BodyHistory struct {
	Body       astro.Body
	Name       string
	AltHistory []TimeSeries
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	// Current state
	entries         []almanac.Entry
	moon            almanac.MoonInfo
	skyEvents       []almanac.Event
	computedAt      astro.Time
	lastCompute     time.Time
	lastError       error
	computeDuration time.Duration

	// Previous above-horizon flags for transition detection
	prevUp map[astro.Body]bool

	// Per-body altitude history
	bodyHistory map[astro.Body]*BodyHistory
	maxBodyHist int

	// Transition log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	// Configuration
	observer        astro.Observer
	refreshInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	MaxBodyHist     int
	MaxEvents       int
	RefreshInterval time.Duration
	Observer        astro.Observer
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxBodyHist:     120, // 2 hours at 1 compute/min
		MaxEvents:       50,
		RefreshInterval: 60 * time.Second,
		Observer:        astro.Observer{Latitude: 34.2, Longitude: -118.17, Height: 300.0},
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		maxBodyHist:     cfg.MaxBodyHist,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
		observer:        cfg.Observer,
		bodyHistory:     make(map[astro.Body]*BodyHistory),
		prevUp:          make(map[astro.Body]bool),
	}
}

// Update atomically replaces the almanac state with a fresh computation.
func (m *Manager) Update(entries []almanac.Entry, moon almanac.MoonInfo, skyEvents []almanac.Event, computedAt astro.Time, computeDuration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastCompute = time.Now()
	m.lastError = err
	m.computeDuration = computeDuration

	if err != nil || entries == nil {
		return
	}

	// Detect horizon crossings before replacing current state
	m.detectTransitions(entries)

	m.entries = entries
	m.moon = moon
	m.skyEvents = skyEvents
	m.computedAt = computedAt

	m.updateBodyHistory(entries)

	m.prevUp = make(map[astro.Body]bool, len(entries))
	for _, e := range entries {
		m.prevUp[e.Body] = e.Up()
	}
}

// detectTransitions compares new entries with the previous compute cycle
// and logs bodies that crossed the horizon.
func (m *Manager) detectTransitions(entries []almanac.Entry) {
	if len(m.prevUp) == 0 {
		return
	}
	now := time.Now()
	for _, e := range entries {
		wasUp, tracked := m.prevUp[e.Body]
		if !tracked || wasUp == e.Up() {
			continue
		}
		typ := EventBodySet
		if e.Up() {
			typ = EventBodyRisen
		}
		m.addEvent(Event{
			Type:      typ,
			Timestamp: now,
			Body:      e.Name,
			Azimuth:   e.Azimuth,
		})
	}
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

func (m *Manager) updateBodyHistory(entries []almanac.Entry) {
	now := time.Now()
	for _, e := range entries {
		hist, ok := m.bodyHistory[e.Body]
		if !ok {
			hist = &BodyHistory{
				Body:       e.Body,
				Name:       e.Name,
				AltHistory: make([]TimeSeries, 0, m.maxBodyHist),
			}
			m.bodyHistory[e.Body] = hist
		}
		hist.AltHistory = append(hist.AltHistory, TimeSeries{Timestamp: now, Value: e.Altitude})
		if len(hist.AltHistory) > m.maxBodyHist {
			hist.AltHistory = hist.AltHistory[1:]
		}
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Entries         []almanac.Entry
	Moon            almanac.MoonInfo
	SkyEvents       []almanac.Event
	ComputedAt      astro.Time
	LastCompute     time.Time
	LastError       error
	ComputeDuration time.Duration
	Observer        astro.Observer
	Events          []Event
	NextRefresh     time.Time
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]almanac.Entry, len(m.entries))
	copy(entries, m.entries)

	skyEvents := make([]almanac.Event, len(m.skyEvents))
	copy(skyEvents, m.skyEvents)

	return Snapshot{
		Entries:         entries,
		Moon:            m.moon,
		SkyEvents:       skyEvents,
		ComputedAt:      m.computedAt,
		LastCompute:     m.lastCompute,
		LastError:       m.lastError,
		ComputeDuration: m.computeDuration,
		Observer:        m.observer,
		Events:          m.getEventsOrdered(),
		NextRefresh:     m.lastCompute.Add(m.refreshInterval),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n horizon-crossing events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// GetBodyHistory returns the altitude history for a body.
func (m *Manager) GetBodyHistory(body astro.Body) *BodyHistory {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hist, ok := m.bodyHistory[body]
	if !ok {
		return nil
	}

	copyHist := &BodyHistory{
		Body:       hist.Body,
		Name:       hist.Name,
		AltHistory: make([]TimeSeries, len(hist.AltHistory)),
	}
	copy(copyHist.AltHistory, hist.AltHistory)
	return copyHist
}

// Observer returns the configured observer location.
func (m *Manager) Observer() astro.Observer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.observer
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// HasData returns true if at least one computation has completed.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries != nil
}
