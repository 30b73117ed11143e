package state

import (
	"sync"
	"testing"
	"time"

	"github.com/litescript/ls-ephem/internal/almanac"
	"github.com/litescript/ls-ephem/internal/astro"
)

func sampleEntries(sunAlt float64) []almanac.Entry {
	return []almanac.Entry{
		{Body: astro.Sun, Name: "Sun", Altitude: sunAlt, Azimuth: 120.0},
		{Body: astro.Moon, Name: "Moon", Altitude: -30.0, Azimuth: 300.0},
	}
}

func TestNewManager(t *testing.T) {
	cfg := DefaultConfig()
	m := NewManager(cfg)

	if m == nil {
		t.Fatal("NewManager returned nil")
	}

	if m.RefreshInterval() != cfg.RefreshInterval {
		t.Errorf("RefreshInterval = %v, want %v", m.RefreshInterval(), cfg.RefreshInterval)
	}

	if m.HasData() {
		t.Error("HasData should be false initially")
	}

	if m.Observer() != cfg.Observer {
		t.Errorf("Observer = %v, want %v", m.Observer(), cfg.Observer)
	}
}

func TestManager_Update(t *testing.T) {
	m := NewManager(DefaultConfig())

	computedAt := astro.MakeTime(2022, 3, 28, 15, 21, 41.0)
	m.Update(sampleEntries(20.0), almanac.MoonInfo{PhaseName: "Full Moon"}, nil, computedAt, 100*time.Millisecond, nil)

	if !m.HasData() {
		t.Error("HasData should be true after Update")
	}

	snap := m.Snapshot()

	if len(snap.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(snap.Entries))
	}
	if snap.Entries[0].Name != "Sun" {
		t.Errorf("first entry = %q, want Sun", snap.Entries[0].Name)
	}
	if snap.Moon.PhaseName != "Full Moon" {
		t.Errorf("Moon.PhaseName = %q, want Full Moon", snap.Moon.PhaseName)
	}
	if snap.ComputedAt.UT != computedAt.UT {
		t.Errorf("ComputedAt = %v, want %v", snap.ComputedAt, computedAt)
	}
	if snap.ComputeDuration != 100*time.Millisecond {
		t.Errorf("ComputeDuration = %v, want 100ms", snap.ComputeDuration)
	}
	if snap.LastError != nil {
		t.Errorf("LastError = %v, want nil", snap.LastError)
	}
}

func TestManager_UpdateWithError(t *testing.T) {
	m := NewManager(DefaultConfig())

	testErr := &testError{msg: "compute failed"}
	m.Update(nil, almanac.MoonInfo{}, nil, astro.Time{}, 50*time.Millisecond, testErr)

	snap := m.Snapshot()

	if len(snap.Entries) != 0 {
		t.Error("Entries should be empty on error")
	}
	if snap.LastError != testErr {
		t.Errorf("LastError = %v, want %v", snap.LastError, testErr)
	}
	if m.HasData() {
		t.Error("HasData should remain false after failed update")
	}
}

func TestManager_BodyHistory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBodyHist = 5
	m := NewManager(cfg)

	for i := 0; i < 10; i++ {
		m.Update(sampleEntries(float64(i)), almanac.MoonInfo{}, nil, astro.Time{}, 0, nil)
	}

	hist := m.GetBodyHistory(astro.Sun)
	if hist == nil {
		t.Fatal("GetBodyHistory returned nil")
	}
	if hist.Name != "Sun" {
		t.Errorf("Name = %q, want Sun", hist.Name)
	}

	// Should only have last 5 entries
	if len(hist.AltHistory) != 5 {
		t.Errorf("AltHistory length = %d, want 5", len(hist.AltHistory))
	}

	// First retained sample is from the 6th update (altitude 5)
	if hist.AltHistory[0].Value != 5 {
		t.Errorf("First altitude = %v, want 5", hist.AltHistory[0].Value)
	}
}

func TestManager_TransitionDetection(t *testing.T) {
	m := NewManager(DefaultConfig())

	// Sun below horizon, then above: one BODY_RISEN event.
	m.Update(sampleEntries(-5.0), almanac.MoonInfo{}, nil, astro.Time{}, 0, nil)
	m.Update(sampleEntries(5.0), almanac.MoonInfo{}, nil, astro.Time{}, 0, nil)

	events := m.RecentEvents(10)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != EventBodyRisen {
		t.Errorf("event type = %q, want BODY_RISEN", events[0].Type)
	}
	if events[0].Body != "Sun" {
		t.Errorf("body = %q, want Sun", events[0].Body)
	}

	// Back below: one BODY_SET event.
	m.Update(sampleEntries(-1.0), almanac.MoonInfo{}, nil, astro.Time{}, 0, nil)
	events = m.RecentEvents(10)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[1].Type != EventBodySet {
		t.Errorf("event type = %q, want BODY_SET", events[1].Type)
	}
}

func TestManager_FirstUpdateNoEvents(t *testing.T) {
	m := NewManager(DefaultConfig())

	// The first compute has no previous cycle to compare with.
	m.Update(sampleEntries(5.0), almanac.MoonInfo{}, nil, astro.Time{}, 0, nil)
	if events := m.RecentEvents(10); len(events) != 0 {
		t.Errorf("expected no events on first update, got %d", len(events))
	}
}

func TestManager_EventRingBuffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEvents = 5
	m := NewManager(cfg)

	// Alternate above/below to generate a transition on each update.
	for i := 0; i < 12; i++ {
		alt := 10.0
		if i%2 == 1 {
			alt = -10.0
		}
		m.Update(sampleEntries(alt), almanac.MoonInfo{}, nil, astro.Time{}, 0, nil)
	}

	events := m.RecentEvents(100)
	if len(events) != 5 {
		t.Errorf("events count = %d, want 5 (max)", len(events))
	}

	for i := 1; i < len(events); i++ {
		if events[i].Timestamp.Before(events[i-1].Timestamp) {
			t.Errorf("events not in chronological order at index %d", i)
		}
	}
}

func TestManager_Snapshot_IsCopy(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.Update(sampleEntries(20.0), almanac.MoonInfo{}, nil, astro.Time{}, 0, nil)

	snap := m.Snapshot()
	snap.Entries[0].Name = "Mutated"

	snap2 := m.Snapshot()
	if snap2.Entries[0].Name == "Mutated" {
		t.Error("Snapshot modification affected manager state")
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager(DefaultConfig())

	var wg sync.WaitGroup
	iterations := 100

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			m.Update(sampleEntries(float64(i%30-15)), almanac.MoonInfo{}, nil, astro.Time{}, time.Duration(i)*time.Millisecond, nil)
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				_ = m.Snapshot()
				_ = m.HasData()
				_ = m.RefreshInterval()
				_ = m.GetBodyHistory(astro.Sun)
				_ = m.RecentEvents(5)
			}
		}()
	}

	wg.Wait()
}

func TestManager_SetRefreshInterval(t *testing.T) {
	m := NewManager(DefaultConfig())

	newInterval := 30 * time.Second
	m.SetRefreshInterval(newInterval)

	if m.RefreshInterval() != newInterval {
		t.Errorf("RefreshInterval = %v, want %v", m.RefreshInterval(), newInterval)
	}
}

type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}
