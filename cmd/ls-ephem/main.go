// Command ls-ephem is a terminal almanac for the solar system, computed
// entirely offline from built-in ephemeris models.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-ephem/internal/almanac"
	"github.com/litescript/ls-ephem/internal/astro"
	"github.com/litescript/ls-ephem/internal/logging"
	"github.com/litescript/ls-ephem/internal/state"
	"github.com/litescript/ls-ephem/internal/ui"
)

// CLI flags for headless mode
var (
	summaryMode   bool
	eventsMode    bool
	moonMode      bool
	jsonPath      string
	watchInterval time.Duration
	dateStr       string
	eventDays     float64
)

const (
	defaultRefresh = 60 * time.Second
	minRefresh     = 5 * time.Second
	maxRefresh     = 1 * time.Hour
)

func main() {
	// Parse flags
	lat := flag.Float64("lat", 34.2, "Observer latitude in degrees (north positive)")
	lon := flag.Float64("lon", -118.17, "Observer longitude in degrees (east positive)")
	elev := flag.Float64("elev", 300, "Observer elevation in meters above sea level")
	refresh := flag.Duration("refresh", defaultRefresh, "Recompute interval (e.g., 30s, 5m)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&summaryMode, "summary", false, "Print almanac table instead of TUI")
	flag.BoolVar(&eventsMode, "events", false, "Print upcoming sky events")
	flag.BoolVar(&moonMode, "moon", false, "Print moon phase card")
	flag.StringVar(&jsonPath, "json", "", "Export JSON almanac to file (use - for stdout)")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat headless output at interval (e.g., 1m)")
	flag.StringVar(&dateStr, "date", "", "Compute for a fixed UTC time (RFC3339 or YYYY-MM-DD) instead of now")
	flag.Float64Var(&eventDays, "days", 30, "Event search window in days")
	flag.Parse()

	// Validate refresh interval
	if *refresh < minRefresh {
		*refresh = minRefresh
	} else if *refresh > maxRefresh {
		*refresh = maxRefresh
	}

	// Set up logging
	logger := logging.New(logging.ParseLevel(*logLevel))

	observer := astro.Observer{Latitude: *lat, Longitude: *lon, Height: *elev}
	if observer.Latitude < -90 || observer.Latitude > 90 {
		fmt.Fprintln(os.Stderr, "Error: latitude must be in [-90, +90]")
		os.Exit(1)
	}

	var fixedTime *astro.Time
	if dateStr != "" {
		t, err := parseDate(dateStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: bad -date value: %v\n", err)
			os.Exit(1)
		}
		fixedTime = &t
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Initialize state
	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = *refresh
	stateCfg.Observer = observer
	stateMgr := state.NewManager(stateCfg)

	// Headless mode: no TUI
	headless := summaryMode || eventsMode || moonMode || jsonPath != ""
	if headless {
		runHeadless(ctx, stateMgr, fixedTime, logger)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: stdout is not a terminal; use -summary, -events, or -json")
		os.Exit(1)
	}

	// Create TUI model
	model := ui.New(stateMgr)

	// Create Bubble Tea program
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Start compute loop in background
	go runComputeLoop(ctx, stateMgr, p, fixedTime, logger)

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// parseDate accepts either an RFC3339 timestamp or a bare calendar date.
func parseDate(s string) (astro.Time, error) {
	var t time.Time
	var err error
	if t, err = time.Parse(time.RFC3339, s); err != nil {
		if t, err = time.Parse("2006-01-02", s); err != nil {
			return astro.Time{}, fmt.Errorf("want RFC3339 or YYYY-MM-DD, got %q", s)
		}
	}
	u := t.UTC()
	sec := float64(u.Second()) + float64(u.Nanosecond())/1e9
	return astro.MakeTime(u.Year(), int(u.Month()), u.Day(), u.Hour(), u.Minute(), sec), nil
}

func computeTime(fixedTime *astro.Time) astro.Time {
	if fixedTime != nil {
		return *fixedTime
	}
	return astro.CurrentTime()
}

func runComputeLoop(ctx context.Context, stateMgr *state.Manager, p *tea.Program, fixedTime *astro.Time, logger *logging.Logger) {
	// Compute immediately on startup
	doCompute(stateMgr, p, fixedTime, logger)

	ticker := time.NewTicker(stateMgr.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Compute loop shutting down")
			return
		case <-ticker.C:
			doCompute(stateMgr, p, fixedTime, logger)
		}
	}
}

func doCompute(stateMgr *state.Manager, p *tea.Program, fixedTime *astro.Time, logger *logging.Logger) {
	when := computeTime(fixedTime)
	observer := stateMgr.Observer()

	logger.Debug("Computing almanac for %s", when)
	start := time.Now()

	entries, moon, events, err := computeAll(when, observer)
	duration := time.Since(start)

	if err != nil {
		logger.Error("Compute failed: %v", err)
		stateMgr.Update(nil, almanac.MoonInfo{}, nil, when, duration, err)
		p.Send(ui.ErrorMsg{Error: err})
		return
	}

	logger.Debug("Compute complete: %d bodies, %d events in %v", len(entries), len(events), duration)

	stateMgr.Update(entries, moon, events, when, duration, nil)
	p.Send(ui.DataUpdateMsg{Snapshot: stateMgr.Snapshot()})
}

// computeAll produces the full almanac state for one instant.
func computeAll(when astro.Time, observer astro.Observer) ([]almanac.Entry, almanac.MoonInfo, []almanac.Event, error) {
	entries, err := almanac.Compute(when, observer)
	if err != nil {
		return nil, almanac.MoonInfo{}, nil, fmt.Errorf("compute positions: %w", err)
	}

	moon, err := almanac.ComputeMoonInfo(when)
	if err != nil {
		return nil, almanac.MoonInfo{}, nil, fmt.Errorf("compute moon phase: %w", err)
	}

	events, err := almanac.UpcomingEvents(when, eventDays)
	if err != nil {
		return nil, almanac.MoonInfo{}, nil, fmt.Errorf("compute events: %w", err)
	}

	return entries, moon, events, nil
}

// runHeadless handles all headless modes without starting the TUI.
func runHeadless(ctx context.Context, stateMgr *state.Manager, fixedTime *astro.Time, logger *logging.Logger) {
	outputOnce := func() error {
		when := computeTime(fixedTime)
		observer := stateMgr.Observer()

		start := time.Now()
		entries, moon, events, err := computeAll(when, observer)
		if err != nil {
			return err
		}
		stateMgr.Update(entries, moon, events, when, time.Since(start), nil)

		// Export JSON if requested
		if jsonPath != "" {
			export := almanac.Export(when, observer, entries, events)
			if jsonPath == "-" {
				if err := export.WriteJSON(os.Stdout); err != nil {
					return fmt.Errorf("write JSON to stdout: %w", err)
				}
			} else {
				f, err := os.Create(jsonPath)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				defer f.Close()
				if err := export.WriteJSON(f); err != nil {
					return fmt.Errorf("write JSON to file: %w", err)
				}
			}
		}

		// Print almanac table if requested
		if summaryMode {
			almanac.WriteTable(os.Stdout, when, observer, entries)
		}

		// Moon phase card
		if moonMode {
			if summaryMode {
				fmt.Println()
			}
			almanac.WriteMoon(os.Stdout, when, moon)
		}

		// Events list
		if eventsMode {
			if summaryMode || moonMode {
				fmt.Println()
			}
			almanac.WriteEvents(os.Stdout, events)
		}

		return nil
	}

	// Single run
	if watchInterval == 0 {
		if err := outputOnce(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Watch mode: repeat at interval
	if err := outputOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Println() // Blank line between outputs
			if err := outputOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}
