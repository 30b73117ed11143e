// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Orrery view with log/linear scale modes, JSON export, event search
// 0.2.0 - Sky view with star catalog, rise/set tracking, moon phase panel
// 0.1.0 - Initial release: almanac table, VSOP87 ephemeris, headless modes
