// Package report builds a one-off scenario report from the configured raw
// tables without starting the HTTP service.
package report

import "io"

// Config holds the options of one report run. Empty selectors keep the
// dashboard defaults.
type Config struct {
	ConfigFile string // YAML config file, PLAYCALL_CONFIG when empty
	Team       string // Team display name or id
	Home       string // home, away or both ("home,away")
	Time       string // Time buckets, e.g. "1,2" or "1-5"
	Margin     string // Margin buckets
	Status     string // Score statuses
	Down       string // Downs
	Distance   string // Yards to go, e.g. "1-10"
	Yards      string // Slider window "lo,hi" on -50..50
	Limit      int    // Key plays to list
	JSON       bool   // Emit JSON instead of text
	Out        io.Writer
}
