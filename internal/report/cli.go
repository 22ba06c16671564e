package report

import "os"

// ShowHelp prints usage information for the report tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Playcall Report
===============

Prints KPIs, the play type breakdown and key plays for one situational
scenario, built straight from the configured raw tables.

Usage:
  report -team "Kansas City Chiefs" [options]

Options:
  -team string       Team display name or id (required)
  -home string       home, away or home,away (default both)
  -time string       Time buckets 1-5, e.g. 1,2 (default all)
  -margin string     Margin buckets 0-3 (default all)
  -status string     0 tied, 1 leading, 2 trailing (default all)
  -down string       Downs, e.g. 3 or 3-4 (default all)
  -distance string   Yards to go (default 1-10)
  -yards string      Slider window lo,hi on -50..50 (default -25,25)
  -limit int         Key plays to list (default 5)
  -json              Emit JSON
  -config string     YAML config file (default $PLAYCALL_CONFIG)
  -help              Show this help message

Examples:
  # Third downs in the fourth quarter and two-minute drill
  report -team "Kansas City Chiefs" -down 3 -time 4,5

  # Plays inside the opponent's 20 when trailing, as JSON
  report -team 12 -status 2 -yards 30,50 -json
`)
}
