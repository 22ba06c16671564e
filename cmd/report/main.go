package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/playcall/internal/domain/kpi"
	"github.com/okian/playcall/internal/report"
	"github.com/okian/playcall/pkg/logger"
)

const defaultTimeout = 2 * time.Minute

func main() {
	var (
		team     = flag.String("team", "", "Team display name or id")
		home     = flag.String("home", "", "home, away or home,away")
		timeSel  = flag.String("time", "", "Time buckets, e.g. 4,5 or 1-5")
		margin   = flag.String("margin", "", "Margin buckets, e.g. 0,1")
		status   = flag.String("status", "", "Score statuses (0 tied, 1 leading, 2 trailing)")
		down     = flag.String("down", "", "Downs, e.g. 3 or 3-4")
		distance = flag.String("distance", "", "Yards to go, e.g. 1-3")
		yards    = flag.String("yards", "", "Slider window lo,hi on -50..50")
		limit    = flag.Int("limit", kpi.DefaultKeyPlayLimit, "Number of key plays to list")
		cfgFile  = flag.String("config", "", "YAML config file (default: $PLAYCALL_CONFIG)")
		asJSON   = flag.Bool("json", false, "Emit JSON")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		report.ShowHelp()
		return
	}

	// Logs go to stderr so stdout stays a clean report
	if err := logger.Init(logger.WithOutput(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	_ = logger.SetLevelString("warn")

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	cfg := &report.Config{
		ConfigFile: *cfgFile,
		Team:       *team,
		Home:       *home,
		Time:       *timeSel,
		Margin:     *margin,
		Status:     *status,
		Down:       *down,
		Distance:   *distance,
		Yards:      *yards,
		Limit:      *limit,
		JSON:       *asJSON,
		Out:        os.Stdout,
	}
	if err := report.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("report failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
