package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText writes r as an aligned plain text report.
func WriteText(w io.Writer, r Result) error {
	s := r.Summary
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s (%s)\tplays matched: %d\n\n", r.Team.DisplayName, r.Team.Abbreviation, s.Matched)

	fmt.Fprintln(tw, "KPI\tcount\trate")
	fmt.Fprintf(tw, "scoring\t%d\t%.1f%%\n", s.KPIs.ScoringPlays, 100*s.KPIs.ScoringRate)
	fmt.Fprintf(tw, "explosive\t%d\t%.1f%%\n", s.KPIs.ExplosivePlays, 100*s.KPIs.ExplosiveRate)
	fmt.Fprintf(tw, "negative\t%d\t%.1f%%\n", s.KPIs.NegativePlays, 100*s.KPIs.NegativeRate)
	fmt.Fprintf(tw, "turnovers\t%d\t%.1f%%\n\n", s.KPIs.Turnovers, 100*s.KPIs.TurnoverRate)

	fmt.Fprintln(tw, "play type\tcount\tshare")
	for _, c := range s.Breakdown.Categories {
		fmt.Fprintf(tw, "%s\t%d\t%.1f%%\n", c.Category, c.Count, 100*c.Percent)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(s.KeyPlays) > 0 {
		fmt.Fprintln(w, "\nkey plays:")
		for i, text := range s.KeyPlays {
			fmt.Fprintf(w, "%2d. %s\n", i+1, text)
		}
	}
	return nil
}
