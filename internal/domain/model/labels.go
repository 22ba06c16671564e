package model

import "fmt"

// Label pairs a display label with the categorical value it selects.
type Label struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Score status values, from the offensive team's perspective.
const (
	StatusTied     = 0
	StatusLeading  = 1
	StatusTrailing = 2
)

// TimeBucketLabels lists the time filter options in display order.
var TimeBucketLabels = []Label{
	{Label: "1st Quarter", Value: 1},
	{Label: "2nd Quarter", Value: 2},
	{Label: "3rd Quarter", Value: 3},
	{Label: "4th Quarter", Value: 4},
	{Label: "2-Minute Drill", Value: 5},
}

// MarginBucketLabels lists the scoring margin options.
var MarginBucketLabels = []Label{
	{Label: "Tied", Value: 0},
	{Label: "1-Score", Value: 1},
	{Label: "2-Score", Value: 2},
	{Label: "3-Score +", Value: 3},
}

// ScoreStatusLabels lists the leading/trailing options.
var ScoreStatusLabels = []Label{
	{Label: "Tied", Value: StatusTied},
	{Label: "Leading", Value: StatusLeading},
	{Label: "Trailing", Value: StatusTrailing},
}

// SettingLabels maps the home/away options; Value 1 selects home plays.
var SettingLabels = []Label{
	{Label: "Home", Value: 1},
	{Label: "Away", Value: 0},
}

// YardLineLabel renders a -50..50 slider position, negative being the
// offense's own side.
func YardLineLabel(yard int) string {
	switch {
	case yard < 0:
		return fmt.Sprintf("Own %d", 50+yard)
	case yard > 0:
		return fmt.Sprintf("Opposing %d", 50-yard)
	default:
		return "Midfield (50-yard line)"
	}
}
