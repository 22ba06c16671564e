// Package playtype holds the play-type identifier tables used to clean and
// categorize plays. Identifiers follow the ESPN play type codes carried by
// the raw play table.
package playtype

import "slices"

// Category is a reporting bucket for play types.
type Category string

// Reporting categories in display order.
const (
	Pass      Category = "Pass"
	Run       Category = "Run"
	FieldGoal Category = "Field Goal"
	Punt      Category = "Punt"
	Penalty   Category = "Penalty"
)

// Categories lists every category in the order breakdowns are reported.
var Categories = []Category{Pass, Run, FieldGoal, Punt, Penalty}

// Raw play type identifiers.
const (
	PassIncompletion       = 3
	Rush                   = 5
	Sack                   = 7
	PenaltyPlay            = 8
	FumbleRecoveryOwn      = 9
	KickoffReturnOffense   = 12
	BlockedPunt            = 17
	BlockedFieldGoal       = 18
	Timeout                = 21
	PassReception          = 24
	PassInterceptionReturn = 26
	FumbleRecoveryOpponent = 29
	KickoffReturnTouchdown = 32
	InterceptionReturnTD   = 36
	BlockedPuntTouchdown   = 37
	BlockedFieldGoalTD     = 38
	FumbleReturnTouchdown  = 39
	PassGeneric            = 51
	PuntKick               = 52
	Kickoff                = 53
	FieldGoalGood          = 59
	FieldGoalMissed        = 60
	EndOfPeriod            = 2
	EndOfHalf              = 65
	EndOfGame              = 66
	PassingTouchdown       = 67
	RushingTouchdown       = 68
	CoinToss               = 70
	TwoMinuteWarning       = 75
	EndOfRegulation        = 79
)

type idSet map[int]struct{}

func newSet(ids ...int) idSet {
	s := make(idSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Administrative, non-play events removed at load time.
var administrative = newSet(EndOfPeriod, Timeout, EndOfHalf, EndOfGame, CoinToss, TwoMinuteWarning, EndOfRegulation)

// Category membership. The sets are disjoint.
var categories = map[Category]idSet{
	Pass:      newSet(PassIncompletion, Sack, PassReception, PassInterceptionReturn, InterceptionReturnTD, PassGeneric, PassingTouchdown),
	Run:       newSet(Rush, FumbleRecoveryOwn, FumbleRecoveryOpponent, FumbleReturnTouchdown, RushingTouchdown),
	FieldGoal: newSet(BlockedFieldGoal, BlockedFieldGoalTD, FieldGoalGood, FieldGoalMissed),
	Punt:      newSet(BlockedPunt, BlockedPuntTouchdown, PuntKick),
	Penalty:   newSet(PenaltyPlay),
}

// Interceptions and lost fumbles.
var turnovers = newSet(PassInterceptionReturn, InterceptionReturnTD, FumbleRecoveryOpponent, FumbleReturnTouchdown)

// IsAdministrative reports whether id is a non-play event.
func IsAdministrative(id int) bool {
	_, ok := administrative[id]
	return ok
}

// CategoryOf returns the category of id, or false if id belongs to none
// (kickoffs, for example).
func CategoryOf(id int) (Category, bool) {
	for _, c := range Categories {
		if _, ok := categories[c][id]; ok {
			return c, true
		}
	}
	return "", false
}

// IsSpecialTeams reports whether id is a punt or field-goal play.
func IsSpecialTeams(id int) bool {
	c, ok := CategoryOf(id)
	return ok && (c == Punt || c == FieldGoal)
}

// IsTurnover reports whether id is an interception or a lost fumble.
func IsTurnover(id int) bool {
	_, ok := turnovers[id]
	return ok
}

// IDs returns the identifiers of category c in ascending order.
func IDs(c Category) []int {
	set := categories[c]
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
