package enrich

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/playcall/internal/domain/model"
)

// Regulation clock constants.
const (
	periodSeconds = 900
	lastPeriod    = 4
)

// Field position zone labels.
const (
	ZoneInsideOwn10     = "Inside Own 10"
	ZoneOwnTerritory    = "Own Territory"
	ZoneOpposing        = "Opposing Territory"
	ZoneRedZone         = "Red Zone"
	ZoneInsideOpponent5 = "Inside Opponent's 5"
	ZoneInvalid         = "Invalid"
)

// ParseClock converts an "MM:SS" game clock into seconds remaining in the period.
func ParseClock(clock string) (int, error) {
	mm, ss, ok := strings.Cut(strings.TrimSpace(clock), ":")
	if !ok || !digits(mm) || len(ss) != 2 || !digits(ss) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedClock, clock)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedClock, clock)
	}
	s, _ := strconv.Atoi(ss)
	if s > 59 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedClock, clock)
	}
	return m*60 + s, nil
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ElapsedSeconds returns the clock's remaining seconds offset by the
// regulation periods still to come after this one. Overtime periods are
// treated as the fourth period. The value decreases as the game goes on.
func ElapsedSeconds(period int, clock string) (int, error) {
	if period < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPeriod, period)
	}
	remaining, err := ParseClock(clock)
	if err != nil {
		return 0, err
	}
	if period > lastPeriod {
		period = lastPeriod
	}
	return remaining + (lastPeriod-period)*periodSeconds, nil
}

// TimeBucket maps elapsed seconds to the time filter bucket. Bucket 5 is
// reached both from the end of the second period and the end of the fourth.
func TimeBucket(elapsed int) (int, error) {
	switch {
	case elapsed >= 2700:
		return 1, nil
	case elapsed >= 1950:
		return 2, nil
	case elapsed >= 1800:
		return 5, nil
	case elapsed >= 900:
		return 3, nil
	case elapsed >= 150:
		return 4, nil
	case elapsed >= 0:
		return 5, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, elapsed)
	}
}

// MarginBucket maps the final score differential to tied, one, two, or
// three-plus scores.
func MarginBucket(homeScore, awayScore int) int {
	diff := homeScore - awayScore
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff == 0:
		return 0
	case diff <= 8:
		return 1
	case diff <= 16:
		return 2
	default:
		return 3
	}
}

// ScoreStatus compares the offense's final score to its opponent's.
func ScoreStatus(own, opponent int) int {
	switch {
	case own > opponent:
		return model.StatusLeading
	case own < opponent:
		return model.StatusTrailing
	default:
		return model.StatusTied
	}
}

// NormalizeFieldPosition folds the raw 0-100 position onto 0-50.
func NormalizeFieldPosition(raw int) int {
	if raw > 50 {
		return 100 - raw
	}
	return raw
}

// FieldPositionZone labels the raw field position. Integer input can never
// fall in the (5, 6) gap between the two lowest bands.
func FieldPositionZone(raw int) string {
	switch {
	case raw >= 90 && raw <= 100:
		return ZoneInsideOwn10
	case raw >= 50 && raw < 90:
		return ZoneOwnTerritory
	case raw >= 20 && raw < 50:
		return ZoneOpposing
	case raw >= 6 && raw < 20:
		return ZoneRedZone
	case raw >= 0 && raw <= 5:
		return ZoneInsideOpponent5
	default:
		return ZoneInvalid
	}
}
