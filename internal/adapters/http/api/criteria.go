package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/playcall/internal/domain/filter"
)

// Query parameter names.
const (
	paramTeam     = "team"
	paramHome     = "home"
	paramTime     = "time"
	paramMargin   = "margin"
	paramStatus   = "status"
	paramPosition = "position"
	paramYards    = "yards"
	paramDown     = "down"
	paramDistance = "distance"
	paramLimit    = "limit"
)

// maxKeyPlayLimit caps GET /api/summary?limit.
const maxKeyPlayLimit = 100

// teamResolver maps a team display name to its id.
type teamResolver func(ctx context.Context, name string) (int, error)

// parseCriteria overrides base with every dimension present in q. A present
// but empty parameter selects nothing.
func parseCriteria(ctx context.Context, q url.Values, base filter.Criteria, resolve teamResolver) (filter.Criteria, error) {
	c := base
	var err error

	if raw, ok := lookup(q, paramTeam); ok {
		if c.Teams, err = parseTeams(ctx, raw, resolve); err != nil {
			return filter.Criteria{}, err
		}
	}
	if raw, ok := lookup(q, paramHome); ok {
		if c.HomeAway, err = parseSettings(raw); err != nil {
			return filter.Criteria{}, err
		}
	}
	ints := []struct {
		name string
		dst  *filter.Set[int]
	}{
		{paramTime, &c.TimeBuckets},
		{paramMargin, &c.MarginBuckets},
		{paramStatus, &c.ScoreStatuses},
		{paramPosition, &c.FieldPositions},
		{paramDown, &c.Downs},
		{paramDistance, &c.Distances},
	}
	for _, d := range ints {
		raw, ok := lookup(q, d.name)
		if !ok {
			continue
		}
		if *d.dst, err = parseInts(d.name, raw); err != nil {
			return filter.Criteria{}, err
		}
	}
	if raw, ok := lookup(q, paramYards); ok {
		if _, both := lookup(q, paramPosition); both {
			return filter.Criteria{}, fmt.Errorf("%w: %s and %s are exclusive", ErrBadRequest, paramPosition, paramYards)
		}
		if c.FieldPositions, err = parseYards(raw); err != nil {
			return filter.Criteria{}, err
		}
	}
	return c, nil
}

// parseLimit reads the key play limit, def when absent.
func parseLimit(q url.Values, def int) (int, error) {
	raw, ok := lookup(q, paramLimit)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 || n > maxKeyPlayLimit {
		return 0, fmt.Errorf("%w: %s must be an integer in 0..%d", ErrBadRequest, paramLimit, maxKeyPlayLimit)
	}
	return n, nil
}

// lookup joins repeated parameters, so ?down=1&down=2 equals ?down=1,2.
func lookup(q url.Values, name string) (string, bool) {
	vs, ok := q[name]
	if !ok {
		return "", false
	}
	return strings.Join(vs, ","), true
}

func parseInts(name, raw string) (filter.Set[int], error) {
	s, err := filter.ParseInts(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBadRequest, name, err)
	}
	return s, nil
}

func parseSettings(raw string) (filter.Set[bool], error) {
	s, err := filter.ParseSettings(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBadRequest, paramHome, err)
	}
	return s, nil
}

// parseTeams accepts ids, id ranges and display names.
func parseTeams(ctx context.Context, raw string, resolve teamResolver) (filter.Set[int], error) {
	out := filter.Set[int]{}
	for _, tok := range filter.Tokens(raw) {
		if lo, hi, err := filter.ParseSpan(tok); err == nil {
			for v := lo; v <= hi; v++ {
				out[v] = struct{}{}
			}
			continue
		}
		id, err := resolve(ctx, tok)
		if err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	return out, nil
}

func parseYards(raw string) (filter.Set[int], error) {
	s, err := filter.ParseYards(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBadRequest, paramYards, err)
	}
	return s, nil
}
