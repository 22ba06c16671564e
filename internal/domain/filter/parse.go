package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxSpan bounds the width of a parsed "lo-hi" range.
const MaxSpan = 1000

// ErrSyntax reports a malformed selection expression.
var ErrSyntax = errors.New("invalid selection")

// Tokens splits a comma list, dropping blanks.
func Tokens(raw string) []string {
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ParseSpan parses "n" or "lo-hi". A leading minus belongs to lo, so "-5--1"
// is the range -5..-1.
func ParseSpan(tok string) (int, int, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0, 0, fmt.Errorf("%w: empty value", ErrSyntax)
	}
	sep := strings.Index(tok[1:], "-")
	if sep < 0 {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q", ErrSyntax, tok)
		}
		return v, v, nil
	}
	sep++
	lo, err1 := strconv.Atoi(strings.TrimSpace(tok[:sep]))
	hi, err2 := strconv.Atoi(strings.TrimSpace(tok[sep+1:]))
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("%w: range %q", ErrSyntax, tok)
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi-lo > MaxSpan {
		return 0, 0, fmt.Errorf("%w: range %q is wider than %d", ErrSyntax, tok, MaxSpan)
	}
	return lo, hi, nil
}

// ParseInts parses a comma list of values and ranges, e.g. "1,3-4". An empty
// string is the empty selection.
func ParseInts(raw string) (Set[int], error) {
	out := Set[int]{}
	for _, tok := range Tokens(raw) {
		lo, hi, err := ParseSpan(tok)
		if err != nil {
			return nil, err
		}
		for v := lo; v <= hi; v++ {
			out[v] = struct{}{}
		}
	}
	return out, nil
}

// ParseSettings parses home/away selections: home, away, true, false, 1, 0.
func ParseSettings(raw string) (Set[bool], error) {
	out := Set[bool]{}
	for _, tok := range Tokens(raw) {
		switch strings.ToLower(tok) {
		case "home", "true", "1":
			out[true] = struct{}{}
		case "away", "false", "0":
			out[false] = struct{}{}
		default:
			return nil, fmt.Errorf("%w: setting %q", ErrSyntax, tok)
		}
	}
	return out, nil
}

// ParseYards parses a "lo,hi" slider window on the -50..50 scale.
func ParseYards(raw string) (Set[int], error) {
	toks := Tokens(raw)
	if len(toks) == 0 {
		return Set[int]{}, nil
	}
	if len(toks) != 2 {
		return nil, fmt.Errorf("%w: yard window takes two values lo,hi", ErrSyntax)
	}
	lo, err1 := strconv.Atoi(toks[0])
	hi, err2 := strconv.Atoi(toks[1])
	if err1 != nil || err2 != nil || outOfField(lo) || outOfField(hi) {
		return nil, fmt.Errorf("%w: yard window values must be integers in -%d..%d", ErrSyntax, maxPosition, maxPosition)
	}
	return YardRange(lo, hi), nil
}

func outOfField(y int) bool { return y < -maxPosition || y > maxPosition }
