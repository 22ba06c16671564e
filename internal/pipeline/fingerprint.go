package pipeline

import (
	"encoding/binary"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/okian/playcall/internal/adapters/source"
)

// Fingerprint hashes every raw row so a rebuilt table can be compared with
// the one it replaces. Row order is part of the hash.
func Fingerprint(ds source.Dataset) uint64 {
	h := xxhash.New()
	var buf [8]byte
	num := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		_, _ = h.Write(buf[:])
	}
	str := func(s string) {
		num(len(s))
		_, _ = h.WriteString(s)
	}
	flag := func(b bool) { str(strconv.FormatBool(b)) }

	str("teams")
	num(len(ds.Teams))
	for _, t := range ds.Teams {
		num(t.ID)
		str(t.DisplayName)
		str(t.Abbreviation)
		str(t.Logo)
	}
	str("team_games")
	num(len(ds.TeamGames))
	for _, g := range ds.TeamGames {
		num(g.GameID)
		num(g.TeamID)
		str(g.HomeAway)
		num(g.Score)
		flag(g.Winner)
		str(g.Record)
		str(g.Abbreviation)
	}
	str("plays")
	num(len(ds.Plays))
	for _, p := range ds.Plays {
		num(p.GameID)
		num(p.TeamID)
		num(p.Period)
		str(p.Clock)
		num(p.FieldPosition)
		num(p.Down)
		num(p.Distance)
		num(p.Yards)
		flag(p.Scoring)
		num(p.PlayTypeID)
		str(p.Text)
	}
	return h.Sum64()
}
