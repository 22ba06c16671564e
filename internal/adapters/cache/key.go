package cache

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/okian/playcall/internal/domain/filter"
)

// KeyPrefix namespaces every key this service writes.
const KeyPrefix = "playcall"

// Key derives a stable cache key for a query of kind over the snapshot with
// the given fingerprint. Equal criteria always yield equal keys regardless of
// set iteration order.
func Key(kind string, fingerprint uint64, c filter.Criteria, limit int) string {
	var b strings.Builder
	writeInts(&b, "team", c.Teams)
	b.WriteString("home=")
	if c.HomeAway.Has(true) {
		b.WriteByte('1')
	}
	if c.HomeAway.Has(false) {
		b.WriteByte('0')
	}
	b.WriteByte(';')
	writeInts(&b, "time", c.TimeBuckets)
	writeInts(&b, "margin", c.MarginBuckets)
	writeInts(&b, "status", c.ScoreStatuses)
	writeInts(&b, "position", c.FieldPositions)
	writeInts(&b, "down", c.Downs)
	writeInts(&b, "distance", c.Distances)
	b.WriteString("limit=")
	b.WriteString(strconv.Itoa(limit))

	return KeyPrefix + ":" + kind + ":" +
		strconv.FormatUint(fingerprint, 16) + ":" +
		strconv.FormatUint(xxhash.Sum64String(b.String()), 16)
}

func writeInts(b *strings.Builder, name string, s filter.Set[int]) {
	b.WriteString(name)
	b.WriteByte('=')
	for i, v := range filter.Sorted(s) {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte(';')
}
