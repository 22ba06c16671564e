package filter_test

import (
	"testing"

	"github.com/okian/playcall/internal/domain/filter"
	"github.com/okian/playcall/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func ptr[T any](v T) *T { return &v }

func play(text string, team int, home bool, bucket, margin, status, pos, down, dist int) model.EnrichedPlay {
	return model.EnrichedPlay{
		PlayRecord:              model.PlayRecord{TeamID: team, Down: down, Distance: dist, Text: text},
		IsHomeTeam:              ptr(home),
		TimeBucket:              bucket,
		ScoreMarginBucket:       ptr(margin),
		ScoreStatus:             ptr(status),
		NormalizedFieldPosition: pos,
	}
}

func texts(rows []model.EnrichedPlay) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Text
	}
	return out
}

func table() []model.EnrichedPlay {
	return []model.EnrichedPlay{
		play("a", 1, true, 1, 0, 0, 25, 1, 10),
		play("b", 1, false, 2, 1, 1, 40, 2, 6),
		play("c", 2, true, 5, 2, 2, 10, 3, 3),
		play("d", 1, true, 4, 3, 2, 50, 4, 1),
		play("e", 1, false, 3, 1, 1, 0, 3, 22),
	}
}

func TestApply(t *testing.T) {
	Convey("Given an enriched table", t, func() {
		rows := table()

		Convey("When every valid value is selected", func() {
			out := filter.Apply(rows, filter.AllInclusive(rows))

			Convey("Then the full table comes back in order", func() {
				So(out, ShouldResemble, rows)
			})
		})

		Convey("When any single dimension has an empty selection", func() {
			all := filter.AllInclusive(rows)
			mutations := []func(*filter.Criteria){
				func(c *filter.Criteria) { c.Teams = filter.Set[int]{} },
				func(c *filter.Criteria) { c.HomeAway = nil },
				func(c *filter.Criteria) { c.TimeBuckets = filter.Of[int]() },
				func(c *filter.Criteria) { c.MarginBuckets = nil },
				func(c *filter.Criteria) { c.ScoreStatuses = nil },
				func(c *filter.Criteria) { c.FieldPositions = nil },
				func(c *filter.Criteria) { c.Downs = nil },
				func(c *filter.Criteria) { c.Distances = nil },
			}

			Convey("Then nothing matches", func() {
				for _, m := range mutations {
					c := all
					m(&c)
					So(filter.Apply(rows, c), ShouldBeEmpty)
				}
			})
		})

		Convey("When narrowing to one team on third and fourth down", func() {
			c := filter.AllInclusive(rows)
			c.Teams = filter.Of(1)
			c.Downs = filter.Of(3, 4)
			out := filter.Apply(rows, c)

			Convey("Then only matching rows remain in input order", func() {
				So(texts(out), ShouldResemble, []string{"d", "e"})
			})
		})

		Convey("When selecting away plays while leading", func() {
			c := filter.AllInclusive(rows)
			c.HomeAway = filter.Of(false)
			c.ScoreStatuses = filter.Of(model.StatusLeading)
			So(texts(filter.Apply(rows, c)), ShouldResemble, []string{"b", "e"})
		})

		Convey("When selecting a distance range and field positions", func() {
			c := filter.AllInclusive(rows)
			c.Distances = filter.Range(1, 10)
			c.FieldPositions = filter.Range(20, 50)
			So(texts(filter.Apply(rows, c)), ShouldResemble, []string{"a", "b", "d"})
		})

		Convey("When the table is empty", func() {
			So(filter.Apply(nil, filter.AllInclusive(nil)), ShouldBeEmpty)
		})
	})

	Convey("Given a play whose game outcome is missing", t, func() {
		orphan := model.EnrichedPlay{PlayRecord: model.PlayRecord{TeamID: 1, Down: 1, Distance: 10}, TimeBucket: 1, NormalizedFieldPosition: 25}
		rows := []model.EnrichedPlay{orphan}

		Convey("Then it never matches even with all-inclusive criteria", func() {
			So(filter.Apply(rows, filter.AllInclusive(rows)), ShouldBeEmpty)
		})
	})
}

func TestSets(t *testing.T) {
	Convey("Given set helpers", t, func() {
		So(filter.Sorted(filter.Range(3, 1)), ShouldResemble, []int{1, 2, 3})
		So(filter.Range(1, 30).Has(30), ShouldBeTrue)
		So(filter.Of(1, 2).Union(filter.Of(3)).Has(3), ShouldBeTrue)
		So(filter.Set[int](nil).Has(0), ShouldBeFalse)
	})

	Convey("Given a slider yard range", t, func() {
		Convey("Then both halves fold onto distance from the goal line", func() {
			So(filter.Sorted(filter.YardRange(-25, 25)), ShouldResemble, filter.Sorted(filter.Range(25, 50)))
			So(filter.Sorted(filter.YardRange(40, 50)), ShouldResemble, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
			So(filter.Sorted(filter.YardRange(-50, -50)), ShouldResemble, []int{0})
			So(filter.Sorted(filter.YardRange(0, 0)), ShouldResemble, []int{50})
		})
	})

	Convey("Given the dashboard defaults", t, func() {
		c := filter.DashboardDefaults(12)
		So(c.Teams.Has(12), ShouldBeTrue)
		So(len(c.TimeBuckets), ShouldEqual, 5)
		So(len(c.MarginBuckets), ShouldEqual, 4)
		So(len(c.ScoreStatuses), ShouldEqual, 3)
		So(len(c.Downs), ShouldEqual, 4)
		So(filter.Sorted(c.Distances), ShouldResemble, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	})
}
