package filter_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/playcall/internal/domain/filter"
)

func TestParseInts(t *testing.T) {
	Convey("Given selection expressions", t, func() {
		Convey("Then lists and ranges combine", func() {
			s, err := filter.ParseInts("1, 3-4,2")
			So(err, ShouldBeNil)
			So(filter.Sorted(s), ShouldResemble, []int{1, 2, 3, 4})
		})

		Convey("Then reversed and negative ranges are accepted", func() {
			s, err := filter.ParseInts("4-2,-3--1")
			So(err, ShouldBeNil)
			So(filter.Sorted(s), ShouldResemble, []int{-3, -2, -1, 2, 3, 4})
		})

		Convey("Then an empty expression selects nothing", func() {
			s, err := filter.ParseInts(" , ")
			So(err, ShouldBeNil)
			So(s, ShouldBeEmpty)
		})

		Convey("Then garbage and huge ranges are rejected", func() {
			for _, raw := range []string{"x", "1-", "1-b", "0-5000"} {
				_, err := filter.ParseInts(raw)
				So(errors.Is(err, filter.ErrSyntax), ShouldBeTrue)
			}
		})
	})
}

func TestParseSettings(t *testing.T) {
	Convey("Given home/away expressions", t, func() {
		s, err := filter.ParseSettings("Home,0")
		So(err, ShouldBeNil)

		Convey("Then names and flags map to the home side", func() {
			So(s.Has(true), ShouldBeTrue)
			So(s.Has(false), ShouldBeTrue)
		})

		Convey("Then unknown words are rejected", func() {
			_, err := filter.ParseSettings("neutral")
			So(errors.Is(err, filter.ErrSyntax), ShouldBeTrue)
		})
	})
}

func TestParseYards(t *testing.T) {
	Convey("Given slider windows", t, func() {
		Convey("Then a window maps to normalized positions", func() {
			s, err := filter.ParseYards("-25,25")
			So(err, ShouldBeNil)
			So(s, ShouldResemble, filter.YardRange(-25, 25))
		})

		Convey("Then malformed windows are rejected", func() {
			for _, raw := range []string{"10", "1,2,3", "-60,0", "a,b"} {
				_, err := filter.ParseYards(raw)
				So(errors.Is(err, filter.ErrSyntax), ShouldBeTrue)
			}
		})
	})
}
