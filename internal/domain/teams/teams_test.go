package teams_test

import (
	"errors"
	"testing"

	"github.com/okian/playcall/internal/domain/model"
	"github.com/okian/playcall/internal/domain/teams"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleTeams() []model.Team {
	return []model.Team{
		{ID: 12, DisplayName: "Kansas City Chiefs", Abbreviation: "KC", Logo: "https://a.espncdn.com/i/teamlogos/nfl/500/kc.png"},
		{ID: 2, DisplayName: "Buffalo Bills", Abbreviation: "BUF", Logo: "https://a.espncdn.com/i/teamlogos/nfl/500/buf.png"},
	}
}

func TestDirectory(t *testing.T) {
	Convey("Given a directory built from the reference table", t, func() {
		d, err := teams.NewDirectory(sampleTeams())
		So(err, ShouldBeNil)

		Convey("Then All keeps load order", func() {
			all := d.All()
			So(len(all), ShouldEqual, 2)
			So(all[0].ID, ShouldEqual, 12)
			So(d.IDs(), ShouldResemble, []int{12, 2})
		})

		Convey("When looking up a known id", func() {
			team, err := d.Lookup(2)
			So(err, ShouldBeNil)
			So(team.Abbreviation, ShouldEqual, "BUF")
		})

		Convey("When looking up an unknown id", func() {
			_, err := d.Lookup(99)
			So(errors.Is(err, teams.ErrNotFound), ShouldBeTrue)
		})

		Convey("When selecting by display name", func() {
			team, err := d.ByDisplayName("Kansas City Chiefs")
			So(err, ShouldBeNil)
			So(team.ID, ShouldEqual, 12)

			_, err = d.ByDisplayName("kansas city chiefs")
			So(errors.Is(err, teams.ErrNotFound), ShouldBeTrue)
		})

		Convey("When the caller mutates the returned slice", func() {
			all := d.All()
			all[0].DisplayName = "changed"
			team, _ := d.Lookup(12)
			So(team.DisplayName, ShouldEqual, "Kansas City Chiefs")
		})
	})

	Convey("Given a reference table with a repeated id", t, func() {
		rows := append(sampleTeams(), model.Team{ID: 2, DisplayName: "Other"})
		_, err := teams.NewDirectory(rows)
		So(errors.Is(err, teams.ErrDuplicateID), ShouldBeTrue)
	})
}
