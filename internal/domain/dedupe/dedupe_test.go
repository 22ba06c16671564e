package dedupe_test

import (
	"sync"
	"testing"

	"github.com/okian/playcall/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

type rowKey struct {
	GameID int
	Text   string
}

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new InMemoryDeduper", t, func() {
		d := dedupe.NewInMemoryDeduper[rowKey](dedupe.WithCapacity(8))
		So(d.Size(), ShouldEqual, 0)

		Convey("When a key is recorded for the first time", func() {
			seen := d.SeenAndRecord(rowKey{1, "a"})

			Convey("Then it is reported as new", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When an equal key is recorded twice", func() {
			d.SeenAndRecord(rowKey{1, "a"})
			seen := d.SeenAndRecord(rowKey{1, "a"})

			Convey("Then the second call reports it as seen", func() {
				So(seen, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When a key is unrecorded", func() {
			d.SeenAndRecord(rowKey{2, "b"})
			d.Unrecord(rowKey{2, "b"})

			Convey("Then it is new again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(rowKey{2, "b"}), ShouldBeFalse)
			})
		})

		Convey("When many goroutines record the same key", func() {
			var (
				wg    sync.WaitGroup
				mu    sync.Mutex
				fresh int
			)
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if !d.SeenAndRecord(rowKey{3, "c"}) {
						mu.Lock()
						fresh++
						mu.Unlock()
					}
				}()
			}
			wg.Wait()

			Convey("Then exactly one of them sees it as new", func() {
				So(fresh, ShouldEqual, 1)
			})
		})
	})
}
