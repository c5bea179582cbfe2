package service_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/okian/preserve/internal/adapters/feed"
	service "github.com/okian/preserve/internal/app"
	"github.com/okian/preserve/internal/domain/classify"
	"github.com/okian/preserve/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// stubFetcher serves canned tables per feed name and counts calls.
// Both feeds are fetched concurrently, so the counters need a mutex.
type stubFetcher struct {
	mu     sync.Mutex
	tables map[string]*feed.Table
	errs   map[string]error
	calls  map[string]int
	gate   chan struct{}
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		tables: make(map[string]*feed.Table),
		errs:   make(map[string]error),
		calls:  make(map[string]int),
	}
}

func (f *stubFetcher) FetchTable(ctx context.Context, name, url string) (*feed.Table, error) {
	f.mu.Lock()
	f.calls[name]++
	err := f.errs[name]
	table := f.tables[name]
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (f *stubFetcher) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func TestSnapshot(t *testing.T) {
	Convey("Given a started service over stub feeds", t, func() {
		now := time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC) // a Monday
		fetcher := newStubFetcher()
		fetcher.tables["updates"] = feed.NewTable(
			[]string{"Property", "Details", "Crew", "Due Date", "Status", "Reason"},
			[][]string{
				{"12 Oak St", "lawn care", "Alpha", "01/06/2025", "work overdue", ""},
				{"14 Oak St", "boarding", "Bravo", "05/06/2025", "ongoing", ""},
				{"16 Oak St", "winterize", "Alpha", "", "complete", ""},
				{"18 Oak St", "debris", "", "", "waiting on bid", ""},
			},
		)
		fetcher.tables["properties"] = feed.NewTable(
			[]string{"W/O Number", "Address", "Latitude", "Longitude", "Status"},
			[][]string{
				{"WO-1", "12 Oak St", "41.5", "-81.6", "Overdue"},
				{"WO-2", "14 Oak St", "bad", "-81.7", "Routine"},
			},
		)

		svc := service.New(
			service.WithFeedURLs("http://updates", "http://properties"),
			service.WithFetcher(fetcher),
			service.WithClock(func() time.Time { return now }),
			service.WithCacheTTL(5*time.Minute),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("When taking a snapshot", func() {
			snap, err := svc.Snapshot(context.Background())

			Convey("Then rows come back classified", func() {
				So(err, ShouldBeNil)
				So(len(snap.Records), ShouldEqual, 4)
				So(snap.Records[0].Category, ShouldEqual, classify.Overdue)
				So(snap.Records[1].Category, ShouldEqual, classify.InProgress)
				So(snap.Records[2].Category, ShouldEqual, classify.Completed)
				So(snap.Records[3].Category, ShouldEqual, classify.PendingBid)
			})

			Convey("And the summary reflects the rows", func() {
				So(err, ShouldBeNil)
				So(snap.Summary.Total, ShouldEqual, 4)
				So(snap.Summary.CompletionRate, ShouldEqual, 25.0)
				So(snap.Summary.DistinctCrewCount, ShouldEqual, 2)
			})

			Convey("And urgent work is selected", func() {
				So(err, ShouldBeNil)
				So(len(snap.Overdue), ShouldEqual, 1)
				So(len(snap.Urgent), ShouldBeGreaterThanOrEqualTo, 2)
			})

			Convey("And bad-coordinate properties are dropped", func() {
				So(err, ShouldBeNil)
				So(len(snap.Properties), ShouldEqual, 1)
				So(snap.Properties[0].WONumber, ShouldEqual, "WO-1")
			})

			Convey("And the snapshot carries an id and fetch time", func() {
				So(err, ShouldBeNil)
				So(snap.ID, ShouldNotBeEmpty)
				So(snap.FetchedAt.Equal(now), ShouldBeTrue)
				So(snap.Notices, ShouldBeEmpty)
			})
		})

		Convey("When snapshotting twice inside the TTL", func() {
			_, err1 := svc.Snapshot(context.Background())
			_, err2 := svc.Snapshot(context.Background())

			Convey("Then each feed is fetched once", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(fetcher.callCount("updates"), ShouldEqual, 1)
				So(fetcher.callCount("properties"), ShouldEqual, 1)
			})
		})

		Convey("When snapshotting again after the TTL lapses", func() {
			_, err1 := svc.Snapshot(context.Background())
			now = now.Add(6 * time.Minute)
			_, err2 := svc.Snapshot(context.Background())

			Convey("Then the feeds are re-fetched", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(fetcher.callCount("updates"), ShouldEqual, 2)
			})
		})

		Convey("When the updates feed is down", func() {
			fetcher.errs["updates"] = errors.New("connection refused")
			snap, err := svc.Snapshot(context.Background())

			Convey("Then the snapshot degrades instead of failing", func() {
				So(err, ShouldBeNil)
				So(snap.Records, ShouldBeEmpty)
				So(len(snap.Properties), ShouldEqual, 1)
				So(len(snap.Notices), ShouldEqual, 1)
				So(snap.Notices[0], ShouldContainSubstring, "updates")
			})
		})
	})

	Convey("Given a service that was never started", t, func() {
		svc := service.New()

		Convey("When taking a snapshot", func() {
			_, err := svc.Snapshot(context.Background())

			Convey("Then it refuses", func() {
				So(err, ShouldEqual, service.ErrNotStarted)
			})
		})
	})
}

func TestGetStats(t *testing.T) {
	Convey("Given a started service with one snapshot taken", t, func() {
		fetcher := newStubFetcher()
		fetcher.tables["updates"] = feed.Empty(feed.UpdateColumns()...)
		fetcher.tables["properties"] = feed.Empty(feed.PropertyColumns()...)

		svc := service.New(
			service.WithFeedURLs("http://updates", "http://properties"),
			service.WithFetcher(fetcher),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		snap, err := svc.Snapshot(context.Background())
		So(err, ShouldBeNil)

		Convey("When reading stats", func() {
			stats := svc.GetStats()

			Convey("Then they describe the last snapshot", func() {
				So(stats["started"], ShouldBeTrue)
				So(stats["lastSnapshotID"], ShouldEqual, snap.ID)
				So(stats["recordCount"], ShouldEqual, 0)
			})
		})
	})

	Convey("Given a snapshot stalled on a slow upstream", t, func() {
		fetcher := newStubFetcher()
		fetcher.tables["updates"] = feed.Empty(feed.UpdateColumns()...)
		fetcher.tables["properties"] = feed.Empty(feed.PropertyColumns()...)
		fetcher.gate = make(chan struct{})

		svc := service.New(
			service.WithFeedURLs("http://updates", "http://properties"),
			service.WithFetcher(fetcher),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		snapDone := make(chan error, 1)
		go func() {
			_, err := svc.Snapshot(context.Background())
			snapDone <- err
		}()
		for fetcher.callCount("updates") == 0 {
			time.Sleep(time.Millisecond)
		}

		Convey("When reading stats before the fetch completes", func() {
			statsDone := make(chan map[string]interface{}, 1)
			go func() {
				statsDone <- svc.GetStats()
			}()

			Convey("Then stats come back without waiting on the snapshot", func() {
				select {
				case stats := <-statsDone:
					So(stats["started"], ShouldBeTrue)
				case <-time.After(2 * time.Second):
					So("GetStats blocked behind an in-flight snapshot", ShouldBeEmpty)
				}

				close(fetcher.gate)
				So(<-snapDone, ShouldBeNil)
			})
		})
	})
}
