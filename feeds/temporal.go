package feeds

import (
	"fmt"
	"time"
)

// Bucket places an event relative to "now" on the church's calendar.
type Bucket string

const (
	BucketPast   Bucket = "PAST"
	BucketToday  Bucket = "TODAY"
	BucketFuture Bucket = "FUTURE"
)

// Classification is a bucket plus the human label shown on a card.
type Classification struct {
	Bucket Bucket
	Label  string
}

// All calendar-day comparisons happen in the church's home time zone. This is
// a business constant, not the user's locale.
var chicago = mustLoadLocation("America/Chicago")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("load location %s: %v", name, err))
	}
	return loc
}

// ClassifyEvent buckets a scheduled event time against now and produces the
// label shown on live-event cards. TODAY wins over FUTURE/PAST: an event
// earlier today is still "Today at 7pm CT". Both arguments are explicit so
// the function stays deterministic.
func ClassifyEvent(scheduledAt, now time.Time) Classification {
	t := scheduledAt.In(chicago)
	n := now.In(chicago)

	switch {
	case sameDay(t, n):
		return Classification{
			Bucket: BucketToday,
			Label:  fmt.Sprintf("Today at %s CT", clockLabel(t)),
		}
	case scheduledAt.After(now):
		return Classification{
			Bucket: BucketFuture,
			Label:  fmt.Sprintf("Next %s at %s CT", t.Format("Mon"), clockLabel(t)),
		}
	default:
		return Classification{
			Bucket: BucketPast,
			Label:  fmt.Sprintf("Last %s", t.Format("Mon")),
		}
	}
}

// ClassifyDate is the date-level variant for content that carries a publish
// date with no time of day, e.g. message archive entries. Labels omit the
// clock time.
func ClassifyDate(date, now time.Time) Classification {
	// The stored value is a bare calendar date; read its Y/M/D as-is instead
	// of converting, which would shift it across midnight.
	dy, dm, dd := date.Date()
	d := time.Date(dy, dm, dd, 0, 0, 0, 0, chicago)
	n := startOfDay(now.In(chicago))

	switch {
	case d.Equal(n):
		return Classification{Bucket: BucketToday, Label: "Today"}
	case d.After(n):
		return Classification{Bucket: BucketFuture, Label: fmt.Sprintf("Next %s", d.Format("Mon"))}
	default:
		return Classification{Bucket: BucketPast, Label: fmt.Sprintf("Last %s", d.Format("Mon"))}
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// clockLabel renders "7pm" style times; minutes are dropped because event
// labels only ever show the hour.
func clockLabel(t time.Time) string {
	return t.Format("3pm")
}
