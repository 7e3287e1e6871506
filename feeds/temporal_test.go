package feeds_test

import (
	"testing"
	"time"

	"steeple/feeds"

	"github.com/stretchr/testify/assert"
)

func TestClassifyEvent(t *testing.T) {
	now := time.Date(2024, 3, 14, 10, 0, 0, 0, chicago) // Thursday morning

	tests := []struct {
		name        string
		scheduledAt time.Time
		bucket      feeds.Bucket
		label       string
	}{
		{
			name:        "same calendar day, later",
			scheduledAt: time.Date(2024, 3, 14, 19, 0, 0, 0, chicago),
			bucket:      feeds.BucketToday,
			label:       "Today at 7pm CT",
		},
		{
			name:        "same calendar day, already started",
			scheduledAt: time.Date(2024, 3, 14, 9, 0, 0, 0, chicago),
			bucket:      feeds.BucketToday,
			label:       "Today at 9am CT",
		},
		{
			name:        "next Thursday evening",
			scheduledAt: time.Date(2024, 3, 21, 19, 0, 0, 0, chicago),
			bucket:      feeds.BucketFuture,
			label:       "Next Thu at 7pm CT",
		},
		{
			name:        "tomorrow",
			scheduledAt: time.Date(2024, 3, 15, 12, 0, 0, 0, chicago),
			bucket:      feeds.BucketFuture,
			label:       "Next Fri at 12pm CT",
		},
		{
			name:        "last Thursday",
			scheduledAt: time.Date(2024, 3, 7, 19, 0, 0, 0, chicago),
			bucket:      feeds.BucketPast,
			label:       "Last Thu",
		},
		{
			name:        "same instant expressed in UTC",
			scheduledAt: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), // 2024-03-14 19:00 CDT
			bucket:      feeds.BucketToday,
			label:       "Today at 7pm CT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := feeds.ClassifyEvent(tt.scheduledAt, now)
			assert.Equal(t, tt.bucket, got.Bucket)
			assert.Equal(t, tt.label, got.Label)
		})
	}
}

func TestClassifyEventDeterministic(t *testing.T) {
	scheduledAt := time.Date(2024, 3, 21, 19, 0, 0, 0, chicago)
	first := feeds.ClassifyEvent(scheduledAt, testNow)
	second := feeds.ClassifyEvent(scheduledAt, testNow)
	assert.Equal(t, first, second)
}

func TestClassifyDate(t *testing.T) {
	tests := []struct {
		name   string
		date   time.Time
		bucket feeds.Bucket
		label  string
	}{
		{
			name:   "publish date today",
			date:   date(2024, 3, 14),
			bucket: feeds.BucketToday,
			label:  "Today",
		},
		{
			name:   "publish date upcoming",
			date:   date(2024, 3, 17),
			bucket: feeds.BucketFuture,
			label:  "Next Sun",
		},
		{
			name:   "publish date in the past",
			date:   date(2024, 3, 7),
			bucket: feeds.BucketPast,
			label:  "Last Thu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := feeds.ClassifyDate(tt.date, testNow)
			assert.Equal(t, tt.bucket, got.Bucket)
			assert.Equal(t, tt.label, got.Label)
		})
	}
}
