package sources_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"steeple/feeds"
	"steeple/sources"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const streamsBody = `{
	"streams": [
		{
			"id": 7,
			"title": "Wednesday Night",
			"description": "Live from the main room",
			"current_event": {
				"starts_at": "2024-03-14T19:00:00-05:00",
				"stream_url": "https://cdn/stream.m3u8",
				"embed_code": "<iframe src=\"https://embed/7\" allowfullscreen></iframe>"
			},
			"message": {
				"id": 101,
				"title": "What Comes Next",
				"date": "2024-03-14",
				"series": {"title": "Exile"}
			}
		},
		{
			"id": 8,
			"title": "Overflow Room",
			"next_event": {
				"starts_at": "2024-03-21T19:00:00-05:00"
			}
		}
	]
}`

func TestLiveStreamsMapping(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "the_porch", r.URL.Query().Get("target"))
		w.Write([]byte(streamsBody))
	}))
	defer ts.Close()

	adapter := sources.NewLiveStreams(sources.NewClient(), ts.URL, "the_porch")
	streams, err := adapter.LiveStreams(context.Background())
	require.NoError(t, err)
	require.Len(t, streams, 2)

	live := streams[0]
	assert.Equal(t, "7", live.ID)
	assert.True(t, live.IsLive)
	require.NotNil(t, live.EventStartTime)
	assert.Equal(t, 19, live.EventStartTime.Hour())
	assert.Equal(t, "https://embed/7", live.WebViewURL, "webview url comes from the embed code src attribute")
	require.NotNil(t, live.Media)
	assert.Equal(t, "https://cdn/stream.m3u8", live.Media.Sources[0].URI)
	require.NotNil(t, live.ContentItem)
	assert.Equal(t, "What Comes Next", live.ContentItem.Title)
	assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), live.ContentItem.Date)

	upcoming := streams[1]
	assert.False(t, upcoming.IsLive)
	require.NotNil(t, upcoming.EventStartTime)
	assert.Nil(t, upcoming.ContentItem)
	assert.Empty(t, upcoming.WebViewURL)
}

func TestLiveStreamsRetriesServerErrors(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"streams": []}`))
	}))
	defer ts.Close()

	adapter := sources.NewLiveStreams(sources.NewClient(), ts.URL, "")
	streams, err := adapter.LiveStreams(context.Background())
	require.NoError(t, err)
	assert.Empty(t, streams)
	assert.Equal(t, 2, calls)
}

func TestSeriesNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	adapter := sources.NewSeries(sources.NewClient(), ts.URL)
	series, err := adapter.SeriesByID(context.Background(), "nope")
	require.NoError(t, err, "a missing series is not an adapter failure")
	assert.Nil(t, series)
}

func TestMessagesPaginateFilters(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		assert.Equal(t, "40", r.URL.Query().Get("filter[tag_id][]"))
		w.Write([]byte(`{"messages": [
			{"id": 1, "title": "Week Two", "date": "2024-03-07", "series": {"title": "Exile"}},
			{"id": 2, "title": "Week One", "date": "2024-02-29"}
		]}`))
	}))
	defer ts.Close()

	adapter := sources.NewMessages(sources.NewClient(), ts.URL, "the_porch")
	messages, err := adapter.Paginate(context.Background(), feeds.PageRequest{
		First:   2,
		Filters: map[string]string{"tag_id": "40"},
	})
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "1", messages[0].ID)
	assert.Equal(t, "Exile", messages[0].SeriesTitle)
	assert.Equal(t, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), messages[0].Date)
}
