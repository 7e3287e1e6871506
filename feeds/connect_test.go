package feeds_test

import (
	"context"
	"errors"
	"testing"

	"steeple/feeds"
	"steeple/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectFeed(t *testing.T) {
	engine := newTestEngine(feeds.Sources{
		Connect: &fakeConnect{page: &models.ConnectPage{
			ID: "p1",
			Items: []models.ConnectItem{
				{ID: "c1", TypeID: "link", Title: "Give Online", MediaURL: "https://img/give.jpg"},
				{ID: "c2", TypeID: "page", Title: "Groups"},
			},
		}},
	})

	cards, err := engine.ConnectFeed(context.Background(), feeds.RequestContext{}, feeds.Args{})
	require.NoError(t, err)
	require.Len(t, cards, 2)

	assert.Equal(t, models.ActionOpenURL, cards[0].Action)
	assert.Equal(t, models.KindLink, cards[0].RelatedNode.Kind)
	assert.Equal(t, models.ActionReadContent, cards[1].Action)
}

func TestConnectFeedAdapterFailureIsFatal(t *testing.T) {
	engine := newTestEngine(feeds.Sources{
		Connect: &fakeConnect{err: errors.New("cms down")},
	})

	_, err := engine.ConnectFeed(context.Background(), feeds.RequestContext{}, feeds.Args{})
	assert.Error(t, err, "a single-source feed has no partial result")
}

func TestCampusFeedWithoutScope(t *testing.T) {
	engine := newTestEngine(feeds.Sources{Campus: &fakeCampus{
		items: []models.CampusItem{{ID: "i1"}},
	}})

	for _, limit := range []int{0, 1, 10} {
		cards, err := engine.CampusFeed(context.Background(), feeds.RequestContext{}, feeds.Args{Limit: ptr(limit)})
		require.NoError(t, err)
		assert.NotNil(t, cards)
		assert.Empty(t, cards, "missing campus scope means nothing to show, limit=%d", limit)
	}
}

func TestCampusFeedWithScope(t *testing.T) {
	campus := &fakeCampus{items: []models.CampusItem{
		{ID: "i1", Title: "Serve Day", ChannelName: "Events"},
		{ID: "i2", Title: "New Series", ChannelName: "News"},
	}}
	engine := newTestEngine(feeds.Sources{Campus: campus})

	cards, err := engine.CampusFeed(context.Background(), feeds.RequestContext{CampusID: "42"}, feeds.Args{})
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "42", campus.lastCampus)
	assert.Equal(t, "Events", cards[0].Subtitle)
	assert.Equal(t, "News", cards[1].Subtitle)
}

func TestMediaSeries(t *testing.T) {
	engine := newTestEngine(feeds.Sources{
		Series: &fakeSeries{series: &models.Series{ID: "s1", Title: "Exile", Subtitle: "A study in Daniel"}},
	})

	cards, err := engine.MediaSeries(context.Background(), feeds.RequestContext{}, feeds.Args{SeriesID: "s1"})
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Series", cards[0].LabelText)
	assert.Equal(t, "Exile", cards[0].Title)
}

func TestMediaSeriesMissing(t *testing.T) {
	engine := newTestEngine(feeds.Sources{Series: &fakeSeries{}})

	cards, err := engine.MediaSeries(context.Background(), feeds.RequestContext{}, feeds.Args{SeriesID: "nope"})
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestMediaMessagesDefaultLimit(t *testing.T) {
	messages := &fakeMessages{messages: []models.Message{
		{ID: "m1"}, {ID: "m2"}, {ID: "m3"}, {ID: "m4"},
	}}
	engine := newTestEngine(feeds.Sources{Messages: messages})

	cards, err := engine.MediaMessages(context.Background(), feeds.RequestContext{}, feeds.Args{})
	require.NoError(t, err)
	assert.Len(t, cards, 3)
	assert.Equal(t, 3, messages.lastPage.First)
}
