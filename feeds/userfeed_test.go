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

func TestUserFeedBlogsThenMessages(t *testing.T) {
	engine := newTestEngine(feeds.Sources{
		Blogs: &fakeBlogs{blogs: []models.Blog{
			{ID: "b1", Title: "Blog One"},
			{ID: "b2", Title: "Blog Two"},
			{ID: "b3", Title: "Blog Three"},
		}},
		Messages: &fakeMessages{messages: []models.Message{
			{ID: "m1", Title: "Message One", SeriesTitle: "Exile"},
			{ID: "m2", Title: "Message Two", SeriesTitle: "Exile"},
		}},
	})

	cards, err := engine.UserFeed(context.Background(), feeds.RequestContext{}, feeds.Args{Limit: ptr(5)})
	require.NoError(t, err)
	require.Len(t, cards, 5)

	// Blocks in insertion order, never interleaved.
	assert.Equal(t, []string{"Blog One", "Blog Two", "Blog Three", "Message One", "Message Two"},
		[]string{cards[0].Title, cards[1].Title, cards[2].Title, cards[3].Title, cards[4].Title})

	assert.Equal(t, feeds.LabelFromTheBlog, cards[0].LabelText)
	assert.Equal(t, "Exile", cards[3].LabelText, "message cards carry their series title")

	seen := map[string]bool{}
	for _, c := range cards {
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
	}
}

func TestUserFeedEachSourceCappedIndependently(t *testing.T) {
	engine := newTestEngine(feeds.Sources{
		Blogs: &fakeBlogs{blogs: []models.Blog{
			{ID: "b1"}, {ID: "b2"}, {ID: "b3"},
		}},
		Messages: &fakeMessages{messages: []models.Message{
			{ID: "m1"}, {ID: "m2"}, {ID: "m3"},
		}},
	})

	cards, err := engine.UserFeed(context.Background(), feeds.RequestContext{}, feeds.Args{Limit: ptr(2)})
	require.NoError(t, err)
	// Two per source, not two overall.
	assert.Len(t, cards, 4)
}

func TestUserFeedBlogFailureIsolated(t *testing.T) {
	engine := newTestEngine(feeds.Sources{
		Blogs: &fakeBlogs{err: errors.New("blog api down")},
		Messages: &fakeMessages{messages: []models.Message{
			{ID: "m1", Title: "Message One"},
		}},
	})

	cards, err := engine.UserFeed(context.Background(), feeds.RequestContext{}, feeds.Args{})
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Message One", cards[0].Title)
}

func TestUserFeedEmptySourcesYieldEmptyList(t *testing.T) {
	engine := newTestEngine(feeds.Sources{
		Blogs:    &fakeBlogs{},
		Messages: &fakeMessages{},
	})

	cards, err := engine.UserFeed(context.Background(), feeds.RequestContext{}, feeds.Args{})
	require.NoError(t, err)
	assert.NotNil(t, cards)
	assert.Empty(t, cards)
}
