package feeds_test

import (
	"context"
	"time"

	"steeple/feeds"
	"steeple/models"
)

// Fixed "now" used across the suite: Thursday 2024-03-14 10:00 in Chicago.
var (
	chicago = mustLocation("America/Chicago")
	testNow = time.Date(2024, 3, 14, 10, 0, 0, 0, chicago)
)

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

type fakeMessages struct {
	messages []models.Message
	speakers map[string]*models.Speaker
	err      error
	lastPage feeds.PageRequest
	calls    int
}

func (f *fakeMessages) Paginate(ctx context.Context, page feeds.PageRequest) ([]models.Message, error) {
	f.calls++
	f.lastPage = page
	if f.err != nil {
		return nil, f.err
	}
	if page.First > 0 && page.First < len(f.messages) {
		return f.messages[:page.First], nil
	}
	return f.messages, nil
}

func (f *fakeMessages) SpeakerByName(ctx context.Context, name string) (*models.Speaker, error) {
	return f.speakers[name], nil
}

type fakeBlogs struct {
	blogs []models.Blog
	err   error
}

func (f *fakeBlogs) Paginate(ctx context.Context, limit int) ([]models.Blog, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && limit < len(f.blogs) {
		return f.blogs[:limit], nil
	}
	return f.blogs, nil
}

type fakeLive struct {
	streams []models.LiveStream
	err     error
}

func (f *fakeLive) LiveStreams(ctx context.Context) ([]models.LiveStream, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.streams, nil
}

type fakeConnect struct {
	page *models.ConnectPage
	err  error
}

func (f *fakeConnect) DefaultPage(ctx context.Context) (*models.ConnectPage, error) {
	return f.page, f.err
}

type fakeCampus struct {
	items      []models.CampusItem
	err        error
	lastCampus string
}

func (f *fakeCampus) ByCampus(ctx context.Context, campusID string) ([]models.CampusItem, error) {
	f.lastCampus = campusID
	return f.items, f.err
}

type fakeSeries struct {
	series *models.Series
	err    error
}

func (f *fakeSeries) SeriesByID(ctx context.Context, id string) (*models.Series, error) {
	return f.series, f.err
}

func newTestEngine(src feeds.Sources) *feeds.Engine {
	engine := feeds.NewEngine(src)
	engine.Clock = func() time.Time { return testNow }
	return engine
}

func cardIDs(cards []models.Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}
