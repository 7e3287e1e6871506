// Package feeds implements the feed-selection core: it merges the message
// archive, blog archive, live stream status, CMS connect page and campus
// content into ordered card lists, one algorithm per feature tag.
package feeds

import (
	"context"
	"time"

	"steeple/models"
)

// PageRequest asks a source for a page of content.
type PageRequest struct {
	First   int
	Filters map[string]string
}

// MessageSource provides paginated access to the sermon/message archive.
type MessageSource interface {
	Paginate(ctx context.Context, page PageRequest) ([]models.Message, error)
	SpeakerByName(ctx context.Context, name string) (*models.Speaker, error)
}

// BlogSource provides paginated access to the blog archive.
type BlogSource interface {
	Paginate(ctx context.Context, limit int) ([]models.Blog, error)
}

// LiveStreamSource reports the current live stream set. Streams are ephemeral
// and fetched fresh on every call.
type LiveStreamSource interface {
	LiveStreams(ctx context.Context) ([]models.LiveStream, error)
}

// ConnectSource provides the CMS-managed connect page.
type ConnectSource interface {
	DefaultPage(ctx context.Context) (*models.ConnectPage, error)
}

// CampusSource provides campus-scoped content items.
type CampusSource interface {
	ByCampus(ctx context.Context, campusID string) ([]models.CampusItem, error)
}

// SeriesSource looks up a single message series.
type SeriesSource interface {
	SeriesByID(ctx context.Context, id string) (*models.Series, error)
}

// Sources bundles every content source adapter the engine pulls from.
// Adapters may be shared across requests; the engine never mutates them.
type Sources struct {
	Messages MessageSource
	Blogs    BlogSource
	Live     LiveStreamSource
	Connect  ConnectSource
	Campus   CampusSource
	Series   SeriesSource
}

// RequestContext is the per-request scope. It is an immutable value created
// for a single dispatch and discarded with it, so one request's campus
// selection can never leak into another's.
type RequestContext struct {
	RequestID string
	CampusID  string
}

// Args are the parameters a feature is dispatched with. Limit and Skip are
// pointers so "absent" and "zero" stay distinguishable; each algorithm applies
// its own default for absent values.
type Args struct {
	Limit    *int              `json:"limit,omitempty"`
	Skip     *int              `json:"skip,omitempty"`
	CampusID string            `json:"campusId,omitempty"`
	SeriesID string            `json:"seriesId,omitempty"`
	Filters  map[string]string `json:"filters,omitempty"`
}

func (a Args) limit(def int) int {
	if a.Limit == nil || *a.Limit < 0 {
		return def
	}
	return *a.Limit
}

func (a Args) skip() int {
	if a.Skip == nil || *a.Skip < 0 {
		return 0
	}
	return *a.Skip
}

// Algorithm produces an ordered card list for one feature.
type Algorithm func(ctx context.Context, rc RequestContext, args Args) ([]models.Card, error)

// Engine orchestrates sources, the normalizer and the temporal classifier to
// assemble feeds. Clock exists so tests can pin "now"; it must be the only
// wall-clock access in the package.
type Engine struct {
	Sources Sources
	Clock   func() time.Time
	// RecapTagID scopes the campaign feed's latest-message stage.
	RecapTagID string
}

func NewEngine(src Sources) *Engine {
	return &Engine{
		Sources:    src,
		Clock:      time.Now,
		RecapTagID: "40",
	}
}

// window slices the fully assembled candidate list. Slicing always happens
// after assembly, never against any single source's own pagination.
func window(cards []models.Card, skip, limit int) []models.Card {
	if skip >= len(cards) {
		return []models.Card{}
	}
	end := skip + limit
	if end > len(cards) {
		end = len(cards)
	}
	return cards[skip:end]
}
