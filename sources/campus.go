package sources

import (
	"context"

	"steeple/feeds"
	"steeple/models"
	"steeple/store"
)

// Campus serves campus-scoped content from the Postgres content store.
type Campus struct {
	store    *store.Store
	channels []string
}

func NewCampus(s *store.Store, channels []string) *Campus {
	return &Campus{store: s, channels: channels}
}

func (c *Campus) ByCampus(ctx context.Context, campusID string) ([]models.CampusItem, error) {
	return c.store.ItemsByCampus(ctx, campusID, c.channels)
}

var _ feeds.CampusSource = (*Campus)(nil)
