package feeds

import (
	"context"
	"fmt"

	"steeple/globalid"
	"steeple/models"

	log "github.com/sirupsen/logrus"
)

// CampusFeed returns the campus-scoped content list. A missing campus scope
// is a valid "nothing to show" state, not an error. The campus id may arrive
// as a global id minted by the id codec or as a raw native id.
func (e *Engine) CampusFeed(ctx context.Context, rc RequestContext, args Args) ([]models.Card, error) {
	if rc.CampusID == "" || e.Sources.Campus == nil {
		return []models.Card{}, nil
	}

	campusID := rc.CampusID
	if localID, _, err := globalid.Parse(campusID); err == nil {
		campusID = localID
	}

	campusItems, err := e.Sources.Campus.ByCampus(ctx, campusID)
	if err != nil {
		return nil, fmt.Errorf("campus feed: %w", err)
	}

	items := make([]models.Card, 0, len(campusItems))
	for _, item := range campusItems {
		card, err := Normalize(item, len(items))
		if err != nil {
			log.WithField("error", err).Warn("Campus feed: dropping card")
			continue
		}
		items = append(items, card)
	}

	return items, nil
}
