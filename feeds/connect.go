package feeds

import (
	"context"
	"fmt"

	"steeple/models"

	log "github.com/sirupsen/logrus"
)

// ConnectFeed maps the CMS default page's embedded entries to cards. Each
// entry's content-type name becomes the node kind; Link entries open a URL,
// everything else reads content in-app.
func (e *Engine) ConnectFeed(ctx context.Context, rc RequestContext, args Args) ([]models.Card, error) {
	page, err := e.Sources.Connect.DefaultPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect feed: %w", err)
	}
	if page == nil {
		return []models.Card{}, nil
	}

	items := make([]models.Card, 0, len(page.Items))
	for _, entry := range page.Items {
		card, err := Normalize(entry, len(items))
		if err != nil {
			log.WithField("error", err).Warn("Connect feed: dropping card")
			continue
		}
		items = append(items, card)
	}

	return items, nil
}
