package feeds

import (
	"context"
	"fmt"

	"steeple/models"

	log "github.com/sirupsen/logrus"
)

const defaultMediaMessagesLimit = 3

// MediaMessages returns a plain page of recent messages as cards, with any
// caller-supplied filters passed through to the archive.
func (e *Engine) MediaMessages(ctx context.Context, rc RequestContext, args Args) ([]models.Card, error) {
	limit := args.limit(defaultMediaMessagesLimit)

	messages, err := e.Sources.Messages.Paginate(ctx, PageRequest{
		First:   limit,
		Filters: args.Filters,
	})
	if err != nil {
		return nil, fmt.Errorf("media messages: %w", err)
	}

	items := make([]models.Card, 0, len(messages))
	for _, msg := range messages {
		card, err := Normalize(msg, len(items))
		if err != nil {
			log.WithField("error", err).Warn("Media messages: dropping card")
			continue
		}
		items = append(items, card)
	}

	return items, nil
}

// MediaSeries returns a single labeled card for one message series, or an
// empty list when the series does not exist.
func (e *Engine) MediaSeries(ctx context.Context, rc RequestContext, args Args) ([]models.Card, error) {
	if args.SeriesID == "" || e.Sources.Series == nil {
		return []models.Card{}, nil
	}

	series, err := e.Sources.Series.SeriesByID(ctx, args.SeriesID)
	if err != nil {
		return nil, fmt.Errorf("media series: %w", err)
	}
	if series == nil {
		return []models.Card{}, nil
	}

	card, err := Normalize(*series, 0)
	if err != nil {
		return nil, err
	}
	return []models.Card{card}, nil
}
