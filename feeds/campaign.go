package feeds

import (
	"context"

	"steeple/models"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const defaultCampaignLimit = 1

// CampaignFeed assembles the home/dashboard feed in priority order:
//
//  1. the live event's associated message, when the message is today-or-later
//     or the stream runs today
//  2. up to two recap messages strictly older than today, labeled
//     "Latest Message"
//  3. the live stream itself, unless stage 1 already represented it
//  4. reserved for CMS featured content
//
// Each stage short-circuits once limit+skip candidates exist. A failing
// source degrades the feed rather than blanking it: the stage contributes
// nothing and the rest still run.
func (e *Engine) CampaignFeed(ctx context.Context, rc RequestContext, args Args) ([]models.Card, error) {
	limit := args.limit(defaultCampaignLimit)
	skip := args.skip()
	now := e.Clock()

	var items []models.Card

	// Stage 1: live stream with an associated message.
	var live *models.LiveStream
	liveRepresented := false

	streams, err := e.Sources.Live.LiveStreams(ctx)
	if err != nil {
		log.WithFields(log.Fields{
			"request": rc.RequestID,
			"error":   err,
		}).Warn("Campaign: live stream fetch failed, skipping live stages")
	} else if len(streams) > 0 {
		if withMessage, ok := lo.Find(streams, func(s models.LiveStream) bool {
			return s.ContentItem != nil
		}); ok {
			live = &withMessage
		} else {
			// No stream carries a message; stage 3 can still surface the
			// first stream as an upcoming event.
			live = &streams[0]
		}
	}

	if live != nil && live.ContentItem != nil {
		msg := *live.ContentItem
		dateClass := ClassifyDate(msg.Date, now)
		streamIsToday := live.EventStartTime != nil &&
			ClassifyEvent(*live.EventStartTime, now).Bucket == BucketToday

		// Only show the associated message while it is current; otherwise it
		// may be an old message still attached to the stream.
		if dateClass.Bucket != BucketPast || streamIsToday {
			liveRepresented = true

			label := dateClass.Label
			if live.EventStartTime != nil {
				label = ClassifyEvent(*live.EventStartTime, now).Label
			}

			card, err := Normalize(msg, len(items))
			if err != nil {
				log.WithField("error", err).Warn("Campaign: dropping live message card")
			} else {
				card.LabelText = label
				items = append(items, card)
			}
		}
	}

	if len(items) >= limit+skip {
		return window(items, skip, limit), nil
	}

	// Stage 2: latest recap messages, strictly older than today.
	messages, err := e.Sources.Messages.Paginate(ctx, PageRequest{
		First:   2,
		Filters: map[string]string{"tag_id": e.RecapTagID},
	})
	if err != nil {
		log.WithFields(log.Fields{
			"request": rc.RequestID,
			"error":   err,
		}).Warn("Campaign: message fetch failed, skipping latest-message stage")
	} else {
		for _, msg := range messages {
			if ClassifyDate(msg.Date, now).Bucket != BucketPast {
				continue
			}
			card, err := Normalize(msg, len(items))
			if err != nil {
				log.WithField("error", err).Warn("Campaign: dropping recap card")
				continue
			}
			card.LabelText = "Latest Message"
			items = append(items, card)
		}
	}

	if len(items) >= limit+skip {
		return window(items, skip, limit), nil
	}

	// Stage 3: the upcoming (or recent) live stream itself, unless stage 1
	// already put its message on the feed.
	if live != nil && !liveRepresented {
		card, err := Normalize(*live, len(items))
		if err != nil {
			log.WithField("error", err).Warn("Campaign: dropping live stream card")
		} else {
			if live.EventStartTime != nil {
				card.LabelText = ClassifyEvent(*live.EventStartTime, now).Label
			}
			card.HasAction = false
			items = append(items, card)
		}
	}

	// Stage 4: CMS featured content, reserved.

	return window(items, skip, limit), nil
}
