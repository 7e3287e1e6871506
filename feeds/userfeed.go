package feeds

import (
	"context"
	"sync"

	"steeple/models"

	log "github.com/sirupsen/logrus"
)

const defaultUserFeedLimit = 20

// UserFeed concatenates a page of blogs and a page of messages,
// blogs-then-messages. The two sources are fetched independently up to limit
// each; there is no cross-source date sort and no global slice beyond each
// source's own page size. A failed source contributes nothing.
func (e *Engine) UserFeed(ctx context.Context, rc RequestContext, args Args) ([]models.Card, error) {
	limit := args.limit(defaultUserFeedLimit)

	var (
		wg       sync.WaitGroup
		blogs    []models.Blog
		messages []models.Message
		blogErr  error
		msgErr   error
	)

	// The two fetches have no ordering dependency.
	wg.Add(2)
	go func() {
		defer wg.Done()
		blogs, blogErr = e.Sources.Blogs.Paginate(ctx, limit)
	}()
	go func() {
		defer wg.Done()
		messages, msgErr = e.Sources.Messages.Paginate(ctx, PageRequest{First: limit})
	}()
	wg.Wait()

	if blogErr != nil {
		log.WithFields(log.Fields{
			"request": rc.RequestID,
			"error":   blogErr,
		}).Warn("User feed: blog fetch failed")
	}
	if msgErr != nil {
		log.WithFields(log.Fields{
			"request": rc.RequestID,
			"error":   msgErr,
		}).Warn("User feed: message fetch failed")
	}

	items := make([]models.Card, 0, len(blogs)+len(messages))

	for _, blog := range blogs {
		card, err := Normalize(blog, len(items))
		if err != nil {
			log.WithField("error", err).Warn("User feed: dropping blog card")
			continue
		}
		items = append(items, card)
	}

	for _, msg := range messages {
		card, err := Normalize(msg, len(items))
		if err != nil {
			log.WithField("error", err).Warn("User feed: dropping message card")
			continue
		}
		card.LabelText = msg.SeriesTitle
		items = append(items, card)
	}

	return items, nil
}
