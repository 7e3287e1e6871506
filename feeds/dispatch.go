package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"steeple/globalid"
	"steeple/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Feature tags. The tag before the first ':' of a feature id selects the
// algorithm; the suffix is opaque.
const (
	TagCampaignItems = "CAMPAIGN_ITEMS"
	TagUserFeed      = "USER_FEED"
	TagCampusItems   = "CAMPUS_ITEMS"
	TagConnectScreen = "CONNECT_SCREEN"
	TagMessages      = "MESSAGES"
	TagSeries        = "SERIES"
)

// Dispatcher resolves feature ids to registered algorithms. The handler table
// is explicit and fixed at construction; an unregistered tag is a typed
// failure, never a runtime lookup surprise.
type Dispatcher struct {
	engine   *Engine
	handlers map[string]Algorithm
}

func NewDispatcher(engine *Engine) *Dispatcher {
	return &Dispatcher{
		engine: engine,
		handlers: map[string]Algorithm{
			TagCampaignItems: engine.CampaignFeed,
			TagUserFeed:      engine.UserFeed,
			TagCampusItems:   engine.CampusFeed,
			TagConnectScreen: engine.ConnectFeed,
			TagMessages:      engine.MediaMessages,
			TagSeries:        engine.MediaSeries,
		},
	}
}

// Tags lists the registered feature tags.
func (d *Dispatcher) Tags() []string {
	tags := make([]string, 0, len(d.handlers))
	for tag := range d.handlers {
		tags = append(tags, tag)
	}
	return tags
}

// Dispatch runs the algorithm selected by featureID with the given raw JSON
// args. Every call gets a fresh immutable RequestContext carrying the campus
// scope from the args, so concurrent dispatches cannot observe each other's
// scope.
func (d *Dispatcher) Dispatch(ctx context.Context, featureID string, rawArgs json.RawMessage) ([]models.Card, error) {
	tag, _, _ := strings.Cut(featureID, ":")

	algorithm, ok := d.handlers[tag]
	if !ok {
		return nil, &UnknownAlgorithmError{Tag: tag}
	}

	var args Args
	if len(rawArgs) > 0 {
		if err := json.Unmarshal(rawArgs, &args); err != nil {
			return nil, fmt.Errorf("malformed feature args: %w", err)
		}
	}

	rc := RequestContext{
		RequestID: uuid.NewString(),
		CampusID:  args.CampusID,
	}

	log.WithFields(log.Fields{
		"request": rc.RequestID,
		"tag":     tag,
		"campus":  rc.CampusID,
	}).Info("Dispatching feature")

	cards, err := algorithm(ctx, rc, args)
	if err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []models.Card{}
	}
	return cards, nil
}

// FeatureID mints a stable, opaque feature id for a tag and its args, campus
// scope included.
func FeatureID(tag string, args Args) string {
	encoded, _ := json.Marshal(args)
	return tag + ":" + globalid.Create(string(encoded), tag)
}
