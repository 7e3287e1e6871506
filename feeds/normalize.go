package feeds

import (
	"fmt"
	"strings"
	"unicode"

	"steeple/globalid"
	"steeple/models"
)

// cardKind is the global-id type tag shared by every card so ids stay stable
// across algorithms.
const cardKind = "FeedCard"

// LabelFromTheBlog is the default label for blog-derived cards.
const LabelFromTheBlog = "From the Blog"

// Normalize shapes one content item into a Card. It is pure: no I/O, no
// clock. The card id is derived from the item's native id and its position in
// the assembled list, so re-running assembly over the same inputs yields
// identical ids. Unknown item types fail with UnsupportedSourceKindError;
// callers skip that single item.
//
// HasAction defaults to true only for message-like nodes; algorithms override
// it where a card is informational (e.g. an upcoming live event).
func Normalize(item any, position int) (models.Card, error) {
	switch v := item.(type) {
	case models.Message:
		return models.Card{
			ID:          cardID(v.ID, position),
			Title:       v.Title,
			Summary:     v.Summary,
			Image:       v.Image,
			RelatedNode: models.RelatedNode{ID: v.ID, Kind: models.KindMessage},
			Action:      models.ActionReadContent,
			HasAction:   true,
		}, nil
	case models.Blog:
		return models.Card{
			ID:          cardID(v.ID, position),
			Title:       v.Title,
			Summary:     v.Subtitle,
			LabelText:   LabelFromTheBlog,
			Image:       v.Image,
			RelatedNode: models.RelatedNode{ID: v.ID, Kind: models.KindBlog},
			Action:      models.ActionReadContent,
			HasAction:   false,
		}, nil
	case models.Series:
		return models.Card{
			ID:          cardID(v.ID, position),
			Title:       v.Title,
			Summary:     v.Subtitle,
			LabelText:   "Series",
			Image:       v.Image,
			RelatedNode: models.RelatedNode{ID: v.ID, Kind: models.KindSeries},
			Action:      models.ActionReadContent,
			HasAction:   false,
		}, nil
	case models.LiveStream:
		return models.Card{
			ID:          cardID(v.ID, position),
			Title:       v.Title,
			Summary:     v.Description,
			Image:       v.Media,
			RelatedNode: models.RelatedNode{ID: v.ID, Kind: models.KindLiveStream},
			Action:      models.ActionReadContent,
			HasAction:   false,
		}, nil
	case models.CampusItem:
		return models.Card{
			ID:          cardID(v.ID, position),
			Title:       v.Title,
			Subtitle:    v.ChannelName,
			Summary:     v.Summary,
			Image:       v.Image,
			RelatedNode: models.RelatedNode{ID: v.ID, Kind: models.KindCampusItem},
			Action:      models.ActionReadContent,
			HasAction:   false,
		}, nil
	case models.ConnectItem:
		kind := models.NodeKind(typeName(v.TypeID))
		action := models.ActionReadContent
		if kind == models.KindLink {
			action = models.ActionOpenURL
		}
		var image *models.ImageMedia
		if v.MediaURL != "" {
			image = &models.ImageMedia{Sources: []models.ImageSource{{URI: v.MediaURL}}}
		}
		return models.Card{
			ID:          cardID(v.ID, position),
			Title:       v.Title,
			Subtitle:    v.Summary,
			Image:       image,
			RelatedNode: models.RelatedNode{ID: v.ID, Kind: kind},
			Action:      action,
			HasAction:   false,
		}, nil
	default:
		return models.Card{}, &UnsupportedSourceKindError{Kind: fmt.Sprintf("%T", item)}
	}
}

func cardID(localID string, position int) string {
	return globalid.Create(fmt.Sprintf("%s%d", localID, position), cardKind)
}

// typeName turns a CMS content-type id like "link" or "prayerRequest" into
// the display form used as a node kind ("Link", "Prayer Request").
func typeName(typeID string) string {
	if typeID == "" {
		return ""
	}

	var words []string
	var current strings.Builder
	for i, r := range typeID {
		if i > 0 && (unicode.IsUpper(r) || r == '_' || r == '-' || r == ' ') {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		}
		if r == '_' || r == '-' || r == ' ' {
			continue
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
