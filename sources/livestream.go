package sources

import (
	"context"
	"encoding/json"
	"regexp"
	"time"

	"steeple/feeds"
	"steeple/models"

	"github.com/samber/lo"
)

// LiveStreams adapts the live stream status API. Status is ephemeral and
// fetched fresh on every call; nothing here is cached.
type LiveStreams struct {
	client *Client
	url    string
	target string
}

func NewLiveStreams(client *Client, url, target string) *LiveStreams {
	return &LiveStreams{client: client, url: url, target: target}
}

type wireEvent struct {
	StartsAt  string `json:"starts_at"`
	StreamURL string `json:"stream_url"`
	EmbedCode string `json:"embed_code"`
}

type wireStream struct {
	ID           json.Number  `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	CurrentEvent *wireEvent   `json:"current_event"`
	NextEvent    *wireEvent   `json:"next_event"`
	Message      *wireMessage `json:"message"`
}

type streamsResponse struct {
	Streams []wireStream `json:"streams"`
}

var embedSrcPattern = regexp.MustCompile(`src="(.*?)"`)

func (s *LiveStreams) LiveStreams(ctx context.Context) ([]models.LiveStream, error) {
	u := s.url
	if s.target != "" {
		u += "?target=" + s.target
	}

	var resp streamsResponse
	if err := s.client.GetJSON(ctx, "livestream", u, nil, &resp); err != nil {
		return nil, err
	}

	return lo.Map(resp.Streams, func(w wireStream, _ int) models.LiveStream {
		return w.toModel()
	}), nil
}

func (w wireStream) toModel() models.LiveStream {
	stream := models.LiveStream{
		ID:          w.ID.String(),
		Title:       w.Title,
		Description: w.Description,
		IsLive:      w.CurrentEvent != nil,
	}

	// The current event wins; otherwise the next scheduled one.
	event := w.CurrentEvent
	if event == nil {
		event = w.NextEvent
	}
	if event != nil {
		if startsAt, err := time.Parse(time.RFC3339, event.StartsAt); err == nil {
			stream.EventStartTime = &startsAt
		}
		if event.StreamURL != "" {
			stream.Media = &models.ImageMedia{Sources: []models.ImageSource{{URI: event.StreamURL}}}
		}
		if match := embedSrcPattern.FindStringSubmatch(event.EmbedCode); match != nil {
			stream.WebViewURL = match[1]
		}
	}

	if w.Message != nil {
		msg := w.Message.toModel()
		stream.ContentItem = &msg
	}

	return stream
}

var _ feeds.LiveStreamSource = (*LiveStreams)(nil)
