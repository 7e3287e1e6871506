package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"steeple/feeds"
	"steeple/models"

	"github.com/samber/lo"
)

// Messages adapts the sermon/message archive API.
type Messages struct {
	client  *Client
	baseURL string
	target  string
}

func NewMessages(client *Client, baseURL, target string) *Messages {
	return &Messages{client: client, baseURL: baseURL, target: target}
}

type wireMessage struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Series      struct {
		Title string `json:"title"`
	} `json:"series"`
	Speakers []struct {
		Name string `json:"name"`
	} `json:"speakers"`
	Images struct {
		Square struct {
			URL string `json:"url"`
		} `json:"square"`
	} `json:"images"`
}

type messagesResponse struct {
	Messages []wireMessage `json:"messages"`
}

func (w wireMessage) toModel() models.Message {
	msg := models.Message{
		ID:          w.ID.String(),
		Title:       w.Title,
		Summary:     w.Description,
		SeriesTitle: w.Series.Title,
	}
	// Archive dates carry no time of day
	if parsed, err := time.Parse("2006-01-02", w.Date); err == nil {
		msg.Date = parsed
	}
	if len(w.Speakers) > 0 {
		msg.Speaker = w.Speakers[0].Name
	}
	if w.Images.Square.URL != "" {
		msg.Image = &models.ImageMedia{Sources: []models.ImageSource{{URI: w.Images.Square.URL}}}
	}
	return msg
}

func (m *Messages) Paginate(ctx context.Context, page feeds.PageRequest) ([]models.Message, error) {
	u, err := url.Parse(m.baseURL + "/messages")
	if err != nil {
		return nil, fmt.Errorf("messages url: %w", err)
	}

	q := u.Query()
	if page.First > 0 {
		q.Set("limit", strconv.Itoa(page.First))
	}
	if m.target != "" {
		q.Set("target", m.target)
	}
	for key, value := range page.Filters {
		q.Set(fmt.Sprintf("filter[%s][]", key), value)
	}
	u.RawQuery = q.Encode()

	var resp messagesResponse
	if err := m.client.GetJSON(ctx, "messages", u.String(), nil, &resp); err != nil {
		return nil, err
	}

	return lo.Map(resp.Messages, func(w wireMessage, _ int) models.Message {
		return w.toModel()
	}), nil
}

type speakersResponse struct {
	Speakers []struct {
		Name  string `json:"name"`
		Image string `json:"image"`
	} `json:"speakers"`
}

func (m *Messages) SpeakerByName(ctx context.Context, name string) (*models.Speaker, error) {
	u, err := url.Parse(m.baseURL + "/speakers")
	if err != nil {
		return nil, fmt.Errorf("speakers url: %w", err)
	}
	q := u.Query()
	q.Set("filter[name]", name)
	u.RawQuery = q.Encode()

	var resp speakersResponse
	if err := m.client.GetJSON(ctx, "speakers", u.String(), nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Speakers) == 0 {
		return nil, nil
	}
	return &models.Speaker{
		Name:  resp.Speakers[0].Name,
		Image: resp.Speakers[0].Image,
	}, nil
}

var _ feeds.MessageSource = (*Messages)(nil)
