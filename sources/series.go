package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"steeple/feeds"
	"steeple/models"
)

// Series looks up single message series in the archive API.
type Series struct {
	client  *Client
	baseURL string
}

func NewSeries(client *Client, baseURL string) *Series {
	return &Series{client: client, baseURL: baseURL}
}

type seriesResponse struct {
	Series struct {
		ID       json.Number `json:"id"`
		Title    string      `json:"title"`
		Subtitle string      `json:"subtitle"`
		Images   struct {
			Square struct {
				URL string `json:"url"`
			} `json:"square"`
		} `json:"images"`
	} `json:"series"`
}

func (s *Series) SeriesByID(ctx context.Context, id string) (*models.Series, error) {
	endpoint := fmt.Sprintf("%s/series/%s", s.baseURL, url.PathEscape(id))

	var resp seriesResponse
	if err := s.client.GetJSON(ctx, "series", endpoint, nil, &resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	series := &models.Series{
		ID:       resp.Series.ID.String(),
		Title:    resp.Series.Title,
		Subtitle: resp.Series.Subtitle,
	}
	if resp.Series.Images.Square.URL != "" {
		series.Image = &models.ImageMedia{Sources: []models.ImageSource{{URI: resp.Series.Images.Square.URL}}}
	}
	return series, nil
}

var _ feeds.SeriesSource = (*Series)(nil)
