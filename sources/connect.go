package sources

import (
	"context"
	"fmt"
	"net/http"

	"steeple/feeds"
	"steeple/models"

	"github.com/labstack/gommon/log"
	"github.com/samber/lo"
)

// Connect adapts the CMS that backs the connect screen's default page.
type Connect struct {
	client  *Client
	baseURL string
	space   string
	token   string
}

func NewConnect(client *Client, baseURL, space, token string) *Connect {
	return &Connect{client: client, baseURL: baseURL, space: space, token: token}
}

type wireConnectItem struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	MediaURL string `json:"mediaUrl"`
}

type connectPageResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	ListItems []wireConnectItem `json:"listItems"`
}

func (c *Connect) DefaultPage(ctx context.Context) (*models.ConnectPage, error) {
	endpoint := fmt.Sprintf("%s/spaces/%s/pages/default", c.baseURL, c.space)
	log.Debugf("fetching connect page from %s", endpoint)

	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	var resp connectPageResponse
	if err := c.client.GetJSON(ctx, "connect", endpoint, header, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch connect page: %w", err)
	}

	return &models.ConnectPage{
		ID:    resp.ID,
		Title: resp.Title,
		Items: lo.Map(resp.ListItems, func(w wireConnectItem, _ int) models.ConnectItem {
			return models.ConnectItem{
				ID:       w.ID,
				TypeID:   w.Type,
				Title:    w.Title,
				Summary:  w.Summary,
				MediaURL: w.MediaURL,
			}
		}),
	}, nil
}

var _ feeds.ConnectSource = (*Connect)(nil)
