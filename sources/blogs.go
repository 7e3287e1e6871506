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

// Blogs adapts the blog archive API.
type Blogs struct {
	client  *Client
	baseURL string
}

func NewBlogs(client *Client, baseURL string) *Blogs {
	return &Blogs{client: client, baseURL: baseURL}
}

type wireBlog struct {
	ID       json.Number `json:"id"`
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle"`
	Date     string      `json:"date"`
	Images   struct {
		Square struct {
			URL string `json:"url"`
		} `json:"square"`
	} `json:"images"`
}

type blogsResponse struct {
	Blogs []wireBlog `json:"blogs"`
}

func (m *Blogs) Paginate(ctx context.Context, limit int) ([]models.Blog, error) {
	u, err := url.Parse(m.baseURL + "/blogs")
	if err != nil {
		return nil, fmt.Errorf("blogs url: %w", err)
	}
	q := u.Query()
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	u.RawQuery = q.Encode()

	var resp blogsResponse
	if err := m.client.GetJSON(ctx, "blogs", u.String(), nil, &resp); err != nil {
		return nil, err
	}

	return lo.Map(resp.Blogs, func(w wireBlog, _ int) models.Blog {
		blog := models.Blog{
			ID:       w.ID.String(),
			Title:    w.Title,
			Subtitle: w.Subtitle,
		}
		if parsed, err := time.Parse("2006-01-02", w.Date); err == nil {
			blog.Date = parsed
		}
		if w.Images.Square.URL != "" {
			blog.Image = &models.ImageMedia{Sources: []models.ImageSource{{URI: w.Images.Square.URL}}}
		}
		return blog
	}), nil
}

var _ feeds.BlogSource = (*Blogs)(nil)
