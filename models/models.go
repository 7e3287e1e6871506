package models

import "time"

// NodeKind discriminates the related-node union on a Card. Connect-screen
// entries carry their CMS content-type name as the kind, so the set is open.
type NodeKind string

const (
	KindMessage    NodeKind = "Message"
	KindBlog       NodeKind = "Blog"
	KindLiveStream NodeKind = "LiveStream"
	KindSeries     NodeKind = "Series"
	KindCampusItem NodeKind = "CampusItem"
	KindLink       NodeKind = "Link"
)

// Action is the intent a Card carries for the UI.
type Action string

const (
	ActionReadContent Action = "READ_CONTENT"
	ActionOpenURL     Action = "OPEN_URL"
)

// ImageSource is a single displayable URI.
type ImageSource struct {
	URI string `json:"uri"`
}

// ImageMedia is a displayable media reference with one or more sources.
type ImageMedia struct {
	Sources []ImageSource `json:"sources"`
}

// RelatedNode points a Card back at the content it was derived from so the
// UI knows how to navigate.
type RelatedNode struct {
	ID   string   `json:"id"`
	Kind NodeKind `json:"kind"`
}

// Card is the unit of output of every feed algorithm.
type Card struct {
	ID          string      `json:"id"`
	Title       string      `json:"title,omitempty"`
	Subtitle    string      `json:"subtitle,omitempty"`
	LabelText   string      `json:"labelText,omitempty"`
	Summary     string      `json:"summary,omitempty"`
	Image       *ImageMedia `json:"coverImage,omitempty"`
	RelatedNode RelatedNode `json:"relatedNode"`
	Action      Action      `json:"action"`
	HasAction   bool        `json:"hasAction"`
}

// Message is a sermon/message archive entry. Date carries no time of day.
type Message struct {
	ID          string
	Title       string
	Date        time.Time
	Summary     string
	SeriesTitle string
	Speaker     string
	Image       *ImageMedia
}

// Blog is a blog archive entry.
type Blog struct {
	ID       string
	Title    string
	Subtitle string
	Date     time.Time
	Image    *ImageMedia
}

// Series is a message series.
type Series struct {
	ID       string
	Title    string
	Subtitle string
	Image    *ImageMedia
}

// Speaker as returned by the message archive speaker lookup.
type Speaker struct {
	Name  string
	Image string
}

// LiveStream is ephemeral live event state, fetched fresh per request.
// EventStartTime is nil for unscheduled streams, which cannot be temporally
// classified. ContentItem is set when the stream has an associated published
// message.
type LiveStream struct {
	ID             string
	Title          string
	Description    string
	IsLive         bool
	EventStartTime *time.Time
	ContentItem    *Message
	Media          *ImageMedia
	WebViewURL     string
}

// CampusItem is a campus-scoped content entry.
type CampusItem struct {
	ID          string
	Title       string
	Summary     string
	ChannelName string
	Image       *ImageMedia
}

// ConnectItem is one CMS-managed entry on the connect page. TypeID is the raw
// CMS content-type id, e.g. "link" or "page".
type ConnectItem struct {
	ID       string
	TypeID   string
	Title    string
	Summary  string
	MediaURL string
}

// ConnectPage is the CMS default page with its embedded list of entries.
type ConnectPage struct {
	ID    string
	Title string
	Items []ConnectItem
}

// FeedResponse is the card list shape returned by the HTTP layer.
type FeedResponse struct {
	Cards []Card `json:"cards"`
	Count int    `json:"count"`
}

// LiveStatusEvent is broadcast to SSE clients when live status changes.
type LiveStatusEvent struct {
	IsLive   bool       `json:"isLive"`
	StartsAt *time.Time `json:"startsAt,omitempty"`
	At       time.Time  `json:"at"`
}
