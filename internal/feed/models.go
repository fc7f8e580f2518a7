// internal/feed/models.go
package feed

import "time"

// Content type discriminators
const (
	ContentTypePost = "post"
	ContentTypeAd   = "ad"
)

// Interaction kinds accepted by the recorder
const (
	InteractionLike  = "like"
	InteractionShare = "share"
)

// ContentItem is the normalized shape shared by posts and ads in the feed.
// Ads carry zeroed counters and a fixed "Sponsored" attribution.
type ContentItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	MediaType    string    `json:"media_type"`
	MediaURL     string    `json:"media_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	LikesCount   int       `json:"likes_count"`
	SharesCount  int       `json:"shares_count"`
	ViewsCount   int       `json:"views_count"`
	ContentType  string    `json:"content_type"`
	AdType       string    `json:"ad_type,omitempty"`
}

// FeedPage is one page of the mixed feed
type FeedPage struct {
	Items   []ContentItem `json:"feed"`
	Page    int           `json:"page"`
	Limit   int           `json:"limit"`
	Total   int           `json:"total"`
	HasMore bool          `json:"has_more"`
}

// InteractRequest is the body of POST /api/feed/{content_id}/interact
type InteractRequest struct {
	Type string `json:"type"`
}
