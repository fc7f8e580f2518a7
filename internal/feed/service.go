// internal/feed/service.go
package feed

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Service errors
var (
	ErrContentNotFound    = errors.New("content not found")
	ErrInvalidInteraction = errors.New("invalid interaction type")
)

// Service composes the mixed feed and records interactions
type Service struct {
	store Store
}

// NewService creates a new feed service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// ComposeFeed builds the full mixed sequence, slices out the requested
// page, and bumps the view counter of every post on that page. A failed
// view bump never fails the page: the item is still served with its
// stale count, and the failure is logged and counted.
func (s *Service) ComposeFeed(ctx context.Context, page, limit int) (*FeedPage, error) {
	feedRequestsTotal.Inc()

	posts, err := s.store.EligiblePosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("compose feed: %w", err)
	}

	ads, err := s.store.EligibleAds(ctx)
	if err != nil {
		return nil, fmt.Errorf("compose feed: %w", err)
	}

	mixed := Mix(posts, ads)
	total := len(mixed)

	start, end := pageBounds(total, page, limit)
	items := make([]ContentItem, end-start)
	copy(items, mixed[start:end])

	for i := range items {
		feedItemsServedTotal.WithLabelValues(items[i].ContentType).Inc()

		if items[i].ContentType != ContentTypePost {
			continue
		}
		if err := s.store.IncrementViews(ctx, items[i].ID); err != nil {
			log.Printf("WARN: view count increment failed for post %s: %v", items[i].ID, err)
			feedViewCountFailuresTotal.Inc()
			continue
		}
		items[i].ViewsCount++
	}

	return &FeedPage{
		Items:   items,
		Page:    page,
		Limit:   limit,
		Total:   total,
		HasMore: start+limit < total,
	}, nil
}

// RecordInteraction bumps the like/share counter for a post and returns
// the new value. Unknown kinds are rejected before any storage call.
func (s *Service) RecordInteraction(ctx context.Context, contentID, kind string) (int, error) {
	if _, ok := counterColumns[kind]; !ok {
		return 0, ErrInvalidInteraction
	}

	newCount, err := s.store.IncrementCounter(ctx, contentID, kind)
	if err != nil {
		return 0, err
	}

	feedInteractionsTotal.WithLabelValues(kind).Inc()
	return newCount, nil
}
