package feed

import (
	"fmt"
	"testing"
)

func makePosts(n int) []ContentItem {
	items := make([]ContentItem, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, ContentItem{
			ID:          fmt.Sprintf("post-%d", i),
			ContentType: ContentTypePost,
		})
	}
	return items
}

func makeAds(n int) []ContentItem {
	items := make([]ContentItem, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, ContentItem{
			ID:          fmt.Sprintf("ad-%d", i),
			ContentType: ContentTypeAd,
		})
	}
	return items
}

func ids(items []ContentItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestMixInterleavesEveryFifthPost(t *testing.T) {
	mixed := Mix(makePosts(12), makeAds(3))

	want := []string{
		"post-1", "post-2", "post-3", "post-4", "post-5", "ad-1",
		"post-6", "post-7", "post-8", "post-9", "post-10", "ad-2",
		"post-11", "post-12", "ad-3",
	}

	got := ids(mixed)
	if len(got) != len(want) {
		t.Fatalf("mixed length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mixed[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestMixNoPosts(t *testing.T) {
	mixed := Mix(nil, makeAds(2))

	got := ids(mixed)
	want := []string{"ad-1", "ad-2"}
	if len(got) != len(want) {
		t.Fatalf("mixed length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mixed[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestMixNoAds(t *testing.T) {
	mixed := Mix(makePosts(7), nil)

	if len(mixed) != 7 {
		t.Fatalf("mixed length = %d, want 7", len(mixed))
	}
	for i, item := range mixed {
		if item.ContentType != ContentTypePost {
			t.Errorf("mixed[%d] is %s, want post", i, item.ContentType)
		}
	}
}

func TestMixContainsEveryItemExactlyOnce(t *testing.T) {
	posts, ads := makePosts(23), makeAds(7)
	mixed := Mix(posts, ads)

	if len(mixed) != len(posts)+len(ads) {
		t.Fatalf("mixed length = %d, want %d", len(mixed), len(posts)+len(ads))
	}

	seen := map[string]int{}
	for _, item := range mixed {
		seen[item.ID]++
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("item %s appears %d times", id, count)
		}
	}
}

func TestMixMoreAdsThanSlots(t *testing.T) {
	// 6 posts only open one interior slot; the rest of the ads go to the tail
	mixed := Mix(makePosts(6), makeAds(4))

	want := []string{
		"post-1", "post-2", "post-3", "post-4", "post-5", "ad-1",
		"post-6", "ad-2", "ad-3", "ad-4",
	}
	got := ids(mixed)
	if len(got) != len(want) {
		t.Fatalf("mixed length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mixed[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestPageBounds(t *testing.T) {
	tests := []struct {
		name                 string
		total, page, limit   int
		wantStart, wantEnd   int
	}{
		{"first page", 15, 1, 10, 0, 10},
		{"second page partial", 15, 2, 10, 10, 15},
		{"page past end", 15, 3, 10, 15, 15},
		{"far past end", 15, 99, 10, 15, 15},
		{"exact fit", 20, 2, 10, 10, 20},
		{"empty sequence", 0, 1, 10, 0, 0},
		{"limit larger than total", 3, 1, 10, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := pageBounds(tt.total, tt.page, tt.limit)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("pageBounds(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.total, tt.page, tt.limit, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestPaginationCoversSequenceWithoutOverlap(t *testing.T) {
	mixed := Mix(makePosts(17), makeAds(5))
	total := len(mixed)
	limit := 6

	seen := map[string]bool{}
	for page := 1; ; page++ {
		start, end := pageBounds(total, page, limit)
		if start == end {
			break
		}
		for _, item := range mixed[start:end] {
			if seen[item.ID] {
				t.Fatalf("item %s served on more than one page", item.ID)
			}
			seen[item.ID] = true
		}
	}

	if len(seen) != total {
		t.Errorf("pagination covered %d items, want %d", len(seen), total)
	}
}
