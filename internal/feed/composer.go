// internal/feed/composer.go
// Pure mixed-sequence construction. No storage access here so the
// interleaving and pagination rules are unit-testable in isolation.

package feed

// adInterval is the fixed mixing ratio: one ad after every 5th post.
const adInterval = 5

// Mix builds the mixed sequence: posts in order, with the next unused ad
// spliced in after every 5th post. Ads left over once the posts run out
// are appended to the tail in their fetched order, so the sequence always
// contains every eligible item exactly once.
func Mix(posts, ads []ContentItem) []ContentItem {
	mixed := make([]ContentItem, 0, len(posts)+len(ads))
	adIndex := 0

	for i, post := range posts {
		mixed = append(mixed, post)

		if (i+1)%adInterval == 0 && adIndex < len(ads) {
			mixed = append(mixed, ads[adIndex])
			adIndex++
		}
	}

	for adIndex < len(ads) {
		mixed = append(mixed, ads[adIndex])
		adIndex++
	}

	return mixed
}

// pageBounds clamps the [offset, offset+limit) window to the sequence
// length. A page past the end yields an empty window, not an error.
func pageBounds(total, page, limit int) (start, end int) {
	start = (page - 1) * limit
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end = start + limit
	if end > total {
		end = total
	}
	return start, end
}
