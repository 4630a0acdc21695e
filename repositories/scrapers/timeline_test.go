package scrapers

import (
	"testing"

	"scraper.local/instagram-curator/repositories/sessions"
)

func seededProfile(page *TimelinePage) *ProfileInfo {
	return &ProfileInfo{
		Handle:    "maria.estilo",
		AccountID: 9876543210,
		Timeline:  page,
	}
}

func TestCollectSeedPageOnly(t *testing.T) {
	repository := &TimelineRepository{State: sessions.NewState()}

	posts := repository.Collect(seededProfile(&TimelinePage{
		Posts: []*PostInfo{
			{Shortcode: "a"},
			{Shortcode: "b"},
			{Shortcode: "c"},
		},
		HasNext: false,
	}), 24)

	if len(posts) != 3 {
		t.Errorf("collected %d posts, want 3", len(posts))
	}
}

func TestCollectDedupesByShortcode(t *testing.T) {
	repository := &TimelineRepository{State: sessions.NewState()}

	posts := repository.Collect(seededProfile(&TimelinePage{
		Posts: []*PostInfo{
			{Shortcode: "a", Likes: 10},
			{Shortcode: "a", Likes: 99},
			{Shortcode: "b"},
		},
		HasNext: false,
	}), 24)

	if len(posts) != 2 {
		t.Fatalf("collected %d posts, want 2", len(posts))
	}
	if posts[0].Likes != 10 {
		t.Errorf("first occurrence lost, Likes = %d", posts[0].Likes)
	}
}

func TestCollectTruncatesToWanted(t *testing.T) {
	repository := &TimelineRepository{State: sessions.NewState()}

	var seed []*PostInfo
	for i := 0; i < 12; i++ {
		seed = append(seed, &PostInfo{Shortcode: string(rune('a' + i))})
	}
	posts := repository.Collect(seededProfile(&TimelinePage{
		Posts:   seed,
		HasNext: false,
	}), 5)

	if len(posts) != 5 {
		t.Errorf("collected %d posts, want 5", len(posts))
	}
}

func TestCollectStopsWithoutCursor(t *testing.T) {
	// has_next_page without a cursor must not paginate; a nil fetcher would
	// panic if the walk continued
	repository := &TimelineRepository{State: sessions.NewState()}

	posts := repository.Collect(seededProfile(&TimelinePage{
		Posts:     []*PostInfo{{Shortcode: "a"}},
		HasNext:   true,
		EndCursor: "",
	}), 24)

	if len(posts) != 1 {
		t.Errorf("collected %d posts, want 1", len(posts))
	}
}

func TestCollectNilTimeline(t *testing.T) {
	repository := &TimelineRepository{State: sessions.NewState()}

	if posts := repository.Collect(seededProfile(nil), 24); len(posts) != 0 {
		t.Errorf("collected %d posts from a nil seed, want 0", len(posts))
	}
}
