package analysis

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"scraper.local/instagram-curator/repositories/scrapers"
)

func intp(v int) *int {
	return &v
}

func samplePost(shortcode string, likes int, comments int, views *int, daysAgo int, now time.Time) *scrapers.PostInfo {
	return &scrapers.PostInfo{
		Shortcode: shortcode,
		IsVideo:   views != nil,
		Likes:     likes,
		Comments:  comments,
		Views:     views,
		Timestamp: now.AddDate(0, 0, -daysAgo).Unix(),
	}
}

func TestBuildMetricsEmptySample(t *testing.T) {
	now := time.Unix(1700000000, 0)
	m := BuildMetrics(nil, 50000, now)

	if m.SampleSize != 0 {
		t.Errorf("SampleSize = %d, want 0", m.SampleSize)
	}
	if m.EngagementRate != 0 {
		t.Errorf("EngagementRate = %v, want 0", m.EngagementRate)
	}
	if m.DaysSinceLastPost != MetricSentinel {
		t.Errorf("DaysSinceLastPost = %v, want sentinel %v", m.DaysSinceLastPost, MetricSentinel)
	}
	if m.EngagementCV != MetricSentinel {
		t.Errorf("EngagementCV = %v, want sentinel %v", m.EngagementCV, MetricSentinel)
	}
}

func TestBuildMetricsViewsOnlyFromVideos(t *testing.T) {
	now := time.Unix(1700000000, 0)
	posts := []*scrapers.PostInfo{
		samplePost("a", 100, 10, intp(5000), 1, now),
		samplePost("b", 200, 20, nil, 2, now),
		samplePost("c", 300, 30, intp(7000), 3, now),
	}
	m := BuildMetrics(posts, 100000, now)

	if m.VideoCount != 2 {
		t.Errorf("VideoCount = %d, want 2", m.VideoCount)
	}
	if m.MedianViews != 6000 {
		t.Errorf("MedianViews = %d, want 6000", m.MedianViews)
	}
	if m.AvgViews != 6000 {
		t.Errorf("AvgViews = %d, want 6000", m.AvgViews)
	}
}

func TestBuildMetricsEngagementRatePercent(t *testing.T) {
	now := time.Unix(1700000000, 0)
	posts := []*scrapers.PostInfo{
		samplePost("a", 900, 100, nil, 1, now),
		samplePost("b", 0, 0, nil, 2, now),
	}
	m := BuildMetrics(posts, 100000, now)

	// only the engaged post contributes to the percent rate
	if m.EngagementRate != 1.0 {
		t.Errorf("EngagementRate = %v, want 1.0", m.EngagementRate)
	}
	// the scorer's fraction averages over every post
	want := 500.0 / 100000
	if math.Abs(m.ErPerFollowerAvg-want) > 1e-12 {
		t.Errorf("ErPerFollowerAvg = %v, want %v", m.ErPerFollowerAvg, want)
	}
}

func TestBuildMetricsRecencyAndFrequency(t *testing.T) {
	now := time.Unix(1700000000, 0)
	posts := []*scrapers.PostInfo{
		samplePost("a", 10, 1, nil, 3, now),
		samplePost("b", 10, 1, nil, 40, now),
		samplePost("c", 10, 1, nil, 90, now),
	}
	m := BuildMetrics(posts, 10000, now)

	if m.Posts60d != 2 {
		t.Errorf("Posts60d = %d, want 2", m.Posts60d)
	}
	if math.Abs(m.DaysSinceLastPost-3) > 1e-9 {
		t.Errorf("DaysSinceLastPost = %v, want 3", m.DaysSinceLastPost)
	}
}

func TestBuildMetricsOrderInvariant(t *testing.T) {
	now := time.Unix(1700000000, 0)
	var posts []*scrapers.PostInfo
	for i := 0; i < 12; i++ {
		var views *int
		if i%2 == 0 {
			views = intp(1000 * (i + 1))
		}
		posts = append(posts, samplePost(
			string(rune('a'+i)),
			100*(i+1),
			10*(i+1),
			views,
			i+1,
			now,
		))
	}
	a := BuildMetrics(posts, 50000, now)

	shuffled := make([]*scrapers.PostInfo, len(posts))
	copy(shuffled, posts)
	rand.New(rand.NewSource(42)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	b := BuildMetrics(shuffled, 50000, now)

	if a.EngagementRate != b.EngagementRate ||
		a.MedianViews != b.MedianViews ||
		a.AvgViews != b.AvgViews ||
		a.VpfMedian != b.VpfMedian ||
		a.CommentShareMedian != b.CommentShareMedian ||
		a.Posts60d != b.Posts60d ||
		a.DaysSinceLastPost != b.DaysSinceLastPost ||
		a.EngagementCV != b.EngagementCV {
		t.Errorf("metrics depend on post order:\n%+v\n%+v", a, b)
	}
}

func TestBuildMetricsIdempotent(t *testing.T) {
	now := time.Unix(1700000000, 0)
	posts := []*scrapers.PostInfo{
		samplePost("a", 100, 10, intp(5000), 1, now),
		samplePost("b", 200, 20, intp(9000), 5, now),
	}
	a := BuildMetrics(posts, 40000, now)
	b := BuildMetrics(posts, 40000, now)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("repeated builds differ:\n%+v\n%+v", a, b)
	}
}
