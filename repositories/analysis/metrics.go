package analysis

import (
	"math"
	"time"

	"scraper.local/instagram-curator/repositories/scrapers"
)

// Sentinel for "never posted" recency and for an undefined engagement
// coefficient of variation.
const MetricSentinel = 999

type AggregateMetrics struct {
	SampleSize int

	// EngagementRate is percent: mean(likes+comments) over posts with any
	// engagement, divided by followers.
	EngagementRate float64
	MedianViews    int
	AvgViews       int

	EngagementPerPost  []float64
	CommentShares      []float64
	CommentShareMedian float64

	// ErPerFollowerAvg is the fraction the scorer normalizes: mean of
	// (likes+comments)/followers over every post in the sample.
	ErPerFollowerAvg float64
	VpfMedian        float64
	VideoCount       int

	DaysSinceLastPost float64
	Posts60d          int
	EngagementCV      float64
}

// BuildMetrics derives the aggregate metrics of one post sample. Pure:
// recomputed fresh each run, wall clock passed in explicitly.
func BuildMetrics(posts []*scrapers.PostInfo, followers int, now time.Time) *AggregateMetrics {
	m := &AggregateMetrics{
		SampleSize:        len(posts),
		DaysSinceLastPost: MetricSentinel,
		EngagementCV:      MetricSentinel,
	}

	nowSec := now.Unix()
	f := float64(followers)

	var validEngagement []float64
	var views []float64
	var vpf []float64
	var lastPost int64

	for _, post := range posts {
		engagement := float64(post.Likes + post.Comments)
		m.EngagementPerPost = append(m.EngagementPerPost, engagement)
		if engagement > 0 {
			validEngagement = append(validEngagement, engagement)
			m.CommentShares = append(m.CommentShares, float64(post.Comments)/engagement)
		} else {
			m.CommentShares = append(m.CommentShares, 0)
		}
		if post.Views != nil {
			views = append(views, float64(*post.Views))
			if f > 0 {
				vpf = append(vpf, float64(*post.Views)/f)
			}
			m.VideoCount++
		}
		if post.Timestamp > lastPost {
			lastPost = post.Timestamp
		}
		if nowSec-post.Timestamp <= 60*24*3600 {
			m.Posts60d++
		}
	}

	if len(validEngagement) > 0 && followers > 0 {
		m.EngagementRate = Mean(validEngagement) / f * 100
	}
	m.MedianViews = int(math.Round(Median(views)))
	m.AvgViews = int(math.Round(Mean(views)))
	m.CommentShareMedian = Median(m.CommentShares)
	m.VpfMedian = Median(vpf)

	if followers > 0 {
		m.ErPerFollowerAvg = Mean(m.EngagementPerPost) / f
	}

	if lastPost > 0 {
		m.DaysSinceLastPost = float64(nowSec-lastPost) / 86400
	}

	meanEngagement := Mean(m.EngagementPerPost)
	if meanEngagement > 0 {
		m.EngagementCV = StdDev(m.EngagementPerPost) / meanEngagement
	}

	return m
}
