package analysis

import (
	"testing"
	"time"

	"scraper.local/instagram-curator/repositories/scrapers"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		followers int
		want      Tier
	}{
		{0, TierNano},
		{9999, TierNano},
		{10000, TierMicro},
		{99999, TierMicro},
		{100000, TierMid},
		{499999, TierMid},
		{500000, TierMacro},
		{1999999, TierMacro},
		{2000000, TierMega},
		{50000000, TierMega},
	}
	for _, tt := range tests {
		if got := TierFor(tt.followers); got != tt.want {
			t.Errorf("TierFor(%d) = %v, want %v", tt.followers, got, tt.want)
		}
	}
}

func TestExpectedRatesClamped(t *testing.T) {
	// tiny accounts clamp at the upper band, huge accounts at the lower
	if got := ExpectedEngagementRate(1); got != 0.08 {
		t.Errorf("ExpectedEngagementRate(1) = %v, want 0.08", got)
	}
	if got := ExpectedEngagementRate(100000000); got != 0.004 {
		t.Errorf("ExpectedEngagementRate(100M) = %v, want 0.004", got)
	}
	if got := ExpectedEngagementRate(10000); got != 0.03 {
		t.Errorf("ExpectedEngagementRate(10k) = %v, want anchor 0.03", got)
	}
	if got := ExpectedViewsPerFollower(10000); got != 0.12 {
		t.Errorf("ExpectedViewsPerFollower(10k) = %v, want anchor 0.12", got)
	}
}

func TestScoreEmptySample(t *testing.T) {
	now := time.Unix(1700000000, 0)
	m := BuildMetrics(nil, 50000, now)
	result := Score(m, 50000)

	if result.Score != 0 {
		t.Errorf("Score = %d, want 0 for empty sample", result.Score)
	}
	if result.Grade != "C" {
		t.Errorf("Grade = %q, want C", result.Grade)
	}
}

func TestScoreHealthyMicroAccount(t *testing.T) {
	now := time.Unix(1700000000, 0)
	followers := 50000

	// 20 recent posts, engagement around the expected band, strong views
	var posts []*scrapers.PostInfo
	for i := 0; i < 20; i++ {
		views := intp(9000 + 100*i)
		posts = append(posts, &scrapers.PostInfo{
			Shortcode: string(rune('a' + i)),
			IsVideo:   true,
			Likes:     950 + 10*i,
			Comments:  50 + i,
			Views:     views,
			Timestamp: now.AddDate(0, 0, -2*(i+1)).Unix(),
		})
	}
	m := BuildMetrics(posts, followers, now)
	result := Score(m, followers)

	if result.Score <= 0 || result.Score > 100 {
		t.Fatalf("Score = %d, want within (0,100]", result.Score)
	}
	if result.Score < 50 {
		t.Errorf("Score = %d, expected a healthy account to clear 50", result.Score)
	}
	if result.Components["tier"] != string(TierMicro) {
		t.Errorf("tier component = %v, want %v", result.Components["tier"], TierMicro)
	}
	for _, key := range []string{
		"er_norm", "vpf_norm", "posts_60d", "recency_score",
		"comment_share_score", "consistency_score", "weights", "multipliers",
	} {
		if _, ok := result.Components[key]; !ok {
			t.Errorf("components missing %q", key)
		}
	}
}

func TestScoreFoldsViewWeightBelowThreeVideos(t *testing.T) {
	now := time.Unix(1700000000, 0)
	posts := []*scrapers.PostInfo{
		{Shortcode: "a", Likes: 500, Comments: 50, Timestamp: now.AddDate(0, 0, -1).Unix()},
		{Shortcode: "b", Likes: 480, Comments: 40, Timestamp: now.AddDate(0, 0, -4).Unix()},
		{Shortcode: "c", IsVideo: true, Likes: 520, Comments: 60, Views: intp(8000), Timestamp: now.AddDate(0, 0, -7).Unix()},
	}
	m := BuildMetrics(posts, 30000, now)
	if m.VideoCount != 1 {
		t.Fatalf("VideoCount = %d, want 1", m.VideoCount)
	}

	result := Score(m, 30000)
	weights := result.Components["weights"].(map[string]interface{})
	if weights["vpf"].(float64) != 0 {
		t.Errorf("vpf weight = %v, want 0 when video sample is thin", weights["vpf"])
	}
	if weights["er"].(float64) != 0.35+0.20 {
		t.Errorf("er weight = %v, want folded 0.55", weights["er"])
	}
}

func TestScoreMegaDiminishing(t *testing.T) {
	if got := megaDiminishing(1000000); got != 1.0 {
		t.Errorf("megaDiminishing(1M) = %v, want 1.0", got)
	}
	if got := megaDiminishing(50000000); got != 0.85 {
		t.Errorf("megaDiminishing(50M) = %v, want fully diminished 0.85", got)
	}
	mid := megaDiminishing(26000000)
	if mid <= 0.85 || mid >= 1.0 {
		t.Errorf("megaDiminishing(26M) = %v, want inside (0.85,1.0)", mid)
	}
}

func TestScoreDeterministic(t *testing.T) {
	now := time.Unix(1700000000, 0)
	posts := []*scrapers.PostInfo{
		{Shortcode: "a", IsVideo: true, Likes: 100, Comments: 20, Views: intp(4000), Timestamp: now.AddDate(0, 0, -1).Unix()},
		{Shortcode: "b", IsVideo: true, Likes: 150, Comments: 25, Views: intp(5000), Timestamp: now.AddDate(0, 0, -3).Unix()},
	}
	m := BuildMetrics(posts, 20000, now)
	a := Score(m, 20000)
	b := Score(m, 20000)
	if a.Score != b.Score || a.Grade != b.Grade {
		t.Errorf("scoring not deterministic: %d/%s vs %d/%s", a.Score, a.Grade, b.Score, b.Grade)
	}
}
