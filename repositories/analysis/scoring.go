package analysis

import (
	"math"
)

type Tier string

const (
	TierNano  Tier = "nano"
	TierMicro Tier = "micro"
	TierMid   Tier = "mid"
	TierMacro Tier = "macro"
	TierMega  Tier = "mega"
)

type ScoreResult struct {
	Score      int
	Grade      string
	Components map[string]interface{}
}

type weightVector struct {
	er      float64
	vpf     float64
	freq    float64
	rec     float64
	cshare  float64
	consist float64
}

var tierWeights = map[Tier]weightVector{
	TierNano:  {er: 0.40, vpf: 0.15, freq: 0.15, rec: 0.10, cshare: 0.10, consist: 0.10},
	TierMicro: {er: 0.35, vpf: 0.20, freq: 0.15, rec: 0.10, cshare: 0.10, consist: 0.10},
	TierMid:   {er: 0.30, vpf: 0.25, freq: 0.15, rec: 0.10, cshare: 0.10, consist: 0.10},
	TierMacro: {er: 0.25, vpf: 0.30, freq: 0.15, rec: 0.10, cshare: 0.10, consist: 0.10},
	TierMega:  {er: 0.22, vpf: 0.33, freq: 0.15, rec: 0.10, cshare: 0.10, consist: 0.10},
}

func TierFor(followers int) Tier {
	switch {
	case followers < 10000:
		return TierNano
	case followers < 100000:
		return TierMicro
	case followers < 500000:
		return TierMid
	case followers < 2000000:
		return TierMacro
	default:
		return TierMega
	}
}

// ExpectedEngagementRate is the engagement fraction typical for an account
// of this size: a power law decay anchored at 10k followers, clamped to a
// plausible 0.4%-8% band.
func ExpectedEngagementRate(followers int) float64 {
	base := math.Pow(math.Max(1, float64(followers))/10000, -0.30)
	return math.Max(0.004, math.Min(0.08, 0.03*base))
}

// ExpectedViewsPerFollower is the video-views-per-follower fraction typical
// for the size, clamped to 1%-50%.
func ExpectedViewsPerFollower(followers int) float64 {
	base := math.Pow(math.Max(1, float64(followers))/10000, -0.25)
	return math.Max(0.01, math.Min(0.5, 0.12*base))
}

func sweetSpotMultiplier(followers float64) float64 {
	x := (followers - 250000) / 600000
	return 0.90 + 0.18*math.Exp(-0.5*x*x)
}

func megaDiminishing(followers float64) float64 {
	if followers < 2000000 {
		return 1.0
	}
	t := math.Min(1, (followers-2000000)/48000000)
	return 1.0 - 0.15*t
}

// Score converts aggregate metrics into a 0-100 engagement health score.
// Every observed rate is normalized against what is expected for an account
// of this follower size; a raw 2% engagement rate is excellent at a million
// followers and poor at a thousand.
func Score(m *AggregateMetrics, followers int) *ScoreResult {
	f := math.Max(1, float64(followers))

	erExpected := ExpectedEngagementRate(followers)
	vpfExpected := ExpectedViewsPerFollower(followers)
	erNorm := Ratio(m.ErPerFollowerAvg, erExpected)
	vpfNorm := Ratio(m.VpfMedian, vpfExpected)

	tier := TierFor(followers)
	weights := tierWeights[tier]

	// Below 3 video samples the view rate is not measurable as a separate
	// tier-fair signal; its weight folds into engagement.
	erWeight := weights.er
	vpfWeight := weights.vpf
	if m.VideoCount < 3 {
		erWeight += vpfWeight
		vpfWeight = 0
	}

	erScore := Clamp01(erNorm / 1.2)
	vpfScore := Clamp01(vpfNorm / 1.2)
	freqScore := Clamp01(float64(m.Posts60d) / 12)
	recencyScore := Clamp01(math.Exp(-m.DaysSinceLastPost / 12))
	commentShareScore := Clamp01(m.CommentShareMedian / 0.22)
	consistencyScore := Clamp01((2.0 - math.Min(2.0, m.EngagementCV)) / (2.0 - 0.6))

	sweetSpot := sweetSpotMultiplier(f)
	diminishing := megaDiminishing(f)

	score01 := erWeight*erScore +
		vpfWeight*vpfScore +
		weights.freq*freqScore +
		weights.rec*recencyScore +
		weights.cshare*commentShareScore +
		weights.consist*consistencyScore

	score := int(math.Round(Clamp01(score01*sweetSpot*diminishing) * 100))

	grade := "C"
	if score >= 75 {
		grade = "A"
	} else if score >= 60 {
		grade = "B"
	}

	return &ScoreResult{
		Score: score,
		Grade: grade,
		Components: map[string]interface{}{
			"tier":                 string(tier),
			"followers":            followers,
			"er_pct":               round2(m.ErPerFollowerAvg * 100),
			"er_expected_pct":      round2(erExpected * 100),
			"er_norm":              round3(erNorm),
			"vpf_pct_med":          round2(m.VpfMedian * 100),
			"vpf_expected_pct":     round2(vpfExpected * 100),
			"vpf_norm":             round3(vpfNorm),
			"posts_60d":            m.Posts60d,
			"freq_score":           round3(freqScore),
			"days_since_last_post": int(math.Round(m.DaysSinceLastPost)),
			"recency_score":        round3(recencyScore),
			"comment_share_med":    round3(m.CommentShareMedian),
			"comment_share_score":  round3(commentShareScore),
			"cv_engagement":        round2(m.EngagementCV),
			"consistency_score":    round3(consistencyScore),
			"weights": map[string]interface{}{
				"er":      erWeight,
				"vpf":     vpfWeight,
				"freq":    weights.freq,
				"rec":     weights.rec,
				"cshare":  weights.cshare,
				"consist": weights.consist,
			},
			"multipliers": map[string]interface{}{
				"sweet_spot":       round3(sweetSpot),
				"mega_diminishing": round3(diminishing),
			},
		},
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
