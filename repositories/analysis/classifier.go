package analysis

import (
	"log"
	"regexp"
	"strings"

	"scraper.local/instagram-curator/repositories/scrapers"
)

type GateThresholds struct {
	MinFollowers   int
	MinFollowRatio float64

	// Percent floors per follower tier.
	CombinedEngagementFloor map[Tier]float64
	ViewRateFloor           map[Tier]float64

	// A view rate this far below its floor logs a warning instead of
	// rejecting.
	ViewRateGrace float64
}

func DefaultGateThresholds() *GateThresholds {
	return &GateThresholds{
		MinFollowers:   5000,
		MinFollowRatio: 1.0,
		CombinedEngagementFloor: map[Tier]float64{
			TierNano:  1.20,
			TierMicro: 0.80,
			TierMid:   0.50,
			TierMacro: 0.30,
			TierMega:  0.20,
		},
		ViewRateFloor: map[Tier]float64{
			TierNano:  2.00,
			TierMicro: 1.50,
			TierMid:   1.00,
			TierMacro: 0.80,
			TierMega:  0.50,
		},
		ViewRateGrace: 0.30,
	}
}

type Verdict struct {
	Approved bool
	Reasons  []string

	Commercial bool
	OnTopic    bool
	Gender     string
	Geo        *GeoSignal
}

type ClassifierRepository struct {
	Policy     *GeoPolicy
	Thresholds *GateThresholds
}

func NewClassifierRepository() *ClassifierRepository {
	return &ClassifierRepository{
		Policy:     DefaultGeoPolicy(),
		Thresholds: DefaultGateThresholds(),
	}
}

// Classify combines the heuristic signals and threshold gates into an
// approval verdict. Every check runs; the reasons list carries every failure
// so a rejection is auditable. Approved iff the list is empty.
func (r *ClassifierRepository) Classify(
	profile *scrapers.ProfileInfo,
	posts []*scrapers.PostInfo,
	metrics *AggregateMetrics,
) *Verdict {
	verdict := &Verdict{
		Commercial: IsCommercial(profile.Handle, profile.Name),
		OnTopic:    IsOnTopic(profile.Category, profile.Biography, profile.Name),
		Gender:     GuessGender(profile.Biography, profile.Category, profile.Name, profile.Handle),
		Geo:        r.Policy.EvaluateGeo(profile, posts),
	}

	tier := TierFor(profile.FollowersCount)

	if verdict.Commercial {
		verdict.Reasons = append(verdict.Reasons, "commercial account")
	}
	if !verdict.OnTopic {
		verdict.Reasons = append(verdict.Reasons, "off-topic account")
	}

	if profile.FollowersCount < r.Thresholds.MinFollowers {
		verdict.Reasons = append(verdict.Reasons, "too few followers")
	}

	if profile.FollowingCount > 0 {
		ratio := float64(profile.FollowersCount) / float64(profile.FollowingCount)
		if ratio < r.Thresholds.MinFollowRatio {
			verdict.Reasons = append(verdict.Reasons, "low followers/following ratio")
		}
	}

	viewRate := 0.0
	if profile.FollowersCount > 0 {
		viewRate = float64(metrics.MedianViews) / float64(profile.FollowersCount) * 100
	}

	// With too few videos the view rate is not a fair signal; the combined
	// gate falls back to the raw engagement rate alone, mirroring the
	// scorer's weight fold.
	combined := metrics.EngagementRate
	if metrics.VideoCount >= 3 {
		combined = 0.6*metrics.EngagementRate + 0.4*viewRate
	}
	if combined < r.Thresholds.CombinedEngagementFloor[tier] {
		verdict.Reasons = append(verdict.Reasons, "low combined engagement")
	}

	if metrics.VideoCount >= 3 {
		floor := r.Thresholds.ViewRateFloor[tier]
		switch {
		case viewRate >= floor:
		case viewRate >= floor-r.Thresholds.ViewRateGrace:
			log.Println("view rate inside grace band", profile.Handle, viewRate, floor)
		default:
			verdict.Reasons = append(verdict.Reasons, "low view rate")
		}
	}

	if !verdict.Geo.Approved {
		verdict.Reasons = append(verdict.Reasons, "outside target geography")
	}

	verdict.Approved = len(verdict.Reasons) == 0
	return verdict
}

var emailPattern = regexp.MustCompile(`(?i)([a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,})`)

// EmailFromProfile prefers the declared business/public email, then scans
// the bio, then the external link.
func EmailFromProfile(profile *scrapers.ProfileInfo) string {
	if profile.BusinessEmail != "" {
		return strings.ToLower(profile.BusinessEmail)
	}
	if match := emailPattern.FindString(profile.Biography); match != "" {
		return strings.ToLower(match)
	}
	if match := emailPattern.FindString(profile.ExternalUrl); match != "" {
		return strings.ToLower(match)
	}
	return ""
}
