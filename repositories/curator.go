package repositories

import (
	"errors"
	"log"
	"time"

	"gorm.io/datatypes"

	"scraper.local/instagram-curator/models"
	"scraper.local/instagram-curator/repositories/analysis"
	"scraper.local/instagram-curator/repositories/scrapers"
	"scraper.local/instagram-curator/repositories/sessions"
)

type CuratorRepository struct {
	State                *sessions.State
	ProfilesRepository   *scrapers.ProfilesRepository
	TimelineRepository   *scrapers.TimelineRepository
	ClassifierRepository *analysis.ClassifierRepository
	AccountsRepository   *AccountsRepository
	PostsRepository      *PostsRepository
	ReportsRepository    *ReportsRepository
	TargetsRepository    *TargetsRepository
	SessionsRepository   *SessionsRepository
}

// Process runs the full pipeline for one target: acquire profile, paginate
// posts, derive metrics, score, classify, persist. A terminal acquisition
// error becomes a failure report; the error never escapes to abort the pool.
func (r *CuratorRepository) Process(target *models.Target) (report *models.Report, err error) {
	log.Println("curator processing", target.Name)
	r.TargetsRepository.Update(target, "status", TARGET_STATUS_RUNNING)

	r.State.EnsureWarm()

	profile, err := r.ProfilesRepository.Acquire(target.Name)
	if err != nil {
		log.Println("target acquisition failed", target.Name, err)
		var fetchErr *scrapers.FetchError
		if errors.As(err, &fetchErr) && fetchErr.StatusCode == 429 && r.SessionsRepository != nil {
			if session, applyErr := r.SessionsRepository.Apply(); applyErr == nil {
				r.SessionsRepository.Block(session)
			}
		}
		report, _ = r.ReportsRepository.Failure(target.Name, err)
		r.TargetsRepository.Update(target, "status", TARGET_STATUS_FAILED)
		err = nil
		return
	}

	r.TargetsRepository.Update(target, "handle", profile.Handle)

	email := analysis.EmailFromProfile(profile)
	account, err := r.AccountsRepository.Save(map[string]interface{}{
		"handle":          profile.Handle,
		"account_id":      profile.AccountID,
		"name":            profile.Name,
		"biography":       profile.Biography,
		"external_url":    profile.ExternalUrl,
		"category":        profile.Category,
		"email":           email,
		"avatar":          profile.Avatar,
		"is_verified":     profile.IsVerified,
		"followers_count": profile.FollowersCount,
		"following_count": profile.FollowingCount,
		"posts_count":     profile.PostsCount,
	})
	if err != nil {
		return
	}

	posts := r.TimelineRepository.Collect(profile, target.Wanted)
	if _, err = r.PostsRepository.Sync(account.ID, posts); err != nil {
		return
	}

	metrics := analysis.BuildMetrics(posts, profile.FollowersCount, time.Now())
	result := analysis.Score(metrics, profile.FollowersCount)
	verdict := r.ClassifierRepository.Classify(profile, posts, metrics)

	report, err = r.ReportsRepository.Create(map[string]interface{}{
		"target":          target.Name,
		"account_id":      account.ID,
		"handle":          profile.Handle,
		"followers":       profile.FollowersCount,
		"sample_size":     metrics.SampleSize,
		"engagement_rate": metrics.EngagementRate,
		"median_views":    metrics.MedianViews,
		"avg_views":       metrics.AvgViews,
		"score":           result.Score,
		"grade":           result.Grade,
		"components":      datatypes.JSONMap(result.Components),
		"gender":          verdict.Gender,
		"email":           email,
		"approved":        verdict.Approved,
		"reasons":         verdict.Reasons,
	})
	if err != nil {
		return
	}

	r.TargetsRepository.Update(target, "status", TARGET_STATUS_DONE)
	log.Println(
		"curator processed",
		target.Name,
		"score", result.Score,
		"grade", result.Grade,
		"approved", verdict.Approved,
	)
	return
}
