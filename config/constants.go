package config

const (
	IG_APP_ID = "936619743392459"

	IG_PRIMARY_HOST   = "https://i.instagram.com"
	IG_SECONDARY_HOST = "https://www.instagram.com"
	IG_WEB_HOST       = "https://www.instagram.com"

	IG_TIMELINE_DOC_ID = "17888483320059182"
	IG_TIMELINE_PAGE   = 12

	SCRAPER_REQUEST_TIMEOUT = 20
	SCRAPER_BACKOFF_BASE    = 1200
	SCRAPER_BACKOFF_CAP     = 8000
	SCRAPER_BACKOFF_JITTER  = 800
	SCRAPER_MAX_RETRIES     = 3

	SCRAPER_PAGE_SLEEP_BASE   = 1200
	SCRAPER_PAGE_SLEEP_JITTER = 600

	SCRAPER_BLOCK_WAITING_TIMEOUT = 900000000
)

const (
	ASYNQ_QUEUE_TARGETS  = "curator.targets"
	ASYNQ_QUEUE_SESSIONS = "curator.sessions"
	ASYNQ_QUEUE_MEDIA    = "curator.media"
)

const (
	ASYNQ_JOBS_TARGETS_FLUSH   = "targets:flush"
	ASYNQ_JOBS_TARGETS_PROCESS = "targets:process"
	ASYNQ_JOBS_SESSIONS_WARM   = "sessions:warm"
	ASYNQ_JOBS_MEDIA_AVATARS   = "media:avatars:download"
)

const (
	LOCKS_TARGETS_FLUSH   = "locks:curator:targets:flush:%v"
	LOCKS_TARGETS_PROCESS = "locks:curator:targets:process:%v"
	LOCKS_SESSIONS_WARM   = "locks:curator:sessions:warm"
	LOCKS_MEDIA_AVATARS   = "locks:curator:media:avatars:%v"
)

const (
	REDIS_KEY_TARGETS_PENDING       = "curator:targets:pending"
	REDIS_KEY_MEDIA_AVATARS         = "curator:media:avatars:%v:%v"
	REDIS_KEY_MEDIA_AVATARS_PENDING = "curator:media:avatars:pending"
)

const (
	NATS_REPORTS_CREATE  = "curator.reports.create"
	NATS_ACCOUNTS_UPDATE = "curator.accounts.update"
)
