package jobs

import (
	"github.com/hibiken/asynq"

	"scraper.local/instagram-curator/config"
)

type Sessions struct{}

func (h *Sessions) Warm() (*asynq.Task, error) {
	return asynq.NewTask(config.ASYNQ_JOBS_SESSIONS_WARM, nil), nil
}
