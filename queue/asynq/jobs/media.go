package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"scraper.local/instagram-curator/config"
)

type AvatarPayload struct {
	AccountID string
}

type Media struct{}

func (h *Media) Avatar(accountID string) (*asynq.Task, error) {
	payload, err := json.Marshal(AvatarPayload{accountID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(config.ASYNQ_JOBS_MEDIA_AVATARS, payload), nil
}
