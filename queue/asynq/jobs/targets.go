package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"scraper.local/instagram-curator/config"
)

type TargetProcessPayload struct {
	TargetID string
}

type Targets struct{}

func (h *Targets) Flush() (*asynq.Task, error) {
	return asynq.NewTask(config.ASYNQ_JOBS_TARGETS_FLUSH, nil), nil
}

func (h *Targets) Process(targetID string) (*asynq.Task, error) {
	payload, err := json.Marshal(TargetProcessPayload{targetID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(config.ASYNQ_JOBS_TARGETS_PROCESS, payload), nil
}
