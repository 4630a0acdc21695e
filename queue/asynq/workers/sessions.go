package workers

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"scraper.local/instagram-curator/common"
	"scraper.local/instagram-curator/config"
	"scraper.local/instagram-curator/repositories"
	"scraper.local/instagram-curator/repositories/sessions"
)

type Sessions struct {
	AnsqContext *common.AnsqServerContext
	State       *sessions.State
	Repository  *repositories.SessionsRepository
}

func NewSessions(ansqContext *common.AnsqServerContext, state *sessions.State) *Sessions {
	h := &Sessions{
		AnsqContext: ansqContext,
		State:       state,
	}
	h.Repository = &repositories.SessionsRepository{
		Db:    h.AnsqContext.Db,
		State: state,
	}
	return h
}

func (h *Sessions) Warm(ctx context.Context, t *asynq.Task) error {
	mutex := common.NewMutex(
		h.AnsqContext.Rdb,
		h.AnsqContext.Ctx,
		config.LOCKS_SESSIONS_WARM,
	)
	if !mutex.Lock(30 * time.Second) {
		return nil
	}
	defer mutex.Unlock()

	h.State.EnsureWarm()
	h.Repository.Apply()
	return nil
}

func (h *Sessions) Register() error {
	h.AnsqContext.Mux.HandleFunc(config.ASYNQ_JOBS_SESSIONS_WARM, h.Warm)
	return nil
}
