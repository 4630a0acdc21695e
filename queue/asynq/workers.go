package asynq

import (
	"scraper.local/instagram-curator/common"
	"scraper.local/instagram-curator/queue/asynq/workers"
	"scraper.local/instagram-curator/repositories/sessions"
)

type Workers struct {
	AnsqContext *common.AnsqServerContext
	State       *sessions.State
}

func NewWorkers(ansqContext *common.AnsqServerContext) *Workers {
	return &Workers{
		AnsqContext: ansqContext,
		State:       sessions.NewState(),
	}
}

func (h *Workers) Register() error {
	workers.NewTargets(h.AnsqContext, h.State).Register()
	workers.NewSessions(h.AnsqContext, h.State).Register()
	workers.NewMedia(h.AnsqContext).Register()
	return nil
}
