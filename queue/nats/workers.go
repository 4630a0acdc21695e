package nats

import (
	"scraper.local/instagram-curator/common"
	"scraper.local/instagram-curator/queue/nats/workers"
)

type Workers struct {
	NatsContext *common.NatsContext
}

func NewWorkers(natsContext *common.NatsContext) *Workers {
	return &Workers{
		NatsContext: natsContext,
	}
}

func (h *Workers) Subscribe() error {
	workers.NewAccounts(h.NatsContext).Subscribe()
	workers.NewReports(h.NatsContext).Subscribe()
	return nil
}
