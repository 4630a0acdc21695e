package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"scraper.local/instagram-curator/common"
	"scraper.local/instagram-curator/config"
	"scraper.local/instagram-curator/queue/asynq/jobs"
	"scraper.local/instagram-curator/repositories"
	"scraper.local/instagram-curator/repositories/analysis"
	scrapersRepositories "scraper.local/instagram-curator/repositories/scrapers"
	"scraper.local/instagram-curator/repositories/sessions"
)

type Targets struct {
	AnsqContext       *common.AnsqServerContext
	Repository        *repositories.CuratorRepository
	TargetsRepository *repositories.TargetsRepository
}

func NewTargets(ansqContext *common.AnsqServerContext, state *sessions.State) *Targets {
	h := &Targets{
		AnsqContext: ansqContext,
	}
	h.TargetsRepository = &repositories.TargetsRepository{
		Db: h.AnsqContext.Db,
	}
	fetcher := &scrapersRepositories.FetcherRepository{
		State: state,
	}
	h.Repository = &repositories.CuratorRepository{
		State: state,
		ProfilesRepository: &scrapersRepositories.ProfilesRepository{
			State:             state,
			FetcherRepository: fetcher,
			ResolverRepository: &scrapersRepositories.ResolverRepository{
				State:             state,
				FetcherRepository: fetcher,
			},
		},
		TimelineRepository: &scrapersRepositories.TimelineRepository{
			State:             state,
			FetcherRepository: fetcher,
		},
		ClassifierRepository: analysis.NewClassifierRepository(),
		AccountsRepository: &repositories.AccountsRepository{
			Db:   h.AnsqContext.Db,
			Nats: h.AnsqContext.Nats,
		},
		PostsRepository: &repositories.PostsRepository{
			Db: h.AnsqContext.Db,
		},
		ReportsRepository: &repositories.ReportsRepository{
			Db:   h.AnsqContext.Db,
			Nats: h.AnsqContext.Nats,
		},
		TargetsRepository: h.TargetsRepository,
		SessionsRepository: &repositories.SessionsRepository{
			Db:    h.AnsqContext.Db,
			State: state,
		},
	}
	return h
}

// Flush requeues targets stuck in the running state, usually left behind by
// a process restart mid pipeline.
func (h *Targets) Flush(ctx context.Context, t *asynq.Task) error {
	mutex := common.NewMutex(
		h.AnsqContext.Rdb,
		h.AnsqContext.Ctx,
		fmt.Sprintf(config.LOCKS_TARGETS_FLUSH, "all"),
	)
	if !mutex.Lock(30 * time.Second) {
		return nil
	}
	defer mutex.Unlock()

	stale := time.Now().Add(-30 * time.Minute).UnixMicro()
	targets := h.TargetsRepository.Listings(map[string]interface{}{
		"status": repositories.TARGET_STATUS_RUNNING,
	}, 1, 100)
	for _, target := range targets {
		if target.Timestamp > stale {
			continue
		}
		log.Println("requeue stale target", target.Name)
		h.TargetsRepository.Updates(target, map[string]interface{}{
			"timestamp": time.Now().UnixMicro(),
			"status":    repositories.TARGET_STATUS_PENDING,
		})
	}
	return nil
}

func (h *Targets) Process(ctx context.Context, t *asynq.Task) error {
	var payload jobs.TargetProcessPayload
	json.Unmarshal(t.Payload(), &payload)

	mutex := common.NewMutex(
		h.AnsqContext.Rdb,
		h.AnsqContext.Ctx,
		fmt.Sprintf(config.LOCKS_TARGETS_PROCESS, payload.TargetID),
	)
	if !mutex.Lock(10 * time.Minute) {
		return nil
	}
	defer mutex.Unlock()

	target, err := h.TargetsRepository.Find(payload.TargetID)
	if err != nil {
		log.Println("target can not be found", payload.TargetID, err)
		return nil
	}
	if target.Status != repositories.TARGET_STATUS_PENDING {
		return nil
	}
	h.AnsqContext.Rdb.ZRem(h.AnsqContext.Ctx, config.REDIS_KEY_TARGETS_PENDING, target.ID)
	if _, err := h.Repository.Process(target); err != nil {
		log.Println("target process failed", target.Name, err)
	}
	return nil
}

func (h *Targets) Register() error {
	h.AnsqContext.Mux.HandleFunc(config.ASYNQ_JOBS_TARGETS_FLUSH, h.Flush)
	h.AnsqContext.Mux.HandleFunc(config.ASYNQ_JOBS_TARGETS_PROCESS, h.Process)
	return nil
}
