package tasks

import (
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"scraper.local/instagram-curator/common"
	"scraper.local/instagram-curator/config"
	"scraper.local/instagram-curator/queue/asynq/jobs"
	"scraper.local/instagram-curator/repositories"
)

type TargetsTask struct {
	Job                *jobs.Targets
	AnsqContext        *common.AnsqClientContext
	Repository         *repositories.TargetsRepository
	SessionsRepository *repositories.SessionsRepository
}

func NewTargetsTask(ansqContext *common.AnsqClientContext) *TargetsTask {
	return &TargetsTask{
		Job:         &jobs.Targets{},
		AnsqContext: ansqContext,
		Repository: &repositories.TargetsRepository{
			Db: ansqContext.Db,
		},
		SessionsRepository: &repositories.SessionsRepository{
			Db: ansqContext.Db,
		},
	}
}

func (t *TargetsTask) Flush() (err error) {
	log.Println("tasks targets flush")
	if job, err := t.Job.Flush(); err == nil {
		t.AnsqContext.Conn.Enqueue(
			job,
			asynq.Queue(config.ASYNQ_QUEUE_TARGETS),
			asynq.MaxRetry(0),
			asynq.Timeout(5*time.Minute),
		)
	}
	return
}

// Process enqueues pending targets, deduplicated through the redis pending
// set so a slow worker never receives the same target twice.
func (t *TargetsTask) Process(limit int) (err error) {
	log.Println("tasks targets process")
	if t.SessionsRepository.Blocked() {
		log.Println("tasks targets process held off, session blocked")
		return
	}
	targets := t.Repository.Pending(limit)
	for _, target := range targets {
		timestamp := time.Now().UnixMicro()
		score, _ := t.AnsqContext.Rdb.ZScore(
			t.AnsqContext.Ctx,
			config.REDIS_KEY_TARGETS_PENDING,
			target.ID,
		).Result()
		if score > 0 {
			continue
		}
		if job, err := t.Job.Process(target.ID); err == nil {
			t.AnsqContext.Conn.Enqueue(
				job,
				asynq.Queue(config.ASYNQ_QUEUE_TARGETS),
				asynq.MaxRetry(0),
				asynq.Timeout(10*time.Minute),
			)
			t.AnsqContext.Rdb.ZAdd(
				t.AnsqContext.Ctx,
				config.REDIS_KEY_TARGETS_PENDING,
				&redis.Z{
					Score:  float64(timestamp),
					Member: target.ID,
				},
			)
		}
	}
	return
}
