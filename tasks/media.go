package tasks

import (
	"log"
	"time"

	"github.com/hibiken/asynq"

	"scraper.local/instagram-curator/common"
	"scraper.local/instagram-curator/config"
	"scraper.local/instagram-curator/queue/asynq/jobs"
)

type MediaTask struct {
	Job         *jobs.Media
	AnsqContext *common.AnsqClientContext
}

func NewMediaTask(ansqContext *common.AnsqClientContext) *MediaTask {
	return &MediaTask{
		Job:         &jobs.Media{},
		AnsqContext: ansqContext,
	}
}

// Avatars drains the pending set filled by the accounts subscriber into
// download jobs.
func (t *MediaTask) Avatars(limit int) (err error) {
	log.Println("tasks media avatars")
	for i := 0; i < limit; i++ {
		accountID, err := t.AnsqContext.Rdb.SPop(
			t.AnsqContext.Ctx,
			config.REDIS_KEY_MEDIA_AVATARS_PENDING,
		).Result()
		if err != nil || accountID == "" {
			break
		}
		if job, err := t.Job.Avatar(accountID); err == nil {
			t.AnsqContext.Conn.Enqueue(
				job,
				asynq.Queue(config.ASYNQ_QUEUE_MEDIA),
				asynq.MaxRetry(0),
				asynq.Timeout(5*time.Minute),
			)
		}
	}
	return
}
