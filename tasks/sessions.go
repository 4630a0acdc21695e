package tasks

import (
	"log"
	"time"

	"github.com/hibiken/asynq"

	"scraper.local/instagram-curator/common"
	"scraper.local/instagram-curator/config"
	"scraper.local/instagram-curator/queue/asynq/jobs"
)

type SessionsTask struct {
	Job         *jobs.Sessions
	AnsqContext *common.AnsqClientContext
}

func NewSessionsTask(ansqContext *common.AnsqClientContext) *SessionsTask {
	return &SessionsTask{
		Job:         &jobs.Sessions{},
		AnsqContext: ansqContext,
	}
}

func (t *SessionsTask) Warm() (err error) {
	log.Println("tasks sessions warm")
	if job, err := t.Job.Warm(); err == nil {
		t.AnsqContext.Conn.Enqueue(
			job,
			asynq.Queue(config.ASYNQ_QUEUE_SESSIONS),
			asynq.MaxRetry(0),
			asynq.Timeout(5*time.Minute),
		)
	}
	return
}
