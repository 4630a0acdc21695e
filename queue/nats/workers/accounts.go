package workers

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"scraper.local/instagram-curator/common"
	"scraper.local/instagram-curator/config"
)

type AccountUpdatePayload struct {
	ID     string `json:"ID"`
	Handle string `json:"Handle"`
	Avatar string `json:"Avatar"`
}

type Accounts struct {
	NatsContext *common.NatsContext
}

func NewAccounts(natsContext *common.NatsContext) *Accounts {
	return &Accounts{
		NatsContext: natsContext,
	}
}

func (h *Accounts) Subscribe() error {
	h.NatsContext.Conn.Subscribe(config.NATS_ACCOUNTS_UPDATE, h.Apply)
	return nil
}

// Apply queues the account's avatar for mirroring; the cron scheduler drains
// the pending set into download jobs.
func (h *Accounts) Apply(m *nats.Msg) {
	var payload *AccountUpdatePayload
	json.Unmarshal(m.Data, &payload)
	if payload == nil || payload.ID == "" {
		return
	}
	if !strings.HasPrefix(payload.Avatar, "https://") {
		return
	}

	mutex := common.NewMutex(
		h.NatsContext.Rdb,
		h.NatsContext.Ctx,
		fmt.Sprintf(config.LOCKS_MEDIA_AVATARS, payload.ID),
	)
	if !mutex.Lock(3 * time.Second) {
		return
	}
	defer mutex.Unlock()

	h.NatsContext.Rdb.SAdd(
		h.NatsContext.Ctx,
		config.REDIS_KEY_MEDIA_AVATARS_PENDING,
		payload.ID,
	)
}
