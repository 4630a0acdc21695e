package workers

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sys/unix"

	"scraper.local/instagram-curator/common"
	"scraper.local/instagram-curator/config"
	"scraper.local/instagram-curator/queue/asynq/jobs"
	"scraper.local/instagram-curator/repositories"
	mediaRepositories "scraper.local/instagram-curator/repositories/media"
)

type Media struct {
	AnsqContext        *common.AnsqServerContext
	Repository         *mediaRepositories.AvatarsRepository
	AccountsRepository *repositories.AccountsRepository
}

func NewMedia(ansqContext *common.AnsqServerContext) *Media {
	h := &Media{
		AnsqContext: ansqContext,
	}
	h.Repository = &mediaRepositories.AvatarsRepository{
		Db: h.AnsqContext.Db,
	}
	h.AccountsRepository = &repositories.AccountsRepository{
		Db:   h.AnsqContext.Db,
		Nats: h.AnsqContext.Nats,
	}
	return h
}

func (h *Media) Avatar(ctx context.Context, t *asynq.Task) error {
	var payload jobs.AvatarPayload
	json.Unmarshal(t.Payload(), &payload)

	mutex := common.NewMutex(
		h.AnsqContext.Rdb,
		h.AnsqContext.Ctx,
		fmt.Sprintf(config.LOCKS_MEDIA_AVATARS, payload.AccountID),
	)
	if !mutex.Lock(30 * time.Second) {
		return nil
	}
	defer mutex.Unlock()

	account, err := h.AccountsRepository.Find(payload.AccountID)
	if err != nil {
		log.Println("account can not be found", payload.AccountID, err)
		return nil
	}
	if !strings.HasPrefix(account.Avatar, "https://") {
		return nil
	}

	var stat unix.Statfs_t
	unix.Statfs(common.GetEnvString("SCRAPER_STORAGE_PATH"), &stat)
	freeGB := int(stat.Bavail * uint64(stat.Bsize) / 1073741824)
	if freeGB < common.GetEnvInt("SCRAPER_DISK_MIN_AVATARS_GB") {
		log.Println("avatar storage below free space floor", freeGB)
		return nil
	}

	url := account.Avatar
	hash := sha1.Sum([]byte(url))
	urlSha1 := hex.EncodeToString(hash[:])

	cacheKey := fmt.Sprintf(
		config.REDIS_KEY_MEDIA_AVATARS,
		common.GetEnvInt("SCRAPER_STORAGE_NODE"),
		urlSha1,
	)
	if exists, _ := h.AnsqContext.Rdb.Exists(h.AnsqContext.Ctx, cacheKey).Result(); exists > 0 {
		return nil
	}

	if !h.Repository.IsExists(url, urlSha1) {
		if err := h.Repository.Download(account.ID, url, urlSha1); err != nil {
			log.Println("avatar download failed", account.Handle, err)
			return nil
		}
	}
	h.AnsqContext.Rdb.Set(h.AnsqContext.Ctx, cacheKey, time.Now().UnixMicro(), 30*24*time.Hour)

	return nil
}

func (h *Media) Register() error {
	h.AnsqContext.Mux.HandleFunc(config.ASYNQ_JOBS_MEDIA_AVATARS, h.Avatar)
	return nil
}
