package repositories

import (
	"errors"
	"time"

	"github.com/rs/xid"
	"gorm.io/gorm"

	"scraper.local/instagram-curator/common"
	"scraper.local/instagram-curator/config"
	"scraper.local/instagram-curator/models"
	"scraper.local/instagram-curator/repositories/sessions"
)

type SessionsRepository struct {
	Db    *gorm.DB
	State *sessions.State
}

func (r *SessionsRepository) Find(id string) (session *models.Session, err error) {
	err = r.Db.First(&session, "id=?", id).Error
	return
}

// Apply persists a snapshot of the shared session so blocks survive process
// restarts.
func (r *SessionsRepository) Apply() (session *models.Session, err error) {
	if r.State == nil {
		err = errors.New("session state is empty")
		return
	}
	result := r.Db.Order("timestamp DESC").Take(&session)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		session = &models.Session{
			ID:        xid.New().String(),
			Agent:     r.State.Agent,
			Cookie:    r.State.CookieHeader(),
			Data:      common.JSONMap(map[string]interface{}{}),
			Timestamp: time.Now().UnixMicro(),
			Status:    1,
		}
		err = r.Db.Create(&session).Error
	} else {
		err = r.Db.Model(&session).Updates(map[string]interface{}{
			"agent":     r.State.Agent,
			"cookie":    r.State.CookieHeader(),
			"timestamp": time.Now().UnixMicro(),
		}).Error
	}
	return
}

func (r *SessionsRepository) Update(session *models.Session, column string, value interface{}) (err error) {
	return r.Db.Model(&session).Update(column, value).Error
}

// Blocked reports whether the latest session snapshot is still inside its
// block window.
func (r *SessionsRepository) Blocked() bool {
	var session *models.Session
	if err := r.Db.Order("timestamp DESC").Take(&session).Error; err != nil {
		return false
	}
	return session.UnblockedAt > time.Now().UnixMicro()
}

// Block records an upstream 429 so schedulers can hold off new targets.
func (r *SessionsRepository) Block(session *models.Session) (err error) {
	timestamp := time.Now().UnixMicro()
	return r.Update(session, "unblocked_at", timestamp+config.SCRAPER_BLOCK_WAITING_TIMEOUT)
}
