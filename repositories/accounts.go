package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/xid"
	"gorm.io/gorm"

	"scraper.local/instagram-curator/config"
	"scraper.local/instagram-curator/models"
)

type AccountsRepository struct {
	Db   *gorm.DB
	Nats *nats.Conn
}

func (r *AccountsRepository) Find(id string) (entity *models.Account, err error) {
	err = r.Db.First(&entity, "id=?", id).Error
	return
}

func (r *AccountsRepository) Get(handle string) (entity *models.Account, err error) {
	err = r.Db.Where("handle", handle).Take(&entity).Error
	return
}

func (r *AccountsRepository) GetByAccountID(accountID int64) (entity *models.Account, err error) {
	err = r.Db.Where("account_id", accountID).Take(&entity).Error
	return
}

func (r *AccountsRepository) Ranking(
	fields []string,
	conditions map[string]interface{},
	sortField string,
	sortType int,
	limit int,
) []*models.Account {
	var accounts []*models.Account
	query := r.Db.Select(fields)
	if _, ok := conditions["followers_count"]; ok {
		query.Where("followers_count>?", conditions["followers_count"].(int))
	}
	if _, ok := conditions["status"]; ok {
		query.Where("status", conditions["status"].(int))
	} else {
		query.Where("status=1")
	}
	if sortType == 1 {
		query.Order(fmt.Sprintf("%v ASC", sortField))
	} else if sortType == -1 {
		query.Order(fmt.Sprintf("%v DESC", sortField))
	}
	query.Limit(limit).Find(&accounts)
	return accounts
}

// Save upserts one profile snapshot keyed by handle and publishes the
// update event.
func (r *AccountsRepository) Save(values map[string]interface{}) (entity *models.Account, err error) {
	handle := values["handle"].(string)
	result := r.Db.Where("handle", handle).Take(&entity)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		entity = &models.Account{
			ID:     xid.New().String(),
			Handle: handle,
			Status: 1,
		}
		r.apply(entity, values)
		err = r.Db.Create(&entity).Error
	} else {
		values["timestamp"] = time.Now().UnixMicro()
		err = r.Db.Model(&entity).Updates(values).Error
	}
	if err != nil {
		return
	}
	if r.Nats != nil {
		data, _ := json.Marshal(entity)
		r.Nats.Publish(config.NATS_ACCOUNTS_UPDATE, data)
		r.Nats.Flush()
	}
	return
}

func (r *AccountsRepository) Updates(entity *models.Account, values map[string]interface{}) (err error) {
	return r.Db.Model(&entity).Updates(values).Error
}

func (r *AccountsRepository) apply(entity *models.Account, values map[string]interface{}) {
	if v, ok := values["account_id"]; ok {
		entity.AccountID = v.(int64)
	}
	if v, ok := values["name"]; ok {
		entity.Name = v.(string)
	}
	if v, ok := values["biography"]; ok {
		entity.Biography = v.(string)
	}
	if v, ok := values["external_url"]; ok {
		entity.ExternalUrl = v.(string)
	}
	if v, ok := values["category"]; ok {
		entity.Category = v.(string)
	}
	if v, ok := values["email"]; ok {
		entity.Email = v.(string)
	}
	if v, ok := values["avatar"]; ok {
		entity.Avatar = v.(string)
	}
	if v, ok := values["is_verified"]; ok {
		entity.IsVerified = v.(bool)
	}
	if v, ok := values["followers_count"]; ok {
		entity.FollowersCount = v.(int)
	}
	if v, ok := values["following_count"]; ok {
		entity.FollowingCount = v.(int)
	}
	if v, ok := values["posts_count"]; ok {
		entity.PostsCount = v.(int)
	}
	entity.Timestamp = time.Now().UnixMicro()
}
