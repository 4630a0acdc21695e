package repositories

import (
	"errors"
	"time"

	"github.com/rs/xid"
	"gorm.io/gorm"

	"scraper.local/instagram-curator/common"
	"scraper.local/instagram-curator/models"
)

const (
	TARGET_STATUS_PENDING = 1
	TARGET_STATUS_RUNNING = 2
	TARGET_STATUS_DONE    = 3
	TARGET_STATUS_FAILED  = 4
)

type TargetsRepository struct {
	Db *gorm.DB
}

func (r *TargetsRepository) Find(id string) (target *models.Target, err error) {
	err = r.Db.First(&target, "id=?", id).Error
	return
}

func (r *TargetsRepository) Get(name string) (target *models.Target, err error) {
	err = r.Db.Where("name", name).Take(&target).Error
	return
}

func (r *TargetsRepository) Count(conditions map[string]interface{}) int64 {
	var total int64
	query := r.Db.Model(&models.Target{})
	if _, ok := conditions["handle"]; ok {
		query.Where("handle=?", conditions["handle"].(string))
	}
	if _, ok := conditions["status"]; ok {
		query.Where("status", conditions["status"].(int))
	} else {
		query.Where("status IN (1,2)")
	}
	query.Count(&total)
	return total
}

func (r *TargetsRepository) Listings(conditions map[string]interface{}, current int, pageSize int) []*models.Target {
	var targets []*models.Target
	query := r.Db.Model(&models.Target{})
	if _, ok := conditions["handle"]; ok {
		query.Where("handle=?", conditions["handle"].(string))
	}
	if _, ok := conditions["status"]; ok {
		query.Where("status", conditions["status"].(int))
	} else {
		query.Where("status IN (1,2)")
	}
	query.Order("created_at desc")
	query.Offset((current - 1) * pageSize).Limit(pageSize).Find(&targets)
	return targets
}

// Pending returns the oldest unprocessed targets for the scheduler.
func (r *TargetsRepository) Pending(limit int) []*models.Target {
	var targets []*models.Target
	r.Db.Where("status", TARGET_STATUS_PENDING).
		Order("timestamp ASC").
		Limit(limit).
		Find(&targets)
	return targets
}

// Apply registers a target input once; re-applying an existing name resets
// it to pending.
func (r *TargetsRepository) Apply(name string, wanted int) (target *models.Target, err error) {
	result := r.Db.Where("name", name).Take(&target)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		target = &models.Target{
			ID:        xid.New().String(),
			Name:      name,
			Wanted:    wanted,
			Params:    common.JSONMap(map[string]interface{}{}),
			Timestamp: time.Now().UnixMicro(),
			Status:    TARGET_STATUS_PENDING,
		}
		err = r.Db.Create(&target).Error
	} else {
		err = r.Db.Model(&target).Updates(map[string]interface{}{
			"wanted":    wanted,
			"timestamp": time.Now().UnixMicro(),
			"status":    TARGET_STATUS_PENDING,
		}).Error
	}
	return
}

func (r *TargetsRepository) Update(target *models.Target, column string, value interface{}) (err error) {
	return r.Db.Model(&target).Update(column, value).Error
}

func (r *TargetsRepository) Updates(target *models.Target, values map[string]interface{}) (err error) {
	return r.Db.Model(&target).Updates(values).Error
}
