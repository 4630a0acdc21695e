package repositories

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/xid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"scraper.local/instagram-curator/config"
	"scraper.local/instagram-curator/models"
)

const (
	REPORT_STATUS_SUCCESS = 1
	REPORT_STATUS_FAILURE = 2
)

type ReportsRepository struct {
	Db   *gorm.DB
	Nats *nats.Conn
}

func (r *ReportsRepository) Find(id string) (entity *models.Report, err error) {
	err = r.Db.First(&entity, "id=?", id).Error
	return
}

func (r *ReportsRepository) Count(conditions map[string]interface{}) int64 {
	var total int64
	query := r.Db.Model(&models.Report{})
	if _, ok := conditions["handle"]; ok {
		query.Where("handle=?", conditions["handle"].(string))
	}
	if _, ok := conditions["approved"]; ok {
		query.Where("approved", conditions["approved"].(bool))
	}
	if _, ok := conditions["status"]; ok {
		query.Where("status", conditions["status"].(int))
	} else {
		query.Where("status IN (1,2)")
	}
	query.Count(&total)
	return total
}

func (r *ReportsRepository) Listings(conditions map[string]interface{}, current int, pageSize int) []*models.Report {
	var reports []*models.Report
	query := r.Db.Model(&models.Report{})
	if _, ok := conditions["handle"]; ok {
		query.Where("handle=?", conditions["handle"].(string))
	}
	if _, ok := conditions["approved"]; ok {
		query.Where("approved", conditions["approved"].(bool))
	}
	if _, ok := conditions["min_score"]; ok {
		query.Where("score>=?", conditions["min_score"].(int))
	}
	if _, ok := conditions["status"]; ok {
		query.Where("status", conditions["status"].(int))
	} else {
		query.Where("status IN (1,2)")
	}
	query.Order("created_at desc")
	query.Offset((current - 1) * pageSize).Limit(pageSize).Find(&reports)
	return reports
}

// Create emits the per-target outcome record and publishes it downstream.
func (r *ReportsRepository) Create(values map[string]interface{}) (entity *models.Report, err error) {
	entity = &models.Report{
		ID:        xid.New().String(),
		Target:    values["target"].(string),
		Timestamp: time.Now().UnixMicro(),
		Status:    REPORT_STATUS_SUCCESS,
		Reasons:   datatypes.JSON([]byte("[]")),
	}
	if v, ok := values["account_id"]; ok {
		entity.AccountID = v.(string)
	}
	if v, ok := values["handle"]; ok {
		entity.Handle = v.(string)
	}
	if v, ok := values["followers"]; ok {
		entity.Followers = v.(int)
	}
	if v, ok := values["sample_size"]; ok {
		entity.SampleSize = v.(int)
	}
	if v, ok := values["engagement_rate"]; ok {
		entity.EngagementRate = v.(float64)
	}
	if v, ok := values["median_views"]; ok {
		entity.MedianViews = v.(int)
	}
	if v, ok := values["avg_views"]; ok {
		entity.AvgViews = v.(int)
	}
	if v, ok := values["score"]; ok {
		entity.Score = v.(int)
	}
	if v, ok := values["grade"]; ok {
		entity.Grade = v.(string)
	}
	if v, ok := values["components"]; ok {
		entity.Components = v.(datatypes.JSONMap)
	}
	if v, ok := values["gender"]; ok {
		entity.Gender = v.(string)
	}
	if v, ok := values["email"]; ok {
		entity.Email = v.(string)
	}
	if v, ok := values["approved"]; ok {
		entity.Approved = v.(bool)
	}
	if v, ok := values["reasons"]; ok {
		if reasons := v.([]string); len(reasons) > 0 {
			buf, _ := json.Marshal(reasons)
			entity.Reasons = datatypes.JSON(buf)
		}
	}

	err = r.Db.Create(&entity).Error
	if err != nil {
		return
	}
	if r.Nats != nil {
		data, _ := json.Marshal(entity)
		r.Nats.Publish(config.NATS_REPORTS_CREATE, data)
		r.Nats.Flush()
	}
	return
}

// Failure records a target that could not be processed; it replaces the
// success record, never aborts the pool.
func (r *ReportsRepository) Failure(target string, cause error) (entity *models.Report, err error) {
	message := cause.Error()
	if len(message) > 500 {
		message = message[:500]
	}
	entity = &models.Report{
		ID:         xid.New().String(),
		Target:     target,
		Error:      message,
		Components: datatypes.JSONMap{},
		Reasons:    datatypes.JSON([]byte("[]")),
		Timestamp:  time.Now().UnixMicro(),
		Status:     REPORT_STATUS_FAILURE,
	}
	err = r.Db.Create(&entity).Error
	if err != nil {
		return
	}
	if r.Nats != nil {
		data, _ := json.Marshal(entity)
		r.Nats.Publish(config.NATS_REPORTS_CREATE, data)
		r.Nats.Flush()
	}
	return
}
