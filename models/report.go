package models

import (
	"time"

	"gorm.io/datatypes"
)

type Report struct {
	ID             string            `gorm:"size:20;primaryKey"`
	Target         string            `gorm:"size:200;not null;index"`
	AccountID      string            `gorm:"size:20;not null;index:idx_igc_reports_accounts,priority:1"`
	Handle         string            `gorm:"size:50;not null;index"`
	Followers      int               `gorm:"not null"`
	SampleSize     int               `gorm:"not null"`
	EngagementRate float64           `gorm:"not null"`
	MedianViews    int               `gorm:"not null"`
	AvgViews       int               `gorm:"not null"`
	Score          int               `gorm:"not null;index"`
	Grade          string            `gorm:"size:1;not null"`
	Components     datatypes.JSONMap `gorm:"not null"`
	Gender         string            `gorm:"size:20;not null"`
	Email          string            `gorm:"size:100;not null"`
	Approved       bool              `gorm:"not null;index"`
	Reasons        datatypes.JSON    `gorm:"not null"`
	Error          string            `gorm:"size:500;not null"`
	Timestamp      int64             `gorm:"not null;index:idx_igc_reports,priority:1"`
	Status         int               `gorm:"not null;index:idx_igc_reports,priority:2;index:idx_igc_reports_accounts,priority:2"`
	CreatedAt      time.Time         `gorm:"not null"`
	UpdatedAt      time.Time         `gorm:"not null"`
}

func (m *Report) TableName() string {
	return "igc_reports"
}
