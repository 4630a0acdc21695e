package models

import (
	"time"

	"gorm.io/datatypes"
)

type Session struct {
	ID          string            `gorm:"size:20;primaryKey"`
	Agent       string            `gorm:"size:155;not null"`
	Cookie      string            `gorm:"size:2000;not null"`
	Data        datatypes.JSONMap `gorm:"not null"`
	PreparedAt  int64             `gorm:"not null"`
	UnblockedAt int64             `gorm:"not null"`
	Timestamp   int64             `gorm:"not null"`
	Status      int               `gorm:"not null"`
	CreatedAt   time.Time         `gorm:"not null"`
	UpdatedAt   time.Time         `gorm:"not null"`
}

func (m *Session) TableName() string {
	return "igc_sessions"
}
