package models

import (
	"time"

	"gorm.io/datatypes"
)

type Target struct {
	ID        string            `gorm:"size:20;primaryKey"`
	Name      string            `gorm:"size:200;not null;uniqueIndex"`
	Handle    string            `gorm:"size:50;not null;index"`
	Wanted    int               `gorm:"not null"`
	Params    datatypes.JSONMap `gorm:"not null"`
	Timestamp int64             `gorm:"not null;index:idx_igc_targets,priority:2"`
	Status    int               `gorm:"not null;index:idx_igc_targets,priority:1"`
	CreatedAt time.Time         `gorm:"not null"`
	UpdatedAt time.Time         `gorm:"not null"`
}

func (m *Target) TableName() string {
	return "igc_targets"
}
