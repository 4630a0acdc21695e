package models

import (
	"time"
)

type Post struct {
	ID            string    `gorm:"size:20;primaryKey"`
	AccountID     string    `gorm:"size:20;not null;index:idx_igc_accounts_posts,priority:1"`
	Shortcode     string    `gorm:"size:30;not null;uniqueIndex"`
	IsVideo       bool      `gorm:"not null"`
	LikesCount    int       `gorm:"not null"`
	CommentsCount int       `gorm:"not null"`
	ViewsCount    int       `gorm:"not null"`
	Caption       string    `gorm:"size:5000;not null"`
	Geotag        string    `gorm:"size:200;not null"`
	Timestamp     int64     `gorm:"not null;index:idx_igc_posts,priority:1"`
	Status        int       `gorm:"not null;index:idx_igc_posts,priority:2;index:idx_igc_accounts_posts,priority:2"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

func (m *Post) TableName() string {
	return "igc_posts"
}
