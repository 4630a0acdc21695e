package models

import (
	"time"
)

type Account struct {
	ID             string    `gorm:"size:20;primaryKey"`
	Handle         string    `gorm:"size:50;not null;uniqueIndex"`
	AccountID      int64     `gorm:"not null;uniqueIndex"`
	Name           string    `gorm:"size:100;not null"`
	Biography      string    `gorm:"size:500;not null"`
	ExternalUrl    string    `gorm:"size:200;not null"`
	Category       string    `gorm:"size:100;not null"`
	Email          string    `gorm:"size:100;not null"`
	Avatar         string    `gorm:"size:500;not null"`
	IsVerified     bool      `gorm:"not null"`
	FollowersCount int       `gorm:"not null;index"`
	FollowingCount int       `gorm:"not null"`
	PostsCount     int       `gorm:"not null"`
	Timestamp      int64     `gorm:"not null;index:idx_igc_accounts,priority:1"`
	Status         int       `gorm:"not null;index:idx_igc_accounts,priority:2"`
	CreatedAt      time.Time `gorm:"not null;index"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (m *Account) TableName() string {
	return "igc_accounts"
}
