package models

import (
	"gorm.io/gorm"

	"scraper.local/instagram-curator/models/media"
)

type Media struct{}

func NewMedia() *Media {
	return &Media{}
}

func (m *Media) AutoMigrate(db *gorm.DB) error {
	db.AutoMigrate(
		&media.Avatar{},
	)
	return nil
}
