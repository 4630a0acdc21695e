package media

import (
	"time"
)

type Avatar struct {
	ID        string    `gorm:"size:20;primaryKey"`
	AccountID string    `gorm:"size:20;not null;index"`
	Url       string    `gorm:"size:500;not null"`
	UrlSha1   string    `gorm:"size:40;not null;index"`
	Mime      string    `gorm:"size:30;not null"`
	Size      int64     `gorm:"not null"`
	Node      int       `gorm:"not null"`
	Filehash  string    `gorm:"size:64;not null;index"`
	Extension string    `gorm:"size:10;not null"`
	Timestamp int64     `gorm:"not null;index:idx_igc_media_avatars,priority:1"`
	Status    int       `gorm:"not null;index:idx_igc_media_avatars,priority:2"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (m *Avatar) TableName() string {
	return "igc_media_avatars"
}
