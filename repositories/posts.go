package repositories

import (
	"errors"

	"github.com/rs/xid"
	"gorm.io/gorm"

	"scraper.local/instagram-curator/models"
	"scraper.local/instagram-curator/repositories/scrapers"
)

type PostsRepository struct {
	Db *gorm.DB
}

func (r *PostsRepository) Find(id string) (entity *models.Post, err error) {
	err = r.Db.First(&entity, "id=?", id).Error
	return
}

func (r *PostsRepository) Get(shortcode string) (entity *models.Post, err error) {
	err = r.Db.Where("shortcode", shortcode).Take(&entity).Error
	return
}

func (r *PostsRepository) Listings(accountID string, current int, pageSize int) []*models.Post {
	var posts []*models.Post
	r.Db.Where("account_id", accountID).
		Order("timestamp desc").
		Offset((current - 1) * pageSize).
		Limit(pageSize).
		Find(&posts)
	return posts
}

// Sync persists one scraped post sample for an account.
func (r *PostsRepository) Sync(accountID string, records []*scrapers.PostInfo) (count int, err error) {
	for _, record := range records {
		views := 0
		if record.Views != nil {
			views = *record.Views
		}
		post, result := r.Get(record.Shortcode)
		if errors.Is(result, gorm.ErrRecordNotFound) {
			post = &models.Post{
				ID:            xid.New().String(),
				AccountID:     accountID,
				Shortcode:     record.Shortcode,
				IsVideo:       record.IsVideo,
				LikesCount:    record.Likes,
				CommentsCount: record.Comments,
				ViewsCount:    views,
				Caption:       record.Caption,
				Geotag:        record.Geotag,
				Timestamp:     record.Timestamp,
				Status:        1,
			}
			if err = r.Db.Create(&post).Error; err != nil {
				return
			}
			count++
		} else {
			err = r.Db.Model(&post).Updates(map[string]interface{}{
				"likes_count":    record.Likes,
				"comments_count": record.Comments,
				"views_count":    views,
				"caption":        record.Caption,
				"geotag":         record.Geotag,
			}).Error
			if err != nil {
				return
			}
		}
	}
	return
}
