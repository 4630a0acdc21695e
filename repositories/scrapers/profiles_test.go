package scrapers

import (
	"testing"

	"github.com/tidwall/gjson"
)

const profileFixture = `{
	"username": "maria.estilo",
	"id": "9876543210",
	"full_name": "Maria Fernanda",
	"biography": "moda e looks | contato@exemplo.com",
	"external_url": "https://linktr.ee/maria.estilo",
	"category_name": "Fashion Model",
	"profile_pic_url": "https://cdn.example/small.jpg",
	"profile_pic_url_hd": "https://cdn.example/hd.jpg",
	"is_verified": true,
	"business_email": "parcerias@exemplo.com",
	"public_email": "public@exemplo.com",
	"edge_followed_by": {"count": 52000},
	"edge_follow": {"count": 480},
	"edge_owner_to_timeline_media": {
		"count": 340,
		"page_info": {"has_next_page": true, "end_cursor": "QVFE123"},
		"edges": [
			{"node": {
				"shortcode": "Cx1",
				"taken_at_timestamp": 1699900000,
				"is_video": true,
				"video_view_count": 12000,
				"edge_liked_by": {"count": 910},
				"edge_media_to_comment": {"count": 74},
				"edge_media_to_caption": {"edges": [{"node": {"text": "look do dia"}}]},
				"location": {"name": "São Paulo, Brazil"}
			}},
			{"node": {
				"shortcode": "Cx2",
				"taken_at_timestamp": 1699800000,
				"is_video": false,
				"edge_media_preview_like": {"count": 850},
				"edge_media_to_comment": {"count": 61}
			}},
			{"node": {"id": "no-shortcode"}}
		]
	}
}`

func TestExtractProfile(t *testing.T) {
	profile := extractProfile(gjson.Parse(profileFixture))

	if profile.Handle != "maria.estilo" {
		t.Errorf("Handle = %q", profile.Handle)
	}
	if profile.AccountID != 9876543210 {
		t.Errorf("AccountID = %d", profile.AccountID)
	}
	if profile.Avatar != "https://cdn.example/hd.jpg" {
		t.Errorf("Avatar = %q, want hd url", profile.Avatar)
	}
	if profile.BusinessEmail != "parcerias@exemplo.com" {
		t.Errorf("BusinessEmail = %q, want business over public", profile.BusinessEmail)
	}
	if profile.FollowersCount != 52000 || profile.FollowingCount != 480 {
		t.Errorf("counts = %d/%d", profile.FollowersCount, profile.FollowingCount)
	}
	if profile.PostsCount != 340 {
		t.Errorf("PostsCount = %d", profile.PostsCount)
	}
	if !profile.IsVerified {
		t.Error("IsVerified = false")
	}
	if profile.Timeline == nil {
		t.Fatal("Timeline not extracted")
	}
	if len(profile.Timeline.Posts) != 2 {
		t.Errorf("timeline posts = %d, want 2 (shortcode-less node dropped)", len(profile.Timeline.Posts))
	}
	if !profile.Timeline.HasNext || profile.Timeline.EndCursor != "QVFE123" {
		t.Errorf("page info = %v/%q", profile.Timeline.HasNext, profile.Timeline.EndCursor)
	}
}

func TestExtractProfileAvatarFallback(t *testing.T) {
	profile := extractProfile(gjson.Parse(`{
		"username": "ana",
		"profile_pic_url": "https://cdn.example/small.jpg"
	}`))
	if profile.Avatar != "https://cdn.example/small.jpg" {
		t.Errorf("Avatar = %q, want plain url fallback", profile.Avatar)
	}
}

func TestExtractProfileEmailFallback(t *testing.T) {
	profile := extractProfile(gjson.Parse(`{
		"username": "ana",
		"public_email": "public@exemplo.com"
	}`))
	if profile.BusinessEmail != "public@exemplo.com" {
		t.Errorf("BusinessEmail = %q, want public fallback", profile.BusinessEmail)
	}
}

func TestExtractPost(t *testing.T) {
	video := extractPost(gjson.Parse(`{
		"shortcode": "Cx1",
		"taken_at_timestamp": 1699900000,
		"is_video": true,
		"video_view_count": 12000,
		"edge_liked_by": {"count": 910},
		"edge_media_to_comment": {"count": 74},
		"edge_media_to_caption": {"edges": [{"node": {"text": "look do dia"}}]},
		"location": {"name": "São Paulo, Brazil"}
	}`))
	if video == nil {
		t.Fatal("post not extracted")
	}
	if video.Likes != 910 || video.Comments != 74 {
		t.Errorf("engagement = %d/%d", video.Likes, video.Comments)
	}
	if video.Views == nil || *video.Views != 12000 {
		t.Errorf("Views = %v, want 12000", video.Views)
	}
	if video.Caption != "look do dia" {
		t.Errorf("Caption = %q", video.Caption)
	}
	if video.Geotag != "São Paulo, Brazil" {
		t.Errorf("Geotag = %q", video.Geotag)
	}

	photo := extractPost(gjson.Parse(`{
		"shortcode": "Cx2",
		"edge_media_preview_like": {"count": 850}
	}`))
	if photo.Likes != 850 {
		t.Errorf("Likes = %d, want preview like fallback", photo.Likes)
	}
	if photo.Views != nil {
		t.Errorf("Views = %v, want nil for a photo", photo.Views)
	}

	if post := extractPost(gjson.Parse(`{"id": "123"}`)); post != nil {
		t.Errorf("shortcode-less node extracted: %+v", post)
	}
}

func TestExtractPostLikesPrecedence(t *testing.T) {
	// when both edges exist the liked_by edge wins, even at zero
	post := extractPost(gjson.Parse(`{
		"shortcode": "Cx3",
		"edge_liked_by": {"count": 0},
		"edge_media_preview_like": {"count": 500}
	}`))
	if post.Likes != 0 {
		t.Errorf("Likes = %d, want liked_by edge to take precedence", post.Likes)
	}
}
