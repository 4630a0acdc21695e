package scrapers

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/tidwall/gjson"

	"scraper.local/instagram-curator/config"
	"scraper.local/instagram-curator/repositories/sessions"
)

var ErrAccountNotFound = errors.New("account not found")

type ProfilesRepository struct {
	State              *sessions.State
	FetcherRepository  *FetcherRepository
	ResolverRepository *ResolverRepository
}

// Acquire resolves any target input (handle, @handle, profile URL, post URL)
// to a canonical handle and fetches that account's profile document.
func (r *ProfilesRepository) Acquire(target string) (profile *ProfileInfo, err error) {
	handle, err := r.ResolverRepository.Resolve(target)
	if err != nil {
		return
	}
	return r.Fetch(handle)
}

// Fetch retrieves the profile document from the primary host. The API is
// dual hosted and one host is sometimes blocked while the other is not, so a
// 401/403 terminal answer gets exactly one more try against the secondary.
func (r *ProfilesRepository) Fetch(handle string) (profile *ProfileInfo, err error) {
	headers := r.State.Headers(handle, r.State.CurrentCsrf())

	result, err := r.FetcherRepository.FetchJSON(
		fmt.Sprintf(
			"%v/api/v1/users/web_profile_info/?username=%v",
			config.IG_PRIMARY_HOST,
			url.QueryEscape(handle),
		),
		headers,
		config.SCRAPER_MAX_RETRIES,
	)
	if err != nil {
		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			return
		}
		if fetchErr.StatusCode != 401 && fetchErr.StatusCode != 403 {
			return
		}
		result, err = r.FetcherRepository.FetchJSON(
			fmt.Sprintf(
				"%v/api/v1/users/web_profile_info/?username=%v",
				config.IG_SECONDARY_HOST,
				url.QueryEscape(handle),
			),
			headers,
			config.SCRAPER_MAX_RETRIES,
		)
		if err != nil {
			return
		}
	}

	user := result.Get("data.user")
	if !user.Exists() || user.Get("username").Str == "" {
		err = ErrAccountNotFound
		return
	}

	profile = extractProfile(user)
	return
}

func extractProfile(user gjson.Result) *ProfileInfo {
	profile := &ProfileInfo{
		Handle:         user.Get("username").Str,
		AccountID:      user.Get("id").Int(),
		Name:           user.Get("full_name").Str,
		Biography:      user.Get("biography").Str,
		ExternalUrl:    user.Get("external_url").Str,
		Category:       user.Get("category_name").Str,
		Avatar:         user.Get("profile_pic_url_hd").Str,
		IsVerified:     user.Get("is_verified").Bool(),
		FollowersCount: int(user.Get("edge_followed_by.count").Int()),
		FollowingCount: int(user.Get("edge_follow.count").Int()),
		PostsCount:     int(user.Get("edge_owner_to_timeline_media.count").Int()),
	}
	if profile.Avatar == "" {
		profile.Avatar = user.Get("profile_pic_url").Str
	}
	if user.Get("business_email").Str != "" {
		profile.BusinessEmail = user.Get("business_email").Str
	} else {
		profile.BusinessEmail = user.Get("public_email").Str
	}
	profile.Timeline = extractTimelinePage(user.Get("edge_owner_to_timeline_media"))
	return profile
}

func extractTimelinePage(media gjson.Result) *TimelinePage {
	page := &TimelinePage{
		EndCursor: media.Get("page_info.end_cursor").Str,
		HasNext:   media.Get("page_info.has_next_page").Bool(),
	}
	media.Get("edges").ForEach(func(_, edge gjson.Result) bool {
		if post := extractPost(edge.Get("node")); post != nil {
			page.Posts = append(page.Posts, post)
		}
		return true
	})
	return page
}

func extractPost(node gjson.Result) *PostInfo {
	if node.Get("shortcode").Str == "" {
		return nil
	}
	post := &PostInfo{
		Shortcode: node.Get("shortcode").Str,
		Timestamp: node.Get("taken_at_timestamp").Int(),
		IsVideo:   node.Get("is_video").Bool(),
		Comments:  int(node.Get("edge_media_to_comment.count").Int()),
		Caption:   node.Get("edge_media_to_caption.edges.0.node.text").Str,
		Geotag:    node.Get("location.name").Str,
	}
	if likes := node.Get("edge_liked_by.count"); likes.Exists() {
		post.Likes = int(likes.Int())
	} else {
		post.Likes = int(node.Get("edge_media_preview_like.count").Int())
	}
	if post.IsVideo {
		views := int(node.Get("video_view_count").Int())
		post.Views = &views
	}
	return post
}
