package scrapers

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"time"

	"scraper.local/instagram-curator/config"
	"scraper.local/instagram-curator/repositories/sessions"
)

type TimelineRepository struct {
	State             *sessions.State
	FetcherRepository *FetcherRepository
}

// Collect assembles up to wanted post records, starting from the first page
// embedded in the profile document and following the pagination cursor. A
// failure mid pagination ends the walk with whatever was collected; partial
// samples are valid input downstream.
func (r *TimelineRepository) Collect(profile *ProfileInfo, wanted int) []*PostInfo {
	var posts []*PostInfo
	seen := map[string]bool{}

	appendPosts := func(records []*PostInfo) {
		for _, post := range records {
			if seen[post.Shortcode] {
				continue
			}
			seen[post.Shortcode] = true
			posts = append(posts, post)
		}
	}

	var cursor string
	var hasNext bool
	if profile.Timeline != nil {
		appendPosts(profile.Timeline.Posts)
		cursor = profile.Timeline.EndCursor
		hasNext = profile.Timeline.HasNext
	}

	headers := r.State.Headers(profile.Handle, r.State.CurrentCsrf())

	for len(posts) < wanted && hasNext && cursor != "" {
		variables, _ := json.Marshal(map[string]interface{}{
			"id":    fmt.Sprintf("%d", profile.AccountID),
			"first": config.IG_TIMELINE_PAGE,
			"after": cursor,
		})
		query := url.Values{}
		query.Set("doc_id", config.IG_TIMELINE_DOC_ID)
		query.Set("variables", string(variables))

		result, err := r.FetcherRepository.FetchJSON(
			fmt.Sprintf("%v/graphql/query/?%v", config.IG_WEB_HOST, query.Encode()),
			headers,
			2,
		)
		if err != nil {
			log.Println("timeline pagination stopped", profile.Handle, err)
			break
		}

		page := extractTimelinePage(result.Get("data.user.edge_owner_to_timeline_media"))
		appendPosts(page.Posts)
		cursor = page.EndCursor
		hasNext = page.HasNext

		// stay under the informal page rate
		time.Sleep(time.Duration(
			config.SCRAPER_PAGE_SLEEP_BASE+rand.Intn(config.SCRAPER_PAGE_SLEEP_JITTER),
		) * time.Millisecond)
	}

	if len(posts) > wanted {
		posts = posts[:wanted]
	}
	return posts
}
