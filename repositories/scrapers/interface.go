package scrapers

type ProfileInfo struct {
	Handle         string `json:"handle"`
	AccountID      int64  `json:"account_id"`
	Name           string `json:"name"`
	Biography      string `json:"biography"`
	ExternalUrl    string `json:"external_url"`
	Category       string `json:"category"`
	Avatar         string `json:"avatar"`
	BusinessEmail  string `json:"business_email"`
	IsVerified     bool   `json:"is_verified"`
	FollowersCount int    `json:"followers_count"`
	FollowingCount int    `json:"following_count"`
	PostsCount     int    `json:"posts_count"`

	Timeline *TimelinePage `json:"-"`
}

type PostInfo struct {
	Shortcode string `json:"shortcode"`
	Timestamp int64  `json:"timestamp"`
	IsVideo   bool   `json:"is_video"`
	Likes     int    `json:"likes"`
	Comments  int    `json:"comments"`
	Views     *int   `json:"views"`
	Caption   string `json:"caption"`
	Geotag    string `json:"geotag"`
}

type TimelinePage struct {
	Posts     []*PostInfo `json:"posts"`
	EndCursor string      `json:"end_cursor"`
	HasNext   bool        `json:"has_next"`
}
