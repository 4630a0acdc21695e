package v1

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"scraper.local/instagram-curator/api"
	"scraper.local/instagram-curator/common"
	"scraper.local/instagram-curator/repositories"
)

type AccountsHandler struct {
	ApiContext      *common.ApiContext
	Response        *api.ResponseHandler
	Repository      *repositories.AccountsRepository
	PostsRepository *repositories.PostsRepository
}

type AccountInfo struct {
	ID             string `json:"id"`
	Handle         string `json:"handle"`
	AccountID      string `json:"account_id"`
	Name           string `json:"name"`
	Biography      string `json:"biography"`
	ExternalUrl    string `json:"external_url"`
	Category       string `json:"category"`
	Email          string `json:"email"`
	Avatar         string `json:"avatar"`
	IsVerified     bool   `json:"is_verified"`
	FollowersCount int    `json:"followers_count"`
	FollowingCount int    `json:"following_count"`
	PostsCount     int    `json:"posts_count"`
	Timestamp      int64  `json:"timestamp"`
}

type AccountPostInfo struct {
	ID            string `json:"id"`
	Shortcode     string `json:"shortcode"`
	IsVideo       bool   `json:"is_video"`
	LikesCount    int    `json:"likes_count"`
	CommentsCount int    `json:"comments_count"`
	ViewsCount    int    `json:"views_count"`
	Caption       string `json:"caption"`
	Geotag        string `json:"geotag"`
	Timestamp     int64  `json:"timestamp"`
}

func NewAccountsRouter(apiContext *common.ApiContext) http.Handler {
	h := AccountsHandler{
		ApiContext: apiContext,
	}
	h.Repository = &repositories.AccountsRepository{
		Db: h.ApiContext.Db,
	}
	h.PostsRepository = &repositories.PostsRepository{
		Db: h.ApiContext.Db,
	}

	r := chi.NewRouter()
	r.Use(api.Authenticator)
	r.Get("/", h.Ranking)
	r.Get("/{id}/posts", h.Posts)

	return r
}

func (h *AccountsHandler) Ranking(
	w http.ResponseWriter,
	r *http.Request,
) {
	h.ApiContext.Mux.Lock()
	defer h.ApiContext.Mux.Unlock()

	h.Response = &api.ResponseHandler{
		Writer: w,
	}

	q := r.URL.Query()

	var limit int
	if !q.Has("limit") {
		limit = 50
	} else {
		limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	}
	if limit < 1 || limit > 500 {
		h.Response.Error(http.StatusForbidden, 1004, "limit not valid")
		return
	}

	conditions := make(map[string]interface{})
	if q.Get("min_followers") != "" {
		conditions["followers_count"], _ = strconv.Atoi(r.URL.Query().Get("min_followers"))
	}

	accounts := h.Repository.Ranking(
		[]string{
			"id",
			"handle",
			"account_id",
			"name",
			"biography",
			"external_url",
			"category",
			"email",
			"avatar",
			"is_verified",
			"followers_count",
			"following_count",
			"posts_count",
			"timestamp",
		},
		conditions,
		"followers_count",
		-1,
		limit,
	)
	data := make([]*AccountInfo, len(accounts))
	for i, account := range accounts {
		data[i] = &AccountInfo{
			ID:             account.ID,
			Handle:         account.Handle,
			AccountID:      strconv.FormatInt(account.AccountID, 10),
			Name:           account.Name,
			Biography:      account.Biography,
			ExternalUrl:    account.ExternalUrl,
			Category:       account.Category,
			Email:          account.Email,
			Avatar:         account.Avatar,
			IsVerified:     account.IsVerified,
			FollowersCount: account.FollowersCount,
			FollowingCount: account.FollowingCount,
			PostsCount:     account.PostsCount,
			Timestamp:      account.Timestamp,
		}
	}

	h.Response.Json(data)
}

func (h *AccountsHandler) Posts(
	w http.ResponseWriter,
	r *http.Request,
) {
	h.ApiContext.Mux.Lock()
	defer h.ApiContext.Mux.Unlock()

	h.Response = &api.ResponseHandler{
		Writer: w,
	}

	q := r.URL.Query()

	var current int
	if !q.Has("current") {
		current = 1
	}
	current, _ = strconv.Atoi(r.URL.Query().Get("current"))
	if current < 1 {
		h.Response.Error(http.StatusForbidden, 1004, "current not valid")
		return
	}

	var pageSize int
	if !q.Has("page_size") {
		pageSize = 50
	} else {
		pageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
	}
	if pageSize < 1 || pageSize > 100 {
		h.Response.Error(http.StatusForbidden, 1004, "page size not valid")
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := h.Repository.Find(id); err != nil {
		h.Response.Error(http.StatusNotFound, 1404, "account not exists")
		return
	}

	posts := h.PostsRepository.Listings(id, current, pageSize)
	data := make([]*AccountPostInfo, len(posts))
	for i, post := range posts {
		data[i] = &AccountPostInfo{
			ID:            post.ID,
			Shortcode:     post.Shortcode,
			IsVideo:       post.IsVideo,
			LikesCount:    post.LikesCount,
			CommentsCount: post.CommentsCount,
			ViewsCount:    post.ViewsCount,
			Caption:       post.Caption,
			Geotag:        post.Geotag,
			Timestamp:     post.Timestamp,
		}
	}

	h.Response.Json(data)
}
