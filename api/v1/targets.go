package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"scraper.local/instagram-curator/api"
	"scraper.local/instagram-curator/common"
	"scraper.local/instagram-curator/config"
	"scraper.local/instagram-curator/repositories"
)

type TargetsHandler struct {
	ApiContext *common.ApiContext
	Response   *api.ResponseHandler
	Repository *repositories.TargetsRepository
}

type TargetInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Handle    string    `json:"handle"`
	Wanted    int       `json:"wanted"`
	Timestamp int64     `json:"timestamp"`
	Status    int       `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewTargetsRouter(apiContext *common.ApiContext) http.Handler {
	h := TargetsHandler{
		ApiContext: apiContext,
	}
	h.Repository = &repositories.TargetsRepository{
		Db: h.ApiContext.Db,
	}

	r := chi.NewRouter()
	r.Use(api.Authenticator)
	r.Get("/", h.Listings)
	r.Post("/", h.Apply)
	r.Put("/", h.Apply)

	return r
}

func (h *TargetsHandler) Listings(
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

	conditions := make(map[string]interface{})

	if q.Get("handle") != "" {
		conditions["handle"] = r.URL.Query().Get("handle")
	}

	if q.Get("status") != "" {
		conditions["status"], _ = strconv.Atoi(r.URL.Query().Get("status"))
	}

	total := h.Repository.Count(conditions)
	targets := h.Repository.Listings(conditions, current, pageSize)
	data := make([]*TargetInfo, len(targets))
	for i, target := range targets {
		data[i] = &TargetInfo{
			ID:        target.ID,
			Name:      target.Name,
			Handle:    target.Handle,
			Wanted:    target.Wanted,
			Timestamp: target.Timestamp,
			Status:    target.Status,
			CreatedAt: target.CreatedAt,
			UpdatedAt: target.UpdatedAt,
		}
	}

	h.Response.Pagenate(data, total, current, pageSize)
}

func (h *TargetsHandler) Apply(
	w http.ResponseWriter,
	r *http.Request,
) {
	h.ApiContext.Mux.Lock()
	defer h.ApiContext.Mux.Unlock()

	h.Response = &api.ResponseHandler{
		Writer: w,
	}

	r.ParseMultipartForm(1024)

	if r.Form.Get("name") == "" {
		h.Response.Error(http.StatusForbidden, 1004, "name is empty")
		return
	}
	name := r.Form.Get("name")

	wanted := config.IG_TIMELINE_PAGE
	if r.Form.Get("wanted") != "" {
		wanted, _ = strconv.Atoi(r.Form.Get("wanted"))
	}
	if wanted < 1 || wanted > 200 {
		h.Response.Error(http.StatusForbidden, 1004, "wanted not valid")
		return
	}

	target, err := h.Repository.Apply(name, wanted)
	if err != nil {
		h.Response.Error(http.StatusInternalServerError, 500, "server error")
		return
	}

	h.Response.Json(&TargetInfo{
		ID:        target.ID,
		Name:      target.Name,
		Handle:    target.Handle,
		Wanted:    target.Wanted,
		Timestamp: target.Timestamp,
		Status:    target.Status,
		CreatedAt: target.CreatedAt,
		UpdatedAt: target.UpdatedAt,
	})
}
