package v1

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"scraper.local/instagram-curator/api"
	"scraper.local/instagram-curator/common"
	"scraper.local/instagram-curator/models"
	"scraper.local/instagram-curator/repositories"
)

type ReportsHandler struct {
	ApiContext *common.ApiContext
	Response   *api.ResponseHandler
	Repository *repositories.ReportsRepository
}

type ReportInfo struct {
	ID             string                 `json:"id"`
	Target         string                 `json:"target"`
	Handle         string                 `json:"handle"`
	Followers      int                    `json:"followers"`
	SampleSize     int                    `json:"sample_size"`
	EngagementRate float64                `json:"engagement_rate"`
	MedianViews    int                    `json:"median_views"`
	AvgViews       int                    `json:"avg_views"`
	Score          int                    `json:"score"`
	Grade          string                 `json:"grade"`
	Components     map[string]interface{} `json:"components"`
	Gender         string                 `json:"gender"`
	Email          string                 `json:"email"`
	Approved       bool                   `json:"approved"`
	Reasons        []string               `json:"reasons"`
	Error          string                 `json:"error,omitempty"`
	Timestamp      int64                  `json:"timestamp"`
	Status         int                    `json:"status"`
	CreatedAt      time.Time              `json:"created_at"`
}

func NewReportsRouter(apiContext *common.ApiContext) http.Handler {
	h := ReportsHandler{
		ApiContext: apiContext,
	}
	h.Repository = &repositories.ReportsRepository{
		Db: h.ApiContext.Db,
	}

	r := chi.NewRouter()
	r.Use(api.Authenticator)
	r.Get("/", h.Listings)
	r.Get("/{id}", h.Show)

	return r
}

func (h *ReportsHandler) Listings(
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

	if q.Get("approved") != "" {
		conditions["approved"] = r.URL.Query().Get("approved") == "true"
	}

	if q.Get("min_score") != "" {
		conditions["min_score"], _ = strconv.Atoi(r.URL.Query().Get("min_score"))
	}

	if q.Get("status") != "" {
		conditions["status"], _ = strconv.Atoi(r.URL.Query().Get("status"))
	}

	total := h.Repository.Count(conditions)
	reports := h.Repository.Listings(conditions, current, pageSize)
	data := make([]*ReportInfo, len(reports))
	for i, report := range reports {
		data[i] = h.info(report)
	}

	h.Response.Pagenate(data, total, current, pageSize)
}

func (h *ReportsHandler) Show(
	w http.ResponseWriter,
	r *http.Request,
) {
	h.ApiContext.Mux.Lock()
	defer h.ApiContext.Mux.Unlock()

	h.Response = &api.ResponseHandler{
		Writer: w,
	}

	id := chi.URLParam(r, "id")
	report, err := h.Repository.Find(id)
	if err != nil {
		h.Response.Error(http.StatusNotFound, 1404, "report not exists")
		return
	}

	h.Response.Json(h.info(report))
}

func (h *ReportsHandler) info(report *models.Report) *ReportInfo {
	var reasons []string
	buf, _ := report.Reasons.MarshalJSON()
	json.Unmarshal(buf, &reasons)

	return &ReportInfo{
		ID:             report.ID,
		Target:         report.Target,
		Handle:         report.Handle,
		Followers:      report.Followers,
		SampleSize:     report.SampleSize,
		EngagementRate: report.EngagementRate,
		MedianViews:    report.MedianViews,
		AvgViews:       report.AvgViews,
		Score:          report.Score,
		Grade:          report.Grade,
		Components:     report.Components,
		Gender:         report.Gender,
		Email:          report.Email,
		Approved:       report.Approved,
		Reasons:        reasons,
		Error:          report.Error,
		Timestamp:      report.Timestamp,
		Status:         report.Status,
		CreatedAt:      report.CreatedAt,
	}
}
