package api

import (
	"encoding/json"
	"net/http"
)

type ResponseHandler struct {
	Writer http.ResponseWriter
}

type JsonResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type PagenateResponse struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Current  int         `json:"current"`
	PageSize int         `json:"page_size"`
}

func (h *ResponseHandler) Json(data interface{}) {
	h.Writer.Header().Set("Content-Type", "application/json")
	h.Writer.WriteHeader(http.StatusOK)
	json.NewEncoder(h.Writer).Encode(&JsonResponse{
		Success: true,
		Data:    data,
	})
}

func (h *ResponseHandler) Error(status int, code int, message string) {
	h.Writer.Header().Set("Content-Type", "application/json")
	h.Writer.WriteHeader(status)
	json.NewEncoder(h.Writer).Encode(&ErrorResponse{
		Success: false,
		Code:    code,
		Message: message,
	})
}

func (h *ResponseHandler) Pagenate(data interface{}, total int64, current int, pageSize int) {
	h.Writer.Header().Set("Content-Type", "application/json")
	h.Writer.WriteHeader(http.StatusOK)
	json.NewEncoder(h.Writer).Encode(&PagenateResponse{
		Success:  true,
		Data:     data,
		Total:    total,
		Current:  current,
		PageSize: pageSize,
	})
}
