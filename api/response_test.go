package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseJson(t *testing.T) {
	recorder := httptest.NewRecorder()
	h := &ResponseHandler{Writer: recorder}
	h.Json(map[string]interface{}{"handle": "maria.estilo"})

	if recorder.Code != http.StatusOK {
		t.Errorf("status = %d", recorder.Code)
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var body JsonResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("body not json: %v", err)
	}
	if !body.Success {
		t.Error("success = false")
	}
	data := body.Data.(map[string]interface{})
	if data["handle"] != "maria.estilo" {
		t.Errorf("data = %v", body.Data)
	}
}

func TestResponseError(t *testing.T) {
	recorder := httptest.NewRecorder()
	h := &ResponseHandler{Writer: recorder}
	h.Error(http.StatusForbidden, 1000, "account or password not exists")

	if recorder.Code != http.StatusForbidden {
		t.Errorf("status = %d", recorder.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("body not json: %v", err)
	}
	if body.Success || body.Code != 1000 || body.Message != "account or password not exists" {
		t.Errorf("body = %+v", body)
	}
}

func TestResponsePagenate(t *testing.T) {
	recorder := httptest.NewRecorder()
	h := &ResponseHandler{Writer: recorder}
	h.Pagenate([]string{"a", "b"}, 42, 2, 25)

	var body PagenateResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("body not json: %v", err)
	}
	if !body.Success || body.Total != 42 || body.Current != 2 || body.PageSize != 25 {
		t.Errorf("body = %+v", body)
	}
}
