package scrapers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"scraper.local/instagram-curator/repositories/sessions"
)

func testFetcher(t *testing.T) *FetcherRepository {
	t.Setenv("SCRAPER_WARMUP", "off")
	t.Setenv("SCRAPER_COOKIES", "")
	t.Setenv("PROXY_SESSION", "")
	return &FetcherRepository{
		State: sessions.NewState(),
	}
}

func TestFetchJSONSuccess(t *testing.T) {
	fetcher := testFetcher(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"user":{"username":"maria.estilo"}}}`))
	}))
	defer server.Close()

	result, err := fetcher.FetchJSON(server.URL, map[string]string{"X-Test": "1"}, 0)
	if err != nil {
		t.Fatalf("FetchJSON error: %v", err)
	}
	if username := result.Get("data.user.username").Str; username != "maria.estilo" {
		t.Errorf("username = %q, want maria.estilo", username)
	}
}

func TestFetchJSONRetriesBlockingStatus(t *testing.T) {
	fetcher := testFetcher(t)
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := fetcher.FetchJSON(server.URL, nil, 1)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("error type %T, want *FetchError", err)
	}
	if fetchErr.StatusCode != 429 {
		t.Errorf("StatusCode = %d, want 429", fetchErr.StatusCode)
	}
	if got := atomic.LoadInt32(&attempts); got != 2 {
		t.Errorf("attempts = %d, want 2", got)
	}
}

func TestFetchJSONNoRetryOnClientError(t *testing.T) {
	fetcher := testFetcher(t)
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := fetcher.FetchJSON(server.URL, nil, 3)
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.StatusCode != 400 {
		t.Fatalf("error = %v, want FetchError 400", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("attempts = %d, want 1", got)
	}
}

func TestFetchJSONRejectsNonJSONBody(t *testing.T) {
	fetcher := testFetcher(t)
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.Write([]byte("<html>login wall</html>"))
	}))
	defer server.Close()

	_, err := fetcher.FetchJSON(server.URL, nil, 3)
	if err == nil || err.Error() != "response is not valid json" {
		t.Fatalf("error = %v, want invalid json", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("attempts = %d, want 1", got)
	}
}

func TestFetchJSONRetry404Option(t *testing.T) {
	fetcher := testFetcher(t)
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"items":[{"user":{"username":"ana"}}]}`))
	}))
	defer server.Close()

	result, err := fetcher.FetchJSONWithOptions(server.URL, nil, 2, &FetchOptions{Retry404: true})
	if err != nil {
		t.Fatalf("FetchJSONWithOptions error: %v", err)
	}
	if username := result.Get("items.0.user.username").Str; username != "ana" {
		t.Errorf("username = %q, want ana", username)
	}
	if got := atomic.LoadInt32(&attempts); got != 2 {
		t.Errorf("attempts = %d, want 2", got)
	}
}

func TestFetchJSONNoRetry404ByDefault(t *testing.T) {
	fetcher := testFetcher(t)
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := fetcher.FetchJSON(server.URL, nil, 3)
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.StatusCode != 404 {
		t.Fatalf("error = %v, want FetchError 404", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("attempts = %d, want 1", got)
	}
}
