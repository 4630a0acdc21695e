package scrapers

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/tidwall/gjson"

	"scraper.local/instagram-curator/config"
	"scraper.local/instagram-curator/repositories/sessions"
)

type FetcherRepository struct {
	State *sessions.State
}

type FetchOptions struct {
	// Retry404 marks the shortcode lookup path, where the upstream
	// transiently answers 404 for media that exists.
	Retry404 bool
}

type FetchError struct {
	StatusCode int
	Url        string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("request error: code[%d] url[%v]", e.StatusCode, e.Url)
}

// FetchJSON executes one logical JSON GET with bounded retry and jittered
// exponential backoff. 401/403/429 are the upstream's blocking signals and
// retry with a fresh proxy session; everything else propagates immediately.
func (r *FetcherRepository) FetchJSON(url string, headers map[string]string, maxRetries int) (gjson.Result, error) {
	return r.FetchJSONWithOptions(url, headers, maxRetries, &FetchOptions{})
}

func (r *FetcherRepository) FetchJSONWithOptions(
	url string,
	headers map[string]string,
	maxRetries int,
	options *FetchOptions,
) (gjson.Result, error) {
	r.State.EnsureWarm()
	return retry.DoWithData(
		func() (gjson.Result, error) {
			return r.attempt(url, headers)
		},
		retry.Attempts(uint(maxRetries+1)),
		retry.Delay(time.Duration(config.SCRAPER_BACKOFF_BASE)*time.Millisecond),
		retry.MaxDelay(time.Duration(config.SCRAPER_BACKOFF_CAP)*time.Millisecond),
		retry.MaxJitter(time.Duration(config.SCRAPER_BACKOFF_JITTER)*time.Millisecond),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.RetryIf(func(err error) bool {
			return r.retryable(err, options)
		}),
		retry.LastErrorOnly(true),
	)
}

func (r *FetcherRepository) attempt(url string, headers map[string]string) (gjson.Result, error) {
	tr := &http.Transport{
		DisableKeepAlives: true,
	}
	if proxy := r.State.ProxyHandle(); proxy != nil {
		tr.DialContext = proxy.DialContext
	} else {
		tr.DialContext = (&net.Dialer{}).DialContext
	}

	httpClient := &http.Client{
		Transport: tr,
		Jar:       r.State.Jar(),
		Timeout:   time.Duration(config.SCRAPER_REQUEST_TIMEOUT) * time.Second,
	}

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return gjson.Result{}, err
	}
	for key, val := range headers {
		req.Header.Set(key, val)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return gjson.Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return gjson.Result{}, &FetchError{
			StatusCode: resp.StatusCode,
			Url:        url,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, errors.New("response is not valid json")
	}
	return gjson.ParseBytes(body), nil
}

func (r *FetcherRepository) retryable(err error, options *FetchOptions) bool {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		switch fetchErr.StatusCode {
		case 401, 403, 429:
			return true
		case 404:
			return options.Retry404
		}
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
