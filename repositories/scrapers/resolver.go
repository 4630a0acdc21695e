package scrapers

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"scraper.local/instagram-curator/config"
	"scraper.local/instagram-curator/repositories/sessions"
)

// Path roots that can never be a handle. A URL starting with one of these is
// a post-like URL and goes through shortcode resolution.
var reservedPaths = map[string]bool{
	"p":         true,
	"reel":      true,
	"reels":     true,
	"tv":        true,
	"stories":   true,
	"explore":   true,
	"accounts":  true,
	"api":       true,
	"directory": true,
	"graphql":   true,
}

var (
	handlePattern   = regexp.MustCompile(`^[a-z0-9._]{1,30}$`)
	ownerPattern    = regexp.MustCompile(`"owner"\s*:\s*\{[^{}]*"username"\s*:\s*"([A-Za-z0-9_.]+)"`)
	mentionPattern  = regexp.MustCompile(`\(@([A-Za-z0-9_.]+)\)`)
	usernamePattern = regexp.MustCompile(`"username"\s*:\s*"([A-Za-z0-9_.]+)"`)
)

type ResolverRepository struct {
	State             *sessions.State
	FetcherRepository *FetcherRepository
}

// Resolve maps any accepted target input to a canonical lowercase handle.
func (r *ResolverRepository) Resolve(target string) (handle string, err error) {
	input := strings.TrimSpace(target)
	if input == "" {
		err = fmt.Errorf("target is empty")
		return
	}

	if !strings.Contains(input, "/") {
		handle = strings.ToLower(strings.TrimPrefix(input, "@"))
		if !handlePattern.MatchString(handle) {
			err = fmt.Errorf("handle %q not valid", target)
			handle = ""
		}
		return
	}

	if !strings.Contains(input, "://") {
		input = "https://" + input
	}
	parsed, err := url.Parse(input)
	if err != nil {
		err = fmt.Errorf("target %q not a valid url", target)
		return
	}

	var segments []string
	for _, segment := range strings.Split(parsed.Path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	if len(segments) == 0 {
		err = fmt.Errorf("target %q has no path", target)
		return
	}

	if reservedPaths[strings.ToLower(segments[0])] {
		if len(segments) < 2 {
			err = fmt.Errorf("post url %q has no shortcode", target)
			return
		}
		return r.ResolveShortcode(target, segments[1])
	}

	handle = strings.ToLower(segments[0])
	if !handlePattern.MatchString(handle) {
		err = fmt.Errorf("handle %q not valid", target)
		handle = ""
	}
	return
}

// ResolveShortcode finds the owning account of a post. Four lookups are
// attempted in order; the first non-empty username wins.
func (r *ResolverRepository) ResolveShortcode(target string, shortcode string) (handle string, err error) {
	lookups := []func(string) string{
		r.mobileLookup,
		r.webLookup,
		r.embedLookup,
		r.htmlLookup,
	}
	for _, lookup := range lookups {
		if username := lookup(shortcode); username != "" {
			handle = strings.ToLower(username)
			return
		}
	}
	err = fmt.Errorf("can not resolve owner of %v", target)
	return
}

// The media info endpoint transiently 404s for media that exists, so this is
// the one path where 404 stays retryable.
func (r *ResolverRepository) mobileLookup(shortcode string) string {
	result, err := r.FetcherRepository.FetchJSONWithOptions(
		fmt.Sprintf("%v/api/v1/media/shortcode/%v/info/", config.IG_PRIMARY_HOST, shortcode),
		r.State.Headers("", r.State.CurrentCsrf()),
		config.SCRAPER_MAX_RETRIES,
		&FetchOptions{Retry404: true},
	)
	if err != nil {
		return ""
	}
	return result.Get("items.0.user.username").Str
}

func (r *ResolverRepository) webLookup(shortcode string) string {
	result, err := r.FetcherRepository.FetchJSON(
		fmt.Sprintf("%v/p/%v/?__a=1&__d=dis", config.IG_WEB_HOST, shortcode),
		r.State.Headers("", r.State.CurrentCsrf()),
		config.SCRAPER_MAX_RETRIES,
	)
	if err != nil {
		return ""
	}
	if username := result.Get("items.0.user.username").Str; username != "" {
		return username
	}
	return result.Get("graphql.shortcode_media.owner.username").Str
}

func (r *ResolverRepository) embedLookup(shortcode string) string {
	result, err := r.FetcherRepository.FetchJSON(
		fmt.Sprintf(
			"https://api.instagram.com/oembed/?url=%v",
			url.QueryEscape(fmt.Sprintf("%v/p/%v/", config.IG_WEB_HOST, shortcode)),
		),
		r.State.Headers("", ""),
		config.SCRAPER_MAX_RETRIES,
	)
	if err != nil {
		return ""
	}
	return result.Get("author_name").Str
}

// Plain HTML fallback: scrape the embedded owner username or the page meta
// description.
func (r *ResolverRepository) htmlLookup(shortcode string) string {
	body, err := r.fetchHTML(fmt.Sprintf("%v/p/%v/embed/captioned/", config.IG_WEB_HOST, shortcode))
	if err != nil {
		body, err = r.fetchHTML(fmt.Sprintf("%v/p/%v/", config.IG_WEB_HOST, shortcode))
		if err != nil {
			return ""
		}
	}

	if matches := ownerPattern.FindStringSubmatch(body); len(matches) > 1 {
		return matches[1]
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	var username string
	doc.Find("meta[property='og:description']").Each(func(i int, s *goquery.Selection) {
		if username != "" {
			return
		}
		if content, ok := s.Attr("content"); ok {
			if matches := mentionPattern.FindStringSubmatch(content); len(matches) > 1 {
				username = matches[1]
			}
		}
	})
	if username != "" {
		return username
	}

	doc.Find("script[type='application/ld+json']").Each(func(i int, s *goquery.Selection) {
		if username != "" {
			return
		}
		if matches := usernamePattern.FindStringSubmatch(s.Text()); len(matches) > 1 {
			username = matches[1]
		}
	})
	return username
}

func (r *ResolverRepository) fetchHTML(pageUrl string) (body string, err error) {
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

	req, _ := http.NewRequest("GET", pageUrl, nil)
	req.Header.Set("User-Agent", r.State.Agent)
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en-US;q=0.8")
	resp, err := httpClient.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = &FetchError{
			StatusCode: resp.StatusCode,
			Url:        pageUrl,
		}
		return
	}

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return
	}
	body = string(buf)
	return
}
