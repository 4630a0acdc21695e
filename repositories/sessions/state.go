package sessions

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/tidwall/gjson"

	"scraper.local/instagram-curator/common"
	"scraper.local/instagram-curator/config"
)

const defaultAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

var igOrigin, _ = url.Parse("https://www.instagram.com/")

// State is the process-wide session identity shared by every worker: one
// cookie jar, one user agent, one proxy session template. Constructed once
// per process and passed to repositories by reference.
type State struct {
	Agent string

	jar      *cookiejar.Jar
	proxy    string
	prepared bool
	mux      sync.Mutex
}

// NewState builds the shared session identity. The optional login cookie
// payload (SCRAPER_COOKIES, a JSON array of {name,value} objects) is parsed
// into the jar; a malformed payload degrades to an anonymous session.
func NewState() *State {
	jar, _ := cookiejar.New(nil)
	state := &State{
		Agent: defaultAgent,
		jar:   jar,
		proxy: common.GetEnvString("PROXY_SESSION"),
	}
	if agent := common.GetEnvString("SCRAPER_AGENT"); agent != "" {
		state.Agent = agent
	}

	payload := common.GetEnvString("SCRAPER_COOKIES")
	if payload == "" {
		return state
	}
	if !gjson.Valid(payload) {
		log.Println("login cookies payload not valid, ignoring")
		return state
	}
	var cookies []*http.Cookie
	parsed := gjson.Parse(payload)
	if parsed.IsArray() {
		parsed.ForEach(func(_, item gjson.Result) bool {
			if item.Get("name").Str != "" {
				cookies = append(cookies, &http.Cookie{
					Name:  item.Get("name").Str,
					Value: item.Get("value").Str,
				})
			}
			return true
		})
	} else if parsed.Get("name").Str != "" {
		cookies = append(cookies, &http.Cookie{
			Name:  parsed.Get("name").Str,
			Value: parsed.Get("value").Str,
		})
	}
	jar.SetCookies(igOrigin, cookies)
	return state
}

func (s *State) Jar() http.CookieJar {
	return s.jar
}

// Headers returns the outbound header set for one request. Deterministic
// given the account hint and csrf token.
func (s *State) Headers(handle string, csrf string) map[string]string {
	headers := map[string]string{
		"User-Agent":       s.Agent,
		"Accept":           "application/json, text/plain, */*",
		"Accept-Language":  "pt-BR,pt;q=0.9,en-US;q=0.8",
		"Origin":           "https://www.instagram.com",
		"Referer":          fmt.Sprintf("https://www.instagram.com/%v/", handle),
		"X-IG-App-ID":      config.IG_APP_ID,
		"X-Requested-With": "XMLHttpRequest",
		"Sec-Fetch-Site":   "same-site",
		"Sec-Fetch-Mode":   "cors",
		"Sec-Fetch-Dest":   "empty",
	}
	if csrf != "" {
		headers["X-CSRFToken"] = csrf
	}
	return headers
}

// CurrentCsrf reads the csrftoken cookie from the jar. Empty when the
// session has never been warmed.
func (s *State) CurrentCsrf() string {
	for _, cookie := range s.jar.Cookies(igOrigin) {
		if cookie.Name == "csrftoken" {
			return cookie.Value
		}
	}
	return ""
}

// CookieHeader renders the jar as a Cookie header value for persistence.
func (s *State) CookieHeader() string {
	var cookies []string
	for _, cookie := range s.jar.Cookies(igOrigin) {
		cookies = append(cookies, fmt.Sprintf("%v=%v", cookie.Name, cookie.Value))
	}
	return strings.Join(cookies, "; ")
}

// ProxyHandle requests a fresh forward-proxy session. Any failure (no
// provider configured, malformed template) means a direct connection, never
// an error.
func (s *State) ProxyHandle() *common.ProxySession {
	if s.proxy == "" {
		return nil
	}
	endpoint := strings.Replace(s.proxy, "{session}", xid.New().String(), 1)
	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Host == "" {
		return nil
	}
	return &common.ProxySession{
		Proxy: endpoint,
	}
}

// EnsureWarm primes the cookie jar with a best-effort landing page request.
// Idempotent; warm-up failures are swallowed. SCRAPER_WARMUP=off skips the
// request for setups with a pre-seeded cookie payload.
func (s *State) EnsureWarm() {
	s.mux.Lock()
	if s.prepared {
		s.mux.Unlock()
		return
	}
	s.prepared = true
	s.mux.Unlock()

	if common.GetEnvString("SCRAPER_WARMUP") == "off" {
		return
	}

	tr := &http.Transport{
		DisableKeepAlives: true,
	}
	if proxy := s.ProxyHandle(); proxy != nil {
		tr.DialContext = proxy.DialContext
	} else {
		tr.DialContext = (&net.Dialer{}).DialContext
	}
	httpClient := &http.Client{
		Transport: tr,
		Jar:       s.jar,
		Timeout:   time.Duration(config.SCRAPER_REQUEST_TIMEOUT) * time.Second,
	}

	req, _ := http.NewRequest("GET", "https://www.instagram.com/", nil)
	req.Header.Set("User-Agent", s.Agent)
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en-US;q=0.8")
	resp, err := httpClient.Do(req)
	if err != nil {
		log.Println("session warm up failed", err)
		return
	}
	defer resp.Body.Close()
}
