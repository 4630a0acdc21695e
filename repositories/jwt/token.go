package jwt

import (
	"errors"
	"time"

	"github.com/lestrrat/go-jwx/jwa"
	"github.com/lestrrat/go-jwx/jws"
	"github.com/lestrrat/go-jwx/jwt"
	"github.com/tidwall/gjson"

	"scraper.local/instagram-curator/common"
)

const (
	accessTokenTTL  = 30 * time.Minute
	refreshTokenTTL = 14 * 24 * time.Hour
)

type TokenRepository struct{}

func (r *TokenRepository) AccessToken(uid string) (string, error) {
	return r.sign(uid, "access", accessTokenTTL)
}

func (r *TokenRepository) RefreshToken(uid string) (string, error) {
	return r.sign(uid, "refresh", refreshTokenTTL)
}

func (r *TokenRepository) sign(uid string, use string, ttl time.Duration) (string, error) {
	token := jwt.New()
	token.Set("sub", uid)
	token.Set("use", use)
	token.Set("iat", time.Now().Unix())
	token.Set("exp", time.Now().Add(ttl).Unix())
	payload, err := token.MarshalJSON()
	if err != nil {
		return "", err
	}
	signed, err := jws.Sign(payload, jwa.HS256, []byte(common.GetEnvString("SCRAPER_API_SECRET")))
	if err != nil {
		return "", err
	}
	return string(signed), nil
}

// Uid verifies an access token and returns its subject.
func (r *TokenRepository) Uid(token string) (uid string, err error) {
	payload, err := jws.Verify([]byte(token), jwa.HS256, []byte(common.GetEnvString("SCRAPER_API_SECRET")))
	if err != nil {
		return
	}
	claims := gjson.ParseBytes(payload)
	if claims.Get("use").Str != "access" {
		err = errors.New("token use not valid")
		return
	}
	if claims.Get("exp").Int() < time.Now().Unix() {
		err = errors.New("token expired")
		return
	}
	uid = claims.Get("sub").Str
	if uid == "" {
		err = errors.New("token subject is empty")
	}
	return
}
