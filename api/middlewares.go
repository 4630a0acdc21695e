package api

import (
	"context"
	"net/http"
	"strings"

	jwtRepositories "scraper.local/instagram-curator/repositories/jwt"
)

type contextKey string

const UidKey contextKey = "uid"

// Authenticator guards admin routes with the bearer access token.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := &ResponseHandler{
			Writer: w,
		}
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Error(http.StatusUnauthorized, 1001, "token is empty")
			return
		}
		repository := &jwtRepositories.TokenRepository{}
		uid, err := repository.Uid(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.Error(http.StatusUnauthorized, 1001, "token not valid")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), UidKey, uid)))
	})
}
