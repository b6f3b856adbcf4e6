package middleware

import (
	"net/http"

	"github.com/lumaclean/wfm-backend-go/internal/domain/auth"
	"github.com/lumaclean/wfm-backend-go/internal/handler/http/response"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r) {
			response.HandleError(w, auth.ErrAdminRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
