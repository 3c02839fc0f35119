package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/tranvq/shiftlog/internal/handler/http/response"
)

// secretTokenHeader is set by Telegram on every webhook call when the
// webhook was registered with a secret token.
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// WebhookSecret rejects webhook calls that do not carry the configured
// secret token. An empty secret disables the check.
func WebhookSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			if secret != "" {
				got := r.Header.Get(secretTokenHeader)
				if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
					response.Unauthorized(w, "Invalid webhook secret")
					return
				}
			}
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
