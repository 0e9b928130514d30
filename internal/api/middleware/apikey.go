package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/mvermaat/stock-trade-tracker/internal/api/response"
)

// tokenTTL bounds how old an X-API-Token may be. Tokens are fernet-encrypted
// timestamps, so a captured request cannot be replayed after the window.
const tokenTTL = 60 * time.Second

// APIKeyMiddleware guards internal admin endpoints (snapshot rebuild). The
// request must carry the shared X-API-Key and a fresh fernet X-API-Token
// minted with the key from FERNET_KEY. This is an operational guard for the
// internal surface, not user authentication.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv("INTERNAL_API_KEY")
		if expected == "" {
			response.RespondError(w, http.StatusServiceUnavailable, "internal API disabled", "INTERNAL_API_KEY not configured")
			return
		}

		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		token := r.Header.Get("X-API-Token")
		if token == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API token")
			return
		}

		key, err := fernet.DecodeKey(os.Getenv("FERNET_KEY"))
		if err != nil {
			response.RespondError(w, http.StatusServiceUnavailable, "internal API disabled", "FERNET_KEY not configured")
			return
		}

		msg := fernet.VerifyAndDecrypt([]byte(token), tokenTTL, []*fernet.Key{key})
		if msg == nil {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired API token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
