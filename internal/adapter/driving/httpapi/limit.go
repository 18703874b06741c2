package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"
)

// Default import limits, in requests per second and burst.
const (
	DefaultImportRate  = 2.0
	DefaultImportBurst = 5
)

var errImportRate = errors.New("import rate limit exceeded, retry later")

// importLimiter throttles the import endpoint.
type importLimiter struct {
	limiter *rate.Limiter
}

func newImportLimiter(rps float64, burst int) *importLimiter {
	if rps <= 0 {
		rps = DefaultImportRate
	}
	if burst <= 0 {
		burst = DefaultImportBurst
	}
	return &importLimiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Handler rejects requests beyond the limit with 429.
func (l *importLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			_ = render.Render(w, r, errResponse(http.StatusTooManyRequests, errImportRate))
			return
		}
		next.ServeHTTP(w, r)
	})
}
