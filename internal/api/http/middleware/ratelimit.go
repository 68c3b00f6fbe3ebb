package middleware

import (
	"log"
	"net/http"

	"golang.org/x/time/rate"
)

const (
	defaultRPS   = 100
	defaultBurst = 10
)

// tooManyRequestsBody повторяет форму ошибок шлюза (google.rpc.Status, код RESOURCE_EXHAUSTED)
const tooManyRequestsBody = `{"code":8,"message":"too many requests"}`

// RateLimit ограничивает количество запросов (rate limiting)
// rps - запросов в секунду, burst - разрешает кратковременные всплески.
// Предзапросы CORS не учитываются.
func RateLimit(next http.Handler, rps int, burst int) http.Handler {
	if rps <= 0 {
		rps = defaultRPS
	}
	if burst <= 0 {
		burst = defaultBurst
	}

	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodOptions && !limiter.Allow() {
			log.Printf("[HTTP] Rate limit exceeded for %s from %s", r.URL.Path, r.RemoteAddr)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(tooManyRequestsBody))
			return
		}
		next.ServeHTTP(w, r)
	})
}
