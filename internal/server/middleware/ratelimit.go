package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/iudanet/wanderlust/internal/server/handlers"
)

// RateLimiterConfig настройки ограничения частоты запросов с одного IP
type RateLimiterConfig struct {
	Rate            rate.Limit    // запросов в секунду
	Burst           int           // размер бакета
	CleanupInterval time.Duration // период очистки неактивных клиентов
}

// clientLimiter лимитер клиента и время последнего обращения
type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter ограничивает частоту запросов по IP клиента (token bucket, x/time/rate)
type RateLimiter struct {
	logger   *slog.Logger
	limiters map[string]*clientLimiter
	stopCh   chan struct{}
	config   RateLimiterConfig
	mu       sync.RWMutex
	stopOnce sync.Once
}

// NewRateLimiter создает новый rate limiter и запускает очистку неактивных клиентов
func NewRateLimiter(config RateLimiterConfig, logger *slog.Logger) *RateLimiter {
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 5 * time.Minute
	}

	rl := &RateLimiter{
		logger:   logger,
		limiters: make(map[string]*clientLimiter),
		stopCh:   make(chan struct{}),
		config:   config,
	}

	go rl.cleanupLoop()

	return rl
}

// Stop останавливает cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stopCh)
	})
}

// Allow проверяет, разрешен ли запрос для данного ключа (обычно IP адрес)
func (rl *RateLimiter) Allow(key string) bool {
	return rl.limiterFor(key).Allow()
}

// Len количество отслеживаемых клиентов
func (rl *RateLimiter) Len() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.limiters)
}

// Middleware возвращает middleware, отвечающий 429 с Retry-After при превышении лимита
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)

			if !rl.Allow(key) {
				rl.logger.WarnContext(r.Context(), "rate limit exceeded",
					slog.String("ip", key),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)
				rl.writeRateLimitResponse(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if cl, exists := rl.limiters[key]; exists {
		cl.lastAccess = now
		return cl.limiter
	}

	limiter := rate.NewLimiter(rl.config.Rate, rl.config.Burst)
	rl.limiters[key] = &clientLimiter{limiter: limiter, lastAccess: now}
	return limiter
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup удаляет клиентов, не обращавшихся дольше двух интервалов очистки
func (rl *RateLimiter) cleanup(now time.Time) {
	ttl := rl.config.CleanupInterval * 2

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, cl := range rl.limiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.limiters, key)
		}
	}
}

// writeRateLimitResponse пишет 429; Retry-After: секунды до пополнения одного токена
func (rl *RateLimiter) writeRateLimitResponse(w http.ResponseWriter) {
	retryAfter := 1
	if rl.config.Rate > 0 && rl.config.Rate != rate.Inf {
		retryAfter = max(1, int(math.Ceil(1.0/float64(rl.config.Rate))))
	}

	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	handlers.SendError(w, rl.logger, "rate limit exceeded, please try again later", http.StatusTooManyRequests)
}

// clientIP извлекает IP клиента из RemoteAddr.
// X-Forwarded-For и X-Real-IP разбирает chi middleware.RealIP, стоящий раньше в цепочке.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
