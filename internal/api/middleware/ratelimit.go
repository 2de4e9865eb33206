package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Skymx82/autosoft-sub001/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, повторите позже"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// DefaultRateLimiterIdleTTL время, после которого неактивный пользователь забывается
const DefaultRateLimiterIdleTTL = 10 * time.Minute

// RateLimiter ограничивает частоту запросов каждого пользователя
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[int64]*visitor
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
	logger    Logger
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter создаёт ограничитель: rps запросов в секунду с запасом burst
func NewRateLimiter(rps float64, burst int, logger Logger) *RateLimiter {
	return &RateLimiter{
		visitors:  make(map[int64]*visitor),
		limit:     rate.Limit(rps),
		burst:     burst,
		idleTTL:   DefaultRateLimiterIdleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
		logger:    logger,
	}
}

func (l *RateLimiter) limiter(userID int64) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}

	v, ok := l.visitors[userID]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[userID] = v
	}
	v.lastSeen = now
	return v.limiter
}

// sweep удаляет пользователей без запросов дольше idleTTL; вызывается под mu
func (l *RateLimiter) sweep(now time.Time) {
	for userID, v := range l.visitors {
		if now.Sub(v.lastSeen) >= l.idleTTL {
			delete(l.visitors, userID)
		}
	}
	l.lastSweep = now
}

// Middleware должен стоять после Auth: ключ - пользователь сессии
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		if !l.limiter(session.UserID).Allow() {
			l.logger.Warn("Rate limit exceeded: user_id=%d, path=%s", session.UserID, r.URL.Path)
			w.Header().Set("Retry-After", strconv.Itoa(1))
			handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
