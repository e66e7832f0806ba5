package tutor

import (
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/wordiz/internal/config"
)

// RateLimitError reports a rejected question. Message is shown to the
// learner as is.
type RateLimitError struct {
	Reason  string // "minute", "hour", "day" or "cooldown"
	Retry   time.Duration
	Message string
}

func (e *RateLimitError) Error() string { return e.Message }

// Limiter enforces per-client sliding windows and a cooldown between
// questions. It is safe for concurrent use.
type Limiter struct {
	cfg config.RateLimit
	now func() time.Time

	mu      sync.Mutex
	clients map[string][]time.Time
}

// NewLimiter returns a limiter for cfg. A nil now uses the wall clock.
func NewLimiter(cfg config.RateLimit, now func() time.Time) *Limiter {
	if now == nil {
		now = time.Now
	}
	return &Limiter{cfg: cfg, now: now, clients: map[string][]time.Time{}}
}

// Status returns the configured limits.
func (l *Limiter) Status() config.RateLimit { return l.cfg }

// Allow records a request from client, or returns a *RateLimitError
// without recording it.
func (l *Limiter) Allow(client string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	hist := l.clients[client]
	// Nothing older than a day is ever looked at.
	i := 0
	for i < len(hist) && now.Sub(hist[i]) >= 24*time.Hour {
		i++
	}
	hist = hist[i:]

	windows := []struct {
		reason string
		limit  int
		span   time.Duration
		msg    func(reset time.Time) string
	}{
		{"hour", l.cfg.RequestsPerHour, time.Hour, func(reset time.Time) string {
			return fmt.Sprintf("请求过于频繁，请在 %s 后重试", reset.Format("15:04:05"))
		}},
		{"day", l.cfg.RequestsPerDay, 24 * time.Hour, func(reset time.Time) string {
			return fmt.Sprintf("今日请求次数已达上限，请在 %s 后重试", reset.Format("2006-01-02 15:04:05"))
		}},
		{"minute", l.cfg.RequestsPerMinute, time.Minute, func(reset time.Time) string {
			return fmt.Sprintf("请求过于频繁，请在 %d 秒后重试", int(reset.Sub(now).Seconds()+0.999))
		}},
	}
	for _, w := range windows {
		if w.limit <= 0 {
			continue
		}
		var oldest time.Time
		n := 0
		for _, t := range hist {
			if now.Sub(t) < w.span {
				if n == 0 {
					oldest = t
				}
				n++
			}
		}
		if n >= w.limit {
			reset := oldest.Add(w.span)
			l.clients[client] = hist
			return &RateLimitError{Reason: w.reason, Retry: reset.Sub(now), Message: w.msg(reset)}
		}
	}

	if cd := time.Duration(l.cfg.CooldownSeconds) * time.Second; cd > 0 && len(hist) > 0 {
		if since := now.Sub(hist[len(hist)-1]); since < cd {
			l.clients[client] = hist
			return &RateLimitError{
				Reason:  "cooldown",
				Retry:   cd - since,
				Message: fmt.Sprintf("请等待 %d 秒后重试", l.cfg.CooldownSeconds),
			}
		}
	}

	l.clients[client] = append(hist, now)
	return nil
}
