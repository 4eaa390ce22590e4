package application

import (
	"context"
	"sync"
	"time"
)

// rateLimitEntry cuenta las solicitudes de un cliente dentro de su ventana
type rateLimitEntry struct {
	count     int
	resetTime time.Time
}

// RateLimiter limita solicitudes por identificador usando ventanas de tiempo fijas
type RateLimiter struct {
	limits map[string]*rateLimitEntry
	mu     sync.Mutex
	window time.Duration
	limit  int
	now    func() time.Time
}

// NewRateLimiter crea un rate limiter que permite limit solicitudes por window
func NewRateLimiter(window time.Duration, limit int) *RateLimiter {
	return &RateLimiter{
		limits: make(map[string]*rateLimitEntry),
		window: window,
		limit:  limit,
		now:    time.Now,
	}
}

// Allow registra una solicitud para identifier. Si se excede el límite
// devuelve false y el tiempo restante hasta que se reinicie la ventana
func (rl *RateLimiter) Allow(identifier string) (bool, time.Duration) {
	if identifier == "" {
		identifier = "anonymous"
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	entry, exists := rl.limits[identifier]

	if !exists || now.After(entry.resetTime) {
		rl.limits[identifier] = &rateLimitEntry{
			count:     1,
			resetTime: now.Add(rl.window),
		}
		return true, 0
	}

	if entry.count >= rl.limit {
		return false, entry.resetTime.Sub(now)
	}

	entry.count++
	return true, 0
}

// Remaining obtiene el número de solicitudes restantes para un identificador
func (rl *RateLimiter) Remaining(identifier string) int {
	if identifier == "" {
		identifier = "anonymous"
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.limits[identifier]
	if !exists || rl.now().After(entry.resetTime) {
		return rl.limit
	}

	if remaining := rl.limit - entry.count; remaining > 0 {
		return remaining
	}
	return 0
}

// Run limpia periódicamente las entradas expiradas hasta que ctx termine
func (rl *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, entry := range rl.limits {
		if now.After(entry.resetTime) {
			delete(rl.limits, key)
		}
	}
}
