package middleware

import (
	"math"
	"sync"

	"golang.org/x/time/rate"
)

// IPRateLimiter manages per-IP rate limiting for the command gateway
type IPRateLimiter struct {
	ips   map[string]*rate.Limiter
	mu    *sync.RWMutex
	rate  rate.Limit
	burst int
}

// NewIPRateLimiter creates a new per-IP rate limiter
func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		ips:   make(map[string]*rate.Limiter),
		mu:    &sync.RWMutex{},
		rate:  r,
		burst: burst,
	}
}

// GetBurstLimit returns the configured burst limit
func (i *IPRateLimiter) GetBurstLimit() int {
	return i.burst
}

// Tokens returns the number of tokens currently available for an IP
func (i *IPRateLimiter) Tokens(ip string) int {
	return int(math.Floor(i.GetLimiter(ip).Tokens()))
}

func (i *IPRateLimiter) AddIP(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	limiter := rate.NewLimiter(i.rate, i.burst)
	i.ips[ip] = limiter

	return limiter
}

func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	limiter, exists := i.ips[ip]

	if !exists {
		i.mu.Unlock()
		return i.AddIP(ip)
	}

	i.mu.Unlock()

	return limiter
}
