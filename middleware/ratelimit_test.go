package middleware

import (
	"testing"

	"golang.org/x/time/rate"
)

func TestGetLimiterCreatesPerIP(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 2)

	a := limiter.GetLimiter("1.2.3.4")
	b := limiter.GetLimiter("5.6.7.8")
	if a == b {
		t.Error("Expected distinct limiters per IP")
	}

	if again := limiter.GetLimiter("1.2.3.4"); again != a {
		t.Error("Expected the same limiter for a repeated IP")
	}
}

func TestBurstIsEnforced(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 2)

	l := limiter.GetLimiter("1.2.3.4")
	if !l.Allow() || !l.Allow() {
		t.Fatal("Expected the burst to allow two requests")
	}
	if l.Allow() {
		t.Error("Expected the third request to be rejected")
	}
}

func TestGetBurstLimit(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 5)
	if limiter.GetBurstLimit() != 5 {
		t.Errorf("Expected burst limit 5, got %d", limiter.GetBurstLimit())
	}
}
