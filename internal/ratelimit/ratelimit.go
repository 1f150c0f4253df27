// Package ratelimit provides an in-memory sliding window limiter used
// to keep a single client from hammering the checkout funnel.
package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Limiter implements a simple in-memory sliding window rate limiter
type Limiter struct {
	mu       sync.RWMutex
	counters map[string]*counter
	window   time.Duration
	max      int
}

type counter struct {
	count     int
	expiresAt time.Time
}

// NewLimiter creates a new rate limiter with the specified window and max requests
func NewLimiter(window time.Duration, max int) *Limiter {
	l := &Limiter{
		counters: make(map[string]*counter),
		window:   window,
		max:      max,
	}
	go l.cleanup()
	return l
}

// Allow checks if a request for the given key is allowed
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	c, exists := l.counters[key]

	if !exists || now.After(c.expiresAt) {
		l.counters[key] = &counter{
			count:     1,
			expiresAt: now.Add(l.window),
		}
		return true
	}

	if c.count >= l.max {
		return false
	}

	c.count++
	return true
}

// GetRemaining returns the number of remaining requests for the given key
func (l *Limiter) GetRemaining(key string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	now := time.Now()
	c, exists := l.counters[key]

	if !exists || now.After(c.expiresAt) {
		return l.max
	}

	remaining := l.max - c.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// cleanup periodically removes expired counters
func (l *Limiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, c := range l.counters {
			if now.After(c.expiresAt) {
				delete(l.counters, key)
			}
		}
		l.mu.Unlock()
	}
}

// FunnelLimiter bundles the per-operation limiters of the checkout
// funnel.
type FunnelLimiter struct {
	limiters map[string]*Limiter
	mu       sync.RWMutex
}

// NewFunnelLimiter creates a funnel limiter with default limits
func NewFunnelLimiter() *FunnelLimiter {
	return &FunnelLimiter{
		limiters: map[string]*Limiter{
			"ip_start":       NewLimiter(time.Hour, 30),   // 30 new sessions per IP per hour
			"ip_step":        NewLimiter(time.Minute, 60), // 60 step submissions per IP per minute
			"ip_waitlist":    NewLimiter(time.Hour, 10),   // 10 waitlist joins per IP per hour
			"email_waitlist": NewLimiter(time.Hour, 5),    // 5 waitlist joins per email per hour
		},
	}
}

// NewCustomFunnelLimiter creates a limiter with custom limits
func NewCustomFunnelLimiter(startLimit, stepLimit, waitlistLimit int) *FunnelLimiter {
	return &FunnelLimiter{
		limiters: map[string]*Limiter{
			"ip_start":       NewLimiter(time.Hour, startLimit),
			"ip_step":        NewLimiter(time.Minute, stepLimit),
			"ip_waitlist":    NewLimiter(time.Hour, waitlistLimit),
			"email_waitlist": NewLimiter(time.Hour, waitlistLimit),
		},
	}
}

// CheckSessionStart verifies if a new checkout session can be started from the given IP
func (m *FunnelLimiter) CheckSessionStart(ip string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.limiters["ip_start"].Allow(ip) {
		return fmt.Errorf("too many checkout sessions from this IP address, please try again later")
	}
	return nil
}

// CheckStepSubmission verifies if a step submission is allowed from the given IP
func (m *FunnelLimiter) CheckStepSubmission(ip string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.limiters["ip_step"].Allow(ip) {
		return fmt.Errorf("too many step submissions, please slow down")
	}
	return nil
}

// CheckWaitlistJoin verifies if a waitlist join is allowed from the given IP and email
func (m *FunnelLimiter) CheckWaitlistJoin(ip, email string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.limiters["ip_waitlist"].Allow(ip) {
		return fmt.Errorf("too many waitlist requests from this IP address, please try again later")
	}

	if email != "" && !m.limiters["email_waitlist"].Allow(email) {
		return fmt.Errorf("too many waitlist requests for this email address, please try again later")
	}
	return nil
}

// GetStartRemaining returns remaining session starts for the given IP
func (m *FunnelLimiter) GetStartRemaining(ip string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.limiters["ip_start"].GetRemaining(ip)
}
