package capacity

import (
	"github.com/horoskooppi/checkout-manager/internal/dependency"
	"github.com/horoskooppi/checkout-manager/internal/entity"
)

// Config holds the single switch controlling the gate. It is resolved
// once at process start; changing it requires a restart.
type Config struct {
	SpotsFull   bool   `mapstructure:"spots_full"`
	FullMessage string `mapstructure:"full_message"`
	OpenMessage string `mapstructure:"open_message"`
}

const (
	defaultOpenMessage = "Spots available"
	defaultFullMessage = "We're currently at capacity. Join the waiting list and we'll notify you when a spot opens."
)

// Gate routes completed sessions to payment or the waitlist. The
// decision is immutable for the process lifetime, so no synchronization
// is needed around it.
type Gate struct {
	full        bool
	openMessage string
	fullMessage string
}

func New(c *Config) dependency.Capacity {
	g := &Gate{
		full:        c.SpotsFull,
		openMessage: c.OpenMessage,
		fullMessage: c.FullMessage,
	}
	if g.openMessage == "" {
		g.openMessage = defaultOpenMessage
	}
	if g.fullMessage == "" {
		g.fullMessage = defaultFullMessage
	}
	return g
}

func (g *Gate) IsFull() bool {
	return g.full
}

// Decide returns the terminal routing for a session that finished the
// last data step. No per-session override exists.
func (g *Gate) Decide() entity.NextStep {
	if g.full {
		return entity.NextStepWaitlist
	}
	return entity.NextStepPayment
}

func (g *Gate) Message() string {
	if g.full {
		return g.fullMessage
	}
	return g.openMessage
}
