package fetch

import (
	"context"
	"sync"
)

// Plan is the input a fetch depends on. A new batch is needed whenever any
// field changes.
type Plan struct {
	Token   string
	Date    string
	Refresh int
}

// Ticket identifies one scheduled batch
type Ticket struct {
	Gen  uint64
	Plan Plan
	Ctx  context.Context
}

// Coordinator hands out fetch tickets. Only the most recent ticket's result
// may be applied; scheduling a new one cancels the previous context.
type Coordinator struct {
	mu      sync.Mutex
	base    context.Context
	gen     uint64
	plan    Plan
	planned bool
	cancel  context.CancelFunc
}

// NewCoordinator creates a coordinator whose tickets derive from base
func NewCoordinator(base context.Context) *Coordinator {
	if base == nil {
		base = context.Background()
	}
	return &Coordinator{base: base}
}

// Schedule returns a ticket for p, or false when p matches the current plan
// or carries no token.
func (c *Coordinator) Schedule(p Plan) (Ticket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p.Token == "" {
		c.resetLocked()
		return Ticket{}, false
	}
	if c.planned && c.plan == p {
		return Ticket{}, false
	}

	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(c.base)
	c.gen++
	c.plan = p
	c.planned = true
	c.cancel = cancel

	return Ticket{Gen: c.gen, Plan: p, Ctx: ctx}, true
}

// Settle reports whether the result of batch gen may be applied. A stale
// generation returns false and its result must be dropped.
func (c *Coordinator) Settle(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || !c.planned {
		return false
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	return true
}

// Reset cancels any in-flight batch and forgets the current plan
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Coordinator) resetLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.planned = false
	c.plan = Plan{}
	// bump so results of the dropped batch are stale
	c.gen++
}

// Generation returns the generation of the latest ticket
func (c *Coordinator) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}
