package services

import (
	"sync"

	"github.com/yungbote/storygap-backend/internal/domain/exercise"
)

// ResultCache holds ready-made exercises per category in bounded FIFO queues,
// plus the in-flight refill marker of each category. Safe for concurrent use.
type ResultCache struct {
	mu        sync.Mutex
	capacity  int
	queues    map[string][]*exercise.Payload
	refilling map[string]bool
}

func NewResultCache(capacity int) *ResultCache {
	if capacity <= 0 {
		capacity = 5
	}
	return &ResultCache{
		capacity:  capacity,
		queues:    make(map[string][]*exercise.Payload),
		refilling: make(map[string]bool),
	}
}

func (c *ResultCache) Capacity() int { return c.capacity }

// Pop removes and returns the oldest payload of category, or nil.
func (c *ResultCache) Pop(category string) *exercise.Payload {
	c.mu.Lock()
	defer c.mu.Unlock()
	q := c.queues[category]
	if len(q) == 0 {
		return nil
	}
	p := q[0]
	q[0] = nil
	c.queues[category] = q[1:]
	return p
}

// Push appends p, dropping the oldest entry at capacity, and returns the new length.
func (c *ResultCache) Push(category string, p *exercise.Payload) int {
	if p == nil {
		return c.Len(category)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	q := append(c.queues[category], p)
	if len(q) > c.capacity {
		q = append([]*exercise.Payload(nil), q[len(q)-c.capacity:]...)
	}
	c.queues[category] = q
	return len(q)
}

func (c *ResultCache) Len(category string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queues[category])
}

// TryMarkRefill sets the refill marker of category and reports whether this
// caller set it. Only the caller that gets true may run the refill.
func (c *ResultCache) TryMarkRefill(category string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.refilling[category] {
		return false
	}
	c.refilling[category] = true
	return true
}

func (c *ResultCache) ClearRefill(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.refilling, category)
}

func (c *ResultCache) Refilling(category string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refilling[category]
}
