package testutil

import (
	"sync"
	"time"
)

// MockClock is a manually driven clock for scheduler and deadline tests.
type MockClock struct {
	mutex sync.Mutex
	now   time.Time
}

func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

func (c *MockClock) Now() time.Time {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.now
}

func (c *MockClock) Forward(d time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.now = c.now.Add(d)
}
