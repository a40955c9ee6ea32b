// Package testutils provides deterministic generators and helpers for arthurchat tests.
// Generated values keep the production formats (msg_<ms>_<suffix>, Unix ms timestamps)
// so assertions written against them also hold for real output.
package testutils

import (
	"fmt"
	"sync"
	"time"
)

// BaseTime is the first instant returned by a fresh StepClock: 2025-01-01T00:00:00Z.
var BaseTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// StepClock returns a time that advances by Step on every call to Now.
type StepClock struct {
	mu      sync.Mutex
	current time.Time
	Step    time.Duration
}

// NewStepClock returns a clock starting at BaseTime that advances one second per call.
func NewStepClock() *StepClock {
	return &StepClock{current: BaseTime, Step: time.Second}
}

// Now returns the current deterministic time and advances the clock.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.current
	c.current = c.current.Add(c.Step)
	return now
}

// Set moves the clock to t.
func (c *StepClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

// Now returns c.At.
func (c FixedClock) Now() time.Time {
	return c.At
}

// SequenceIDs produces ids like msg_0000001, conv_0000002 using one shared counter.
type SequenceIDs struct {
	mu      sync.Mutex
	counter uint64
}

// NewSequenceIDs returns a generator starting at 1.
func NewSequenceIDs() *SequenceIDs {
	return &SequenceIDs{}
}

// NewID returns the next id for prefix.
func (s *SequenceIDs) NewID(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter++
	return fmt.Sprintf("%s_%07d", prefix, s.counter)
}
