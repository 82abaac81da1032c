package domain

import "time"

// Clock supplies "now" to time-dependent computations. The accounting core
// never reads the ambient clock directly; callers inject a Clock so tests
// can run against fixed timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock. Timestamps are UTC-normalized so
// month-boundary arithmetic is independent of the host timezone.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant. Intended for tests.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Instant
}
