package clientdata

import "time"

// TTL constants for different data types.
// These are added to time.Now() when storing to calculate expires_at.
const (
	// TTLCurrentPrice - live quotes go stale quickly
	TTLCurrentPrice = 5 * time.Minute

	// TTLOnboardingStatus - derived completion flag; also invalidated
	// explicitly on every profile mutation
	TTLOnboardingStatus = 10 * time.Minute
)
