package order

import (
	"fmt"
	"math/rand"
	"time"
)

// trackingPrefix is the human-visible prefix on every tracking number.
const trackingPrefix = "SHP"

// NewTrackingNumber generates a human-readable tracking number of the form
// SHP<last 6 digits of unix milliseconds><3 random digits>.
//
// The combination of a millisecond timestamp and a random suffix makes
// collisions unlikely but not impossible; the storage layer keeps a unique
// index on the column, so a colliding insert fails and the caller retries
// with a fresh number.
func NewTrackingNumber() string {
	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	return fmt.Sprintf("%s%s%03d", trackingPrefix, millis, rand.Intn(1000))
}
