package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTripKey(t *testing.T) {
	assert.Equal(t, "trip_1", TripKey(1))
	assert.Equal(t, "trip_42", TripKey(42))
	assert.Equal(t, "trip_9223372036854775807", TripKey(9223372036854775807))
}

func TestStatsKey(t *testing.T) {
	// The key is versioned; bumping the suffix invalidates all old entries
	// after a format change without touching Redis.
	assert.Equal(t, "stats_by_passenger_count_v2", StatsKey)
}
