package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSamples_SkipsCorrupted(t *testing.T) {
	vals := []string{
		`{"latitude":35.6588,"longitude":139.7034,"accuracy_meters":12,"captured_at":"2026-03-01T12:00:00Z"}`,
		`not-json`,
		`{"latitude":35.66,"longitude":139.70,"accuracy_meters":8,"captured_at":"2026-03-01T11:55:00Z"}`,
	}

	samples := decodeSamples(vals)
	require.Len(t, samples, 2)
	assert.InDelta(t, 35.6588, samples[0].Latitude, 1e-9)
	assert.InDelta(t, 12, samples[0].AccuracyMeters, 1e-9)
	assert.Equal(t, time.Date(2026, 3, 1, 11, 55, 0, 0, time.UTC), samples[1].CapturedAt.UTC())
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "samples:u-1", historyKey("u-1"))
	assert.Equal(t, "gym:00000000-0000-0000-0000-000000000000", gymCacheKey(uuid.Nil))
}
