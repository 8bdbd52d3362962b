package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInPKT(t *testing.T) {
	parsed, err := ParseInPKT(DateLayout, "2026-03-15")
	require.NoError(t, err)

	assert.Equal(t, 2026, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 15, parsed.Day())

	_, offset := parsed.Zone()
	assert.Equal(t, 5*60*60, offset)
}

func TestStartAndEndOfDay(t *testing.T) {
	// 01:30 UTC is 06:30 in PKT, so the PKT day boundaries must be
	// computed in PKT, not UTC.
	utc := time.Date(2026, 3, 15, 1, 30, 0, 0, time.UTC)

	start := StartOfDay(utc)
	assert.Equal(t, 15, start.Day())
	assert.Equal(t, 0, start.Hour())

	end := EndOfDay(utc)
	assert.Equal(t, 15, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.True(t, end.After(start))
}

func TestFormatPKT(t *testing.T) {
	utc := time.Date(2026, 3, 15, 19, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-16", FormatPKT(utc, DateLayout))
}
