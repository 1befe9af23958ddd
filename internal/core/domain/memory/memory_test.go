package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/memory"
)

func TestIsUnderPressure(t *testing.T) {
	cases := []struct {
		name      string
		total     uint64
		free      uint64
		threshold float64
		want      bool
	}{
		{"above threshold", 100, 10, 85, true},
		{"below threshold", 100, 50, 85, false},
		{"exactly at threshold is not over", 100, 15, 85, false},
		{"unknown total fails open", 0, 0, 85, false},
		{"free larger than total", 100, 200, 85, false},
		{"custom threshold", 1000, 399, 60, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, memory.IsUnderPressure(tc.total, tc.free, tc.threshold))
		})
	}
}

func TestUsedPercent(t *testing.T) {
	assert.InDelta(t, 90.0, memory.UsedPercent(100, 10), 1e-9)
	assert.Equal(t, 0.0, memory.UsedPercent(0, 0))
}

func TestHitRate(t *testing.T) {
	assert.Equal(t, 0.0, memory.HitRate(0, 0))
	assert.Equal(t, 0.75, memory.HitRate(3, 1))
	assert.Equal(t, 1.0, memory.HitRate(5, 0))
}
