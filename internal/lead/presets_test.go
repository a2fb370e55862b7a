package lead

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPresets(t *testing.T) {
	now := time.Date(2024, 6, 7, 15, 30, 0, 0, time.UTC)

	presets := Presets(now)

	assert.Len(t, presets, 4)

	assert.Equal(t, "Later today", presets[0].Label)
	assert.Equal(t, now.Add(3*time.Hour), presets[0].At)

	assert.Equal(t, "Tomorrow 10am", presets[1].Label)
	assert.Equal(t, time.Date(2024, 6, 8, 10, 0, 0, 0, time.UTC), presets[1].At)

	assert.Equal(t, "In 3 days", presets[2].Label)
	assert.Equal(t, time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC), presets[2].At)

	assert.Equal(t, "Next week", presets[3].Label)
	assert.Equal(t, time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC), presets[3].At)
}

func TestPresets_MonthBoundary(t *testing.T) {
	now := time.Date(2024, 6, 30, 9, 0, 0, 0, time.UTC)

	presets := Presets(now)

	assert.Equal(t, time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC), presets[1].At)
	assert.Equal(t, time.Date(2024, 7, 7, 10, 0, 0, 0, time.UTC), presets[3].At)
}
