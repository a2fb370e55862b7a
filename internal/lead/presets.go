package lead

import "time"

// Preset is a named quick-pick follow-up time offered by the admin UI.
type Preset struct {
	Label string    `json:"label"`
	At    time.Time `json:"at"`
}

// Presets computes the quick-pick follow-up times relative to now.
// Pure convenience; nothing is persisted until the admin confirms one.
func Presets(now time.Time) []Preset {
	at10 := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 10, 0, 0, 0, t.Location())
	}

	return []Preset{
		{Label: "Later today", At: now.Add(3 * time.Hour)},
		{Label: "Tomorrow 10am", At: at10(now.AddDate(0, 0, 1))},
		{Label: "In 3 days", At: at10(now.AddDate(0, 0, 3))},
		{Label: "Next week", At: at10(now.AddDate(0, 0, 7))},
	}
}
