package lead

import (
	"fmt"
	"log"
	"strings"
	"time"

	"bluekey_backend/internal/model"
)

// Timestamp layouts used when rendering the activity log for display.
const (
	entryTimeLayout    = "2006-01-02 15:04"
	followUpTimeLayout = "2006-01-02T15:04:05"
)

// RenderActivityLog renders the structured activity rows as the
// concatenated text block the admin UI shows (and exports). Rendering is
// one-way: the rows stay the source of truth and are never re-parsed
// from this text.
func RenderActivityLog(activities []model.LeadActivity) string {
	blocks := make([]string, 0, len(activities))
	for _, a := range activities {
		blocks = append(blocks, renderEntry(a))
	}
	return strings.Join(blocks, "\n\n")
}

func renderEntry(a model.LeadActivity) string {
	header := "[" + a.OccurredAt.Format(entryTimeLayout) + "]"
	if a.Actor != "" {
		header += " " + a.Actor
	}

	switch a.Kind {
	case model.ActivityFollowUp:
		line := header + "\nFOLLOW-UP SCHEDULED: " + formatScheduledFor(a.ScheduledFor)
		if a.Body != "" {
			line += "\n" + a.Body
		}
		return line
	case model.ActivityStatusChange:
		return header + "\n" + fmt.Sprintf("STATUS: %s -> %s", a.OldStatus, a.NewStatus)
	default:
		return header + "\n" + a.Body
	}
}

func formatScheduledFor(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(followUpTimeLayout)
}

func logActivityError(a *model.LeadActivity, err error) {
	log.Printf("could not append %s activity for lead %d: %v", a.Kind, a.LeadID, err)
}
