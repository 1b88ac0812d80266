package conversation

import (
	"strings"

	"mandy/internal/gateway/catalog"
)

// ScheduleLine is one row of the schedule preview.
type ScheduleLine struct {
	PlatformID string `json:"platform_id"`
	Icon       string `json:"icon"`
	Name       string `json:"name"`
	Times      string `json:"times"`
}

// ScheduleLines projects the default schedules of the selected
// platforms for display. Pure read; nothing here is persisted.
func ScheduleLines(st *State) []ScheduleLine {
	if st == nil {
		return nil
	}
	lines := make([]ScheduleLine, 0, len(st.Platforms))
	for _, id := range st.Platforms {
		p, ok := catalog.PlatformByID(id)
		if !ok {
			continue
		}
		s := catalog.DefaultSchedule(id)
		lines = append(lines, ScheduleLine{
			PlatformID: id,
			Icon:       p.Icon,
			Name:       p.Name,
			Times:      strings.Join(s.Times, " & "),
		})
	}
	return lines
}
