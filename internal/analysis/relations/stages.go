package relations

import (
	"github.com/seenimoa/sajuai/internal/calendar"
	"github.com/seenimoa/sajuai/pkg/models"
)

// TwelveStages places each pillar branch in the day master's life cycle,
// counting forward from the element's 장생 branch for yang stems and
// backward for yin stems.
func TwelveStages(c *models.Chart) models.TwelveStages {
	dm := c.DayMaster()
	birth := int(calendar.StageBirthBranch(dm.Element()))
	out := make(models.TwelveStages, 4)
	for _, pos := range models.Positions() {
		b := int(c.Pillar(pos).Branch)
		var idx int
		if dm.Polarity() == models.Yang {
			idx = b - birth
		} else {
			idx = birth - b
		}
		out[pos] = models.TwelveStage((idx%12 + 12) % 12)
	}
	return out
}
