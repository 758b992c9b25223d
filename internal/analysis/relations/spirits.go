package relations

import (
	"github.com/seenimoa/sajuai/internal/calendar"
	"github.com/seenimoa/sajuai/pkg/models"
)

// Spirits lists, per spirit, the chart branches it lands on. Void and the
// two nobles key off the day stem; peach blossom and traveling horse key
// off the year and day branches. Each list is deduplicated in chart order.
func Spirits(c *models.Chart) models.SpiritMatches {
	dm := c.DayMaster()
	void := calendar.VoidBranches(dm)
	bases := []models.Branch{c.Year.Branch, c.Day.Branch}

	targets := map[models.Spirit][]models.Branch{
		models.SpiritVoid:           void[:],
		models.SpiritPeachBlossom:   {calendar.PeachBlossom(bases[0]), calendar.PeachBlossom(bases[1])},
		models.SpiritTravelingHorse: {calendar.TravelingHorse(bases[0]), calendar.TravelingHorse(bases[1])},
		models.SpiritHeavenlyNoble:  calendar.HeavenlyNoble(dm),
		models.SpiritTaegeukNoble:   calendar.TaegeukNoble(dm),
	}

	out := make(models.SpiritMatches, len(targets))
	for _, s := range models.Spirits() {
		out[s] = matchBranches(c.Branches(), targets[s])
	}
	return out
}

func matchBranches(branches [4]models.Branch, targets []models.Branch) []models.Branch {
	out := []models.Branch{}
	for _, b := range branches {
		if containsBranch(targets, b) && !containsBranch(out, b) {
			out = append(out, b)
		}
	}
	return out
}
