// Package relations classifies how the parts of a chart relate to the day
// master and to each other: ten gods, day-master strength, branch
// relationships, spirits, and twelve life stages.
package relations

import (
	"github.com/seenimoa/sajuai/internal/calendar"
	"github.com/seenimoa/sajuai/pkg/models"
	"github.com/seenimoa/sajuai/pkg/utils"
)

// TenGods tags every stem and hidden stem of the chart with its relation
// to the day master. The day pillar's own stem is the reference point and
// is never emitted; hidden stems identical to the day master are skipped.
func TenGods(c *models.Chart) models.TenGodsResult {
	dm := c.DayMaster()
	out := make(models.TenGodsResult, 4)
	for _, pos := range models.Positions() {
		p := c.Pillar(pos)
		entries := make([]models.TenGodEntry, 0, 4)
		if pos != models.PositionDay {
			entries = append(entries, models.TenGodEntry{
				Source: models.SourceStem,
				Stem:   p.Stem,
				God:    calendar.TenGodOf(dm, p.Stem),
			})
		}
		for _, h := range calendar.HiddenStems(p.Branch) {
			if h.Stem == dm {
				continue
			}
			entries = append(entries, models.TenGodEntry{
				Source: models.SourceBranch,
				Stem:   h.Stem,
				God:    calendar.TenGodOf(dm, h.Stem),
				Weight: h.Weight,
			})
		}
		out[pos] = entries
	}
	return out
}

// Summary totals each relation (stem 1.0, hidden stem weight/100) and rates
// it. Relations that never occur are omitted; the rest keep table order.
func Summary(r models.TenGodsResult) []models.TenGodSummaryItem {
	// accumulated in hundredths to keep band edges exact
	var hundredths [10]int
	for _, entries := range r {
		for _, e := range entries {
			if e.Source == models.SourceStem {
				hundredths[e.God] += 100
			} else {
				hundredths[e.God] += e.Weight
			}
		}
	}
	out := make([]models.TenGodSummaryItem, 0, len(hundredths))
	for _, g := range models.AllTenGods() {
		if hundredths[g] == 0 {
			continue
		}
		s := float64(hundredths[g]) / 100
		stars, level := rate(s)
		out = append(out, models.TenGodSummaryItem{God: g, Score: utils.Round1(s), Stars: stars, Level: level})
	}
	return out
}

func rate(score float64) (stars, level string) {
	switch {
	case score >= 2.0:
		return "★★★★★", "매우강"
	case score >= 1.5:
		return "★★★★☆", "강"
	case score >= 1.0:
		return "★★★☆☆", "보통"
	case score >= 0.5:
		return "★★☆☆☆", "약"
	default:
		return "★☆☆☆☆", "매우약"
	}
}

// SummaryScore returns the summary score of g, or 0 when absent.
func SummaryScore(items []models.TenGodSummaryItem, g models.TenGod) float64 {
	for _, it := range items {
		if it.God == g {
			return it.Score
		}
	}
	return 0
}
