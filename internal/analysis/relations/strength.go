package relations

import (
	"github.com/seenimoa/sajuai/internal/analysis/elements"
	"github.com/seenimoa/sajuai/pkg/models"
	"github.com/seenimoa/sajuai/pkg/utils"
)

const (
	strongFactor = 1.2
	weakFactor   = 0.8
	// reported when nothing drains the day master
	unboundedRatio = 999
)

// DayMasterStrength weighs the elements supporting the day master against
// those draining it, using season-weighted scores. The day master's own
// 1.0 is excluded from the same-element share.
func DayMasterStrength(c *models.Chart) models.StrengthAnalysis {
	scores := elements.MustScore(c, models.ModeSeasonWeighted)
	return strengthFromScores(c.DayMaster(), scores)
}

func strengthFromScores(dm models.Stem, scores models.ElementScores) models.StrengthAnalysis {
	self := dm.Element()
	resource := self.GeneratedBy()
	supportingSide := []models.Element{resource, self}
	drainingSide := []models.Element{self.Generates(), self.Controls(), self.ControlledBy()}

	supporting := (scores.Get(self) - 1.0) + scores.Get(resource)
	draining := 0.0
	for _, e := range drainingSide {
		draining += scores.Get(e)
	}

	res := models.StrengthAnalysis{
		DayMaster:   dm,
		Element:     self,
		Supporting:  utils.Round1(supporting),
		Draining:    utils.Round1(draining),
		Favorable:   []models.Element{},
		Unfavorable: []models.Element{},
	}
	if draining > 0 {
		res.Ratio = utils.Round(supporting/draining, 2)
	} else {
		res.Ratio = unboundedRatio
	}

	switch {
	case supporting > draining*strongFactor:
		res.Label = models.StrengthStrong
		res.Favorable = drainingSide
		res.Unfavorable = supportingSide
		primary := pick(scores, drainingSide, func(a, b float64) bool { return a < b })
		res.PrimaryFavorable = &primary
	case supporting < draining*weakFactor:
		res.Label = models.StrengthWeak
		res.Favorable = supportingSide
		res.Unfavorable = drainingSide
		primary := pick(scores, supportingSide, func(a, b float64) bool { return a > b })
		res.PrimaryFavorable = &primary
	default:
		res.Label = models.StrengthBalanced
	}
	return res
}

// pick returns the first element whose score beats every other under
// better.
func pick(scores models.ElementScores, candidates []models.Element, better func(a, b float64) bool) models.Element {
	best := candidates[0]
	for _, e := range candidates[1:] {
		if better(scores.Get(e), scores.Get(best)) {
			best = e
		}
	}
	return best
}
