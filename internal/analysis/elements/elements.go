// Package elements scores the five-element balance of a chart.
package elements

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/seenimoa/sajuai/internal/calendar"
	"github.com/seenimoa/sajuai/pkg/models"
	"github.com/seenimoa/sajuai/pkg/utils"
)

// ------------------------------------------------------------------
// Every pillar stem contributes 1.0 to its element and every hidden
// stem of a pillar branch contributes weight/100, so raw scores always
// total 8.0. Rounding to one decimal happens once, at the end.
// ------------------------------------------------------------------

// Score computes element scores in the given mode.
func Score(c *models.Chart, mode models.ScoreMode) (models.ElementScores, error) {
	var v []float64
	switch mode {
	case models.ModeRaw, models.ModeBalanced:
		v = raw(c)
	case models.ModeSeasonWeighted:
		v = raw(c)
		floats.Mul(v, seasonVector(c.Month.Branch))
	case models.ModeSimplified:
		v = simplified(c)
	default:
		return models.ElementScores{}, fmt.Errorf("unknown score mode %q", mode)
	}
	var out models.ElementScores
	for i, x := range v {
		out[i] = utils.Round1(x)
	}
	return out, nil
}

// MustScore is Score for modes known to be valid.
func MustScore(c *models.Chart, mode models.ScoreMode) models.ElementScores {
	s, err := Score(c, mode)
	if err != nil {
		panic(err)
	}
	return s
}

func raw(c *models.Chart) []float64 {
	v := make([]float64, 5)
	for _, p := range c.Pillars() {
		v[p.Stem.Element()] += 1.0
		for _, h := range calendar.HiddenStems(p.Branch) {
			v[h.Stem.Element()] += float64(h.Weight) / 100
		}
	}
	return v
}

func simplified(c *models.Chart) []float64 {
	v := make([]float64, 5)
	for _, p := range c.Pillars() {
		v[p.Stem.Element()] += 1.0
		v[calendar.DominantHiddenStem(p.Branch).Stem.Element()] += 1.0
	}
	return v
}

func seasonVector(month models.Branch) []float64 {
	w := make([]float64, 5)
	for _, e := range models.AllElements() {
		w[e] = calendar.SeasonalWeight(month, e)
	}
	return w
}

// Interpret reads each score against the mean of all five: below 60% is
// insufficient, below 80% slightly insufficient, above 140% excessive,
// above 120% slightly excessive. A zero mean reads as balanced throughout.
func Interpret(s models.ElementScores) models.ElementReading {
	out := make(models.ElementReading, 5)
	mean := stat.Mean(s[:], nil)
	for _, e := range models.AllElements() {
		if mean == 0 {
			out[e] = models.LevelBalanced
			continue
		}
		ratio := s[e] / mean
		switch {
		case ratio < 0.6:
			out[e] = models.LevelInsufficient
		case ratio < 0.8:
			out[e] = models.LevelSlightInsufficient
		case ratio > 1.4:
			out[e] = models.LevelExcess
		case ratio > 1.2:
			out[e] = models.LevelSlightExcess
		default:
			out[e] = models.LevelBalanced
		}
	}
	return out
}

// Strongest returns the element with the highest score; ties go to the
// earlier element in generative order.
func Strongest(s models.ElementScores) models.Element {
	return models.Element(floats.MaxIdx(s[:]))
}

// Weakest returns the element with the lowest score; ties go to the
// earlier element in generative order.
func Weakest(s models.ElementScores) models.Element {
	return models.Element(floats.MinIdx(s[:]))
}
