// Package calendar holds the calendrical reference data of the engine:
// hidden stems, ten-god offsets, seasonal weights, branch relationship and
// spirit tables, solar-term instants, the leap-month registry, and solar-time
// presets. Everything here is immutable after construction.
package calendar

import "github.com/seenimoa/sajuai/pkg/models"

// HiddenStem is a stem concealed in a branch with its percentage weight.
type HiddenStem struct {
	Stem   models.Stem
	Weight int
}

// Weights of each branch sum to 100; the first entry is dominant.
var hiddenStems = [models.BranchCount][]HiddenStem{
	models.BranchJa:   {{models.StemGye, 100}},
	models.BranchChuk: {{models.StemGi, 60}, {models.StemSin, 30}, {models.StemGye, 10}},
	models.BranchIn:   {{models.StemGap, 60}, {models.StemByeong, 30}, {models.StemMu, 10}},
	models.BranchMyo:  {{models.StemEul, 100}},
	models.BranchJin:  {{models.StemMu, 60}, {models.StemEul, 30}, {models.StemGye, 10}},
	models.BranchSa:   {{models.StemByeong, 70}, {models.StemMu, 20}, {models.StemGyeong, 10}},
	models.BranchO:    {{models.StemJeong, 70}, {models.StemGi, 30}},
	models.BranchMi:   {{models.StemGi, 60}, {models.StemJeong, 30}, {models.StemEul, 10}},
	models.BranchSin:  {{models.StemGyeong, 60}, {models.StemIm, 30}, {models.StemMu, 10}},
	models.BranchYu:   {{models.StemSin, 100}},
	models.BranchSul:  {{models.StemMu, 60}, {models.StemSin, 30}, {models.StemJeong, 10}},
	models.BranchHae:  {{models.StemIm, 70}, {models.StemGap, 30}},
}

// HiddenStems returns the hidden stems of b, dominant first. The returned
// slice is a copy.
func HiddenStems(b models.Branch) []HiddenStem {
	src := hiddenStems[b]
	out := make([]HiddenStem, len(src))
	copy(out, src)
	return out
}

// DominantHiddenStem returns the heaviest hidden stem of b.
func DominantHiddenStem(b models.Branch) HiddenStem {
	return hiddenStems[b][0]
}

// Seasonal multipliers indexed by month branch, then element in
// generative order (목 화 토 금 수).
var seasonalWeights = [models.BranchCount][5]float64{
	models.BranchIn:   {2.0, 1.3, 0.7, 0.5, 0.6},
	models.BranchMyo:  {2.2, 1.3, 0.7, 0.4, 0.6},
	models.BranchJin:  {1.5, 1.1, 1.3, 0.6, 0.7},
	models.BranchSa:   {0.6, 2.0, 1.3, 0.7, 0.5},
	models.BranchO:    {0.6, 2.2, 1.3, 0.7, 0.4},
	models.BranchMi:   {0.7, 1.5, 1.8, 0.8, 0.6},
	models.BranchSin:  {0.6, 0.5, 0.7, 2.0, 1.3},
	models.BranchYu:   {0.6, 0.4, 0.7, 2.2, 1.3},
	models.BranchSul:  {0.7, 0.6, 1.3, 1.5, 1.1},
	models.BranchHae:  {1.3, 0.7, 0.5, 0.6, 2.0},
	models.BranchJa:   {1.3, 0.7, 0.4, 0.6, 2.2},
	models.BranchChuk: {1.1, 0.7, 1.3, 0.8, 1.5},
}

// SeasonalWeight returns the multiplier of element e in the season of the
// given month branch.
func SeasonalWeight(month models.Branch, e models.Element) float64 {
	return seasonalWeights[month][e]
}

// MonthStemStart returns the stem of the 인 month in a year whose stem is
// yearStem: 갑/기→병, 을/경→무, 병/신→경, 정/임→임, 무/계→갑.
func MonthStemStart(yearStem models.Stem) models.Stem {
	return models.Stem((int(yearStem)%5*2 + 2) % models.StemCount)
}

// MonthStem returns the stem of the month whose branch is b.
func MonthStem(yearStem models.Stem, b models.Branch) models.Stem {
	return MonthStemStart(yearStem).Shift((int(b) - 2 + models.BranchCount) % models.BranchCount)
}

// HourStemStart returns the stem of the 자 hour on a day whose stem is
// dayStem: 갑/기→갑, 을/경→병, 병/신→무, 정/임→경, 무/계→임.
func HourStemStart(dayStem models.Stem) models.Stem {
	return models.Stem(int(dayStem) % 5 * 2)
}

// tenGodPairs lists, per element offset (target − day master) mod 5, the
// relation for equal polarity followed by the one for opposite polarity.
var tenGodPairs = [5][2]models.TenGod{
	{models.TenGodFriend, models.TenGodRobWealth},
	{models.TenGodEatingGod, models.TenGodHurtingOfficer},
	{models.TenGodIndirectWealth, models.TenGodDirectWealth},
	{models.TenGodSevenKillings, models.TenGodDirectOfficer},
	{models.TenGodIndirectResource, models.TenGodDirectResource},
}

// TenGodOf classifies target relative to the day master dm.
func TenGodOf(dm, target models.Stem) models.TenGod {
	offset := (int(target.Element()) - int(dm.Element()) + 5) % 5
	if dm.Polarity() == target.Polarity() {
		return tenGodPairs[offset][0]
	}
	return tenGodPairs[offset][1]
}

// ElementOffset returns (target − dm) mod 5 in generative order:
// 0 same, 1 output, 2 wealth, 3 authority, 4 resource.
func ElementOffset(dm, target models.Element) int {
	return (int(target) - int(dm) + 5) % 5
}

// StageBirthBranch returns the 장생 branch of an element: 목 해, 화 인,
// 토 인, 금 사, 수 신.
func StageBirthBranch(e models.Element) models.Branch {
	switch e {
	case models.Wood:
		return models.BranchHae
	case models.Fire, models.Earth:
		return models.BranchIn
	case models.Metal:
		return models.BranchSa
	default:
		return models.BranchSin
	}
}
