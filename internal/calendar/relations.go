package calendar

import "github.com/seenimoa/sajuai/pkg/models"

// PairRule is an unordered branch pair with the name of the relationship it
// forms.
type PairRule struct {
	A, B models.Branch
	Name string
}

// Matches reports whether {x, y} is the rule's pair, in either order.
func (r PairRule) Matches(x, y models.Branch) bool {
	return (x == r.A && y == r.B) || (x == r.B && y == r.A)
}

// TripleRule is a three-branch set with the name of the frame it forms.
type TripleRule struct {
	Branches [3]models.Branch
	Name     string
}

// Contains reports whether b is one of the rule's branches.
func (r TripleRule) Contains(b models.Branch) bool {
	for _, x := range r.Branches {
		if x == b {
			return true
		}
	}
	return false
}

var sixCombinations = []PairRule{
	{models.BranchJa, models.BranchChuk, "토합"},
	{models.BranchIn, models.BranchHae, "목합"},
	{models.BranchMyo, models.BranchSul, "화합"},
	{models.BranchJin, models.BranchYu, "금합"},
	{models.BranchSa, models.BranchSin, "수합"},
	{models.BranchO, models.BranchMi, "토합"},
}

var tripleCombinations = []TripleRule{
	{[3]models.Branch{models.BranchIn, models.BranchO, models.BranchSul}, "화국"},
	{[3]models.Branch{models.BranchSa, models.BranchYu, models.BranchChuk}, "금국"},
	{[3]models.Branch{models.BranchSin, models.BranchJa, models.BranchJin}, "수국"},
	{[3]models.Branch{models.BranchHae, models.BranchMyo, models.BranchMi}, "목국"},
}

var sixClashes = []PairRule{
	{models.BranchJa, models.BranchO, "자오충"},
	{models.BranchChuk, models.BranchMi, "축미충"},
	{models.BranchIn, models.BranchSin, "인신충"},
	{models.BranchMyo, models.BranchYu, "묘유충"},
	{models.BranchJin, models.BranchSul, "진술충"},
	{models.BranchSa, models.BranchHae, "사해충"},
}

var sixHarms = []PairRule{
	{models.BranchJa, models.BranchMi, "자미해"},
	{models.BranchChuk, models.BranchO, "축오해"},
	{models.BranchIn, models.BranchSa, "인사해"},
	{models.BranchMyo, models.BranchJin, "묘진해"},
	{models.BranchSin, models.BranchHae, "신해해"},
	{models.BranchYu, models.BranchSul, "유술해"},
}

// Punishment triples fire when at least two distinct members are present.
var punishmentTriples = []TripleRule{
	{[3]models.Branch{models.BranchIn, models.BranchSa, models.BranchSin}, "무은지형"},
	{[3]models.Branch{models.BranchChuk, models.BranchSul, models.BranchMi}, "지세지형"},
}

var punishmentPair = PairRule{models.BranchJa, models.BranchMyo, "무례지형"}

// Branches that punish themselves when they appear twice.
var selfPunishing = []models.Branch{models.BranchJin, models.BranchO, models.BranchYu, models.BranchHae}

// SelfPunishmentName labels a duplicated self-punishing branch.
const SelfPunishmentName = "자형"

// SixCombinations returns the six-combination rules.
func SixCombinations() []PairRule { return append([]PairRule(nil), sixCombinations...) }

// TripleCombinations returns the triple-combination rules.
func TripleCombinations() []TripleRule { return append([]TripleRule(nil), tripleCombinations...) }

// SixClashes returns the six-clash rules.
func SixClashes() []PairRule { return append([]PairRule(nil), sixClashes...) }

// SixHarms returns the six-harm rules.
func SixHarms() []PairRule { return append([]PairRule(nil), sixHarms...) }

// PunishmentTriples returns the partial-triple punishment rules.
func PunishmentTriples() []TripleRule { return append([]TripleRule(nil), punishmentTriples...) }

// PunishmentPair returns the 자묘 punishment rule.
func PunishmentPair() PairRule { return punishmentPair }

// IsSelfPunishing reports whether a duplicate of b forms 자형.
func IsSelfPunishing(b models.Branch) bool {
	for _, x := range selfPunishing {
		if x == b {
			return true
		}
	}
	return false
}

// ── Spirits ──

// VoidBranches returns the two 공망 branches of the day stem's decade.
func VoidBranches(dayStem models.Stem) [2]models.Branch {
	switch int(dayStem) / 2 {
	case 0:
		return [2]models.Branch{models.BranchSul, models.BranchHae}
	case 1:
		return [2]models.Branch{models.BranchSin, models.BranchYu}
	case 2:
		return [2]models.Branch{models.BranchO, models.BranchMi}
	case 3:
		return [2]models.Branch{models.BranchJin, models.BranchSa}
	default:
		return [2]models.Branch{models.BranchIn, models.BranchMyo}
	}
}

// trine returns the index of the triple-combination frame containing b:
// 0 인오술, 1 사유축, 2 신자진, 3 해묘미.
func trine(b models.Branch) int {
	for i, r := range tripleCombinations {
		if r.Contains(b) {
			return i
		}
	}
	return -1
}

var (
	peachBlossomByTrine   = [4]models.Branch{models.BranchMyo, models.BranchO, models.BranchYu, models.BranchJa}
	travelingHorseByTrine = [4]models.Branch{models.BranchSin, models.BranchHae, models.BranchIn, models.BranchSa}
)

// PeachBlossom returns the 도화 branch for a base branch.
func PeachBlossom(base models.Branch) models.Branch {
	return peachBlossomByTrine[trine(base)]
}

// TravelingHorse returns the 역마 branch for a base branch.
func TravelingHorse(base models.Branch) models.Branch {
	return travelingHorseByTrine[trine(base)]
}

// HeavenlyNoble returns the 천을귀인 branches of a day stem.
func HeavenlyNoble(dayStem models.Stem) []models.Branch {
	switch dayStem {
	case models.StemGap, models.StemMu:
		return []models.Branch{models.BranchChuk, models.BranchMi}
	case models.StemEul, models.StemGi:
		return []models.Branch{models.BranchJa, models.BranchSin}
	case models.StemByeong, models.StemJeong:
		return []models.Branch{models.BranchHae, models.BranchYu}
	case models.StemGyeong, models.StemSin:
		return []models.Branch{models.BranchO, models.BranchIn}
	default:
		return []models.Branch{models.BranchSa, models.BranchMyo}
	}
}

// TaegeukNoble returns the 태극귀인 branches of a day stem.
func TaegeukNoble(dayStem models.Stem) []models.Branch {
	switch int(dayStem) / 2 {
	case 0:
		return []models.Branch{models.BranchJa, models.BranchO}
	case 1:
		return []models.Branch{models.BranchMyo, models.BranchYu}
	case 2:
		return []models.Branch{models.BranchJin, models.BranchSul, models.BranchChuk, models.BranchMi}
	case 3:
		return []models.Branch{models.BranchIn, models.BranchHae}
	default:
		return []models.Branch{models.BranchSa, models.BranchSin}
	}
}
