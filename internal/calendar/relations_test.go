package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seenimoa/sajuai/pkg/models"
)

func TestPairRuleMatchesEitherOrder(t *testing.T) {
	r := PairRule{models.BranchSa, models.BranchSin, "수합"}
	assert.True(t, r.Matches(models.BranchSa, models.BranchSin))
	assert.True(t, r.Matches(models.BranchSin, models.BranchSa))
	assert.False(t, r.Matches(models.BranchSa, models.BranchSa))
}

func TestEveryBranchInOneClashAndOneCombination(t *testing.T) {
	for _, rules := range [][]PairRule{SixCombinations(), SixClashes(), SixHarms()} {
		seen := map[models.Branch]int{}
		for _, r := range rules {
			seen[r.A]++
			seen[r.B]++
		}
		assert.Len(t, seen, 12)
		for b, n := range seen {
			assert.Equal(t, 1, n, "branch %s", b)
		}
	}
}

func TestClashesAreOpposite(t *testing.T) {
	for _, r := range SixClashes() {
		assert.Equal(t, r.B, r.A.Shift(6), r.Name)
	}
}

func TestTripleCombinationsPartitionBranches(t *testing.T) {
	seen := map[models.Branch]bool{}
	for _, r := range TripleCombinations() {
		for _, b := range r.Branches {
			assert.False(t, seen[b])
			seen[b] = true
		}
	}
	assert.Len(t, seen, 12)
}

func TestSelfPunishing(t *testing.T) {
	assert.True(t, IsSelfPunishing(models.BranchJin))
	assert.True(t, IsSelfPunishing(models.BranchHae))
	assert.False(t, IsSelfPunishing(models.BranchJa))
}

func TestSpiritTables(t *testing.T) {
	assert.Equal(t, [2]models.Branch{models.BranchSul, models.BranchHae}, VoidBranches(models.StemEul))
	assert.Equal(t, [2]models.Branch{models.BranchO, models.BranchMi}, VoidBranches(models.StemGi))
	assert.Equal(t, [2]models.Branch{models.BranchIn, models.BranchMyo}, VoidBranches(models.StemGye))

	assert.Equal(t, models.BranchYu, PeachBlossom(models.BranchJa))
	assert.Equal(t, models.BranchO, PeachBlossom(models.BranchChuk))
	assert.Equal(t, models.BranchMyo, PeachBlossom(models.BranchSul))
	assert.Equal(t, models.BranchJa, PeachBlossom(models.BranchHae))

	assert.Equal(t, models.BranchIn, TravelingHorse(models.BranchJin))
	assert.Equal(t, models.BranchHae, TravelingHorse(models.BranchChuk))
	assert.Equal(t, models.BranchSin, TravelingHorse(models.BranchO))
	assert.Equal(t, models.BranchSa, TravelingHorse(models.BranchHae))

	assert.Equal(t, []models.Branch{models.BranchJa, models.BranchSin}, HeavenlyNoble(models.StemGi))
	assert.Equal(t, []models.Branch{models.BranchChuk, models.BranchMi}, HeavenlyNoble(models.StemMu))
	assert.Equal(t, []models.Branch{models.BranchJin, models.BranchSul, models.BranchChuk, models.BranchMi}, TaegeukNoble(models.StemGi))
	assert.Equal(t, []models.Branch{models.BranchSa, models.BranchSin}, TaegeukNoble(models.StemIm))
}
