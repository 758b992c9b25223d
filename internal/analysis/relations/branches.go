package relations

import (
	"github.com/seenimoa/sajuai/internal/calendar"
	"github.com/seenimoa/sajuai/pkg/models"
)

// BranchRelationships finds combinations, clashes, harms and punishments
// among the four branches. Pairs are scanned in chart order (i < j).
func BranchRelationships(c *models.Chart) models.BranchRelations {
	branches := c.Branches()
	positions := models.Positions()

	out := models.BranchRelations{
		Combinations:       pairs(branches, positions, models.RelationCombination, calendar.SixCombinations()),
		TripleCombinations: []models.BranchRelation{},
		Clashes:            pairs(branches, positions, models.RelationClash, calendar.SixClashes()),
		Harms:              pairs(branches, positions, models.RelationHarm, calendar.SixHarms()),
		Punishments:        []models.BranchRelation{},
	}

	for _, rule := range calendar.TripleCombinations() {
		var pos []models.PillarPosition
		for _, b := range rule.Branches {
			if i := indexOf(branches, b); i >= 0 {
				pos = append(pos, positions[i])
			}
		}
		if len(pos) == 3 {
			out.TripleCombinations = append(out.TripleCombinations, models.BranchRelation{
				Kind:      models.RelationTripleCombination,
				Name:      rule.Name,
				Branches:  rule.Branches[:],
				Positions: pos,
			})
		}
	}

	for _, rule := range calendar.PunishmentTriples() {
		var bs []models.Branch
		var pos []models.PillarPosition
		for i, b := range branches {
			if rule.Contains(b) && !containsBranch(bs, b) {
				bs = append(bs, b)
				pos = append(pos, positions[i])
			}
		}
		if len(bs) >= 2 {
			out.Punishments = append(out.Punishments, models.BranchRelation{
				Kind:      models.RelationPunishment,
				Name:      rule.Name,
				Branches:  bs,
				Positions: pos,
			})
		}
	}
	out.Punishments = append(out.Punishments,
		pairs(branches, positions, models.RelationPunishment, []calendar.PairRule{calendar.PunishmentPair()})...)

	for b := models.BranchJa; b <= models.BranchHae; b++ {
		if !calendar.IsSelfPunishing(b) {
			continue
		}
		var pos []models.PillarPosition
		for i, x := range branches {
			if x == b {
				pos = append(pos, positions[i])
			}
		}
		if len(pos) >= 2 {
			bs := make([]models.Branch, len(pos))
			for i := range bs {
				bs[i] = b
			}
			out.Punishments = append(out.Punishments, models.BranchRelation{
				Kind:      models.RelationPunishment,
				Name:      calendar.SelfPunishmentName,
				Branches:  bs,
				Positions: pos,
			})
		}
	}
	return out
}

func pairs(branches [4]models.Branch, positions []models.PillarPosition, kind models.RelationKind, rules []calendar.PairRule) []models.BranchRelation {
	out := []models.BranchRelation{}
	for i := 0; i < len(branches); i++ {
		for j := i + 1; j < len(branches); j++ {
			for _, r := range rules {
				if r.Matches(branches[i], branches[j]) {
					out = append(out, models.BranchRelation{
						Kind:      kind,
						Name:      r.Name,
						Branches:  []models.Branch{branches[i], branches[j]},
						Positions: []models.PillarPosition{positions[i], positions[j]},
					})
				}
			}
		}
	}
	return out
}

func indexOf(branches [4]models.Branch, b models.Branch) int {
	for i, x := range branches {
		if x == b {
			return i
		}
	}
	return -1
}

func containsBranch(bs []models.Branch, b models.Branch) bool {
	for _, x := range bs {
		if x == b {
			return true
		}
	}
	return false
}
