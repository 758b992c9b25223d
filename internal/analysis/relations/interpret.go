package relations

import (
	"fmt"
	"sort"
	"strings"

	"github.com/seenimoa/sajuai/pkg/models"
)

var (
	strengthTraits = map[models.StrengthLabel]string{
		models.StrengthStrong:   "자신감이 강하고 적극적인 성향",
		models.StrengthWeak:     "섬세하고 신중한 성향",
		models.StrengthBalanced: "균형잡힌 성향",
	}

	godTraits = map[models.TenGod]string{
		models.TenGodDirectOfficer:  "책임감이 강하고 원칙을 중시",
		models.TenGodSevenKillings:  "추진력이 강하고 도전적",
		models.TenGodDirectWealth:   "안정을 추구하고 계획적",
		models.TenGodIndirectWealth: "활동적이고 사교적",
		models.TenGodEatingGod:      "창의적이고 표현력이 풍부",
		models.TenGodHurtingOfficer: "개성이 강하고 독창적",
	}

	careerFields = map[models.Element]string{
		models.Wood:  "IT, 출판, 환경 분야",
		models.Fire:  "교육, 문화, 예술 분야",
		models.Earth: "부동산, 건설, 농업 분야",
		models.Metal: "금융, 기계, 의료 분야",
		models.Water: "유통, 운송, 서비스 분야",
	}

	// checked in this order; the first weak element wins
	healthOrder = []models.Element{models.Fire, models.Earth, models.Metal, models.Water, models.Wood}
	healthHints = map[models.Element]string{
		models.Fire:  "심장, 혈액순환 관련 주의 필요",
		models.Earth: "소화기, 위장 관련 주의 필요",
		models.Metal: "호흡기, 폐 관련 주의 필요",
		models.Water: "신장, 비뇨기 관련 주의 필요",
		models.Wood:  "간, 신경계 관련 주의 필요",
	}
)

const weakElementThreshold = 0.5

// Interpret derives the narrative hints of a chart from its strength
// verdict, ten-gods summary, season-weighted scores and branch relations.
func Interpret(strength models.StrengthAnalysis, summary []models.TenGodSummaryItem, season models.ElementScores, rel models.BranchRelations) models.Reading {
	return models.Reading{
		Personality:   personality(strength, summary),
		Wealth:        wealth(summary),
		Career:        career(strength),
		Health:        health(season),
		Relationships: relationships(rel),
	}
}

func personality(strength models.StrengthAnalysis, summary []models.TenGodSummaryItem) string {
	traits := []string{strengthTraits[strength.Label]}

	ranked := append([]models.TenGodSummaryItem(nil), summary...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) > 2 {
		ranked = ranked[:2]
	}
	for _, it := range ranked {
		if t, ok := godTraits[it.God]; ok {
			traits = append(traits, t)
		}
	}
	return strings.Join(traits, "; ")
}

func wealth(summary []models.TenGodSummaryItem) string {
	score := SummaryScore(summary, models.TenGodDirectWealth) + SummaryScore(summary, models.TenGodIndirectWealth)
	switch {
	case score >= 1.5:
		return "재물운이 좋은 편, 경제적 안정 가능성 높음"
	case score >= 0.8:
		return "보통 수준의 재물운, 노력에 따라 성과 달라짐"
	default:
		return "재물운이 약한 편, 저축과 투자에 신중해야 함"
	}
}

func career(strength models.StrengthAnalysis) string {
	if strength.PrimaryFavorable == nil {
		return "중화 사주로 특정 분야에 치우치지 않음"
	}
	e := *strength.PrimaryFavorable
	return fmt.Sprintf("용신 %s 관련 %s 유리", e, careerFields[e])
}

func health(season models.ElementScores) string {
	for _, e := range healthOrder {
		if season.Get(e) < weakElementThreshold {
			return healthHints[e]
		}
	}
	return "전반적으로 건강한 체질"
}

func relationships(rel models.BranchRelations) string {
	switch {
	case len(rel.Clashes) > 0:
		return "갈등이 생기기 쉬우니 원만한 소통 필요"
	case len(rel.Combinations) > 0:
		return "조화로운 인간관계, 좋은 인연 많음"
	default:
		return "평범한 인간관계, 노력에 따라 개선 가능"
	}
}
