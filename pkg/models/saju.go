package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
)

// ── Element scores ──

// ScoreMode selects an element-scoring variant.
type ScoreMode string

const (
	ModeRaw            ScoreMode = "raw"             // stems 1.0 + hidden stems by weight; sums to 8.0
	ModeSeasonWeighted ScoreMode = "season_weighted" // raw contributions × month-branch seasonal weight
	ModeSimplified     ScoreMode = "simplified"      // stems 1.0 + dominant hidden stem 1.0; sums to 8.0
	ModeBalanced       ScoreMode = "balanced"        // legacy name of the 8-point weighted split
)

// ScoreModes returns every supported mode.
func ScoreModes() []ScoreMode {
	return []ScoreMode{ModeRaw, ModeSeasonWeighted, ModeSimplified, ModeBalanced}
}

// ElementScores holds one non-negative score per element.
type ElementScores [5]float64

// Get returns the score of e.
func (s ElementScores) Get(e Element) float64 { return s[e] }

// Total sums all five scores.
func (s ElementScores) Total() float64 { return floats.Sum(s[:]) }

// MarshalJSON renders the scores as {"목": 2.3, ...}.
func (s ElementScores) MarshalJSON() ([]byte, error) {
	m := make(map[string]float64, len(s))
	for _, e := range AllElements() {
		m[e.String()] = s[e]
	}
	return json.Marshal(m)
}

// UnmarshalJSON reads the label map written by MarshalJSON. Missing
// elements score zero.
func (s *ElementScores) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var out ElementScores
	for label, v := range m {
		e, err := ParseElement(label)
		if err != nil {
			return err
		}
		out[e] = v
	}
	*s = out
	return nil
}

// ElementLevel is the qualitative reading of one element score relative to
// the mean of all five.
type ElementLevel string

const (
	LevelInsufficient       ElementLevel = "insufficient"
	LevelSlightInsufficient ElementLevel = "slightly_insufficient"
	LevelBalanced           ElementLevel = "balanced"
	LevelSlightExcess       ElementLevel = "slightly_excessive"
	LevelExcess             ElementLevel = "excessive"
)

// Label returns the Korean reading.
func (l ElementLevel) Label() string {
	switch l {
	case LevelInsufficient:
		return "불급(不及) - 매우 약함"
	case LevelSlightInsufficient:
		return "약간 불급 - 약함"
	case LevelSlightExcess:
		return "약간 태과 - 강함"
	case LevelExcess:
		return "태과(太過) - 매우 강함"
	default:
		return "평기(平氣) - 적당함"
	}
}

// ElementReading maps each element to its level.
type ElementReading map[Element]ElementLevel

// ── Ten gods ──

// TenGod is one of the ten relations (십신) of a stem to the day master.
type TenGod int

const (
	TenGodFriend TenGod = iota
	TenGodRobWealth
	TenGodEatingGod
	TenGodHurtingOfficer
	TenGodIndirectWealth
	TenGodDirectWealth
	TenGodSevenKillings
	TenGodDirectOfficer
	TenGodIndirectResource
	TenGodDirectResource
)

var tenGodLabels = [...]string{"비견", "겁재", "식신", "상관", "편재", "정재", "편관", "정관", "편인", "정인"}

// AllTenGods returns the ten relations in table order.
func AllTenGods() []TenGod {
	out := make([]TenGod, len(tenGodLabels))
	for i := range out {
		out[i] = TenGod(i)
	}
	return out
}

func (g TenGod) String() string {
	if g < 0 || int(g) >= len(tenGodLabels) {
		return fmt.Sprintf("TenGod(%d)", int(g))
	}
	return tenGodLabels[g]
}

// MarshalText encodes the relation as its Korean label.
func (g TenGod) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

// UnmarshalText decodes a Korean ten-god label.
func (g *TenGod) UnmarshalText(b []byte) error {
	i, err := parseLabel(tenGodLabels[:], string(b), "ten god")
	if err != nil {
		return err
	}
	*g = TenGod(i)
	return nil
}

// TenGodSource tells whether a contribution came from a pillar stem or from
// a hidden stem of a pillar branch.
type TenGodSource string

const (
	SourceStem   TenGodSource = "stem"
	SourceBranch TenGodSource = "branch"
)

// TenGodEntry is one tagged contribution to the ten-gods result.
type TenGodEntry struct {
	Source TenGodSource `json:"source"`
	Stem   Stem         `json:"stem"`
	God    TenGod       `json:"god"`
	Weight int          `json:"weight,omitempty"` // hidden-stem percentage; 0 for pillar stems
}

// String renders "stem:정관" or "branch:정재(60%)".
func (e TenGodEntry) String() string {
	if e.Source == SourceBranch {
		return fmt.Sprintf("%s:%s(%d%%)", e.Source, e.God, e.Weight)
	}
	return fmt.Sprintf("%s:%s", e.Source, e.God)
}

// TenGodsResult maps each pillar to its ordered contributions.
type TenGodsResult map[PillarPosition][]TenGodEntry

// TenGodSummaryItem aggregates one relation across the chart.
type TenGodSummaryItem struct {
	God   TenGod  `json:"god"`
	Score float64 `json:"score"`
	Stars string  `json:"stars"`
	Level string  `json:"level"`
}

// ── Day master strength ──

// StrengthLabel classifies the day master.
type StrengthLabel string

const (
	StrengthStrong   StrengthLabel = "strong"
	StrengthWeak     StrengthLabel = "weak"
	StrengthBalanced StrengthLabel = "balanced"
)

// Label returns 신강, 신약 or 중화.
func (l StrengthLabel) Label() string {
	switch l {
	case StrengthStrong:
		return "신강"
	case StrengthWeak:
		return "신약"
	default:
		return "중화"
	}
}

// StrengthAnalysis is the day-master strength verdict with favorable
// (용신) and unfavorable (기신) elements.
type StrengthAnalysis struct {
	DayMaster        Stem          `json:"day_master"`
	Element          Element       `json:"element"`
	Label            StrengthLabel `json:"label"`
	Supporting       float64       `json:"supporting_power"`
	Draining         float64       `json:"draining_power"`
	Ratio            float64       `json:"ratio"`
	Favorable        []Element     `json:"favorable_elements"`
	Unfavorable      []Element     `json:"unfavorable_elements"`
	PrimaryFavorable *Element      `json:"primary_favorable_element,omitempty"`
}

// ── Branch relationships ──

// RelationKind names a structural branch relationship.
type RelationKind string

const (
	RelationCombination       RelationKind = "combination"        // 육합
	RelationTripleCombination RelationKind = "triple_combination" // 삼합
	RelationClash             RelationKind = "clash"              // 육충
	RelationHarm              RelationKind = "harm"               // 육해
	RelationPunishment        RelationKind = "punishment"         // 형
)

// Label returns the Korean category name.
func (k RelationKind) Label() string {
	switch k {
	case RelationCombination:
		return "합"
	case RelationTripleCombination:
		return "삼합"
	case RelationClash:
		return "충"
	case RelationHarm:
		return "해"
	case RelationPunishment:
		return "형"
	default:
		return string(k)
	}
}

// BranchRelation is one detected relationship among chart branches.
type BranchRelation struct {
	Kind      RelationKind     `json:"kind"`
	Name      string           `json:"name"`
	Branches  []Branch         `json:"branches"`
	Positions []PillarPosition `json:"positions"`
}

// String renders "신-사 수합".
func (r BranchRelation) String() string {
	s := ""
	for i, b := range r.Branches {
		if i > 0 {
			s += "-"
		}
		s += b.String()
	}
	return s + " " + r.Name
}

// BranchRelations groups detected relationships by kind. Every slice is
// non-nil; an empty slice means no relationship of that kind.
type BranchRelations struct {
	Combinations       []BranchRelation `json:"combinations"`
	TripleCombinations []BranchRelation `json:"triple_combinations"`
	Clashes            []BranchRelation `json:"clashes"`
	Harms              []BranchRelation `json:"harms"`
	Punishments        []BranchRelation `json:"punishments"`
}

// All returns every relation in kind order.
func (r BranchRelations) All() []BranchRelation {
	out := make([]BranchRelation, 0, len(r.Combinations)+len(r.TripleCombinations)+len(r.Clashes)+len(r.Harms)+len(r.Punishments))
	out = append(out, r.Combinations...)
	out = append(out, r.TripleCombinations...)
	out = append(out, r.Clashes...)
	out = append(out, r.Harms...)
	out = append(out, r.Punishments...)
	return out
}

// Empty reports whether no relationship was detected.
func (r BranchRelations) Empty() bool { return len(r.All()) == 0 }

// ── Spirits (신살) ──

// Spirit names a spirit category.
type Spirit string

const (
	SpiritVoid           Spirit = "void"            // 공망
	SpiritPeachBlossom   Spirit = "peach_blossom"   // 도화
	SpiritTravelingHorse Spirit = "traveling_horse" // 역마
	SpiritHeavenlyNoble  Spirit = "heavenly_noble"  // 천을귀인
	SpiritTaegeukNoble   Spirit = "taegeuk_noble"   // 태극귀인
)

// Spirits returns every category in report order.
func Spirits() []Spirit {
	return []Spirit{SpiritVoid, SpiritPeachBlossom, SpiritTravelingHorse, SpiritHeavenlyNoble, SpiritTaegeukNoble}
}

// Label returns the Korean category name.
func (s Spirit) Label() string {
	switch s {
	case SpiritVoid:
		return "공망"
	case SpiritPeachBlossom:
		return "도화"
	case SpiritTravelingHorse:
		return "역마"
	case SpiritHeavenlyNoble:
		return "천을귀인"
	case SpiritTaegeukNoble:
		return "태극귀인"
	default:
		return string(s)
	}
}

// UnmarshalText accepts only the known categories.
func (s *Spirit) UnmarshalText(b []byte) error {
	for _, sp := range Spirits() {
		if string(sp) == string(b) {
			*s = sp
			return nil
		}
	}
	return fmt.Errorf("unknown spirit %q", string(b))
}

// SpiritMatches maps each category to the matching chart branches,
// deduplicated, in chart order.
type SpiritMatches map[Spirit][]Branch

// ── Twelve stages ──

// TwelveStage is a life-cycle stage (12운성).
type TwelveStage int

const (
	StageBirth TwelveStage = iota
	StageBath
	StageCapping
	StageOfficer
	StagePeak
	StageDecline
	StageSickness
	StageDeath
	StageTomb
	StageExtinction
	StageConception
	StageNurture
)

var stageLabels = [...]string{"장생", "목욕", "관대", "건록", "제왕", "쇠", "병", "사", "묘", "절", "태", "양"}

func (s TwelveStage) String() string {
	if s < 0 || int(s) >= len(stageLabels) {
		return fmt.Sprintf("TwelveStage(%d)", int(s))
	}
	return stageLabels[s]
}

// MarshalText encodes the stage as its Korean label.
func (s TwelveStage) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a Korean stage label.
func (s *TwelveStage) UnmarshalText(b []byte) error {
	i, err := parseLabel(stageLabels[:], string(b), "twelve stage")
	if err != nil {
		return err
	}
	*s = TwelveStage(i)
	return nil
}

// TwelveStages maps each pillar to its stage.
type TwelveStages map[PillarPosition]TwelveStage

// ── Great fortune (대운) ──

// Direction of the great-fortune sequence.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// Sign returns +1 for forward and -1 for backward.
func (d Direction) Sign() int {
	if d == Forward {
		return 1
	}
	return -1
}

// Label returns 순행 or 역행.
func (d Direction) Label() string {
	if d == Forward {
		return "순행"
	}
	return "역행"
}

// StartAgeMode selects how the starting age of the first period is derived.
type StartAgeMode string

const (
	StartAgePrecise    StartAgeMode = "precise"    // days to the adjacent sectional term ÷ 3
	StartAgeSimplified StartAgeMode = "simplified" // fixed 6 ± 1
)

// GreatFortunePeriod is one ten-year period.
type GreatFortunePeriod struct {
	Index     int       `json:"index"`
	StartAge  float64   `json:"start_age"`
	Pillar    Pillar    `json:"pillar"`
	StartYear int       `json:"start_year"`
	EndYear   int       `json:"end_year"`
	Direction Direction `json:"direction"`
}

// GreatFortune is the full timeline of a chart.
type GreatFortune struct {
	Direction Direction            `json:"direction"`
	Mode      StartAgeMode         `json:"mode"`
	Precision Precision            `json:"precision"`
	StartAge  float64              `json:"start_age"`
	Periods   []GreatFortunePeriod `json:"periods"`
}

// ── Aggregate ──

// Reading is the rule-based narrative summary of a chart.
type Reading struct {
	Personality   string `json:"personality"`
	Wealth        string `json:"wealth"`
	Career        string `json:"career"`
	Health        string `json:"health"`
	Relationships string `json:"relationships"`
}

// SajuAnalysis bundles every derived result of one chart.
type SajuAnalysis struct {
	Chart          *Chart              `json:"chart"`
	RawScores      ElementScores       `json:"raw_scores"`
	SeasonScores   ElementScores       `json:"season_scores"`
	SimpleScores   ElementScores       `json:"simple_scores"`
	ElementReading ElementReading      `json:"element_reading"`
	TenGods        TenGodsResult       `json:"ten_gods"`
	TenGodSummary  []TenGodSummaryItem `json:"ten_god_summary"`
	Strength       StrengthAnalysis    `json:"strength"`
	Relations      BranchRelations     `json:"relations"`
	Spirits        SpiritMatches       `json:"spirits"`
	Stages         TwelveStages        `json:"twelve_stages"`
	Fortune        GreatFortune        `json:"great_fortune"`
	Reading        Reading             `json:"reading"`
	GeneratedAt    time.Time           `json:"generated_at"`
}
