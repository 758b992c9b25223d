package models

import (
	"fmt"
	"strings"
	"time"
)

// Stem is one of the ten heavenly stems (천간), indexed 0 (갑) to 9 (계).
type Stem int

const (
	StemGap Stem = iota
	StemEul
	StemByeong
	StemJeong
	StemMu
	StemGi
	StemGyeong
	StemSin
	StemIm
	StemGye
)

// StemCount is the length of the stem cycle.
const StemCount = 10

var stemLabels = [...]string{"갑", "을", "병", "정", "무", "기", "경", "신", "임", "계"}

// String returns the Korean label of the stem.
func (s Stem) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stem(%d)", int(s))
	}
	return stemLabels[s]
}

// Valid reports whether s is within the stem cycle.
func (s Stem) Valid() bool { return s >= StemGap && s <= StemGye }

// Polarity is yang for even indices and yin for odd ones.
func (s Stem) Polarity() Polarity {
	if int(s)%2 == 0 {
		return Yang
	}
	return Yin
}

// Element returns the stem's phase: 갑을 목, 병정 화, 무기 토, 경신 금, 임계 수.
func (s Stem) Element() Element { return Element(int(s) / 2) }

// Shift moves n positions along the stem cycle, wrapping in both directions.
func (s Stem) Shift(n int) Stem { return Stem(mod(int(s)+n, StemCount)) }

// MarshalText encodes the stem as its Korean label.
func (s Stem) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a Korean stem label.
func (s *Stem) UnmarshalText(b []byte) error {
	v, err := ParseStem(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStem resolves a Korean stem label such as "갑".
func ParseStem(s string) (Stem, error) {
	i, err := parseLabel(stemLabels[:], s, "stem")
	return Stem(i), err
}

// Branch is one of the twelve earthly branches (지지), indexed 0 (자) to 11 (해).
type Branch int

const (
	BranchJa Branch = iota
	BranchChuk
	BranchIn
	BranchMyo
	BranchJin
	BranchSa
	BranchO
	BranchMi
	BranchSin
	BranchYu
	BranchSul
	BranchHae
)

// BranchCount is the length of the branch cycle.
const BranchCount = 12

var branchLabels = [...]string{"자", "축", "인", "묘", "진", "사", "오", "미", "신", "유", "술", "해"}

// String returns the Korean label of the branch.
func (b Branch) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Branch(%d)", int(b))
	}
	return branchLabels[b]
}

// Valid reports whether b is within the branch cycle.
func (b Branch) Valid() bool { return b >= BranchJa && b <= BranchHae }

var branchElements = [...]Element{Water, Earth, Wood, Wood, Earth, Fire, Fire, Earth, Metal, Metal, Earth, Water}

// Element returns the primary element of the branch.
func (b Branch) Element() Element { return branchElements[b] }

// Shift moves n positions along the branch cycle, wrapping in both directions.
func (b Branch) Shift(n int) Branch { return Branch(mod(int(b)+n, BranchCount)) }

// MarshalText encodes the branch as its Korean label.
func (b Branch) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// UnmarshalText decodes a Korean branch label.
func (b *Branch) UnmarshalText(text []byte) error {
	v, err := ParseBranch(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// ParseBranch resolves a Korean branch label such as "자".
func ParseBranch(s string) (Branch, error) {
	i, err := parseLabel(branchLabels[:], s, "branch")
	return Branch(i), err
}

// Pillar is a stem/branch pair (기둥).
type Pillar struct {
	Stem   Stem   `json:"stem"`
	Branch Branch `json:"branch"`
}

// String concatenates stem and branch, e.g. "을해".
func (p Pillar) String() string { return p.Stem.String() + p.Branch.String() }

// Shift advances stem and branch together by n positions.
func (p Pillar) Shift(n int) Pillar {
	return Pillar{Stem: p.Stem.Shift(n), Branch: p.Branch.Shift(n)}
}

// PillarPosition names one of the four pillars of a chart.
type PillarPosition string

const (
	PositionYear  PillarPosition = "year"
	PositionMonth PillarPosition = "month"
	PositionDay   PillarPosition = "day"
	PositionHour  PillarPosition = "hour"
)

// Positions returns the four positions in chart order.
func Positions() []PillarPosition {
	return []PillarPosition{PositionYear, PositionMonth, PositionDay, PositionHour}
}

// UnmarshalText accepts only the four position names.
func (p *PillarPosition) UnmarshalText(b []byte) error {
	for _, pos := range Positions() {
		if string(pos) == string(b) {
			*p = pos
			return nil
		}
	}
	return fmt.Errorf("unknown pillar position %q", string(b))
}

// Label returns the Korean pillar name (년주, 월주, 일주, 시주).
func (p PillarPosition) Label() string {
	switch p {
	case PositionYear:
		return "년주"
	case PositionMonth:
		return "월주"
	case PositionDay:
		return "일주"
	case PositionHour:
		return "시주"
	default:
		return string(p)
	}
}

// Sex of the chart subject. Only the fortune timeline depends on it.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// IsMale reports whether the sex is male.
func (s Sex) IsMale() bool { return s == SexMale }

// Label returns 남성 or 여성.
func (s Sex) Label() string {
	if s == SexMale {
		return "남성"
	}
	return "여성"
}

// Precision tells whether a computation used tabulated solar-term instants
// or the astronomical approximation.
type Precision string

const (
	PrecisionExact       Precision = "exact"
	PrecisionApproximate Precision = "approximate"
)

// Combine returns the weaker of two precisions.
func (p Precision) Combine(o Precision) Precision {
	if p == PrecisionApproximate || o == PrecisionApproximate {
		return PrecisionApproximate
	}
	return PrecisionExact
}

// BirthInfo echoes the inputs a chart was built from.
type BirthInfo struct {
	Year               int       `json:"year"`
	Month              int       `json:"month"`
	Day                int       `json:"day"`
	Hour               int       `json:"hour"`
	Minute             int       `json:"minute"`
	Sex                Sex       `json:"sex"`
	IsLeapMonth        bool      `json:"is_leap_month"`
	Zone               string    `json:"zone,omitempty"`
	SolarOffsetMinutes float64   `json:"solar_offset_minutes"`
	CivilTime          time.Time `json:"civil_time"`
	CorrectedTime      time.Time `json:"corrected_time"` // civil time minus the solar offset; hour branch only
	Precision          Precision `json:"precision"`
}

// Chart is the four-pillar chart (사주팔자) of one birth.
type Chart struct {
	Year  Pillar    `json:"year"`
	Month Pillar    `json:"month"`
	Day   Pillar    `json:"day"`
	Hour  Pillar    `json:"hour"`
	Birth BirthInfo `json:"birth"`
}

// DayMaster returns the day stem (일간), the reference point of every
// relational analysis.
func (c *Chart) DayMaster() Stem { return c.Day.Stem }

// Pillar returns the pillar at the given position.
func (c *Chart) Pillar(pos PillarPosition) Pillar {
	switch pos {
	case PositionYear:
		return c.Year
	case PositionMonth:
		return c.Month
	case PositionDay:
		return c.Day
	default:
		return c.Hour
	}
}

// Pillars returns the four pillars in chart order.
func (c *Chart) Pillars() [4]Pillar {
	return [4]Pillar{c.Year, c.Month, c.Day, c.Hour}
}

// Branches returns the four branches in chart order.
func (c *Chart) Branches() [4]Branch {
	return [4]Branch{c.Year.Branch, c.Month.Branch, c.Day.Branch, c.Hour.Branch}
}

// String renders the pillars separated by spaces: "을해 갑신 기축 기사".
func (c *Chart) String() string {
	parts := make([]string, 0, 4)
	for _, p := range c.Pillars() {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, " ")
}
