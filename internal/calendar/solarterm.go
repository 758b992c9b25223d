package calendar

import (
	"fmt"
	"time"

	"github.com/seenimoa/sajuai/pkg/models"
)

// SolarTerm is one of the 24 solar terms (24절기), indexed from 소한 at
// apparent solar longitude 285° in steps of 15°.
type SolarTerm int

const (
	Sohan SolarTerm = iota
	Daehan
	Ipchun
	Usu
	Gyeongchip
	Chunbun
	Cheongmyeong
	Gogu
	Ipha
	Soman
	Mangjong
	Haji
	Soseo
	Daeseo
	Ipchu
	Cheoseo
	Baengno
	Chubun
	Hallo
	Sanggang
	Ipdong
	Soseol
	Daeseol
	Dongji
)

// TermCount is the number of solar terms in a year.
const TermCount = 24

var termLabels = [TermCount]string{
	"소한", "대한", "입춘", "우수", "경칩", "춘분", "청명", "곡우",
	"입하", "소만", "망종", "하지", "소서", "대서", "입추", "처서",
	"백로", "추분", "한로", "상강", "입동", "소설", "대설", "동지",
}

func (t SolarTerm) String() string {
	if t < 0 || t >= TermCount {
		return fmt.Sprintf("SolarTerm(%d)", int(t))
	}
	return termLabels[t]
}

// MarshalText encodes the term as its Korean name.
func (t SolarTerm) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText decodes a Korean term name.
func (t *SolarTerm) UnmarshalText(b []byte) error {
	v, err := ParseSolarTerm(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseSolarTerm resolves a Korean term name such as "입춘".
func ParseSolarTerm(s string) (SolarTerm, error) {
	for i, l := range termLabels {
		if l == s {
			return SolarTerm(i), nil
		}
	}
	return 0, fmt.Errorf("unknown solar term %q", s)
}

// Longitude is the apparent solar longitude in degrees at which the term
// begins.
func (t SolarTerm) Longitude() float64 {
	return float64((285 + 15*int(t)) % 360)
}

// IsSectional reports whether the term opens a month (절기) rather than
// falling mid-month (중기).
func (t SolarTerm) IsSectional() bool { return t%2 == 0 }

// MonthBranch returns the month branch a sectional term opens: 소한→축,
// 입춘→인, …, 대설→자. For a mid-month term it returns the branch of the
// month it falls in.
func (t SolarTerm) MonthBranch() models.Branch {
	return models.Branch((int(t)/2 + 1) % models.BranchCount)
}

// SectionalTerms returns the twelve month-opening terms in calendar order.
func SectionalTerms() []SolarTerm {
	out := make([]SolarTerm, 0, TermCount/2)
	for t := Sohan; t < TermCount; t += 2 {
		out = append(out, t)
	}
	return out
}

// TermInstant is the moment a solar term begins in a given year.
type TermInstant struct {
	Term      SolarTerm        `json:"term"`
	Time      time.Time        `json:"time"`
	Precision models.Precision `json:"precision"`
}
