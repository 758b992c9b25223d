package calendar

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/seenimoa/sajuai/pkg/models"
	"github.com/seenimoa/sajuai/pkg/utils"
)

func kst(y, m, d, h, min int) time.Time {
	return time.Date(y, time.Month(m), d, h, min, 0, 0, utils.KST)
}

func TestExactTermLookup(t *testing.T) {
	tables := New()

	got := tables.Term(1995, Baengno)
	assert.Equal(t, models.PrecisionExact, got.Precision)
	assert.True(t, got.Time.Equal(kst(1995, 9, 8, 6, 0)), got.Time.String())

	got = tables.Term(2024, Ipchun)
	assert.Equal(t, models.PrecisionExact, got.Precision)
	assert.True(t, got.Time.Equal(kst(2024, 2, 4, 17, 27)), got.Time.String())
}

func TestMissingExactTermFallsBack(t *testing.T) {
	tables := New()
	got := tables.Term(1995, Sohan)
	assert.Equal(t, models.PrecisionApproximate, got.Precision)
	assert.Equal(t, time.January, got.Time.Month())
	assert.Equal(t, 22, tables.ExactCount(1995))
	assert.Equal(t, 24, tables.ExactCount(2024))
	assert.Equal(t, []int{1995, 2024}, tables.ExactYears())
}

func TestApproximationAgainstTabulated2024(t *testing.T) {
	tables := New()
	tolerance := 15 * time.Minute
	for i := 0; i < TermCount; i++ {
		term := SolarTerm(i)
		exact := tables.Term(2024, term).Time
		approx := approximateTerm(2024, term)
		diff := approx.Sub(exact)
		if diff < 0 {
			diff = -diff
		}
		assert.LessOrEqual(t, diff, tolerance, "%s: approx %s exact %s", term, approx.In(utils.KST), exact)
	}
}

func TestApproximationMonotonic(t *testing.T) {
	tables := New()
	for _, year := range []int{1900, 1950, 2000, 2050, 2100} {
		terms := tables.YearTerms(year)
		for i := 1; i < len(terms); i++ {
			assert.True(t, terms[i].Time.After(terms[i-1].Time), "%d %s", year, terms[i].Term)
		}
		assert.Equal(t, year, terms[0].Time.Year())
		assert.Equal(t, year, terms[TermCount-1].Time.Year())
	}
}

func TestSectionalAroundReference(t *testing.T) {
	tables := New()
	prev, next := tables.SectionalAround(kst(1995, 8, 26, 10, 15))
	assert.Equal(t, Ipchu, prev.Term)
	assert.Equal(t, Baengno, next.Term)
	assert.True(t, prev.Time.Equal(kst(1995, 8, 8, 0, 1)))
	assert.True(t, next.Time.Equal(kst(1995, 9, 8, 6, 0)))
}

func TestMonthBranchBoundary(t *testing.T) {
	tables := New()

	b, p := tables.MonthBranch(kst(1995, 9, 8, 5, 59))
	assert.Equal(t, models.BranchSin, b)
	assert.Equal(t, models.PrecisionExact, p)

	// On-or-after: the boundary instant belongs to the new month.
	b, _ = tables.MonthBranch(kst(1995, 9, 8, 6, 0))
	assert.Equal(t, models.BranchYu, b)
}

func TestMonthBranchEarlyJanuary(t *testing.T) {
	tables := New()

	b, p := tables.MonthBranch(kst(2024, 1, 6, 5, 48))
	assert.Equal(t, models.BranchJa, b)
	assert.Equal(t, models.PrecisionApproximate, p) // 2023 대설 is not tabulated

	b, p = tables.MonthBranch(kst(2024, 1, 20, 12, 0))
	assert.Equal(t, models.BranchChuk, b)
	assert.Equal(t, models.PrecisionExact, p)
}

func TestMonthBranchPrecisionCombinesNeighbours(t *testing.T) {
	tables := New()
	// 2024 대설 is tabulated but 2025 소한 is not.
	_, p := tables.MonthBranch(kst(2024, 12, 20, 0, 0))
	assert.Equal(t, models.PrecisionApproximate, p)
}

func TestWithExactTermsOverrides(t *testing.T) {
	custom := kst(2030, 2, 4, 4, 8)
	tables := New(WithExactTerms(map[int]map[SolarTerm]time.Time{
		2030: {Ipchun: custom.UTC()},
		1995: {Baengno: kst(1995, 9, 8, 7, 0)},
	}))

	got := tables.Lichun(2030)
	assert.Equal(t, models.PrecisionExact, got.Precision)
	assert.True(t, got.Time.Equal(custom))
	assert.Equal(t, utils.KST, got.Time.Location())

	assert.True(t, tables.Term(1995, Baengno).Time.Equal(kst(1995, 9, 8, 7, 0)))
	assert.True(t, tables.Term(1995, Ipchu).Time.Equal(kst(1995, 8, 8, 0, 1)))

	// The default tables are unaffected.
	assert.True(t, New().Term(1995, Baengno).Time.Equal(kst(1995, 9, 8, 6, 0)))
}

func TestApproximatedYearsConcurrent(t *testing.T) {
	tables := New()
	var wg sync.WaitGroup
	results := make([]time.Time, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = tables.Term(2050, Chunbun).Time
		}(i)
	}
	wg.Wait()
	for _, r := range results[1:] {
		assert.True(t, r.Equal(results[0]))
	}
}

func TestWithLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	tables := New(WithLocation(tokyo))
	assert.Equal(t, tokyo, tables.Location())
	name, _ := tables.Term(1995, Baengno).Time.Zone()
	assert.Equal(t, "JST", name)
}
