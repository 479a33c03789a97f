package metrics

import (
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/ogurasousui/workforce-kpi/internal/core/employee"
)

// UnspecifiedCategory は性別・学歴が空欄の社員を集計するバケット名です。
const UnspecifiedCategory = "Unspecified"

// GenderDiversity は asOf 時点で在籍している社員を性別ごとに数えます。
// categories を指定した場合はその順序で、未指定なら件数の多い順に並べます。
func GenderDiversity(r employee.Roster, asOf time.Time, categories []string) Table {
	if !r.Has(employee.ColumnGender) {
		return newTable(ColumnGender, ColumnCount, 0)
	}
	return categoryTable(ColumnGender, employee.ActiveAt(r, asOf), categories, func(e employee.Employee) string {
		return e.Gender
	})
}

// EducationDistribution は asOf 時点で在籍している社員を学歴区分ごとに数えます。
func EducationDistribution(r employee.Roster, asOf time.Time, categories []string) Table {
	if !r.Has(employee.ColumnQualificationType) {
		return newTable(ColumnQualification, ColumnCount, 0)
	}
	return categoryTable(ColumnQualification, employee.ActiveAt(r, asOf), categories, func(e employee.Employee) string {
		return e.QualificationType
	})
}

// AgeDistribution は asOf 時点で在籍している社員をその時点の満年齢で帯に分けて数えます。
func AgeDistribution(r employee.Roster, asOf time.Time, bands []Band) Table {
	if !r.Has(employee.ColumnDateOfBirth) {
		return newTable(ColumnAgeGroup, ColumnCount, 0)
	}
	return bandTable(ColumnAgeGroup, employee.ActiveAt(r, asOf), bands, func(e employee.Employee) (float64, bool) {
		if e.DateOfBirth == nil {
			return 0, false
		}
		return float64(AgeOn(*e.DateOfBirth, asOf)), true
	})
}

// TenureDistribution は asOf 時点で在籍している社員を在籍年数 (経験年数で代用) の帯に分けて数えます。
func TenureDistribution(r employee.Roster, asOf time.Time, bands []Band) Table {
	if !r.Has(employee.ColumnTotalExpYrs) {
		return newTable(ColumnTenureGroup, ColumnCount, 0)
	}
	return bandTable(ColumnTenureGroup, employee.ActiveAt(r, asOf), bands, experienceYears)
}

// ExperienceDistribution は asOf 時点で在籍している社員を総経験年数の帯に分けて数えます。
func ExperienceDistribution(r employee.Roster, asOf time.Time, bands []Band) Table {
	if !r.Has(employee.ColumnTotalExpYrs) {
		return newTable(ColumnExperienceGroup, ColumnCount, 0)
	}
	return bandTable(ColumnExperienceGroup, employee.ActiveAt(r, asOf), bands, experienceYears)
}

func experienceYears(e employee.Employee) (float64, bool) {
	if e.TotalExpYrs == nil {
		return 0, false
	}
	return *e.TotalExpYrs, true
}

func bandTable(bucketColumn string, records []employee.Employee, bands []Band, value func(employee.Employee) (float64, bool)) Table {
	counts := make([]int, len(bands))
	for _, rec := range records {
		v, ok := value(rec)
		if !ok {
			continue
		}
		if idx := bandIndex(bands, v); idx >= 0 {
			counts[idx]++
		}
	}

	t := newTable(bucketColumn, ColumnCount, len(bands))
	for i, b := range bands {
		t.Rows = append(t.Rows, Row{Bucket: b.Label, Label: b.Label, Value: float64(counts[i])})
	}
	return t
}

func categoryTable(bucketColumn string, records []employee.Employee, categories []string, key func(employee.Employee) string) Table {
	counts := lo.CountValuesBy(records, func(e employee.Employee) string {
		return categoryKey(key(e))
	})

	buckets := categories
	if len(buckets) == 0 {
		buckets = lo.Keys(counts)
		sort.Slice(buckets, func(i, j int) bool {
			if counts[buckets[i]] != counts[buckets[j]] {
				return counts[buckets[i]] > counts[buckets[j]]
			}
			return buckets[i] < buckets[j]
		})
	}

	t := newTable(bucketColumn, ColumnCount, len(buckets))
	for _, b := range lo.Uniq(buckets) {
		t.Rows = append(t.Rows, Row{Bucket: b, Label: b, Value: float64(counts[b])})
	}
	return t
}

func categoryKey(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return UnspecifiedCategory
	}
	return trimmed
}
