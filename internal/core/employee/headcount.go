package employee

import "time"

// IsActive は asOf 時点で在籍しているかを返します。
// 入社日が欠損している社員は在籍とみなしません。
func IsActive(e Employee, asOf time.Time) bool {
	if e.DateOfJoining == nil {
		return false
	}
	day := TruncateDay(asOf)
	if e.DateOfJoining.After(day) {
		return false
	}
	return e.DateOfExit == nil || e.DateOfExit.After(day)
}

// HeadcountAt は asOf 時点の在籍人数を返します。
func HeadcountAt(r Roster, asOf time.Time) int {
	if !r.Schema.Has(ColumnDateOfJoining) {
		return 0
	}
	n := 0
	for _, rec := range r.Records {
		if IsActive(rec, asOf) {
			n++
		}
	}
	return n
}

// ActiveAt は asOf 時点で在籍している社員を返します。
func ActiveAt(r Roster, asOf time.Time) []Employee {
	if !r.Schema.Has(ColumnDateOfJoining) {
		return []Employee{}
	}
	active := make([]Employee, 0, len(r.Records))
	for _, rec := range r.Records {
		if IsActive(rec, asOf) {
			active = append(active, rec)
		}
	}
	return active
}

// AverageHeadcount は期首と期末の在籍人数の平均を返します。
// 両端とも 0 人の場合は 1 を返します。
func AverageHeadcount(r Roster, periodStart, periodEnd time.Time) float64 {
	start := HeadcountAt(r, periodStart)
	end := HeadcountAt(r, periodEnd)
	if start+end == 0 {
		return 1
	}
	return float64(start+end) / 2
}

// JoinedBetween は入社日が [from, to] に含まれる人数を返します。
func JoinedBetween(r Roster, from, to time.Time) int {
	if !r.Schema.Has(ColumnDateOfJoining) {
		return 0
	}
	n := 0
	for _, rec := range r.Records {
		if within(rec.DateOfJoining, from, to) {
			n++
		}
	}
	return n
}

// ExitedBetween は退職日が [from, to] に含まれる人数を返します。
func ExitedBetween(r Roster, from, to time.Time) int {
	if !r.Schema.Has(ColumnDateOfExit) {
		return 0
	}
	n := 0
	for _, rec := range r.Records {
		if within(rec.DateOfExit, from, to) {
			n++
		}
	}
	return n
}

func within(t *time.Time, from, to time.Time) bool {
	if t == nil {
		return false
	}
	return !t.Before(TruncateDay(from)) && !t.After(TruncateDay(to))
}
