package employee

import "time"

// Employee は社員名簿の 1 行です。
// 日付・数値の欠損や解釈不能な値は nil で表し、集計側で除外します。
type Employee struct {
	ID                string
	EmployeeCode      string
	DateOfJoining     *time.Time
	DateOfExit        *time.Time
	TotalCTCPA        *float64
	Gender            string
	DateOfBirth       *time.Time
	TotalExpYrs       *float64
	QualificationType string
}

// Roster は集計対象となる社員名簿のスナップショットです。
// 集計処理は Records を読み取るだけで変更しません。
type Roster struct {
	Records []Employee
	Schema  Schema
}

// NewRoster は名簿を生成します。日付は UTC の 0 時に正規化したコピーを保持します。
func NewRoster(schema Schema, records []Employee) Roster {
	normalized := make([]Employee, len(records))
	for i, rec := range records {
		normalized[i] = cloneEmployee(rec)
	}
	return Roster{Records: normalized, Schema: schema}
}

// Len は名簿の件数を返します。
func (r Roster) Len() int {
	return len(r.Records)
}

// Has は名簿が指定カラムをすべて提供しているかを返します。
func (r Roster) Has(cols ...Column) bool {
	return r.Schema.Has(cols...)
}

func cloneEmployee(e Employee) Employee {
	clone := e
	clone.DateOfJoining = NormalizeDate(e.DateOfJoining)
	clone.DateOfExit = NormalizeDate(e.DateOfExit)
	clone.DateOfBirth = NormalizeDate(e.DateOfBirth)
	clone.TotalCTCPA = cloneFloat(e.TotalCTCPA)
	clone.TotalExpYrs = cloneFloat(e.TotalExpYrs)
	return clone
}

// NormalizeDate は時刻部分を切り捨てた UTC 日付のコピーを返します。
func NormalizeDate(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	normalized := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &normalized
}

// TruncateDay は時刻を UTC の日付に丸めます。
func TruncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	clone := *v
	return &clone
}
