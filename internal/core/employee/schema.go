package employee

import (
	"sort"
	"strings"
)

// Column は名簿ソースが提供しうるカラム名です。
type Column string

const (
	ColumnEmployeeID        Column = "employee_id"
	ColumnEmployeeCode      Column = "employee_code"
	ColumnDateOfJoining     Column = "date_of_joining"
	ColumnDateOfExit        Column = "date_of_exit"
	ColumnTotalCTCPA        Column = "total_ctc_pa"
	ColumnGender            Column = "gender"
	ColumnDateOfBirth       Column = "date_of_birth"
	ColumnTotalExpYrs       Column = "total_exp_yrs"
	ColumnQualificationType Column = "qualification_type"
)

var knownColumns = []Column{
	ColumnEmployeeID,
	ColumnEmployeeCode,
	ColumnDateOfJoining,
	ColumnDateOfExit,
	ColumnTotalCTCPA,
	ColumnGender,
	ColumnDateOfBirth,
	ColumnTotalExpYrs,
	ColumnQualificationType,
}

// KnownColumns は解釈可能なカラムの一覧を返します。
func KnownColumns() []Column {
	out := make([]Column, len(knownColumns))
	copy(out, knownColumns)
	return out
}

// ParseColumn はヘッダ名などをカラムとして解釈します。大文字小文字・空白・ハイフンは無視します。
func ParseColumn(raw string) (Column, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	for _, c := range knownColumns {
		if string(c) == key {
			return c, true
		}
	}
	return "", false
}

// Schema は名簿ソースが実際に提供するカラムの集合です。
type Schema struct {
	columns map[Column]struct{}
}

// NewSchema は指定カラムから Schema を生成します。
func NewSchema(cols ...Column) Schema {
	s := Schema{columns: make(map[Column]struct{}, len(cols))}
	for _, c := range cols {
		s.columns[c] = struct{}{}
	}
	return s
}

// FullSchema はすべての既知カラムを持つ Schema を返します。
func FullSchema() Schema {
	return NewSchema(knownColumns...)
}

// Has は cols がすべて含まれるかを返します。
func (s Schema) Has(cols ...Column) bool {
	for _, c := range cols {
		if _, ok := s.columns[c]; !ok {
			return false
		}
	}
	return true
}

// Missing は cols のうち含まれないものを返します。
func (s Schema) Missing(cols ...Column) []Column {
	var missing []Column
	for _, c := range cols {
		if _, ok := s.columns[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

// Columns は含まれるカラムを名前順で返します。
func (s Schema) Columns() []Column {
	out := make([]Column, 0, len(s.columns))
	for c := range s.columns {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
