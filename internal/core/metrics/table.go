// Package metrics は名簿を年度別・カテゴリ別の小さな集計表に変換する純粋関数群です。
//
// どの集計も入力の名簿を変更せず、要求されたバケットを呼び出し元の順序で
// ちょうど 1 行ずつ返します (観測が無いバケットは 0)。必要なカラムを名簿が
// 持たない場合は、列名だけを持つ空の表を返します。
package metrics

// 列名は元のダッシュボードのチャート定義に合わせています。
const (
	ColumnFY              = "FY"
	ColumnHeadcount       = "Headcount"
	ColumnTotalCost       = "Total Cost"
	ColumnAttritionPct    = "Attrition %"
	ColumnGender          = "Gender"
	ColumnCount           = "Count"
	ColumnAgeGroup        = "Age Group"
	ColumnTenureGroup     = "Tenure Group"
	ColumnExperienceGroup = "Experience Group"
	ColumnQualification   = "Qualification"
)

// Row は集計表の 1 行です。Label は表示用の名称で、FY バケットでは "Financial Year 2026" になります。
type Row struct {
	Bucket string  `json:"bucket"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
}

// Table はバケット列と値列の 2 列からなる集計表です。
type Table struct {
	Columns [2]string `json:"columns"`
	Rows    []Row     `json:"rows"`
}

func newTable(bucketColumn, valueColumn string, capacity int) Table {
	return Table{
		Columns: [2]string{bucketColumn, valueColumn},
		Rows:    make([]Row, 0, capacity),
	}
}

// Empty は行を持たないかを返します。
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Total は値列の合計を返します。
func (t Table) Total() float64 {
	var total float64
	for _, r := range t.Rows {
		total += r.Value
	}
	return total
}

// Value はバケットの値を返します。
func (t Table) Value(bucket string) (float64, bool) {
	for _, r := range t.Rows {
		if r.Bucket == bucket {
			return r.Value, true
		}
	}
	return 0, false
}

// Buckets はバケット名を行順で返します。
func (t Table) Buckets() []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Bucket
	}
	return out
}

// percent は分母 0 を 0% として扱う除算です。
func percent(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator * 100
}
