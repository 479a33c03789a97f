package metrics

import (
	"math"
	"time"
)

// Band は [Min, Max) の半開区間です。最後の帯は Max を +Inf にします。
type Band struct {
	Label string
	Min   float64
	Max   float64
}

// Contains は v が帯に含まれるかを返します。
func (b Band) Contains(v float64) bool {
	return v >= b.Min && v < b.Max
}

// AgeBands は年齢 (満年齢) の区分です。
func AgeBands() []Band {
	return []Band{
		{Label: "<20", Min: 0, Max: 20},
		{Label: "20-24", Min: 20, Max: 25},
		{Label: "25-29", Min: 25, Max: 30},
		{Label: "30-34", Min: 30, Max: 35},
		{Label: "35-39", Min: 35, Max: 40},
		{Label: "40-44", Min: 40, Max: 45},
		{Label: "45-49", Min: 45, Max: 50},
		{Label: "50-54", Min: 50, Max: 55},
		{Label: "55-59", Min: 55, Max: 60},
		{Label: "60+", Min: 60, Max: math.Inf(1)},
	}
}

// TenureBands は在籍年数の区分です。在籍年数には経験年数を代用します。
func TenureBands() []Band {
	return []Band{
		{Label: "0-6 Months", Min: 0, Max: 0.5},
		{Label: "6-12 Months", Min: 0.5, Max: 1},
		{Label: "1-3 Years", Min: 1, Max: 3},
		{Label: "3-5 Years", Min: 3, Max: 5},
		{Label: "5-10 Years", Min: 5, Max: 10},
		{Label: "10+ Years", Min: 10, Max: math.Inf(1)},
	}
}

// ExperienceBands は総経験年数の区分です。
func ExperienceBands() []Band {
	return []Band{
		{Label: "<1 Year", Min: 0, Max: 1},
		{Label: "1-3 Years", Min: 1, Max: 3},
		{Label: "3-5 Years", Min: 3, Max: 5},
		{Label: "5-10 Years", Min: 5, Max: 10},
		{Label: "10+ Years", Min: 10, Max: math.Inf(1)},
	}
}

func bandIndex(bands []Band, v float64) int {
	if math.IsNaN(v) {
		return -1
	}
	for i, b := range bands {
		if b.Contains(v) {
			return i
		}
	}
	return -1
}

// AgeOn は asOf 時点の満年齢を返します。誕生日前なら 1 歳少なく数えます。
func AgeOn(dob, asOf time.Time) int {
	age := asOf.Year() - dob.Year()
	if asOf.Month() < dob.Month() || (asOf.Month() == dob.Month() && asOf.Day() < dob.Day()) {
		age--
	}
	return age
}
