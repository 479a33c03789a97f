package employee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{
		"2024-03-05",
		"2024-03-05T10:30:00Z",
		"2024-03-05 10:30:00",
		"05-03-2024",
		"05/03/2024",
		"2024/03/05",
		"05-Mar-2024",
		" 5 Mar 2024 ",
		"Mar 5, 2024",
	} {
		got := ParseDate(raw)
		require.NotNil(t, got, raw)
		assert.True(t, want.Equal(*got), "%s parsed as %v", raw, got)
	}

	assert.Nil(t, ParseDate(""))
	assert.Nil(t, ParseDate("   "))
	assert.Nil(t, ParseDate("not a date"))
	assert.Nil(t, ParseDate("0001-01-01"))
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	cases := map[string]float64{
		"1200000":      1200000,
		"12,00,000":    1200000,
		"₹ 12,00,000":  1200000,
		" 3.5 ":        3.5,
		"-2":           -2,
		"1,234,567.25": 1234567.25,
	}
	for raw, want := range cases {
		got := ParseNumber(raw)
		require.NotNil(t, got, raw)
		assert.Equal(t, want, *got, raw)
	}

	assert.Nil(t, ParseNumber(""))
	assert.Nil(t, ParseNumber("abc"))
	assert.Nil(t, ParseNumber("NaN"))
	assert.Nil(t, ParseNumber("Inf"))
}

func TestFromFields(t *testing.T) {
	t.Parallel()

	e := FromFields(map[Column]string{
		ColumnEmployeeID:        " 42 ",
		ColumnDateOfJoining:     "2022-06-01",
		ColumnDateOfExit:        "",
		ColumnTotalCTCPA:        "9,50,000",
		ColumnGender:            " Female ",
		ColumnTotalExpYrs:       "bad",
		ColumnQualificationType: "Graduate",
	})

	assert.Equal(t, "42", e.ID)
	require.NotNil(t, e.DateOfJoining)
	assert.Equal(t, 2022, e.DateOfJoining.Year())
	assert.Nil(t, e.DateOfExit)
	require.NotNil(t, e.TotalCTCPA)
	assert.Equal(t, 950000.0, *e.TotalCTCPA)
	assert.Equal(t, "Female", e.Gender)
	assert.Nil(t, e.TotalExpYrs)
	assert.Nil(t, e.DateOfBirth)
	assert.Equal(t, "Graduate", e.QualificationType)
}
