package display

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatGrouped_Indian(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want string
	}{
		{1234567, "12,34,567"},
		{int64(123456789), "12,34,56,789"},
		{999, "999"},
		{1000, "1,000"},
		{100000, "1,00,000"},
		{-1234567, "-12,34,567"},
		{1234567.89, "12,34,567"},
		{"1234567", "12,34,567"},
		{"abc", "abc"},
		{nil, "<nil>"},
		{math.NaN(), "NaN"},
		{float64(1 << 63), "9.223372036854776e+18"},
		{-float64(1 << 63), "-92,23,37,20,36,85,47,75,808"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatGrouped(tt.in, GroupingIndian), "%v", tt.in)
	}
}

func TestFormatGrouped_International(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1,234,567", FormatGrouped(1234567, GroupingInternational))
	assert.Equal(t, "12,345", FormatGrouped(12345, GroupingInternational))
	assert.Equal(t, "-1,000", FormatGrouped(-1000, GroupingInternational))
}

func TestFormatFiscalYear(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Financial Year 2026", FormatFiscalYear("FY-26"))
	assert.Equal(t, "Financial Year 2005", FormatFiscalYear("FY-05"))
	assert.Equal(t, "Q1", FormatFiscalYear("Q1"))
	assert.Equal(t, "", FormatFiscalYear(""))
}

func TestParseGrouping(t *testing.T) {
	t.Parallel()

	g, ok := ParseGrouping("Indian")
	assert.True(t, ok)
	assert.Equal(t, GroupingIndian, g)

	_, ok = ParseGrouping("french")
	assert.False(t, ok)
}
