package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ogurasousui/workforce-kpi/internal/core/display"
)

func TestKPIFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1,250", KPI{Value: 1250, Type: TypeInteger}.Format(display.GroupingIndian))
	assert.Equal(t, "12.5%", KPI{Value: 12.48, Type: TypePercentage}.Format(display.GroupingIndian))
	assert.Equal(t, "₹ 12,34,567", KPI{Value: 1234567, Type: TypeCurrency}.Format(display.GroupingIndian))
	assert.Equal(t, "₹ 1,234,567", KPI{Value: 1234567, Type: TypeCurrency}.Format(display.GroupingInternational))
	assert.Equal(t, "4.3 yrs", KPI{Value: 4.26, Type: TypeYears}.Format(display.GroupingIndian))
}
