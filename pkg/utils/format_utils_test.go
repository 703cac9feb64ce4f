package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Dana Reyes", DisplayName("Dana", "Reyes"))
	assert.Equal(t, "Dana", DisplayName("Dana", ""))
	assert.Equal(t, "Reyes", DisplayName("", "Reyes"))
	assert.Equal(t, "Unknown", DisplayName("", ""))
}

func TestCoalesceString(t *testing.T) {
	assert.Equal(t, "fallback", CoalesceString(nil, "fallback"))
	empty := ""
	assert.Equal(t, "fallback", CoalesceString(&empty, "fallback"))
	value := "set"
	assert.Equal(t, "set", CoalesceString(&value, "fallback"))
}

func TestFormatHourlyRate(t *testing.T) {
	assert.Equal(t, "$48.00/hr", FormatHourlyRate(48))
	assert.Equal(t, "$52.50/hr", FormatHourlyRate(52.5))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "7.50 hrs", FormatHours(7.5))
	assert.Equal(t, "0.00 hrs", FormatHours(0))
}
