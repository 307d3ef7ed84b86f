package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := map[float64]string{
		0:         "$0.00",
		5:         "$5.00",
		18.5:      "$18.50",
		999.999:   "$1,000.00",
		1234.5:    "$1,234.50",
		1234567.1: "$1,234,567.10",
		100000:    "$100,000.00",
		-42.25:    "-$42.25",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatMoney(in), "%v", in)
	}
}

func TestFormatYears(t *testing.T) {
	assert.Equal(t, "0", FormatYears(0))
	assert.Equal(t, "3", FormatYears(3))
	assert.Equal(t, "2.5", FormatYears(2.5))
	assert.Equal(t, "1.33", FormatYears(1.3333))
}
