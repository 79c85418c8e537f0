package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPKR(t *testing.T) {
	assert.Equal(t, "Rs. 1,500,000", FormatPKR(1500000))
	assert.Equal(t, "Rs. 0", FormatPKR(0))
	assert.Equal(t, "Rs. 950", FormatPKR(950))
}

func TestFormatPKRDropsFraction(t *testing.T) {
	assert.Equal(t, "Rs. 25,000", FormatPKR(25000.40))
}
