package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitConversions(t *testing.T) {
	assert.Equal(t, int64(36000), MillimetersToEMU(1))
	assert.Equal(t, int64(914400), MillimetersToEMU(25.4))
	assert.Equal(t, int64(10000), MillimetersToEMU(0.27778))
	assert.InDelta(t, 10.0, EMUToMillimeters(360000), 1e-9)
	assert.InDelta(t, 0.2778, EMUToMillimeters(10000), 1e-4)
}
