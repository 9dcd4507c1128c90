// Package parser loads sheet cells and anchored drawing objects from xlsx files.
package parser

import "math"

// EMUPerMillimeter is the number of EMUs (English Metric Units) per
// millimeter. 1 inch = 914400 EMU = 25.4 mm.
const EMUPerMillimeter = 36000

// MillimetersToEMU converts millimeters to EMU, rounded to the nearest unit.
func MillimetersToEMU(mm float64) int64 {
	return int64(math.Round(mm * EMUPerMillimeter))
}

// EMUToMillimeters converts EMU to millimeters.
func EMUToMillimeters(emu int64) float64 {
	return float64(emu) / EMUPerMillimeter
}
