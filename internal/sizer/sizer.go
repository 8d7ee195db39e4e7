// Package sizer implements the electrical sizer (spec §4.1): given one
// catalog cell and a target Requirements, it determines how many of that
// cell must be placed in series and in parallel to meet the voltage,
// energy, and continuous power requirements.
package sizer

import (
	"fmt"
	"math"

	"batterydesign/internal/cell"
	"batterydesign/internal/requirements"
)

// Configuration is the electrical sizing result for one cell against one
// set of requirements (spec §3, ElectricalProperties precursor).
type Configuration struct {
	CellsInSeries   int
	CellsInParallel int

	NominalSystemVoltage float64
	SystemCapacity       float64

	LowerBoundCellVoltage float64
	UpperBoundCellVoltage float64
	UsedCellCapacity      float64
	SystemEnergy          float64
}

// socAtVoltage linearly interpolates the discharge curve (voltage at each
// integer state of charge 0..100) to find the state of charge at a given
// voltage. It is strict: a voltage outside the curve's domain is an error,
// mirroring interp1d(..., bounds_error=True) in the original sizer.
func socAtVoltage(curve []float64, voltage float64) (float64, error) {
	lo, hi := curve[0], curve[len(curve)-1]
	if voltage < lo || voltage > hi {
		return 0, fmt.Errorf("sizer: voltage %v is outside the discharge curve domain [%v, %v]", voltage, lo, hi)
	}
	for i := 1; i < len(curve); i++ {
		if voltage <= curve[i] {
			v0, v1 := curve[i-1], curve[i]
			soc0, soc1 := float64(i-1), float64(i)
			if v1 == v0 {
				return soc0, nil
			}
			frac := (voltage - v0) / (v1 - v0)
			return soc0 + frac*(soc1-soc0), nil
		}
	}
	return float64(len(curve) - 1), nil
}

// Size computes the electrical configuration for placing c against req.
//
// The continuous power re-scaling steps mirror the original sizer's
// non-strict comparisons verbatim: cells_in_parallel is recomputed from the
// power requirement whenever the power delivered by the current count is at
// most the required power (<=), so also at exact equality. The recomputed
// count is never smaller than the current one, so re-scaling only raises
// cells_in_parallel; at exact equality it yields the same count, up to
// floating-point rounding.
func Size(c cell.Cell, req requirements.Requirements) (Configuration, error) {
	cellsInSeries := math.Ceil(req.NominalVoltage / c.Electrics.Voltage.Nominal)
	nominalSystemVoltage := cellsInSeries * c.Electrics.Voltage.Nominal

	minSystemVoltage := cellsInSeries * c.Electrics.Voltage.Minimum
	var lowerBoundCellVoltage float64
	if minSystemVoltage < req.MinimumVoltage {
		lowerBoundCellVoltage = req.MinimumVoltage / cellsInSeries
	} else {
		lowerBoundCellVoltage = c.Electrics.Voltage.Minimum
	}

	maxSystemVoltage := cellsInSeries * c.Electrics.Voltage.Maximum
	var upperBoundCellVoltage float64
	if maxSystemVoltage > req.MaximumVoltage {
		upperBoundCellVoltage = req.MaximumVoltage / cellsInSeries
	} else {
		upperBoundCellVoltage = c.Electrics.Voltage.Maximum
	}

	lowerSOC, err := socAtVoltage(c.Electrics.DischargeCurve, lowerBoundCellVoltage)
	if err != nil {
		return Configuration{}, err
	}
	upperSOC, err := socAtVoltage(c.Electrics.DischargeCurve, upperBoundCellVoltage)
	if err != nil {
		return Configuration{}, err
	}
	usedCellCapacity := (upperSOC - lowerSOC) / 100 * c.Electrics.Capacity.Initial

	requiredSystemCapacity := req.Energy / nominalSystemVoltage
	cellsInParallel := math.Ceil(requiredSystemCapacity / usedCellCapacity)

	maxDischargePower := cellsInParallel * c.Electrics.ContCurrent.Discharge * nominalSystemVoltage
	if maxDischargePower <= req.ContMaxDischargePower {
		cellsInParallel = math.Ceil(req.ContMaxDischargePower / nominalSystemVoltage / c.Electrics.ContCurrent.Discharge)
	}
	maxChargePower := cellsInParallel * c.Electrics.ContCurrent.Charge * nominalSystemVoltage
	if maxChargePower <= req.ContMaxChargePower {
		cellsInParallel = math.Ceil(req.ContMaxChargePower / nominalSystemVoltage / c.Electrics.ContCurrent.Charge)
	}

	systemCapacity := cellsInParallel * usedCellCapacity

	return Configuration{
		CellsInSeries:         int(cellsInSeries),
		CellsInParallel:       int(cellsInParallel),
		NominalSystemVoltage:  nominalSystemVoltage,
		SystemCapacity:        systemCapacity,
		LowerBoundCellVoltage: lowerBoundCellVoltage,
		UpperBoundCellVoltage: upperBoundCellVoltage,
		UsedCellCapacity:      usedCellCapacity,
		SystemEnergy:          systemCapacity * nominalSystemVoltage,
	}, nil
}
