package sizer

import (
	"math"
	"testing"

	"batterydesign/internal/cell"
	"batterydesign/internal/requirements"
)

func linearCurve() []float64 {
	curve := make([]float64, 101)
	for i := range curve {
		curve[i] = 3.0 + float64(i)*(4.2-3.0)/100
	}
	return curve
}

func testCell(t *testing.T) cell.Cell {
	t.Helper()
	c, err := cell.New("acme", "cell-1", cell.Mechanics{
		Format: cell.Prismatic,
		Weight: 0.5,
		Width:  0.03,
		Length: 0.1,
		Height: 0.2,
	}, cell.Electrics{
		Voltage:        cell.VoltageSpec{Nominal: 3.7, Minimum: 3.0, Maximum: 4.2},
		Capacity:       cell.CapacitySpec{Initial: 50},
		ContCurrent:    cell.ContinuousCurrentSpec{Charge: 50, Discharge: 100},
		DischargeCurve: linearCurve(),
	})
	if err != nil {
		t.Fatalf("unexpected cell construction error: %v", err)
	}
	return c
}

func testRequirements() requirements.Requirements {
	return requirements.Requirements{
		OptimizedBy:           requirements.Volume,
		NominalVoltage:        400,
		MinimumVoltage:        350,
		MaximumVoltage:        450,
		Energy:                50000,
		ContMaxChargePower:    20000,
		ContMaxDischargePower: 40000,
		MaxModuleVoltage:      60,
		SlaveMax:              100000,
		Weight:                2000,
		Width:                 2,
		Height:                2,
		Length:                2,
	}
}

func TestSizeProducesPositiveCounts(t *testing.T) {
	c := testCell(t)
	cfg, err := Size(c, testRequirements())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CellsInSeries <= 0 || cfg.CellsInParallel <= 0 {
		t.Fatalf("expected positive series/parallel counts, got %+v", cfg)
	}
	if cfg.NominalSystemVoltage < testRequirements().NominalVoltage {
		t.Fatalf("nominal system voltage %v should be at least the requirement %v", cfg.NominalSystemVoltage, testRequirements().NominalVoltage)
	}
}

func TestSocAtVoltageInterpolatesLinearly(t *testing.T) {
	curve := linearCurve()
	soc, err := socAtVoltage(curve, curve[50])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(soc-50) > 1e-6 {
		t.Fatalf("expected soc=50 at the curve's midpoint, got %v", soc)
	}
}

func TestSocAtVoltageOutOfRangeErrors(t *testing.T) {
	curve := linearCurve()
	if _, err := socAtVoltage(curve, curve[0]-1); err == nil {
		t.Fatalf("expected an error for a voltage below the discharge curve's domain")
	}
	if _, err := socAtVoltage(curve, curve[len(curve)-1]+1); err == nil {
		t.Fatalf("expected an error for a voltage above the discharge curve's domain")
	}
}
