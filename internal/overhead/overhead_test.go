package overhead

import (
	"math"
	"testing"

	"batterydesign/internal/cell"
	"batterydesign/internal/requirements"
	"batterydesign/internal/topology"
)

func prismaticTopology(cellBlockX, cellBlockY int, rotation topology.Rotation) topology.Topology {
	return topology.Topology{
		Cell: cell.Cell{
			Mechanics: cell.Mechanics{Format: cell.Prismatic},
		},
		CellBlock:    topology.CellBlock{X: cellBlockX, Y: cellBlockY},
		CellRotation: rotation,
	}
}

func TestDefaultCellBlockLengthProhibitiveOnBadOrientation(t *testing.T) {
	d := NewDefault(topology.CoolingAir)
	top := prismaticTopology(1, 2, topology.Rotation90)
	got := d.CellBlockLength(top, 1.0)
	if got < 1000 {
		t.Fatalf("expected prohibitive overhead for cell_block.y>1 with 90deg rotation, got %v", got)
	}
}

func TestDefaultCellBlockLengthOrdinaryOrientation(t *testing.T) {
	d := NewDefault(topology.CoolingAir)
	top := prismaticTopology(1, 2, topology.Rotation0)
	got := d.CellBlockLength(top, 1.0)
	if got > 10 {
		t.Fatalf("expected a small overhead-scaled length, got %v", got)
	}
}

func TestDefaultCellBlockWidthProhibitiveOnBadOrientation(t *testing.T) {
	d := NewDefault(topology.CoolingAir)
	top := prismaticTopology(2, 1, topology.Rotation0)
	got := d.CellBlockWidth(top, 1.0)
	if got < 1000 {
		t.Fatalf("expected prohibitive overhead for cell_block.x>1 with 0deg rotation, got %v", got)
	}
}

func TestDefaultModuleLengthWidthSwapByRotation(t *testing.T) {
	d := NewDefault(topology.CoolingAir)
	top0 := topology.Topology{CellRotation: topology.Rotation0}
	top90 := topology.Topology{CellRotation: topology.Rotation90}

	if d.ModuleLength(top0, 0) == d.ModuleLength(top90, 0) {
		t.Fatalf("expected module length to depend on rotation")
	}
	if d.ModuleLength(top0, 0) != d.ModuleWidth(top90, 0) {
		t.Fatalf("expected module length/width to swap across rotations")
	}
}

func TestDefaultPackDimensionsScaleWithPower(t *testing.T) {
	d := NewDefault(topology.CoolingAir)
	low := requirements.Requirements{ContMaxChargePower: 1000, ContMaxDischargePower: 1000}
	high := requirements.Requirements{ContMaxChargePower: 2e5, ContMaxDischargePower: 2e5}
	top := topology.Topology{}

	if got := d.PackHeight(top, low, 0); got != 0.10 {
		t.Fatalf("expected baseline pack height overhead of 0.10 below the power threshold, got %v", got)
	}
	if got, want := d.PackHeight(top, high, 0), 0.10+(2e5-1e5)*0.0003; math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected pack height overhead %v above threshold, got %v", want, got)
	}
}

func TestDefaultCoolingVariantsDiffer(t *testing.T) {
	air := NewDefault(topology.CoolingAir)
	glycol := NewDefault(topology.CoolingGlycol)
	none := NewDefault(topology.CoolingNone)

	top := prismaticTopology(1, 1, topology.Rotation0)
	if air.CellBlockWidth(top, 1.0) == glycol.CellBlockWidth(top, 1.0) {
		t.Fatalf("expected air and glycol cooling to contribute different cell-block width overhead")
	}
	if none.CellBlockWidth(top, 1.0) >= air.CellBlockWidth(top, 1.0) {
		t.Fatalf("expected no-cooling overhead to be smaller than air-cooling overhead")
	}
}

func TestDefaultConstantsAreNonNegativeAndFinite(t *testing.T) {
	for _, c := range topology.All {
		d := NewDefault(c)
		top := topology.Topology{
			Cell:         cell.Cell{Mechanics: cell.Mechanics{Format: cell.Cylindrical}},
			CellBlock:    topology.CellBlock{X: 2, Y: 3},
			CellRotation: topology.Rotation0,
		}
		values := []float64{
			d.CellBlockHeight(top, 1),
			d.CellBlockLength(top, 1),
			d.CellBlockWidth(top, 1),
			d.CellBlockGravimetric(top, 1),
			d.ModuleHeight(top, 1),
			d.StringHeight(top, 1),
		}
		for _, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("cooling %v produced a non-finite overhead value: %v", c, v)
			}
			if v < 0 {
				t.Fatalf("cooling %v produced a negative overhead value: %v", c, v)
			}
		}
	}
}

func TestRegistryLookupDefault(t *testing.T) {
	factory, err := Lookup("default")
	if err != nil {
		t.Fatalf("expected the default plugin to be registered: %v", err)
	}
	provider := factory(topology.CoolingAir)
	if provider.Cooling() != topology.CoolingAir {
		t.Fatalf("expected factory to honor the requested cooling variant")
	}
}

func TestRegistryLookupUnknown(t *testing.T) {
	if _, err := Lookup("does-not-exist"); err == nil {
		t.Fatalf("expected an error for an unregistered plugin name")
	}
}
