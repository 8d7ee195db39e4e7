package geometry

import (
	"testing"

	"batterydesign/internal/cell"
	"batterydesign/internal/overhead"
	"batterydesign/internal/requirements"
	"batterydesign/internal/topology"
)

func sampleTopology() topology.Topology {
	return topology.Topology{
		Cell: cell.Cell{
			Mechanics: cell.Mechanics{
				Format: cell.Prismatic,
				Height: 0.1,
				Length: 0.2,
				Width:  0.03,
				Weight: 0.5,
			},
		},
		CellBlock: topology.CellBlock{X: 1, Y: 1},
		Module:    topology.Module{X: 2, Y: 2},
		String:    topology.String{X: 1, Y: 1, Z: 2},
		Pack:      topology.Pack{X: 1, Y: 1, Z: 1},
	}
}

func TestWidthWithoutBJBNeverPadsToMinimum(t *testing.T) {
	p := overhead.NewDefault(topology.CoolingAir)
	req := requirements.Requirements{}
	top := sampleTopology()
	top.CellBlock = topology.CellBlock{X: 1, Y: 1}
	top.Module = topology.Module{X: 1, Y: 1}
	top.String = topology.String{X: 1, Y: 1, Z: 1}
	top.Pack = topology.Pack{X: 1, Y: 1, Z: 1}
	top.Cell.Mechanics.Width = 0.001

	width, _ := Width(top, p, req, false)
	if width >= p.MinWidth() {
		t.Fatalf("expected an unpaddded sub-minimum width to survive unchanged, got %v >= min %v", width, p.MinWidth())
	}
}

func TestHeightWithoutBJBPadsToMinimum(t *testing.T) {
	p := overhead.NewDefault(topology.CoolingAir)
	req := requirements.Requirements{}
	top := sampleTopology()
	top.CellBlock = topology.CellBlock{X: 1, Y: 1}
	top.Module = topology.Module{X: 1, Y: 1}
	top.String = topology.String{X: 1, Y: 1, Z: 1}
	top.Pack = topology.Pack{X: 1, Y: 1, Z: 1}
	top.Cell.Mechanics.Height = 0.001

	height, _ := Height(top, p, req, false)
	if height < p.MinHeight() {
		t.Fatalf("expected height to be padded up to the minimum, got %v < min %v", height, p.MinHeight())
	}
}

func TestHeightWithBJBUsesPowerDependentOverhead(t *testing.T) {
	p := overhead.NewDefault(topology.CoolingAir)
	top := sampleTopology()
	low := requirements.Requirements{ContMaxChargePower: 0, ContMaxDischargePower: 0}
	high := requirements.Requirements{ContMaxChargePower: 3e5, ContMaxDischargePower: 3e5}

	heightLow, _ := Height(top, p, low, true)
	heightHigh, _ := Height(top, p, high, true)
	if !(heightHigh > heightLow) {
		t.Fatalf("expected higher continuous power to increase bjb-direction pack height, got low=%v high=%v", heightLow, heightHigh)
	}
}

func TestWeightComposesAllFourTiers(t *testing.T) {
	p := overhead.NewDefault(topology.CoolingAir)
	top := sampleTopology()
	req := requirements.Requirements{}
	weight, breakdown := Weight(top, p, req)
	if weight <= top.Cell.Mechanics.Weight {
		t.Fatalf("expected composed weight (%v) to exceed a single cell's weight (%v)", weight, top.Cell.Mechanics.Weight)
	}
	if breakdown.Pack.Value <= 0 {
		t.Fatalf("expected a positive pack-level gravimetric overhead")
	}
}

func TestSlaveLoadDistributesRemainder(t *testing.T) {
	top := topology.Topology{Module: topology.Module{X: 11, Y: 2}}
	util := SlaveLoad(top, 12)
	if util.Slaves != 2 {
		t.Fatalf("expected 2 slaves for 22 cell blocks at 12 pins each, got %d", util.Slaves)
	}
	if util.Min != 11 || util.Max != 11 {
		t.Fatalf("expected an even 11/11 split, got min=%d max=%d", util.Min, util.Max)
	}
}

func TestSlaveLoadUnevenSplit(t *testing.T) {
	top := topology.Topology{Module: topology.Module{X: 11, Y: 2}} // 22 cell blocks
	util := SlaveLoad(top, 8)
	if util.Slaves != 3 {
		t.Fatalf("expected 3 slaves for 22 cell blocks at 8 pins each, got %d", util.Slaves)
	}
	if util.Min != 7 || util.Max != 8 {
		t.Fatalf("expected a 7/7/8 split (min=7, max=8), got min=%d max=%d", util.Min, util.Max)
	}
}
