// Package overhead defines the abstract OverheadProvider capability set
// (spec §4.3) supplying per-level dimensional and gravimetric overhead for
// a candidate Topology, plus the one built-in implementation and a
// plugin registry.
//
// This is the system's sole extension point: alternate providers can be
// substituted at invocation time (by name, via Register/Lookup) without
// touching the enumerator or the filter (spec §4.3 rationale).
package overhead

import (
	"math"

	"batterydesign/internal/cell"
	"batterydesign/internal/requirements"
	"batterydesign/internal/topology"
)

// Provider supplies the per-level overhead values the geometry stage needs
// for a given candidate Topology (spec §4.3 capability table).
type Provider interface {
	PackHeight(t topology.Topology, req requirements.Requirements, baseHeight float64) float64
	PackLength(t topology.Topology, req requirements.Requirements, baseLength float64) float64
	PackWidth(t topology.Topology, req requirements.Requirements, baseWidth float64) float64
	PackGravimetric(t topology.Topology, req requirements.Requirements, baseWeight float64) float64

	StringHeight(t topology.Topology, baseHeight float64) float64
	StringLength(t topology.Topology, baseLength float64) float64
	StringWidth(t topology.Topology, baseWidth float64) float64
	StringGravimetric(t topology.Topology, baseWeight float64) float64

	ModuleHeight(t topology.Topology, baseHeight float64) float64
	ModuleLength(t topology.Topology, baseLength float64) float64
	ModuleWidth(t topology.Topology, baseWidth float64) float64
	ModuleGravimetric(t topology.Topology, baseWeight float64) float64

	CellBlockHeight(t topology.Topology, baseHeight float64) float64
	CellBlockLength(t topology.Topology, baseLength float64) float64
	CellBlockWidth(t topology.Topology, baseWidth float64) float64
	CellBlockGravimetric(t topology.Topology, baseWeight float64) float64

	MinHeight() float64
	MinLength() float64
	MinWidth() float64

	Cooling() topology.Cooling
}

// prohibitive is the sentinel overhead percentage orientation-constrained
// cell-block shapes return, making the composed dimension enormous so the
// upper-bound filter rejects the candidate (spec §4.3).
const prohibitive = 10_000_000.0

// sigmoid is a mirrored and shifted saturation function used to fit
// cell-block-level overhead curves: k is slope, w is the x-shift, a is the
// asymptotic maximum, b is the asymptotic minimum.
func sigmoid(x float64, k, w, a, b float64) float64 {
	return (a-b)/(1+math.Exp(k*x-w)) + b
}

// linear fits an overhead curve as m*x + c.
func linear(x float64, m, c float64) float64 {
	return m*x + c
}

// Default is the built-in OverheadProvider implementation, parameterized by
// cooling variant. Four cooling variants are recognized: air, glycol,
// refrigerant, and none; a cooling variant contributes constant additive
// fractions for cell-block-level length/width and a mass percentage.
type Default struct {
	cooling topology.Cooling

	coolingWidth  float64
	coolingLength float64
	coolingHeight float64
	coolingWeight float64
}

const (
	minHeight = 0.1
	minLength = 0.1
	minWidth  = 0.1
)

// NewDefault constructs the default OverheadProvider for one cooling variant.
func NewDefault(cooling topology.Cooling) *Default {
	d := &Default{cooling: cooling}
	switch cooling {
	case topology.CoolingAir:
		d.coolingWidth, d.coolingLength, d.coolingHeight, d.coolingWeight = 0.2, 0.2, 0.0, 0.1
	case topology.CoolingGlycol:
		d.coolingWidth, d.coolingLength, d.coolingHeight, d.coolingWeight = 0.07, 0.07, 0.0, 0.25
	case topology.CoolingRefrigerant:
		d.coolingWidth, d.coolingLength, d.coolingHeight, d.coolingWeight = 0.03, 0.03, 0.0, 0.2
	case topology.CoolingNone:
		d.coolingWidth, d.coolingLength, d.coolingHeight, d.coolingWeight = 0, 0, 0, 0
	}
	return d
}

func (d *Default) Cooling() topology.Cooling { return d.cooling }
func (d *Default) MinHeight() float64        { return minHeight }
func (d *Default) MinLength() float64        { return minLength }
func (d *Default) MinWidth() float64         { return minWidth }

func maxContinuousPower(req requirements.Requirements) float64 {
	if req.ContMaxChargePower > req.ContMaxDischargePower {
		return req.ContMaxChargePower
	}
	return req.ContMaxDischargePower
}

func (d *Default) PackHeight(_ topology.Topology, req requirements.Requirements, _ float64) float64 {
	return 0.10 + math.Max(0, (maxContinuousPower(req)-1e5)*0.0003)
}

func (d *Default) PackLength(_ topology.Topology, req requirements.Requirements, _ float64) float64 {
	return 0.10 + math.Max(0, (maxContinuousPower(req)-1e5)*0.0005)
}

func (d *Default) PackWidth(_ topology.Topology, req requirements.Requirements, _ float64) float64 {
	return 0.10 + math.Max(0, (maxContinuousPower(req)-1e5)*0.0008)
}

func (d *Default) PackGravimetric(_ topology.Topology, _ requirements.Requirements, _ float64) float64 {
	return 4.24
}

func (d *Default) StringHeight(_ topology.Topology, _ float64) float64 { return 0.02 }
func (d *Default) StringLength(_ topology.Topology, _ float64) float64 { return 0.03 }
func (d *Default) StringWidth(_ topology.Topology, _ float64) float64  { return 0.05 }
func (d *Default) StringGravimetric(_ topology.Topology, _ float64) float64 { return 0.57 }

func (d *Default) ModuleHeight(_ topology.Topology, _ float64) float64 { return 0.025 }

func (d *Default) ModuleLength(t topology.Topology, _ float64) float64 {
	if t.CellRotation == topology.Rotation90 {
		return 0.019
	}
	return 0.029
}

func (d *Default) ModuleWidth(t topology.Topology, _ float64) float64 {
	if t.CellRotation == topology.Rotation90 {
		return 0.029
	}
	return 0.019
}

func (d *Default) ModuleGravimetric(_ topology.Topology, _ float64) float64 { return 0.29 }

func (d *Default) CellBlockHeight(t topology.Topology, baseHeight float64) float64 {
	var pct float64
	switch t.Cell.Mechanics.Format {
	case cell.Prismatic:
		pct = linear(float64(t.CellBlock.Y*t.CellBlock.X), 0.24, 2)
	case cell.Cylindrical:
		pct = 1
	case cell.Pouch:
		pct = linear(float64(t.CellBlock.Y), 0.09, 3)
	}
	return baseHeight * (pct/100 + d.coolingHeight)
}

func (d *Default) CellBlockLength(t topology.Topology, baseLength float64) float64 {
	var pct float64
	switch t.Cell.Mechanics.Format {
	case cell.Prismatic:
		if t.CellBlock.Y > 1 && t.CellRotation == topology.Rotation90 {
			pct = prohibitive
		} else {
			pct = sigmoid(float64(t.CellBlock.Y), 2, 8.37, 3, 2)
		}
	case cell.Cylindrical:
		pct = sigmoid(float64(t.CellBlock.Y), 2.26, 9.82, 4, 3)
	case cell.Pouch:
		if t.CellBlock.Y > 1 && t.CellRotation == topology.Rotation90 {
			pct = prohibitive
		} else {
			pct = sigmoid(float64(t.CellBlock.Y), 2.29, 9.98, 5, 4)
		}
	}
	return baseLength * (pct/100 + d.coolingLength)
}

func (d *Default) CellBlockWidth(t topology.Topology, baseWidth float64) float64 {
	var pct float64
	switch t.Cell.Mechanics.Format {
	case cell.Prismatic:
		if t.CellBlock.X > 1 && t.CellRotation == topology.Rotation0 {
			pct = prohibitive
		} else {
			pct = sigmoid(float64(t.CellBlock.X), 2, 8.25, 3, 2)
		}
	case cell.Cylindrical:
		pct = sigmoid(float64(t.CellBlock.X), 2.26, 9.82, 4, 3)
	case cell.Pouch:
		if t.CellBlock.X > 1 && t.CellRotation == topology.Rotation0 {
			pct = prohibitive
		} else {
			pct = 5
		}
	}
	return baseWidth * (pct/100 + d.coolingWidth)
}

func (d *Default) CellBlockGravimetric(t topology.Topology, baseWeight float64) float64 {
	var pct float64
	n := float64(t.CellBlock.Y * t.CellBlock.X)
	switch t.Cell.Mechanics.Format {
	case cell.Prismatic:
		pct = linear(n, 0.21, 6.36)
	case cell.Cylindrical:
		pct = sigmoid(n, 3.8, 17.9, 27, 23)
	case cell.Pouch:
		pct = sigmoid(n, 3.6, 15.3, 24, 12)
	}
	return baseWeight * (pct/100 + d.coolingWeight)
}
