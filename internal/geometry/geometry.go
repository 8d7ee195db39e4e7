// Package geometry implements parameter-set geometry (spec §4.4): given a
// candidate Topology, an OverheadProvider, and Requirements, it composes
// the cell-block -> module -> string -> pack dimension chain and the
// matching mass chain, each level folding in its overhead.
package geometry

import (
	"math"

	"batterydesign/internal/overhead"
	"batterydesign/internal/requirements"
	"batterydesign/internal/topology"
)

// Overhead carries one level's absolute overhead value plus the
// overhead expressed as a whole-number percentage of the level's total,
// mirroring the original's (value, round(100*value/total)) pair.
type Overhead struct {
	Value   float64
	Percent float64
}

func pct(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(100 * value / total)
}

// LevelOverhead bundles the per-tier overhead breakdown for one dimension
// (height, length, width, or weight).
type LevelOverhead struct {
	CellBlock Overhead
	Module    Overhead
	String    Overhead
	Pack      Overhead
}

// Height composes the pack height from the cell's height up through cell
// block, module, and string, then applies the pack-level overhead. When
// bjb is false the pack-level step instead pads up to the provider's
// minimum height only if the composed height falls short of it.
func Height(t topology.Topology, p overhead.Provider, req requirements.Requirements, bjb bool) (float64, LevelOverhead) {
	cellBlockHeight := t.Cell.Mechanics.Height
	cellBlockOverhead := p.CellBlockHeight(t, cellBlockHeight)
	cellBlockHeight += cellBlockOverhead

	moduleHeight := cellBlockHeight
	moduleOverhead := p.ModuleHeight(t, moduleHeight)
	moduleHeight += moduleOverhead

	stringHeight := moduleHeight * float64(t.String.Z)
	stringOverhead := p.StringHeight(t, stringHeight)
	stringHeight += stringOverhead

	packHeight := stringHeight * float64(t.Pack.Z)
	var packOverhead float64
	if bjb {
		packOverhead = p.PackHeight(t, req, packHeight)
	} else if packHeight < p.MinHeight() {
		packOverhead = p.MinHeight() - packHeight
	}
	packHeight += packOverhead

	return packHeight, LevelOverhead{
		CellBlock: Overhead{cellBlockOverhead, pct(cellBlockOverhead, cellBlockHeight)},
		Module:    Overhead{moduleOverhead, pct(moduleOverhead, moduleHeight)},
		String:    Overhead{stringOverhead, pct(stringOverhead, stringHeight)},
		Pack:      Overhead{packOverhead, pct(packOverhead, packHeight)},
	}
}

// Length composes the pack length the same way Height does, along the
// rotation-aware length axis of the cell.
func Length(t topology.Topology, p overhead.Provider, req requirements.Requirements, bjb bool) (float64, LevelOverhead) {
	cellLength := t.Cell.LengthAxis(int(t.CellRotation))
	cellBlockLength := cellLength * float64(t.CellBlock.Y)
	cellBlockOverhead := p.CellBlockLength(t, cellBlockLength)
	cellBlockLength += cellBlockOverhead

	moduleLength := cellBlockLength * float64(t.Module.Y)
	moduleOverhead := p.ModuleLength(t, moduleLength)
	moduleLength += moduleOverhead

	stringLength := moduleLength * float64(t.String.Y)
	stringOverhead := p.StringLength(t, stringLength)
	stringLength += stringOverhead

	packLength := stringLength * float64(t.Pack.Y)
	var packOverhead float64
	if bjb {
		packOverhead = p.PackLength(t, req, packLength)
	} else if packLength < p.MinLength() {
		packOverhead = p.MinLength() - packLength
	}
	packLength += packOverhead

	return packLength, LevelOverhead{
		CellBlock: Overhead{cellBlockOverhead, pct(cellBlockOverhead, cellBlockLength)},
		Module:    Overhead{moduleOverhead, pct(moduleOverhead, moduleLength)},
		String:    Overhead{stringOverhead, pct(stringOverhead, stringLength)},
		Pack:      Overhead{packOverhead, pct(packOverhead, packLength)},
	}
}

// Width composes the pack width the same way Height does, along the
// rotation-aware width axis of the cell.
//
// The no-bjb pack-level step reproduces the original's self-subtraction
// bug verbatim: when the composed width is below min_width it pads by
// (min_width - min_width), which is always zero, instead of by
// (min_width - pack_width) the way Height and Length do. A too-narrow pack
// is therefore never padded up to the minimum width; this is intentionally
// not "fixed" here.
func Width(t topology.Topology, p overhead.Provider, req requirements.Requirements, bjb bool) (float64, LevelOverhead) {
	cellWidth := t.Cell.WidthAxis(int(t.CellRotation))
	cellBlockWidth := cellWidth * float64(t.CellBlock.X)
	cellBlockOverhead := p.CellBlockWidth(t, cellBlockWidth)
	cellBlockWidth += cellBlockOverhead

	moduleWidth := cellBlockWidth * float64(t.Module.X)
	moduleOverhead := p.ModuleWidth(t, moduleWidth)
	moduleWidth += moduleOverhead

	stringWidth := moduleWidth * float64(t.String.X)
	stringOverhead := p.StringWidth(t, stringWidth)
	stringWidth += stringOverhead

	packWidth := stringWidth * float64(t.Pack.X)
	var packOverhead float64
	if bjb {
		packOverhead = p.PackWidth(t, req, packWidth)
	} else if packWidth < p.MinWidth() {
		packOverhead = p.MinWidth() - p.MinWidth()
	}
	packWidth += packOverhead

	return packWidth, LevelOverhead{
		CellBlock: Overhead{cellBlockOverhead, pct(cellBlockOverhead, cellBlockWidth)},
		Module:    Overhead{moduleOverhead, pct(moduleOverhead, moduleWidth)},
		String:    Overhead{stringOverhead, pct(stringOverhead, stringWidth)},
		Pack:      Overhead{packOverhead, pct(packOverhead, packWidth)},
	}
}

// Weight composes the pack mass from cell block through module, string,
// and pack, folding in each level's gravimetric overhead.
func Weight(t topology.Topology, p overhead.Provider, req requirements.Requirements) (float64, LevelOverhead) {
	cellBlockWeight := t.Cell.Mechanics.Weight * float64(t.CellBlock.Y) * float64(t.CellBlock.X)
	cellBlockOverhead := p.CellBlockGravimetric(t, cellBlockWeight)
	cellBlockWeight += cellBlockOverhead

	moduleWeight := cellBlockWeight * float64(t.Module.Y) * float64(t.Module.X)
	moduleOverhead := p.ModuleGravimetric(t, moduleWeight)
	moduleWeight += moduleOverhead

	stringWeight := moduleWeight * float64(t.String.Y) * float64(t.String.X) * float64(t.String.Z)
	stringOverhead := p.StringGravimetric(t, stringWeight)
	stringWeight += stringOverhead

	packWeight := stringWeight * float64(t.Pack.Y) * float64(t.Pack.X) * float64(t.Pack.Z)
	packOverhead := p.PackGravimetric(t, req, packWeight)
	packWeight += packOverhead

	return packWeight, LevelOverhead{
		CellBlock: Overhead{cellBlockOverhead, pct(cellBlockOverhead, cellBlockWeight)},
		Module:    Overhead{moduleOverhead, pct(moduleOverhead, moduleWeight)},
		String:    Overhead{stringOverhead, pct(stringOverhead, stringWeight)},
		Pack:      Overhead{packOverhead, pct(packOverhead, packWeight)},
	}
}

// MaximumModuleVoltage returns the module voltage at the cell's maximum
// terminal voltage, used as the first upper-bound filter check.
func MaximumModuleVoltage(t topology.Topology) float64 {
	return t.Cell.Electrics.Voltage.Maximum * float64(t.Module.Y) * float64(t.Module.X)
}

// SlaveUtilization is the min/max per-slave cell-block workload plus the
// slave count, for a module wired to pinsPerSlave communication pins.
type SlaveUtilization struct {
	Min    int
	Max    int
	Slaves int
}

// SlaveLoad computes the min/max per-slave workload for a module of
// cell blocks distributed over slaves with pinsPerSlave pins each.
func SlaveLoad(t topology.Topology, pinsPerSlave int) SlaveUtilization {
	numberOfCellBlocks := t.Module.X * t.Module.Y
	numberOfSlaves := int(math.Ceil(float64(numberOfCellBlocks) / float64(pinsPerSlave)))
	minWorkLoad := int(math.Floor(float64(numberOfCellBlocks) / float64(numberOfSlaves)))
	maxWorkLoad := int(math.Ceil(float64(numberOfCellBlocks) / float64(numberOfSlaves)))
	return SlaveUtilization{Min: minWorkLoad, Max: maxWorkLoad, Slaves: numberOfSlaves}
}

// MechanicalProperties is the fully composed mechanical result for one
// validated Topology: each dimension's final (overhead-inclusive) value,
// its per-tier overhead breakdown, and the same dimension computed with
// zero overhead for reporting the system's overall overhead fraction.
type MechanicalProperties struct {
	Height float64
	Length float64
	Width  float64
	Weight float64

	HeightOverhead LevelOverhead
	LengthOverhead LevelOverhead
	WidthOverhead  LevelOverhead
	WeightOverhead LevelOverhead

	HeightWithoutOverhead float64
	LengthWithoutOverhead float64
	WidthWithoutOverhead  float64
	WeightWithoutOverhead float64
}

// Volume returns the overhead-inclusive pack volume.
func (m MechanicalProperties) Volume() float64 {
	return m.Height * m.Length * m.Width
}

// VolumeWithoutOverhead returns the pack volume as if every level
// contributed zero overhead, used for the report's overall-overhead
// percentage columns.
func (m MechanicalProperties) VolumeWithoutOverhead() float64 {
	return m.HeightWithoutOverhead * m.LengthWithoutOverhead * m.WidthWithoutOverhead
}

// WithoutOverhead computes the raw (no-overhead) height/length/width/weight
// for a Topology, used only for reporting the overall overhead fraction.
func WithoutOverhead(t topology.Topology) (height, length, width, weight float64) {
	height = t.Cell.Mechanics.Height * float64(t.String.Z) * float64(t.Pack.Z)
	length = t.Cell.LengthAxis(int(t.CellRotation)) * float64(t.Pack.Y) * float64(t.String.Y) * float64(t.Module.Y) * float64(t.CellBlock.Y)
	width = t.Cell.WidthAxis(int(t.CellRotation)) * float64(t.Pack.X) * float64(t.String.X) * float64(t.Module.X) * float64(t.CellBlock.X)
	weight = t.Cell.Mechanics.Weight *
		float64(t.Pack.X) * float64(t.Pack.Y) * float64(t.Pack.Z) *
		float64(t.String.X) * float64(t.String.Y) * float64(t.String.Z) *
		float64(t.Module.X) * float64(t.Module.Y) *
		float64(t.CellBlock.X) * float64(t.CellBlock.Y)
	return height, length, width, weight
}
