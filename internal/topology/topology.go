// Package topology defines the Topology (a.k.a. parameter set) data model
// shared across the sizer, enumerator-driven candidate expansion, overhead
// providers, geometry composition, and the upper-bound filter (spec §3).
package topology

import "batterydesign/internal/cell"

// CellBlock is the lowest packaging tier: a 2-D grid of cells.
type CellBlock struct{ X, Y int }

// Module is a 2-D grid of cell blocks.
type Module struct{ X, Y int }

// String is a 3-D stack of modules.
type String struct{ X, Y, Z int }

// Pack is a 3-D stack of strings; the complete system.
type Pack struct{ X, Y, Z int }

// Rotation enumerates the two cell orientations the geometry stage supports.
type Rotation int

const (
	Rotation0  Rotation = 0
	Rotation90 Rotation = 1
)

// Cooling enumerates the cooling variants an OverheadProvider is
// parameterized by (spec §4.3).
type Cooling int

const (
	CoolingAir Cooling = iota
	CoolingGlycol
	CoolingRefrigerant
	CoolingNone
)

func (c Cooling) String() string {
	switch c {
	case CoolingAir:
		return "air"
	case CoolingGlycol:
		return "glycol"
	case CoolingRefrigerant:
		return "refrigerant"
	case CoolingNone:
		return "none"
	default:
		return "unknown"
	}
}

// All enumerates every recognized cooling variant, in a fixed order used
// wherever the system needs to sweep "every cooling variant" (spec §4.6).
var All = []Cooling{CoolingAir, CoolingGlycol, CoolingRefrigerant, CoolingNone}

// Topology (a.k.a. parameter set) is the six-vector candidate layout from
// spec §3. It references a Cell but owns neither the cell nor the overhead
// provider used to evaluate it.
type Topology struct {
	Cell BoundCell

	CellBlock CellBlock
	Module    Module
	String    String
	Pack      Pack

	CellRotation   Rotation
	CoolingVariant Cooling
}

// BoundCell is a type alias for cell.Cell: it names the same type, so a
// cell.Cell can be assigned to Topology.Cell directly.
type BoundCell = cell.Cell

// CellsInSeries returns module.x*module.y*string.x*string.y*string.z.
func (t Topology) CellsInSeries() int {
	return t.Module.X * t.Module.Y * t.String.X * t.String.Y * t.String.Z
}

// CellsInParallel returns cell_block.x*cell_block.y*pack.x*pack.y*pack.z.
func (t Topology) CellsInParallel() int {
	return t.CellBlock.X * t.CellBlock.Y * t.Pack.X * t.Pack.Y * t.Pack.Z
}

// SetSeries populates module(x,y) and string(x,y,z) from a 5-tuple, the way
// the per-cell worker maps an enumerator representative onto the series
// axes (spec §4.6).
func (t *Topology) SetSeries(tuple [5]int) {
	t.Module = Module{X: tuple[0], Y: tuple[1]}
	t.String = String{X: tuple[2], Y: tuple[3], Z: tuple[4]}
}

// SetParallel populates cell_block(x,y) and pack(x,y,z) from a 5-tuple.
func (t *Topology) SetParallel(tuple [5]int) {
	t.CellBlock = CellBlock{X: tuple[0], Y: tuple[1]}
	t.Pack = Pack{X: tuple[2], Y: tuple[3], Z: tuple[4]}
}
