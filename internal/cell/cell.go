// Package cell defines the typed, validated representation of a single
// battery cell datasheet entry (spec §3, Cell).
package cell

import (
	"fmt"
	"math"
	"strings"
)

// Format enumerates the supported cell packaging shapes.
type Format string

const (
	Prismatic  Format = "prismatic"
	Cylindrical Format = "cylindrical"
	Pouch      Format = "pouch"
)

func (f Format) valid() bool {
	switch f {
	case Prismatic, Cylindrical, Pouch:
		return true
	}
	return false
}

// Identification carries the cell's catalog identity plus filesystem/report
// safe renderings of manufacturer and model, mirroring the sanitization the
// original BaSD database layer performs: every character outside
// [A-Za-z0-9] becomes '-'. Catalog filtering, the --cell MFR:MODEL CLI
// filter and the report all use the raw Manufacturer and Model, not the
// safe renderings.
type Identification struct {
	Manufacturer     string
	Model            string
	ManufacturerSafe string
	ModelSafe        string
}

func newIdentification(manufacturer, model string) Identification {
	return Identification{
		Manufacturer:     manufacturer,
		Model:            model,
		ManufacturerSafe: safeToken(manufacturer),
		ModelSafe:        safeToken(model),
	}
}

func safeToken(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// Mechanics carries a cell's physical dimensions and derived volume.
type Mechanics struct {
	Format Format
	Weight float64 // kg
	Width  float64 // m
	Length float64 // m
	Height float64 // m
}

// Volume returns the cell's geometric volume in cubic meters.
//
// Cylindrical cells reproduce the datasheet-era formula height*pi*width^2
// verbatim (treating width as if it were the diameter used as a radius),
// which overstates the true cylinder volume by roughly a factor of four.
// This is a known quirk of the system being modeled and is intentionally
// not "fixed" here.
func (m Mechanics) Volume() float64 {
	switch m.Format {
	case Cylindrical:
		return m.Height * math.Pi * m.Width * m.Width
	default:
		return m.Height * m.Length * m.Width
	}
}

// VoltageSpec bundles a nominal/min/max voltage triple in volts.
type VoltageSpec struct {
	Nominal float64
	Minimum float64
	Maximum float64
}

func (v VoltageSpec) validate() error {
	if !(0 < v.Minimum && v.Minimum < v.Nominal && v.Nominal < v.Maximum) {
		return fmt.Errorf("voltage must satisfy 0 < min < nominal < max, got min=%v nominal=%v max=%v", v.Minimum, v.Nominal, v.Maximum)
	}
	return nil
}

// CapacitySpec carries the initial Ah capacity of a cell.
type CapacitySpec struct {
	Initial float64
}

// ContinuousCurrentSpec carries the cell's continuous charge/discharge current ratings in amps.
type ContinuousCurrentSpec struct {
	Charge    float64
	Discharge float64
}

// Electrics bundles a cell's electrical datasheet values.
type Electrics struct {
	Voltage        VoltageSpec
	Capacity       CapacitySpec
	ContCurrent    ContinuousCurrentSpec
	DischargeCurve []float64 // voltage at SOC 0..100, length 101
}

// Cell is the immutable, validated bundle of one battery cell's
// identification, mechanics, and electrics (spec §3).
type Cell struct {
	Identification Identification
	Mechanics      Mechanics
	Electrics      Electrics
}

// New constructs and validates a Cell.
func New(manufacturer, model string, mechanics Mechanics, electrics Electrics) (Cell, error) {
	c := Cell{
		Identification: newIdentification(manufacturer, model),
		Mechanics:      mechanics,
		Electrics:      electrics,
	}
	if err := c.Validate(); err != nil {
		return Cell{}, err
	}
	return c, nil
}

// Validate checks the invariants listed in spec §3 for a single Cell.
func (c Cell) Validate() error {
	if c.Identification.Manufacturer == "" || c.Identification.Model == "" {
		return fmt.Errorf("cell: manufacturer and model are required")
	}
	if !c.Mechanics.Format.valid() {
		return fmt.Errorf("cell %s: unsupported format %q", c, c.Mechanics.Format)
	}
	if c.Mechanics.Weight <= 0 {
		return fmt.Errorf("cell %s: weight must be > 0", c)
	}
	if c.Mechanics.Width <= 0 || c.Mechanics.Length <= 0 || c.Mechanics.Height <= 0 {
		return fmt.Errorf("cell %s: width/length/height must be > 0", c)
	}
	if err := c.Electrics.Voltage.validate(); err != nil {
		return fmt.Errorf("cell %s: %w", c, err)
	}
	if c.Electrics.Capacity.Initial <= 0 {
		return fmt.Errorf("cell %s: initial capacity must be > 0", c)
	}
	if c.Electrics.ContCurrent.Charge <= 0 || c.Electrics.ContCurrent.Discharge <= 0 {
		return fmt.Errorf("cell %s: continuous charge/discharge current must be > 0", c)
	}
	if len(c.Electrics.DischargeCurve) != 101 {
		return fmt.Errorf("cell %s: discharge curve must have exactly 101 points (SOC 0..100), got %d", c, len(c.Electrics.DischargeCurve))
	}
	for i := 1; i < len(c.Electrics.DischargeCurve); i++ {
		if c.Electrics.DischargeCurve[i] < c.Electrics.DischargeCurve[i-1] {
			return fmt.Errorf("cell %s: discharge curve must be monotonically non-decreasing in SOC", c)
		}
	}
	return nil
}

// String renders the cell's catalog identity, matching the teacher's
// manufacturer:model style terse Stringer.
func (c Cell) String() string {
	return fmt.Sprintf("%s:%s", c.Identification.Manufacturer, c.Identification.Model)
}

// Axis lengths along the length/width axes, accounting for cell rotation
// (0 = 0 degrees, 1 = 90 degrees) the way the geometry stage needs them.
func (c Cell) LengthAxis(rotation int) float64 {
	if rotation == 1 {
		return c.Mechanics.Width
	}
	return c.Mechanics.Length
}

func (c Cell) WidthAxis(rotation int) float64 {
	if rotation == 1 {
		return c.Mechanics.Length
	}
	return c.Mechanics.Width
}
