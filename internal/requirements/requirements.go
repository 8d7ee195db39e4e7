// Package requirements defines the typed, validated Requirements record
// (spec §3) describing a target battery system and its optimization
// objective, and the YAML file reader for it (spec §6).
package requirements

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Objective selects what the cross-cell driver minimizes across accepted
// candidates.
type Objective string

const (
	Volume Objective = "volume"
	Weight Objective = "weight"
)

// document mirrors the on-disk requirements file schema (spec §6):
// sections system, electrical, mechanical.
type document struct {
	System struct {
		OptimizedBy string `yaml:"optimized_by"`
		OnlyBest    bool   `yaml:"only_best"`
		Cooling     string `yaml:"cooling"`
		Cell        struct {
			Manufacturer string `yaml:"manufacturer"`
			Model        string `yaml:"model"`
			Format       string `yaml:"format"`
		} `yaml:"cell"`
	} `yaml:"system"`
	Electrical struct {
		Energy  float64 `yaml:"energy"`
		Voltage struct {
			Nominal float64 `yaml:"nominal"`
			Minimum float64 `yaml:"minimum"`
			Maximum float64 `yaml:"maximum"`
		} `yaml:"voltage"`
		ContinuousMaximum struct {
			Charge struct {
				Power float64 `yaml:"power"`
			} `yaml:"charge"`
			Discharge struct {
				Power float64 `yaml:"power"`
			} `yaml:"discharge"`
		} `yaml:"continuous maximum"`
		MaxModuleVoltage float64 `yaml:"maximum module voltage"`
		Slave            struct {
			Minimum          *int  `yaml:"minimum"`
			Maximum          *int  `yaml:"maximum"`
			EqualUtilization *bool `yaml:"equal utilization"`
		} `yaml:"slave"`
	} `yaml:"electrical"`
	Mechanical struct {
		Weight float64 `yaml:"weight"`
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
		Length float64 `yaml:"length"`
	} `yaml:"mechanical"`
}

// Requirements is the immutable bundle of system constraints and the
// optimization objective (spec §3).
type Requirements struct {
	OptimizedBy Objective
	OnlyBest    bool
	Cooling     string // "" means "no filter" (all cooling variants considered)

	Manufacturer string
	Model        string
	Format       string

	Energy float64

	NominalVoltage float64
	MinimumVoltage float64
	MaximumVoltage float64

	ContMaxChargePower    float64
	ContMaxDischargePower float64
	MaxModuleVoltage      float64

	SlaveMin   int
	SlaveMax   int
	SlaveEqual bool

	Weight float64
	Width  float64
	Height float64
	Length float64
}

// Volume returns the requirement's mechanical volume bound.
func (r Requirements) Volume() float64 {
	return r.Width * r.Height * r.Length
}

// Load reads and validates a requirements YAML file.
func Load(path string) (Requirements, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Requirements{}, fmt.Errorf("requirements: %w", err)
	}
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Requirements{}, fmt.Errorf("requirements: parsing %s: %w", path, err)
	}

	optimizedBy := Objective(doc.System.OptimizedBy)
	if optimizedBy == "" {
		log.Printf("[requirements] optimized_by not specified, defaulting to %q", Volume)
		optimizedBy = Volume
	}

	slaveMin := 0
	if doc.Electrical.Slave.Minimum != nil {
		slaveMin = *doc.Electrical.Slave.Minimum
	}
	slaveMax := 100000
	if doc.Electrical.Slave.Maximum != nil {
		slaveMax = *doc.Electrical.Slave.Maximum
	}
	slaveEqual := true
	if doc.Electrical.Slave.EqualUtilization != nil {
		slaveEqual = *doc.Electrical.Slave.EqualUtilization
	}

	r := Requirements{
		OptimizedBy:  optimizedBy,
		OnlyBest:     doc.System.OnlyBest,
		Cooling:      doc.System.Cooling,
		Manufacturer: doc.System.Cell.Manufacturer,
		Model:        doc.System.Cell.Model,
		Format:       doc.System.Cell.Format,

		Energy:         doc.Electrical.Energy,
		NominalVoltage: doc.Electrical.Voltage.Nominal,
		MinimumVoltage: doc.Electrical.Voltage.Minimum,
		MaximumVoltage: doc.Electrical.Voltage.Maximum,

		ContMaxChargePower:    doc.Electrical.ContinuousMaximum.Charge.Power,
		ContMaxDischargePower: doc.Electrical.ContinuousMaximum.Discharge.Power,
		MaxModuleVoltage:      doc.Electrical.MaxModuleVoltage,

		SlaveMin:   slaveMin,
		SlaveMax:   slaveMax,
		SlaveEqual: slaveEqual,

		Weight: doc.Mechanical.Weight,
		Width:  doc.Mechanical.Width,
		Height: doc.Mechanical.Height,
		Length: doc.Mechanical.Length,
	}
	if err := r.Validate(); err != nil {
		return Requirements{}, fmt.Errorf("requirements: %w", err)
	}
	return r, nil
}

// Validate checks that the requirements are physically meaningful
// (spec §7: requirements errors abort the run).
func (r Requirements) Validate() error {
	if r.OptimizedBy != Volume && r.OptimizedBy != Weight {
		return fmt.Errorf("optimized_by must be %q or %q, got %q", Volume, Weight, r.OptimizedBy)
	}
	if r.MinimumVoltage >= r.MaximumVoltage {
		return fmt.Errorf("minimum voltage (%v) must be less than maximum voltage (%v)", r.MinimumVoltage, r.MaximumVoltage)
	}
	if !(r.MinimumVoltage < r.NominalVoltage && r.NominalVoltage < r.MaximumVoltage) {
		return fmt.Errorf("nominal voltage (%v) must be between minimum (%v) and maximum (%v)", r.NominalVoltage, r.MinimumVoltage, r.MaximumVoltage)
	}
	if r.Energy <= 0 {
		return fmt.Errorf("energy must be > 0")
	}
	if r.Weight <= 0 || r.Width <= 0 || r.Height <= 0 || r.Length <= 0 {
		return fmt.Errorf("mechanical bounds (weight/width/height/length) must be > 0")
	}
	return nil
}
