// Package report writes the ranked design records out as a CSV and a
// matching JSON file (spec §6), one row per surviving design, rounded to
// two decimal places the way the original report does.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"

	"batterydesign/internal/design"
)

var columns = []string{
	"Nr.",
	"Manufacturer",
	"Model",
	"Format",
	"Cooling type",
	"Cells in parallel",
	"Cells in series",
	"Min. cell voltage (V)",
	"Max. cell voltage (V)",
	"Cell capacity (Ah)",
	"Voltage nom. (V)",
	"Energy (Wh)",
	"Max. module voltage (V)",
	"Min. module voltage (V)",
	"Nom. module voltage (V)",
	"Slave min. workload",
	"Slave max. workload",
	"Number of slaves per modules",
	"Weight (kg)",
	"Volume (m^3)",
	"Length (m)",
	"Width (m)",
	"Height (m)",
	"Cell orientation",
	"Pack z-dir",
	"Pack y-dir",
	"Pack x-dir",
	"String z-dir",
	"String y-dir",
	"String x-dir",
	"Module y-dir",
	"Module x-dir",
	"Cell block y-dir",
	"Cell block x-dir",
	"Overhead height cell block (m)",
	"Overhead height module (m)",
	"Overhead height string (m)",
	"Overhead height pack (m)",
	"Overhead length cell block (m)",
	"Overhead length module (m)",
	"Overhead length string (m)",
	"Overhead length pack (m)",
	"Overhead width cell block (m)",
	"Overhead width module (m)",
	"Overhead width string (m)",
	"Overhead width pack (m)",
	"Overhead weight cell block (kg)",
	"Overhead weight module (kg)",
	"Overhead weight string (kg)",
	"Overhead weight pack (kg)",
	"Overhead height cell block (%)",
	"Overhead height module (%)",
	"Overhead height string (%)",
	"Overhead height pack (%)",
	"Overhead length cell block (%)",
	"Overhead length module (%)",
	"Overhead length string (%)",
	"Overhead length pack (%)",
	"Overhead width cell block (%)",
	"Overhead width module (%)",
	"Overhead width string (%)",
	"Overhead width pack (%)",
	"Overhead weight cell block (%)",
	"Overhead weight module (%)",
	"Overhead weight string (%)",
	"Overhead weight pack (%)",
	"Overall volume overhead (%)",
	"Overall weight overhead (%)",
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func f(x float64) string {
	return strconv.FormatFloat(round2(x), 'f', 2, 64)
}

func orientation(r design.Record) string {
	if r.Topology.CellRotation == 0 {
		return "0°"
	}
	return "90°"
}

func row(nr int, r design.Record) []string {
	m := r.Mechanical
	e := r.Electrical
	return []string{
		strconv.Itoa(nr),
		r.Cell.Identification.Manufacturer,
		r.Cell.Identification.Model,
		string(r.Cell.Mechanics.Format),
		r.Cooling.String(),
		strconv.Itoa(e.CellsInParallel),
		strconv.Itoa(e.CellsInSeries),
		f(e.LowerBoundCellVoltage),
		f(e.UpperBoundCellVoltage),
		f(e.UsedCellCapacity),
		f(e.NominalSystemVoltage),
		f(e.SystemEnergy),
		f(e.MaxModuleVoltage),
		f(e.MinModuleVoltage),
		f(e.NomModuleVoltage),
		strconv.Itoa(e.Workload.Min),
		strconv.Itoa(e.Workload.Max),
		strconv.Itoa(e.Workload.Slaves),
		f(m.Weight),
		f(m.Volume()),
		f(m.Length),
		f(m.Width),
		f(m.Height),
		orientation(r),
		strconv.Itoa(r.Topology.Pack.Z),
		strconv.Itoa(r.Topology.Pack.Y),
		strconv.Itoa(r.Topology.Pack.X),
		strconv.Itoa(r.Topology.String.Z),
		strconv.Itoa(r.Topology.String.Y),
		strconv.Itoa(r.Topology.String.X),
		strconv.Itoa(r.Topology.Module.Y),
		strconv.Itoa(r.Topology.Module.X),
		strconv.Itoa(r.Topology.CellBlock.Y),
		strconv.Itoa(r.Topology.CellBlock.X),
		f(m.HeightOverhead.CellBlock.Value),
		f(m.HeightOverhead.Module.Value),
		f(m.HeightOverhead.String.Value),
		f(m.HeightOverhead.Pack.Value),
		f(m.LengthOverhead.CellBlock.Value),
		f(m.LengthOverhead.Module.Value),
		f(m.LengthOverhead.String.Value),
		f(m.LengthOverhead.Pack.Value),
		f(m.WidthOverhead.CellBlock.Value),
		f(m.WidthOverhead.Module.Value),
		f(m.WidthOverhead.String.Value),
		f(m.WidthOverhead.Pack.Value),
		f(m.WeightOverhead.CellBlock.Value),
		f(m.WeightOverhead.Module.Value),
		f(m.WeightOverhead.String.Value),
		f(m.WeightOverhead.Pack.Value),
		f(m.HeightOverhead.CellBlock.Percent),
		f(m.HeightOverhead.Module.Percent),
		f(m.HeightOverhead.String.Percent),
		f(m.HeightOverhead.Pack.Percent),
		f(m.LengthOverhead.CellBlock.Percent),
		f(m.LengthOverhead.Module.Percent),
		f(m.LengthOverhead.String.Percent),
		f(m.LengthOverhead.Pack.Percent),
		f(m.WidthOverhead.CellBlock.Percent),
		f(m.WidthOverhead.Module.Percent),
		f(m.WidthOverhead.String.Percent),
		f(m.WidthOverhead.Pack.Percent),
		f(m.WeightOverhead.CellBlock.Percent),
		f(m.WeightOverhead.Module.Percent),
		f(m.WeightOverhead.String.Percent),
		f(m.WeightOverhead.Pack.Percent),
		f(overallOverheadPercent(m.Volume(), m.VolumeWithoutOverhead())),
		f(overallOverheadPercent(m.Weight, m.WeightWithoutOverhead)),
	}
}

func overallOverheadPercent(withOverhead, withoutOverhead float64) float64 {
	if withoutOverhead == 0 {
		return 0
	}
	return withOverhead/withoutOverhead*100 - 100
}

// WriteCSV writes records to path, one row per record, in rank order.
func WriteCSV(path string, records []design.Record) error {
	if len(records) == 0 {
		return fmt.Errorf("report: no fitting system found, check requirements and settings")
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write(columns); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	for i, r := range records {
		if err := w.Write(row(i, r)); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}
	return w.Error()
}

// WriteJSON writes records to path as a JSON array of objects keyed by
// the same column names as the CSV, so downstream tools can consume
// either format.
func WriteJSON(path string, records []design.Record) error {
	if len(records) == 0 {
		return fmt.Errorf("report: no fitting system found, check requirements and settings")
	}
	out := make([]map[string]string, 0, len(records))
	for i, r := range records {
		values := row(i, r)
		entry := make(map[string]string, len(columns))
		for j, col := range columns {
			entry[col] = values[j]
		}
		out = append(out, entry)
	}
	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}
