// Package design implements the per-cell worker and cross-cell driver
// (spec §4.6, §4.7): for each catalog cell it sizes the electrical
// configuration, enumerates every series/parallel/cooling/rotation
// candidate, runs each through the upper-bound filter, then merges,
// ranks, and truncates the survivors from every cell into one ordered
// result set.
package design

import (
	"context"
	"fmt"
	"log"
	"sort"

	"golang.org/x/sync/errgroup"

	"batterydesign/internal/cell"
	"batterydesign/internal/enumerate"
	"batterydesign/internal/filter"
	"batterydesign/internal/geometry"
	"batterydesign/internal/overhead"
	"batterydesign/internal/requirements"
	"batterydesign/internal/sizer"
	"batterydesign/internal/topology"
)

// ElectricalProperties is the fully resolved electrical description of a
// validated design: the sizer's per-cell configuration combined with the
// topology's actual series/parallel counts and the module voltages
// observed during filtering (spec §3, ElectricalProperties).
type ElectricalProperties struct {
	MaxModuleVoltage float64
	MinModuleVoltage float64
	NomModuleVoltage float64

	CellsInParallel int
	CellsInSeries   int

	NominalSystemVoltage float64
	SystemCapacity       float64

	LowerBoundCellVoltage float64
	UpperBoundCellVoltage float64
	UsedCellCapacity      float64
	SystemEnergy          float64

	Workload geometry.SlaveUtilization
}

// Record is one ranked, validated battery system design (spec §3,
// DesignRecord): the candidate Topology plus its mechanical and
// electrical properties and the cooling variant it was evaluated under.
type Record struct {
	Cell       cell.Cell
	Topology   topology.Topology
	Cooling    topology.Cooling
	Mechanical geometry.MechanicalProperties
	Electrical ElectricalProperties
}

// Options configures a design run (spec §6 CLI surface / run config).
type Options struct {
	PinsPerSlave   int
	Cores          int
	OverheadPlugin string
	CoolingFilter  string // "" means every cooling variant is considered
}

// rotations enumerates the two cell orientations the per-cell worker
// sweeps, matching the original's cell_rotation = (0, 1) cartesian factor.
var rotations = []topology.Rotation{topology.Rotation0, topology.Rotation90}

// coolingVariants returns the cooling variants to evaluate, honoring an
// optional substring filter from the requirements (spec §4.6).
func coolingVariants(filterStr string) []topology.Cooling {
	if filterStr == "" {
		return topology.All
	}
	var out []topology.Cooling
	for _, c := range topology.All {
		if contains(c.String(), filterStr) {
			out = append(out, c)
		}
	}
	return out
}

func contains(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

// PerCell runs the electrical sizer, the factorings enumerator, and the
// upper-bound filter for one catalog cell against req, returning every
// surviving design record (spec §4.6, the per-cell worker).
func PerCell(c cell.Cell, req requirements.Requirements, opts Options) ([]Record, error) {
	config, err := sizer.Size(c, req)
	if err != nil {
		return nil, fmt.Errorf("design: sizing cell %s: %w", c, err)
	}

	seriesTuples := enumerate.Tuples(config.CellsInSeries, 5)
	parallelTuples := enumerate.Tuples(config.CellsInParallel, 5)

	pluginName := opts.OverheadPlugin
	if pluginName == "" {
		pluginName = "default"
	}
	factory, err := overhead.Lookup(pluginName)
	if err != nil {
		return nil, err
	}

	var records []Record
	for _, coolingVariant := range coolingVariants(opts.CoolingFilter) {
		provider := factory(coolingVariant)
		for _, seriesTuple := range seriesTuples {
			for _, parallelTuple := range parallelTuples {
				for _, rotation := range rotations {
					var top topology.Topology
					top.Cell = c
					top.CellRotation = rotation
					top.CoolingVariant = coolingVariant
					top.SetSeries(to5(seriesTuple))
					top.SetParallel(to5(parallelTuple))

					result, ok := filter.Check(top, provider, req, opts.PinsPerSlave)
					if !ok {
						continue
					}

					records = append(records, Record{
						Cell:       c,
						Topology:   top,
						Cooling:    coolingVariant,
						Mechanical: result.Mechanical,
						Electrical: ElectricalProperties{
							MaxModuleVoltage:      result.ModuleVoltage,
							MinModuleVoltage:      c.Electrics.Voltage.Minimum * float64(top.Module.Y) * float64(top.Module.X),
							NomModuleVoltage:      c.Electrics.Voltage.Nominal * float64(top.Module.Y) * float64(top.Module.X),
							CellsInParallel:       top.CellsInParallel(),
							CellsInSeries:         top.CellsInSeries(),
							NominalSystemVoltage:  c.Electrics.Voltage.Nominal * float64(top.CellsInSeries()),
							SystemCapacity:        config.UsedCellCapacity * float64(top.CellsInParallel()),
							LowerBoundCellVoltage: config.LowerBoundCellVoltage,
							UpperBoundCellVoltage: config.UpperBoundCellVoltage,
							UsedCellCapacity:      config.UsedCellCapacity,
							SystemEnergy:          c.Electrics.Voltage.Nominal * float64(top.CellsInSeries()) * config.UsedCellCapacity * float64(top.CellsInParallel()),
							Workload:              result.Slave,
						},
					})
				}
			}
		}
	}
	return records, nil
}

func to5(tuple []int) [5]int {
	var out [5]int
	copy(out[:], tuple)
	return out
}

// Run is the cross-cell driver (spec §4.7): it fans PerCell out across
// cells, in catalog order, bounded by opts.Cores concurrent workers, then
// concatenates every cell's records in catalog order before sorting so the
// final ranking is reproducible regardless of how many cores ran it.
func Run(ctx context.Context, cells []cell.Cell, req requirements.Requirements, opts Options, maxSolutions int) ([]Record, error) {
	perCell := make([][]Record, len(cells))

	group, groupCtx := errgroup.WithContext(ctx)
	if opts.Cores > 0 {
		group.SetLimit(opts.Cores)
	}

	for i, c := range cells {
		i, c := i, c
		group.Go(func() error {
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			default:
			}
			records, err := PerCell(c, req, opts)
			if err != nil {
				return err
			}
			log.Printf("[design] cell %s: %d surviving designs", c, len(records))
			perCell[i] = records
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var all []Record
	for _, records := range perCell {
		all = append(all, records...)
	}

	if req.OptimizedBy == requirements.Weight {
		sort.SliceStable(all, func(i, j int) bool {
			return all[i].Mechanical.Weight < all[j].Mechanical.Weight
		})
	} else {
		sort.SliceStable(all, func(i, j int) bool {
			return all[i].Mechanical.Volume() < all[j].Mechanical.Volume()
		})
	}

	if req.OnlyBest {
		all = onlyBestPerCell(all, cells)
	}

	if maxSolutions > 0 && len(all) > maxSolutions {
		all = all[:maxSolutions]
	}
	return all, nil
}

// onlyBestPerCell keeps only the first (best-ranked) record for each
// distinct cell, in ranked order.
//
// The early-termination check reproduces the original's set-equality test
// verbatim: it stops scanning once the set of cells seen so far equals the
// set of cells under consideration. Because that comparison is over
// unordered sets of cell identities rather than a simple counter, a cell
// that produced zero surviving records anywhere in `all` can never appear
// in "seen", so the loop silently falls through to scanning every record
// instead of stopping early. This does not change the result, only how
// much work is wasted finding it, and is intentionally not "fixed" here.
func onlyBestPerCell(all []Record, cells []cell.Cell) []Record {
	considered := map[string]bool{}
	for _, c := range cells {
		considered[c.String()] = true
	}

	var filtered []Record
	seen := map[string]bool{}
	for _, record := range all {
		key := record.Cell.String()
		if seen[key] {
			continue
		}
		filtered = append(filtered, record)
		seen[key] = true
		log.Printf("[design] added best configuration of cell %s", key)
		if setEqual(seen, considered) {
			break
		}
	}
	return filtered
}

func setEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
