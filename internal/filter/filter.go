// Package filter implements the upper-bound filter (spec §4.5): given a
// candidate Topology, it rejects module-voltage, dimensional, weight, and
// slave-utilization violations and places the battery junction box (BJB)
// in whichever of length, width, or height direction has spare room.
package filter

import (
	"batterydesign/internal/geometry"
	"batterydesign/internal/overhead"
	"batterydesign/internal/requirements"
	"batterydesign/internal/topology"
)

// Result is a Topology that survived the upper-bound filter, along with
// its composed mechanical properties, module voltage, and slave load.
type Result struct {
	Topology      topology.Topology
	Mechanical    geometry.MechanicalProperties
	ModuleVoltage float64
	Slave         geometry.SlaveUtilization
}

// Check runs a single candidate Topology through the upper-bound filter.
// It returns false when the candidate is rejected.
//
// The BJB placement loop tries length, then width, then height, in that
// fixed order, verbatim from the original: once the box has been placed in
// one direction, every subsequent direction is evaluated without BJB
// overhead and must already fit; if any direction fails even its
// without-BJB fallback, the whole candidate is rejected. A candidate that
// never finds room for the BJB in any of the three directions is also
// rejected.
func Check(t topology.Topology, p overhead.Provider, req requirements.Requirements, pinsPerSlave int) (Result, bool) {
	moduleVoltage := geometry.MaximumModuleVoltage(t)
	if moduleVoltage >= req.MaxModuleVoltage {
		return Result{}, false
	}

	bjb := false
	var height, length, width float64
	var heightOverhead, lengthOverhead, widthOverhead geometry.LevelOverhead
	dimsSet := 0

	// length
	{
		v, oh := geometry.Length(t, p, req, !bjb)
		if v >= req.Length {
			if !bjb {
				v, oh = geometry.Length(t, p, req, false)
				if v >= req.Length {
					return Result{}, false
				}
			} else {
				return Result{}, false
			}
		} else {
			bjb = true
		}
		length, lengthOverhead = v, oh
		dimsSet++
	}

	// width
	{
		v, oh := geometry.Width(t, p, req, !bjb)
		if v >= req.Width {
			if !bjb {
				v, oh = geometry.Width(t, p, req, false)
				if v >= req.Width {
					return Result{}, false
				}
			} else {
				return Result{}, false
			}
		} else {
			bjb = true
		}
		width, widthOverhead = v, oh
		dimsSet++
	}

	// height
	{
		v, oh := geometry.Height(t, p, req, !bjb)
		if v >= req.Height {
			if !bjb {
				v, oh = geometry.Height(t, p, req, false)
				if v >= req.Height {
					return Result{}, false
				}
			} else {
				return Result{}, false
			}
		} else {
			bjb = true
		}
		height, heightOverhead = v, oh
		dimsSet++
	}

	if dimsSet < 3 || !bjb {
		return Result{}, false
	}

	weight, weightOverhead := geometry.Weight(t, p, req)
	if weight >= req.Weight {
		return Result{}, false
	}

	slave := geometry.SlaveLoad(t, pinsPerSlave)
	if slave.Min < req.SlaveMin || slave.Max > req.SlaveMax {
		if req.SlaveEqual && slave.Max != slave.Min {
			return Result{}, false
		}
		return Result{}, false
	}

	rawHeight, rawLength, rawWidth, rawWeight := geometry.WithoutOverhead(t)
	mech := geometry.MechanicalProperties{
		Height: height, Length: length, Width: width, Weight: weight,
		HeightOverhead: heightOverhead, LengthOverhead: lengthOverhead,
		WidthOverhead: widthOverhead, WeightOverhead: weightOverhead,
		HeightWithoutOverhead: rawHeight, LengthWithoutOverhead: rawLength,
		WidthWithoutOverhead: rawWidth, WeightWithoutOverhead: rawWeight,
	}

	return Result{
		Topology:      t,
		Mechanical:    mech,
		ModuleVoltage: moduleVoltage,
		Slave:         slave,
	}, true
}
