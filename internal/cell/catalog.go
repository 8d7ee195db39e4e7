package cell

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is an immutable, ordered sequence of validated cells (spec §6).
//
// The original database layer exposed itself as a mutating iterator with a
// re-iteration-resets-the-index misfeature (spec §9's re-architecture
// advice calls this out explicitly). Catalog instead exposes its cells as a
// plain read-only slice; callers iterate it as many times as they like.
type Catalog struct {
	Cells []Cell
}

// cellDocument mirrors the on-disk key/value schema for one cell record.
type cellDocument struct {
	Identification struct {
		Manufacturer string `yaml:"manufacturer"`
		Model        string `yaml:"model"`
	} `yaml:"identification"`
	Basics struct {
		Mechanics struct {
			Format     string `yaml:"format"`
			Weight     float64 `yaml:"weight"`
			Dimensions struct {
				Height float64 `yaml:"height"`
				Length float64 `yaml:"length"`
				Width  float64 `yaml:"width"`
			} `yaml:"dimensions"`
		} `yaml:"mechanics"`
		Electrics struct {
			Voltage struct {
				Nominal float64 `yaml:"nominal"`
				Minimum float64 `yaml:"minimum"`
				Maximum float64 `yaml:"maximum"`
			} `yaml:"voltage"`
			Capacity struct {
				Initial float64 `yaml:"initial"`
			} `yaml:"capacity"`
			Current struct {
				Charge    float64 `yaml:"charge"`
				Discharge float64 `yaml:"discharge"`
			} `yaml:"current"`
			DischargeCurve []float64 `yaml:"discharge curve"`
		} `yaml:"electrics"`
	} `yaml:"basics"`
}

func (d cellDocument) toCell() (Cell, error) {
	return New(
		d.Identification.Manufacturer,
		d.Identification.Model,
		Mechanics{
			Format: Format(strings.ToLower(d.Basics.Mechanics.Format)),
			Weight: d.Basics.Mechanics.Weight,
			Height: d.Basics.Mechanics.Dimensions.Height,
			Length: d.Basics.Mechanics.Dimensions.Length,
			Width:  d.Basics.Mechanics.Dimensions.Width,
		},
		Electrics{
			Voltage: VoltageSpec{
				Nominal: d.Basics.Electrics.Voltage.Nominal,
				Minimum: d.Basics.Electrics.Voltage.Minimum,
				Maximum: d.Basics.Electrics.Voltage.Maximum,
			},
			Capacity:       CapacitySpec{Initial: d.Basics.Electrics.Capacity.Initial},
			ContCurrent:    ContinuousCurrentSpec{Charge: d.Basics.Electrics.Current.Charge, Discharge: d.Basics.Electrics.Current.Discharge},
			DischargeCurve: d.Basics.Electrics.DischargeCurve,
		},
	)
}

// LoadCatalog reads a cell catalog from a single file or a directory that is
// recursively scanned for *.yaml/*.yml files. Records that fail schema
// validation are logged and skipped; the catalog is built from the rest
// (spec §6, §7).
func LoadCatalog(path string) (Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: %w", err)
	}

	var files []string
	if info.IsDir() {
		err := filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(p))
			if ext == ".yaml" || ext == ".yml" {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return Catalog{}, fmt.Errorf("catalog: walking %s: %w", path, err)
		}
	} else {
		files = []string{path}
	}

	seen := map[string]bool{}
	var cat Catalog
	for _, f := range files {
		docs, err := readCellDocuments(f)
		if err != nil {
			log.Printf("[catalog] skipping %s: %v", f, err)
			continue
		}
		for _, doc := range docs {
			c, err := doc.toCell()
			if err != nil {
				log.Printf("[catalog] skipping invalid cell in %s: %v", f, err)
				continue
			}
			key := c.Identification.Manufacturer + ":" + c.Identification.Model
			if seen[key] {
				log.Printf("[catalog] skipping duplicate cell %s in %s", c, f)
				continue
			}
			seen[key] = true
			cat.Cells = append(cat.Cells, c)
		}
	}
	return cat, nil
}

// readCellDocuments parses a YAML file that contains either a single cell
// record or a list of cell records.
func readCellDocuments(path string) ([]cellDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list []cellDocument
	if err := yaml.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list, nil
	}
	var single cellDocument
	if err := yaml.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return []cellDocument{single}, nil
}

// Filter returns the subset of cells matching the given optional
// manufacturer/model/format filters (empty string means "no filter").
func (c Catalog) Filter(manufacturer, model, format string) []Cell {
	out := make([]Cell, 0, len(c.Cells))
	for _, cl := range c.Cells {
		if manufacturer != "" && cl.Identification.Manufacturer != manufacturer {
			continue
		}
		if model != "" && cl.Identification.Model != model {
			continue
		}
		if format != "" && string(cl.Mechanics.Format) != format {
			continue
		}
		out = append(out, cl)
	}
	return out
}
