// Package gazetteer labels bounding boxes with the smallest named reference
// region that fully contains them. The region table ships embedded in the
// binary; lookups are a linear scan over a few hundred rows.
package gazetteer

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gamma-omg/geofind/geometa"
)

//go:embed regions_and_countries.csv
var regionsCSV string

// WorldName is returned when no reference region contains the query.
const WorldName = "World"

// nullIsland catches degenerate boxes around (0,0), the usual signature of
// placeholder coordinates.
var nullIsland = region{
	name: "Null Island",
	bbox: geometa.BBox{MinX: -3, MinY: -3, MaxX: 3, MaxY: 3},
}

type region struct {
	name string
	bbox geometa.BBox
	area float64
}

// Gazetteer is an immutable, fully in-memory region table.
type Gazetteer struct {
	regions []region
}

// Load builds a Gazetteer from the embedded dataset.
func Load() (*Gazetteer, error) {
	return Parse(strings.NewReader(regionsCSV))
}

// Parse reads a region table from CSV rows of (name,minx,miny,maxx,maxy)
// with a header line. The synthetic Null Island entry is always added.
func Parse(r io.Reader) (*Gazetteer, error) {
	reader := csv.NewReader(r)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to read region table: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("region table is empty")
	}

	regions := make([]region, 0, len(rows))
	regions = append(regions, nullIsland)

	for i, row := range rows[1:] { // skip header
		if len(row) != 5 {
			return nil, fmt.Errorf("region table row %d: want 5 columns, got %d", i+2, len(row))
		}

		var coords [4]float64
		for j, field := range row[1:] {
			coords[j], err = strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("region table row %d: %w", i+2, err)
			}
		}

		regions = append(regions, region{
			name: row[0],
			bbox: geometa.BBox{MinX: coords[0], MinY: coords[1], MaxX: coords[2], MaxY: coords[3]},
		})
	}

	for i := range regions {
		regions[i].area = regions[i].bbox.Area()
	}

	return &Gazetteer{regions: regions}, nil
}

// Len returns the number of regions, including Null Island.
func (g *Gazetteer) Len() int {
	return len(g.regions)
}

// FindContainingRegion returns the name of the smallest-area region whose
// bbox fully contains the query, or WorldName if none does. Degenerate
// queries (zero width or height) are fine.
func (g *Gazetteer) FindContainingRegion(query geometa.BBox) string {
	best := -1
	for i, r := range g.regions {
		if !r.bbox.Contains(query) {
			continue
		}
		if best < 0 || r.area < g.regions[best].area {
			best = i
		}
	}

	if best < 0 {
		return WorldName
	}

	return g.regions[best].name
}
