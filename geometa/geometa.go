// Package geometa defines the geospatial metadata model and the external
// extraction capability the indexer consumes. Concrete format readers live
// outside this module; the host registers them as Extractor implementations.
package geometa

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnsupported is returned by extractors for files they cannot read.
	ErrUnsupported = errors.New("geometa: unsupported file")

	// ErrUnknownCRS marks metadata whose coordinate system is missing or
	// unresolvable. A missing CRS is an extraction failure, not a zero bbox.
	ErrUnknownCRS = errors.New("geometa: unknown coordinate reference system")
)

// BBox is a bounding box in lon/lat order: (MinX, MinY, MaxX, MaxY).
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Valid reports whether the box has finite coordinates and min <= max on
// both axes. Degenerate boxes (zero width or height) are valid.
func (b BBox) Valid() bool {
	for _, v := range [4]float64{b.MinX, b.MinY, b.MaxX, b.MaxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.MinX <= b.MaxX && b.MinY <= b.MaxY
}

// Contains reports whether o lies entirely within b.
func (b BBox) Contains(o BBox) bool {
	return b.MinX <= o.MinX && b.MinY <= o.MinY && b.MaxX >= o.MaxX && b.MaxY >= o.MaxY
}

// Intersects reports whether b and o share any point.
func (b BBox) Intersects(o BBox) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX && b.MinY <= o.MaxY && o.MinY <= b.MaxY
}

// Area is width times height in squared degrees. No projection correction
// is applied; the value is only ever compared against other areas.
func (b BBox) Area() float64 {
	return (b.MaxX - b.MinX) * (b.MaxY - b.MinY)
}

// Class is the persisted file classification. Values are stable: they are
// written to the metadata cache database.
type Class int

const (
	ClassUnknown       Class = 0
	ClassRaster        Class = 1
	ClassVectorPoint   Class = 2
	ClassVectorLine    Class = 3
	ClassVectorPolygon Class = 4
)

// Kind returns "raster" or "vector", or "" for ClassUnknown.
func (c Class) Kind() string {
	switch c {
	case ClassRaster:
		return "raster"
	case ClassVectorPoint, ClassVectorLine, ClassVectorPolygon:
		return "vector"
	}
	return ""
}

// Geometry returns the vector geometry name, or "" for rasters and unknowns.
func (c Class) Geometry() string {
	switch c {
	case ClassVectorPoint:
		return "point"
	case ClassVectorLine:
		return "line"
	case ClassVectorPolygon:
		return "polygon"
	}
	return ""
}

// Raw is what an extractor reads off a file: classification, the CRS the
// coordinates are expressed in, and the native-frame bounding box.
type Raw struct {
	Class   Class
	CRS     string // authority code, e.g. "EPSG:32633"; empty if unknown
	BBox    BBox
	HasBBox bool
}

// Extractor reads lightweight geospatial metadata from a file without fully
// parsing it. Implementations are format-specific and supplied by the host.
type Extractor interface {
	Extract(path string) (Raw, error)
}

// Reprojector transforms a bounding box from a named CRS into lon/lat
// degrees. Like Extractor, this is an injected external capability.
type Reprojector interface {
	ToGeographic(crs string, b BBox) (BBox, error)
}

// geographic CRS aliases that need no reprojection
func isGeographic(crs string) bool {
	switch crs {
	case "EPSG:4326", "OGC:CRS84", "CRS:84":
		return true
	}
	return false
}

// Normalize converts raw extractor output into the canonical geographic
// frame. It returns a nil bbox only alongside a non-nil error; callers keep
// the file with no bbox when Normalize fails.
func Normalize(raw Raw, rp Reprojector) (Class, *BBox, error) {
	if !raw.HasBBox {
		return raw.Class, nil, fmt.Errorf("geometa: no extent for class %d", raw.Class)
	}
	if raw.CRS == "" {
		return raw.Class, nil, ErrUnknownCRS
	}

	b := raw.BBox
	if !isGeographic(raw.CRS) {
		if rp == nil {
			return raw.Class, nil, ErrUnknownCRS
		}
		var err error
		b, err = rp.ToGeographic(raw.CRS, b)
		if err != nil {
			return raw.Class, nil, fmt.Errorf("geometa: reproject from %s: %w", raw.CRS, err)
		}
	}

	if !b.Valid() {
		return raw.Class, nil, fmt.Errorf("geometa: invalid extent (%g, %g, %g, %g)", b.MinX, b.MinY, b.MaxX, b.MaxY)
	}

	return raw.Class, &b, nil
}
