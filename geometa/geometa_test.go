package geometa

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReprojector struct {
	calls int
	fail  bool
}

func (r *fakeReprojector) ToGeographic(crs string, b BBox) (BBox, error) {
	r.calls++
	if r.fail {
		return BBox{}, errors.New("no transform available")
	}
	// pretend the native frame is meters and shrink into degrees
	return BBox{b.MinX / 1e5, b.MinY / 1e5, b.MaxX / 1e5, b.MaxY / 1e5}, nil
}

func Test_BBoxValid(t *testing.T) {
	assert.True(t, BBox{-10, -5, 10, 5}.Valid())
	assert.True(t, BBox{3, 3, 3, 3}.Valid())
	assert.False(t, BBox{10, -5, -10, 5}.Valid())
	assert.False(t, BBox{math.Inf(-1), -90, 180, 90}.Valid())
	assert.False(t, BBox{math.NaN(), 0, 1, 1}.Valid())
}

func Test_BBoxIntersects(t *testing.T) {
	a := BBox{0, 0, 10, 10}
	assert.True(t, a.Intersects(BBox{5, 5, 15, 15}))
	assert.True(t, a.Intersects(BBox{10, 10, 20, 20})) // edge touch
	assert.False(t, a.Intersects(BBox{11, 11, 20, 20}))
}

func Test_NormalizeGeographicPassthrough(t *testing.T) {
	rp := &fakeReprojector{}
	class, bbox, err := Normalize(Raw{
		Class:   ClassVectorPolygon,
		CRS:     "EPSG:4326",
		BBox:    BBox{-1, -1, 1, 1},
		HasBBox: true,
	}, rp)

	require.NoError(t, err)
	assert.Equal(t, ClassVectorPolygon, class)
	assert.Equal(t, &BBox{-1, -1, 1, 1}, bbox)
	assert.Zero(t, rp.calls)
}

func Test_NormalizeReprojects(t *testing.T) {
	rp := &fakeReprojector{}
	_, bbox, err := Normalize(Raw{
		Class:   ClassRaster,
		CRS:     "EPSG:32633",
		BBox:    BBox{-1e6, -2e6, 1e6, 2e6},
		HasBBox: true,
	}, rp)

	require.NoError(t, err)
	assert.Equal(t, 1, rp.calls)
	assert.Equal(t, &BBox{-10, -20, 10, 20}, bbox)
}

func Test_NormalizeFailures(t *testing.T) {
	_, bbox, err := Normalize(Raw{Class: ClassRaster}, nil)
	assert.Error(t, err)
	assert.Nil(t, bbox)

	_, bbox, err = Normalize(Raw{Class: ClassRaster, BBox: BBox{0, 0, 1, 1}, HasBBox: true}, nil)
	assert.ErrorIs(t, err, ErrUnknownCRS)
	assert.Nil(t, bbox)

	_, bbox, err = Normalize(Raw{
		Class:   ClassVectorLine,
		CRS:     "EPSG:32633",
		BBox:    BBox{0, 0, 1, 1},
		HasBBox: true,
	}, &fakeReprojector{fail: true})
	assert.Error(t, err)
	assert.Nil(t, bbox)

	// reprojection succeeding into garbage must still be rejected
	_, bbox, err = Normalize(Raw{
		Class:   ClassVectorPoint,
		CRS:     "EPSG:4326",
		BBox:    BBox{5, 0, -5, 1},
		HasBBox: true,
	}, nil)
	assert.Error(t, err)
	assert.Nil(t, bbox)
}

func Test_ClassNames(t *testing.T) {
	assert.Equal(t, "raster", ClassRaster.Kind())
	assert.Equal(t, "", ClassRaster.Geometry())
	assert.Equal(t, "vector", ClassVectorLine.Kind())
	assert.Equal(t, "line", ClassVectorLine.Geometry())
	assert.Equal(t, "", ClassUnknown.Kind())
}
