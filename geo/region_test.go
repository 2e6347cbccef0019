/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func rect(t *testing.T, lat1, lon1, lat2, lon2 float64) *Region {
	r, err := NewRectangularRegion(MustLocation(lat1, lon1), MustLocation(lat2, lon2))
	require.NoError(t, err)
	return r
}

func square(t *testing.T, lat0, lon0, size float64) *Region {
	r, err := NewRegion(NewLocationList(
		MustLocation(lat0, lon0),
		MustLocation(lat0, lon0+size),
		MustLocation(lat0+size, lon0+size),
		MustLocation(lat0+size, lon0),
	), MercatorLinear)
	require.NoError(t, err)
	return r
}

func TestRectangularRegion(t *testing.T) {
	r := rect(t, 15, 15, 10, 10)
	require.Equal(t, DefaultRegionName, r.Name())
	require.Equal(t, 10.0, r.MinLat())
	require.Equal(t, 10.0, r.MinLon())
	require.InDelta(t, 15.0, r.MaxLat(), 1e-9)
	require.InDelta(t, 15.0, r.MaxLon(), 1e-9)
	require.True(t, r.IsRectangular())
	require.Equal(t, 4, r.Border().Len())
	require.InDelta(t, 25.0, r.Area(), 1e-9)

	// All four edges of a corner-built rectangle are inside.
	for _, loc := range []Location{
		MustLocation(10, 10), MustLocation(10, 15), MustLocation(15, 15),
		MustLocation(15, 10), MustLocation(12.5, 15), MustLocation(15, 12.5),
		MustLocation(12, 12),
	} {
		require.True(t, r.Contains(loc), "%v", loc)
	}
	for _, loc := range []Location{
		MustLocation(15.0001, 12), MustLocation(12, 15.0001),
		MustLocation(9.9999, 12), MustLocation(12, 9.9999),
	} {
		require.False(t, r.Contains(loc), "%v", loc)
	}

	_, err := NewRectangularRegion(MustLocation(10, 10), MustLocation(10, 15))
	require.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = NewRectangularRegion(MustLocation(10, 10), MustLocation(15, 10))
	require.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestRegionEdgeRule(t *testing.T) {
	r := square(t, 0, 0, 1)
	require.True(t, r.IsRectangular())

	require.True(t, r.Contains(MustLocation(0, 0)))
	require.True(t, r.Contains(MustLocation(0.5, 0)), "west edge")
	require.True(t, r.Contains(MustLocation(0, 0.5)), "south edge")
	require.False(t, r.Contains(MustLocation(0.5, 1)), "east edge")
	require.False(t, r.Contains(MustLocation(1, 0.5)), "north edge")
	require.False(t, r.Contains(MustLocation(1, 1)))
}

func TestNewRegionInvalid(t *testing.T) {
	_, err := NewRegion(nil, MercatorLinear)
	require.True(t, errors.Is(err, ErrMissingArgument))

	_, err = NewRegion(NewLocationList(MustLocation(0, 0), MustLocation(1, 1)), MercatorLinear)
	require.True(t, errors.Is(err, ErrInvalidArgument))

	// collinear
	_, err = NewRegion(NewLocationList(
		MustLocation(0, 0), MustLocation(1, 1), MustLocation(2, 2),
	), MercatorLinear)
	require.True(t, errors.Is(err, ErrDegenerate))

	// bow tie
	_, err = NewRegion(NewLocationList(
		MustLocation(0, 0), MustLocation(1, 1), MustLocation(1, 0), MustLocation(0, 1),
	), MercatorLinear)
	require.True(t, errors.Is(err, ErrDegenerate))

	// two triangles sharing the vertex (1,1)
	_, err = NewRegion(NewLocationList(
		MustLocation(0, 0), MustLocation(1, 1), MustLocation(0, 2),
		MustLocation(2, 2), MustLocation(1, 1), MustLocation(2, 0),
	), MercatorLinear)
	require.True(t, errors.Is(err, ErrDegenerate))

	// vertex (1,1) touches the edge (0,2)-(2,0) without crossing it
	_, err = NewRegion(NewLocationList(
		MustLocation(0, 0), MustLocation(0, 2), MustLocation(2, 0),
		MustLocation(2, 2), MustLocation(1, 1),
	), MercatorLinear)
	require.True(t, errors.Is(err, ErrDegenerate))
}

func TestNewRegionClosingVertex(t *testing.T) {
	open := NewLocationList(MustLocation(0, 0), MustLocation(0, 2), MustLocation(2, 1))
	closed := open.Clone()
	require.NoError(t, closed.Add(MustLocation(0, 0)))

	r1, err := NewRegion(open, MercatorLinear)
	require.NoError(t, err)
	r2, err := NewRegion(closed, MercatorLinear)
	require.NoError(t, err)
	require.Equal(t, 3, r2.Border().Len())
	require.True(t, r1.Equal(r2))
	require.Equal(t, r1.Hash(), r2.Hash())
	require.False(t, r1.IsRectangular())
}

func TestRegionBorderIsCopied(t *testing.T) {
	border := NewLocationList(MustLocation(0, 0), MustLocation(0, 2), MustLocation(2, 1))
	r, err := NewRegion(border, MercatorLinear)
	require.NoError(t, err)
	require.NoError(t, border.Set(2, MustLocation(40, 40)))
	require.True(t, r.Contains(MustLocation(1, 1)))
	require.False(t, r.Contains(MustLocation(30, 30)))

	require.True(t, errors.Is(r.Border().Add(MustLocation(5, 5)), ErrReadOnly))
}

func TestGreatCircleRegion(t *testing.T) {
	border := NewLocationList(
		MustLocation(30, -120), MustLocation(30, -100),
		MustLocation(40, -100), MustLocation(40, -120),
	)
	gc, err := NewRegion(border, GreatCircle)
	require.NoError(t, err)
	require.Greater(t, gc.Border().Len(), 4)
	require.Equal(t, border.Last(), gc.Border().First())
	for _, loc := range gc.Border().All() {
		require.True(t, loc.Lat() >= 29.99 && loc.Lat() <= 41.5, "%v", loc)
	}
	// Consecutive vertices are at most a segment length apart.
	b := gc.Border()
	for i := 1; i < b.Len(); i++ {
		require.LessOrEqual(t, HorzDistance(b.Get(i-1), b.Get(i)), GreatCircleSegment+1e-6)
	}
	require.True(t, gc.Contains(MustLocation(35, -110)))

	// Great circles between points on a parallel bow toward the pole.
	ml, err := NewRegion(border, MercatorLinear)
	require.NoError(t, err)
	require.Greater(t, gc.MaxLat(), ml.MaxLat())
	require.True(t, gc.Contains(MustLocation(40.3, -110)))
	require.False(t, ml.Contains(MustLocation(40.3, -110)))
}

func TestCircularRegion(t *testing.T) {
	center := MustLocation(35, -118)
	r, err := NewCircularRegion(center, 50)
	require.NoError(t, err)
	require.Equal(t, 36, r.Border().Len())
	require.True(t, r.Contains(center))
	for az := 0.0; az < 360; az += 45 {
		require.True(t, r.Contains(Destination(center, az*ToRad, 40)), "az %v", az)
		require.False(t, r.Contains(Destination(center, az*ToRad, 60)), "az %v", az)
	}
	for _, loc := range r.Border().All() {
		require.InDelta(t, 50, HorzDistance(center, loc), 1e-6)
	}

	for _, radius := range []float64{0, -1, 1000.1} {
		_, err := NewCircularRegion(center, radius)
		require.True(t, errors.Is(err, ErrInvalidArgument), "radius %v", radius)
	}
	_, err = NewCircularRegion(center, 1000)
	require.NoError(t, err)
}

func TestBufferedRegion(t *testing.T) {
	p := MustLocation(35, -118)
	disk, err := NewBufferedRegion(NewLocationList(p), 50)
	require.NoError(t, err)
	require.Equal(t, 36, disk.Border().Len())
	require.True(t, disk.Contains(p))
	require.Empty(t, disk.Interiors())

	// Repeated points add nothing.
	same, err := NewBufferedRegion(NewLocationList(p, p), 50)
	require.NoError(t, err)
	require.True(t, disk.EqualsRegion(same))

	line := NewLocationList(MustLocation(35, -118), MustLocation(35, -117))
	r, err := NewBufferedRegion(line, 20)
	require.NoError(t, err)
	require.Empty(t, r.Interiors())
	mid := MustLocation(35, -117.5)
	require.True(t, r.Contains(mid))
	require.True(t, r.Contains(Destination(mid, 0, 15)))
	require.True(t, r.Contains(Destination(mid, 180*ToRad, 15)))
	require.False(t, r.Contains(Destination(mid, 0, 30)))
	require.True(t, r.Contains(Destination(line.First(), 270*ToRad, 15)))
	require.False(t, r.Contains(Destination(line.Last(), 90*ToRad, 25)))

	_, err = NewBufferedRegion(nil, 10)
	require.True(t, errors.Is(err, ErrMissingArgument))
	_, err = NewBufferedRegion(NewLocationList(), 10)
	require.True(t, errors.Is(err, ErrInvalidArgument))
	for _, buf := range []float64{0, 500.5} {
		_, err = NewBufferedRegion(line, buf)
		require.True(t, errors.Is(err, ErrInvalidArgument), "buffer %v", buf)
	}
}

func TestGlobalRegion(t *testing.T) {
	g := NewGlobalRegion()
	require.Equal(t, LatMin, g.MinLat())
	require.Equal(t, LatMax, g.MaxLat())
	require.Equal(t, LonMin, g.MinLon())
	require.Equal(t, LonMax, g.MaxLon())
	require.True(t, g.IsRectangular())
	require.True(t, g.Contains(MustLocation(0, 0)))
	require.True(t, g.Contains(MustLocation(-45, 170)))
	require.True(t, g.Contains(MustLocation(-90, -180)))
}

func TestRegionWithInterior(t *testing.T) {
	outer := rect(t, 0, 0, 10, 10)
	inner := rect(t, 2, 2, 4, 4)

	r, err := outer.WithInterior(inner)
	require.NoError(t, err)
	require.Len(t, r.Interiors(), 1)
	require.Empty(t, outer.Interiors())
	require.True(t, outer.Contains(MustLocation(3, 3)))
	require.False(t, r.Contains(MustLocation(3, 3)))
	require.True(t, r.Contains(MustLocation(6, 6)))
	require.InDelta(t, outer.Area()-inner.Area(), r.Area(), 1e-9)
	require.True(t, errors.Is(r.Interiors()[0].Add(MustLocation(1, 1)), ErrReadOnly))

	// A second, disjoint interior.
	r2, err := r.WithInterior(rect(t, 6, 6, 8, 8))
	require.NoError(t, err)
	require.Len(t, r2.Interiors(), 2)
	require.Len(t, r.Interiors(), 1)
	require.False(t, r2.Contains(MustLocation(7, 7)))

	_, err = r.WithInterior(rect(t, 3, 3, 5, 5))
	require.True(t, errors.Is(err, ErrInvalidArgument), "overlaps existing interior")

	_, err = outer.WithInterior(rect(t, 8, 8, 12, 12))
	require.True(t, errors.Is(err, ErrInvalidArgument), "not contained")

	_, err = outer.WithInterior(nil)
	require.True(t, errors.Is(err, ErrMissingArgument))

	big := rect(t, -5, -5, 20, 20)
	_, err = big.WithInterior(r)
	require.True(t, errors.Is(err, ErrInvalidArgument), "interior has interiors")
}

func TestRegionContainsRegion(t *testing.T) {
	outer := rect(t, 0, 0, 10, 10)
	require.True(t, outer.ContainsRegion(rect(t, 2, 2, 4, 4)))
	require.True(t, outer.ContainsRegion(outer.Clone()))
	require.False(t, outer.ContainsRegion(rect(t, 8, 8, 12, 12)))
	require.False(t, outer.ContainsRegion(rect(t, 20, 20, 30, 30)))
	require.False(t, outer.ContainsRegion(nil))
}

func TestIntersect(t *testing.T) {
	a := rect(t, 0, 0, 10, 10).Named("a")
	b := rect(t, 5, 5, 15, 15).Named("b")

	r, err := Intersect(a, b)
	require.NoError(t, err)
	require.NotNil(t, r)
	require.Equal(t, DefaultRegionName, r.Name())
	require.InDelta(t, 5, r.MinLat(), 1e-9)
	require.InDelta(t, 5, r.MinLon(), 1e-9)
	require.InDelta(t, 10, r.MaxLat(), 1e-9)
	require.InDelta(t, 10, r.MaxLon(), 1e-9)
	require.InDelta(t, 25, r.Area(), 1e-6)
	require.True(t, r.Contains(MustLocation(7, 7)))
	require.False(t, r.Contains(MustLocation(2, 2)))

	// Identical regions.
	same, err := Intersect(a, a.Named("copy"))
	require.NoError(t, err)
	require.True(t, same.EqualsRegion(a))
	require.Equal(t, DefaultRegionName, same.Name())

	// Disjoint regions.
	none, err := Intersect(a, rect(t, 20, 20, 30, 30))
	require.NoError(t, err)
	require.Nil(t, none)

	holed, err := a.WithInterior(rect(t, 1, 1, 2, 2))
	require.NoError(t, err)
	_, err = Intersect(holed, b)
	require.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = Intersect(a, nil)
	require.True(t, errors.Is(err, ErrMissingArgument))
}

func TestUnion(t *testing.T) {
	a := rect(t, 0, 0, 10, 10)
	b := rect(t, 5, 5, 15, 15)

	r, err := Union(a, b)
	require.NoError(t, err)
	require.NotNil(t, r)
	require.Empty(t, r.Interiors())
	require.InDelta(t, 0, r.MinLat(), 1e-9)
	require.InDelta(t, 15, r.MaxLat(), 1e-9)
	require.InDelta(t, 175, r.Area(), 1e-6)
	require.True(t, r.Contains(MustLocation(2, 2)))
	require.True(t, r.Contains(MustLocation(12, 12)))
	require.False(t, r.Contains(MustLocation(2, 12)))
	require.False(t, r.IsRectangular())

	same, err := Union(a, a.Clone())
	require.NoError(t, err)
	require.True(t, same.EqualsRegion(a))

	none, err := Union(a, rect(t, 20, 20, 30, 30))
	require.NoError(t, err)
	require.Nil(t, none)
}

func TestRegionEquality(t *testing.T) {
	a := rect(t, 0, 0, 10, 10)
	named := a.Named("named")
	require.Equal(t, "named", named.Name())
	require.Equal(t, DefaultRegionName, a.Name())
	require.True(t, a.EqualsRegion(named))
	require.False(t, a.Equal(named))
	require.NotEqual(t, a.Hash(), named.Hash())

	c := a.Clone()
	require.True(t, a.Equal(c))
	require.Equal(t, a.Hash(), c.Hash())

	require.False(t, a.EqualsRegion(rect(t, 0, 0, 10, 11)))
	require.False(t, a.EqualsRegion(nil))
	require.Contains(t, named.String(), `"named"`)
}

func TestRegionDistanceToLocation(t *testing.T) {
	r := rect(t, 0, 0, 1, 1)
	require.Equal(t, 0.0, r.DistanceToLocation(MustLocation(0.5, 0.5)))

	d := r.DistanceToLocation(MustLocation(0.5, 2))
	require.InDelta(t, HorzDistance(MustLocation(0.5, 1), MustLocation(0.5, 2)), d, 1)

	// The closing segment counts too.
	d = r.DistanceToLocation(MustLocation(0.5, -1))
	require.InDelta(t, HorzDistance(MustLocation(0.5, 0), MustLocation(0.5, -1)), d, 1)
}

func TestRegionPolygon(t *testing.T) {
	r, err := rect(t, 0, 0, 10, 10).WithInterior(rect(t, 2, 2, 4, 4))
	require.NoError(t, err)
	p := r.Polygon()
	require.Equal(t, 2, p.NumLinearRings())
	outer := p.LinearRing(0).Coords()
	require.Len(t, outer, 5)
	require.Equal(t, outer[0], outer[4])
	require.Equal(t, 0.0, outer[0].X())
	require.Equal(t, 0.0, outer[0].Y())
}
