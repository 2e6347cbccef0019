/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	loc, err := NewLocationDepth(37.42, -122.08, 12.5)
	require.NoError(t, err)
	require.Equal(t, 37.42, loc.Lat())
	require.Equal(t, -122.08, loc.Lon())
	require.Equal(t, 12.5, loc.Depth())
	require.InDelta(t, 37.42*math.Pi/180, loc.LatRad(), 1e-15)
	require.InDelta(t, -122.08*math.Pi/180, loc.LonRad(), 1e-15)

	loc, err = NewLocation(-90, 180)
	require.NoError(t, err)
	require.Equal(t, 0.0, loc.Depth())
}

func TestNewLocationInvalid(t *testing.T) {
	tests := []struct {
		lat, lon, depth float64
	}{
		{90.0001, 0, 0},
		{-90.0001, 0, 0},
		{0, 180.0001, 0},
		{0, -180.0001, 0},
		{0, 0, -5.0001},
		{0, 0, 700.0001},
		{math.NaN(), 0, 0},
		{0, math.NaN(), 0},
	}
	for _, tc := range tests {
		_, err := NewLocationDepth(tc.lat, tc.lon, tc.depth)
		require.Error(t, err, "%v", tc)
		require.True(t, errors.Is(err, ErrInvalidArgument))
	}
	require.Panics(t, func() { MustLocation(91, 0) })
}

func TestLocationRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		lat := r.Float64()*180 - 90
		lon := r.Float64()*360 - 180
		depth := r.Float64()*705 - 5
		loc, err := NewLocationDepth(lat, lon, depth)
		require.NoError(t, err)
		require.InDelta(t, lat, loc.LatRad()*ToDeg, 1e-12)
		require.InDelta(t, lon, loc.LonRad()*ToDeg, 1e-12)
		require.Equal(t, lat, loc.Lat())
		require.Equal(t, depth, loc.Depth())
	}
}

func TestLocationEqualHash(t *testing.T) {
	a := newLocation(10, 20, 5)
	b := newLocation(10, 20, 5)
	c := newLocation(10, 20, 6)
	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(), b.Hash())
	require.False(t, a.Equal(c))
	require.NotEqual(t, a.Hash(), c.Hash())

	// copies are independent values
	d, err := a.WithDepth(7)
	require.NoError(t, err)
	require.Equal(t, 5.0, a.Depth())
	require.Equal(t, 7.0, d.Depth())

	zero := newLocation(0, 0, 0)
	negZero := newLocation(math.Copysign(0, -1), 0, 0)
	require.True(t, zero.Equal(negZero))
	require.Equal(t, zero.Hash(), negZero.Hash())
}

func TestLocationCompare(t *testing.T) {
	locs := []Location{
		newLocation(1, 5, 0),
		newLocation(0, 9, 0),
		newLocation(1, 2, 3),
		newLocation(1, 2, 1),
	}
	slices.SortFunc(locs, Location.Compare)
	require.Equal(t, []Location{
		newLocation(0, 9, 0),
		newLocation(1, 2, 1),
		newLocation(1, 2, 3),
		newLocation(1, 5, 0),
	}, locs)
	require.Equal(t, 0, locs[0].Compare(newLocation(0, 9, 0)))
}

func TestParseLocation(t *testing.T) {
	loc, err := ParseLocation(" 34.5, -118.25 ")
	require.NoError(t, err)
	require.True(t, loc.Equal(newLocation(34.5, -118.25, 0)))

	loc, err = ParseLocation(newLocation(1.5, 2.25, 3).String())
	require.NoError(t, err)
	require.Equal(t, "1.5,2.25,3", loc.String())

	for _, s := range []string{"", "1", "1,2,3,4", "a,b", "95,0"} {
		_, err := ParseLocation(s)
		require.True(t, errors.Is(err, ErrInvalidArgument), s)
	}
}

func TestLocationVector(t *testing.T) {
	v := NewLocationVector(90, 10, 2)
	require.InDelta(t, math.Pi/2, v.Azimuth, 1e-15)
	require.InDelta(t, 90, v.AzimuthDeg(), 1e-12)

	r := v.Reverse()
	require.InDelta(t, 270, r.AzimuthDeg(), 1e-12)
	require.Equal(t, 10.0, r.Horizontal)
	require.Equal(t, -2.0, r.Vertical)
	require.InDelta(t, math.Atan2(2, 10)*ToDeg, v.Plunge(), 1e-12)

	// A to B is not the reverse of B to A away from the equator.
	a := newLocation(40, 0, 0)
	b := newLocation(45, 30, 0)
	ab := Vector(a, b)
	ba := Vector(b, a)
	require.InDelta(t, ab.Horizontal, ba.Horizontal, 1e-9)
	require.Greater(t, math.Abs(ab.Reverse().Azimuth-ba.Azimuth), 0.1)
}

func TestValidators(t *testing.T) {
	require.NoError(t, ValidateLats([]float64{-90, 0, 90}))
	require.Error(t, ValidateLats([]float64{0, 91}))
	require.NoError(t, ValidateLons([]float64{-180, 180}))
	require.Error(t, ValidateLons([]float64{-181}))
	require.NoError(t, ValidateDepths([]float64{-5, 700}))
	require.Error(t, ValidateDepths([]float64{701}))
}

func TestEllipsoid(t *testing.T) {
	require.InDelta(t, EarthRadiusEquatorial, RadiusAtLocation(newLocation(0, 0, 0)), 1e-9)
	require.InDelta(t, EarthRadiusPolar, RadiusAtLocation(newLocation(90, 0, 0)), 1e-9)
	mid := RadiusAtLocation(newLocation(45, 0, 0))
	require.Greater(t, mid, EarthRadiusPolar)
	require.Less(t, mid, EarthRadiusEquatorial)

	eq := newLocation(0, 0, 0)
	require.InDelta(t, ToDeg/EarthRadiusEquatorial, DegreesLatPerKm(eq), 1e-15)
	require.InDelta(t, DegreesLatPerKm(eq), DegreesLonPerKm(eq), 1e-15)
	high := newLocation(60, 0, 0)
	require.InDelta(t, 2, DegreesLonPerKm(high)/DegreesLatPerKm(high), 1e-9)
}
