/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"cmp"
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/dgryski/go-farm"
	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
)

// Location is an immutable geographic point. Latitude and longitude are in
// decimal degrees and depth is in km, positive down. Radian values are kept
// alongside the degree values so the geodesy functions do not convert on
// every call. Equality, hashing and ordering use the degree values.
//
// A Location is a plain value: copying it is the same as cloning it.
type Location struct {
	lat, lon, depth float64
	latRad, lonRad  float64
}

// NewLocation returns a Location at the surface (depth 0).
func NewLocation(lat, lon float64) (Location, error) {
	return NewLocationDepth(lat, lon, 0)
}

// NewLocationDepth returns a validated Location.
func NewLocationDepth(lat, lon, depth float64) (Location, error) {
	if err := ValidateLat(lat); err != nil {
		return Location{}, err
	}
	if err := ValidateLon(lon); err != nil {
		return Location{}, err
	}
	if err := ValidateDepth(depth); err != nil {
		return Location{}, err
	}
	return newLocation(lat, lon, depth), nil
}

// MustLocation is like NewLocation but panics on invalid input. It is meant
// for literals in tests and tables.
func MustLocation(lat, lon float64) Location {
	loc, err := NewLocation(lat, lon)
	if err != nil {
		panic(err)
	}
	return loc
}

// newLocation skips validation. Points derived by the geodesy functions go
// through here so out-of-range results are returned as computed.
func newLocation(lat, lon, depth float64) Location {
	return Location{
		lat:    lat,
		lon:    lon,
		depth:  depth,
		latRad: lat * ToRad,
		lonRad: lon * ToRad,
	}
}

func newLocationRad(latRad, lonRad, depth float64) Location {
	return Location{
		lat:    latRad * ToDeg,
		lon:    lonRad * ToDeg,
		depth:  depth,
		latRad: latRad,
		lonRad: lonRad,
	}
}

// Lat returns the latitude in decimal degrees.
func (l Location) Lat() float64 { return l.lat }

// Lon returns the longitude in decimal degrees.
func (l Location) Lon() float64 { return l.lon }

// Depth returns the depth in km, positive down.
func (l Location) Depth() float64 { return l.depth }

// LatRad returns the latitude in radians.
func (l Location) LatRad() float64 { return l.latRad }

// LonRad returns the longitude in radians.
func (l Location) LonRad() float64 { return l.lonRad }

// WithDepth returns a copy of l at the given depth.
func (l Location) WithDepth(depth float64) (Location, error) {
	if err := ValidateDepth(depth); err != nil {
		return Location{}, err
	}
	l.depth = depth
	return l, nil
}

// Equal reports whether both locations have identical degree values and depth.
func (l Location) Equal(o Location) bool {
	return l.lat == o.lat && l.lon == o.lon && l.depth == o.depth
}

// Compare orders locations by latitude, then longitude, then depth. It returns
// -1, 0 or +1.
func (l Location) Compare(o Location) int {
	if c := cmp.Compare(l.lat, o.lat); c != 0 {
		return c
	}
	if c := cmp.Compare(l.lon, o.lon); c != 0 {
		return c
	}
	return cmp.Compare(l.depth, o.depth)
}

// Hash returns a fingerprint of the degree values. Equal locations have equal
// hashes.
func (l Location) Hash() uint64 {
	var buf [24]byte
	l.appendKey(buf[:0])
	return farm.Fingerprint64(buf[:])
}

func (l Location) appendKey(b []byte) []byte {
	b = appendFloat(b, l.lat)
	b = appendFloat(b, l.lon)
	return appendFloat(b, l.depth)
}

func appendFloat(b []byte, v float64) []byte {
	// -0 and 0 compare equal.
	if v == 0 {
		v = 0
	}
	return binary.LittleEndian.AppendUint64(b, math.Float64bits(v))
}

// LatLng returns the point as an s2 LatLng.
func (l Location) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(l.lat, l.lon)
}

// String returns "lat,lon,depth" with shortest float formatting.
func (l Location) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatFloat(l.lat, 'f', -1, 64))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatFloat(l.lon, 'f', -1, 64))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatFloat(l.depth, 'f', -1, 64))
	return sb.String()
}

// ParseLocation parses "lat,lon" or "lat,lon,depth", the format produced by
// String. Whitespace around each value is ignored.
func ParseLocation(s string) (Location, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return Location{}, invalidf("location %q must be lat,lon[,depth]", s)
	}
	var vals [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Location{}, errors.Wrapf(ErrInvalidArgument, "location %q: %v", s, err)
		}
		vals[i] = v
	}
	return NewLocationDepth(vals[0], vals[1], vals[2])
}
