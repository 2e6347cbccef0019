/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"github.com/golang/glog"
)

// BorderType says how consecutive border vertices are joined.
type BorderType int

const (
	// MercatorLinear joins vertices with straight lines in (lon, lat) space.
	MercatorLinear BorderType = iota
	// GreatCircle joins vertices along great circles. The border is densified
	// so that no segment is longer than GreatCircleSegment.
	GreatCircle
)

func (t BorderType) String() string {
	switch t {
	case GreatCircle:
		return "great_circle"
	default:
		return "mercator_linear"
	}
}

// ParseBorderType accepts the names returned by BorderType.String.
func ParseBorderType(s string) (BorderType, error) {
	switch s {
	case "", "mercator", "mercator_linear":
		return MercatorLinear, nil
	case "great_circle", "gc":
		return GreatCircle, nil
	}
	return 0, invalidf("unknown border type %q", s)
}

const (
	// GreatCircleSegment is the longest segment, in km, left in a densified
	// great circle border.
	GreatCircleSegment = 100.0
	// WedgeWidth is the angular step, in degrees, between circle vertices.
	WedgeWidth = 10.0
)

// densify walks each border edge, starting with the one that closes the ring
// from the last vertex to the first, and inserts a vertex every
// GreatCircleSegment km along the great circle.
func densify(border []Location) []Location {
	out := make([]Location, 0, len(border))
	start := border[len(border)-1]
	for _, end := range border {
		out = append(out, start)
		distance := HorzDistance(start, end)
		for distance > GreatCircleSegment {
			seg := Destination(start, AzimuthRad(start, end), GreatCircleSegment)
			out = append(out, seg)
			start = seg
			distance = HorzDistance(start, end)
		}
		start = end
	}
	glog.V(2).Infof("Densified great circle border from %d to %d vertices", len(border), len(out))
	return out
}

// circleBorder approximates a circle with one vertex every WedgeWidth degrees
// of azimuth.
func circleBorder(center Location, radius float64) *LocationList {
	l := &LocationList{}
	for az := 0.0; az < 360; az += WedgeWidth {
		l.locs = append(l.locs, Destination(center, az*ToRad, radius))
	}
	return l
}

// boxBorder returns the rectangle of half-width distance around the
// great-circle segment p1-p2.
func boxBorder(p1, p2 Location, distance float64) *LocationList {
	az12 := AzimuthRad(p1, p2)
	az21 := AzimuthRad(p2, p1)
	return NewLocationList(
		Destination(p1, az12-PiBy2, distance),
		Destination(p1, az12+PiBy2, distance),
		Destination(p2, az21-PiBy2, distance),
		Destination(p2, az21+PiBy2, distance),
	)
}
