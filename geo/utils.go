/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import "math"

// Tolerance is the comparison threshold used by IsPole, AreSimilar and the
// side-of-line test. For lat/lon radians it is well under a millimeter.
const Tolerance = 1e-12

// The geodesy functions below treat the earth as a sphere of radius
// EarthRadiusMean. The "Fast" variants use a flat-earth approximation in which
// longitude is scaled by the cosine of latitude. They are only meaningful over
// short distances (roughly under 200 km) and do not handle inputs that span
// the ±180° meridian; for such inputs they return whatever the arithmetic
// produces.

// Angle returns the central angle in radians between p1 and p2, using the
// haversine formula. Depth is ignored.
func Angle(p1, p2 Location) float64 {
	sinDlatBy2 := math.Sin((p2.latRad - p1.latRad) / 2.0)
	sinDlonBy2 := math.Sin((p2.lonRad - p1.lonRad) / 2.0)
	c := sinDlatBy2*sinDlatBy2 +
		math.Cos(p1.latRad)*math.Cos(p2.latRad)*sinDlonBy2*sinDlonBy2
	return 2.0 * math.Atan2(math.Sqrt(c), math.Sqrt(1-c))
}

// HorzDistance returns the great-circle distance in km between p1 and p2.
func HorzDistance(p1, p2 Location) float64 {
	return EarthRadiusMean * Angle(p1, p2)
}

// HorzDistanceFast approximates HorzDistance by treating the longitude and
// latitude deltas as the legs of a right triangle.
func HorzDistanceFast(p1, p2 Location) float64 {
	dLat := p1.latRad - p2.latRad
	dLon := (p1.lonRad - p2.lonRad) * math.Cos((p1.latRad+p2.latRad)*0.5)
	return EarthRadiusMean * math.Sqrt(dLat*dLat+dLon*dLon)
}

// VertDistance returns p2.Depth() - p1.Depth(). The sign is preserved.
func VertDistance(p1, p2 Location) float64 {
	return p2.depth - p1.depth
}

// LinearDistance returns the straight-line distance in km between two points
// below the surface, using the law of cosines on radii reduced by depth.
func LinearDistance(p1, p2 Location) float64 {
	alpha := Angle(p1, p2)
	r1 := EarthRadiusMean - p1.depth
	r2 := EarthRadiusMean - p2.depth
	b := r1 * math.Sin(alpha)
	c := r2 - r1*math.Cos(alpha)
	return math.Sqrt(b*b + c*c)
}

// LinearDistanceFast combines HorzDistanceFast and VertDistance as the legs of
// a right triangle.
func LinearDistanceFast(p1, p2 Location) float64 {
	h := HorzDistanceFast(p1, p2)
	v := VertDistance(p1, p2)
	return math.Sqrt(h*h + v*v)
}

// AzimuthRad returns the forward bearing from p1 to p2 in radians, in
// [0, 2π). When p1 is a pole the bearing points toward the other pole: π from
// the north pole and 0 from the south pole.
func AzimuthRad(p1, p2 Location) float64 {
	lat1 := p1.latRad
	lat2 := p2.latRad
	if IsPole(p1) {
		if lat1 > 0 {
			return math.Pi
		}
		return 0
	}
	dLon := p2.lonRad - p1.lonRad
	cosLat2 := math.Cos(lat2)
	az := math.Atan2(math.Sin(dLon)*cosLat2,
		math.Cos(lat1)*math.Sin(lat2)-math.Sin(lat1)*cosLat2*math.Cos(dLon))
	return math.Mod(az+TwoPi, TwoPi)
}

// Azimuth is AzimuthRad in decimal degrees.
func Azimuth(p1, p2 Location) float64 {
	return AzimuthRad(p1, p2) * ToDeg
}

// Destination returns the point reached by travelling distance km from p along
// the great circle with initial bearing azimuth (radians). Depth is carried
// over. The result is not validated.
func Destination(p Location, azimuth, distance float64) Location {
	return destination(p, azimuth, distance, 0)
}

// DestinationVector moves p by v. The depth of the result is p's depth plus
// the vertical component of v.
func DestinationVector(p Location, v LocationVector) Location {
	return destination(p, v.Azimuth, v.Horizontal, v.Vertical)
}

func destination(p Location, az, dH, dV float64) Location {
	sinLat1 := math.Sin(p.latRad)
	cosLat1 := math.Cos(p.latRad)
	ad := dH / EarthRadiusMean
	sinD := math.Sin(ad)
	cosD := math.Cos(ad)

	lat2 := math.Asin(sinLat1*cosD + cosLat1*sinD*math.Cos(az))
	lon2 := p.lonRad + math.Atan2(math.Sin(az)*sinD*cosLat1, cosD-sinLat1*math.Sin(lat2))
	return newLocationRad(lat2, lon2, p.depth+dV)
}

// Vector returns the displacement from p1 to p2.
func Vector(p1, p2 Location) LocationVector {
	return LocationVector{
		Azimuth:    AzimuthRad(p1, p2),
		Horizontal: HorzDistance(p1, p2),
		Vertical:   VertDistance(p1, p2),
	}
}

// crossTrack returns the signed angular distance of p3 from the great circle
// through p1 and p2, and the bearing difference used to derive it.
func crossTrack(p1, p2, p3 Location) (xtd, ad13, dAz float64) {
	ad13 = Angle(p1, p3)
	dAz = AzimuthRad(p1, p3) - AzimuthRad(p1, p2)
	xtd = math.Asin(math.Sin(ad13) * math.Sin(dAz))
	return xtd, ad13, dAz
}

// DistanceToLine returns the distance in km from p3 to the great-circle
// segment p1-p2. Positive values are to the right of the segment when looking
// from p1 toward p2, negative values to the left. If the perpendicular from p3
// falls outside the segment, the unsigned distance to the nearer endpoint is
// returned instead. Depth is ignored.
func DistanceToLine(p1, p2, p3 Location) float64 {
	xtd, ad13, dAz := crossTrack(p1, p2, p3)
	atd := math.Acos(math.Cos(ad13)/math.Cos(xtd)) * EarthRadiusMean
	// beyond p2
	if atd > HorzDistance(p1, p2) {
		return HorzDistance(p2, p3)
	}
	// before p1
	if math.Cos(dAz) < 0 {
		return HorzDistance(p1, p3)
	}
	return xtd * EarthRadiusMean
}

// DistanceToLineFast returns the unsigned distance in km from p3 to the
// segment p1-p2 in a local flat-earth frame centered on p3.
func DistanceToLineFast(p1, p2, p3 Location) float64 {
	lat1, lat2, lat3 := p1.latRad, p2.latRad, p3.latRad
	lon1, lon2, lon3 := p1.lonRad, p2.lonRad, p3.lonRad

	lonScale := math.Cos(0.5*lat3 + 0.25*lat1 + 0.25*lat2)

	x1 := (lon1 - lon3) * lonScale
	x2 := (lon2 - lon3) * lonScale
	y1 := lat1 - lat3
	y2 := lat2 - lat3

	var dist float64
	if math.Abs(x1-x2) > 1e-6 {
		m := (y2 - y1) / (x2 - x1)
		b := y2 - m*x2
		// foot of the perpendicular from the origin
		xT := -m * b / (1 + m*m)
		yT := m*xT + b

		between := (x2 > x1 && xT <= x2 && xT >= x1) ||
			(x2 <= x1 && xT <= x1 && xT >= x2)
		if between {
			dist = math.Hypot(xT, yT)
		} else {
			dist = math.Min(math.Hypot(x1, y1), math.Hypot(x2, y2))
		}
	} else {
		// Vertical segment. Order the endpoints so y1 <= y2.
		if y1 > y2 {
			x1, y1, x2, y2 = x2, y2, x1, y1
		}
		switch {
		case y2 <= 0:
			dist = math.Hypot(x2, y2)
		case y1 >= 0:
			dist = math.Hypot(x1, y1)
		default:
			dist = math.Abs(x1)
		}
	}
	return dist * EarthRadiusMean
}

// Side says where a point lies relative to a directed line.
type Side int

const (
	On Side = iota
	Right
	Left
)

func (s Side) String() string {
	switch s {
	case Right:
		return "RIGHT"
	case Left:
		return "LEFT"
	default:
		return "ON"
	}
}

// LineSide reports on which side of the great circle through p1 and p2 (looking
// from p1 toward p2) the point p lies.
func LineSide(p1, p2, p Location) Side {
	xtd, _, _ := crossTrack(p1, p2, p)
	switch {
	case math.Abs(xtd) < Tolerance:
		return On
	case xtd > 0:
		return Right
	default:
		return Left
	}
}

// IsPole reports whether p is within Tolerance of either pole.
func IsPole(p Location) bool {
	return math.Cos(p.latRad) < Tolerance
}

// AreSimilar reports whether the radian lat/lon values and the depth of p1 and
// p2 are each within Tolerance.
func AreSimilar(p1, p2 Location) bool {
	return math.Abs(p1.latRad-p2.latRad) <= Tolerance &&
		math.Abs(p1.lonRad-p2.lonRad) <= Tolerance &&
		math.Abs(p1.depth-p2.depth) <= Tolerance
}
