/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"math"

	"github.com/golang/geo/s1"
)

// Earth radii in km.
const (
	// EarthRadiusMean is the mean radius of the earth, used by every spherical
	// formula in this package.
	EarthRadiusMean = 6371.0072
	// EarthRadiusEquatorial is the equatorial radius of the WGS84 ellipsoid.
	EarthRadiusEquatorial = 6378.1370
	// EarthRadiusPolar is the polar radius of the WGS84 ellipsoid.
	EarthRadiusPolar = 6356.7523
)

// Angle conversions.
const (
	ToRad = math.Pi / 180.0
	ToDeg = 180.0 / math.Pi
	PiBy2 = math.Pi / 2.0
	TwoPi = 2.0 * math.Pi
)

// Legal coordinate ranges. Depth is positive down, in km.
const (
	LatMin   = -90.0
	LatMax   = 90.0
	LonMin   = -180.0
	LonMax   = 180.0
	DepthMin = -5.0
	DepthMax = 700.0
)

// ValidateLat returns an error if lat is outside [LatMin, LatMax].
func ValidateLat(lat float64) error {
	if !(lat >= LatMin && lat <= LatMax) {
		return invalidf("latitude %v is outside [%v, %v]", lat, LatMin, LatMax)
	}
	return nil
}

// ValidateLon returns an error if lon is outside [LonMin, LonMax].
func ValidateLon(lon float64) error {
	if !(lon >= LonMin && lon <= LonMax) {
		return invalidf("longitude %v is outside [%v, %v]", lon, LonMin, LonMax)
	}
	return nil
}

// ValidateDepth returns an error if depth is outside [DepthMin, DepthMax].
func ValidateDepth(depth float64) error {
	if !(depth >= DepthMin && depth <= DepthMax) {
		return invalidf("depth %v is outside [%v, %v]", depth, DepthMin, DepthMax)
	}
	return nil
}

// ValidateLats checks every value with ValidateLat.
func ValidateLats(lats []float64) error {
	return validateAll(lats, ValidateLat)
}

// ValidateLons checks every value with ValidateLon.
func ValidateLons(lons []float64) error {
	return validateAll(lons, ValidateLon)
}

// ValidateDepths checks every value with ValidateDepth.
func ValidateDepths(depths []float64) error {
	return validateAll(depths, ValidateDepth)
}

func validateAll(vals []float64, fn func(float64) error) error {
	for _, v := range vals {
		if err := fn(v); err != nil {
			return err
		}
	}
	return nil
}

// RadiusAtLocation returns the ellipsoidal (WGS84) radius of the earth at the
// latitude of p, in km.
func RadiusAtLocation(p Location) float64 {
	cosLat := math.Cos(p.latRad)
	sinLat := math.Sin(p.latRad)
	a := EarthRadiusEquatorial
	b := EarthRadiusPolar
	a2c := a * a * cosLat
	b2s := b * b * sinLat
	ac := a * cosLat
	bs := b * sinLat
	return math.Sqrt((a2c*a2c + b2s*b2s) / (ac*ac + bs*bs))
}

// DegreesLatPerKm returns the number of degrees of latitude spanned by one km
// of arc at the latitude of p.
func DegreesLatPerKm(p Location) float64 {
	return ToDeg / RadiusAtLocation(p)
}

// DegreesLonPerKm returns the number of degrees of longitude spanned by one km
// of arc along the parallel through p. The value is infinite at the poles.
func DegreesLonPerKm(p Location) float64 {
	return ToDeg / (RadiusAtLocation(p) * math.Cos(p.latRad))
}

// EarthAngle converts a distance on earth in km to the subtended central angle.
func EarthAngle(km float64) s1.Angle {
	return s1.Angle(km / EarthRadiusMean)
}

// EarthDistance converts a central angle to a distance on earth in km.
func EarthDistance(angle s1.Angle) float64 {
	return angle.Radians() * EarthRadiusMean
}

// EarthArea converts an area on the unit sphere to km² on earth.
func EarthArea(a float64) float64 {
	return a * EarthRadiusMean * EarthRadiusMean
}

// round rounds v to the given number of decimal places, halves away from zero.
// Used to keep grid values clean, e.g. 1.0 instead of 0.999999999997.
func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
