/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"fmt"
	"math"
)

// LocationVector is a directed displacement from one Location to another: a
// forward azimuth in radians, a horizontal great-circle distance and a
// vertical distance, both in km. The vector from A to B is not in general the
// reverse of the vector from B to A, since bearings are not reciprocal on a
// sphere.
type LocationVector struct {
	Azimuth    float64
	Horizontal float64
	Vertical   float64
}

// NewLocationVector builds a vector from an azimuth in degrees.
func NewLocationVector(azimuthDeg, horizontal, vertical float64) LocationVector {
	return LocationVector{
		Azimuth:    azimuthDeg * ToRad,
		Horizontal: horizontal,
		Vertical:   vertical,
	}
}

// AzimuthDeg returns the azimuth in decimal degrees.
func (v LocationVector) AzimuthDeg() float64 {
	return v.Azimuth * ToDeg
}

// Reverse returns the flipped vector: the azimuth turns by 180° and the
// vertical component changes sign. The result only points back to the
// origin for short distances or along meridians.
func (v LocationVector) Reverse() LocationVector {
	az := math.Mod(v.Azimuth+math.Pi, TwoPi)
	return LocationVector{Azimuth: az, Horizontal: v.Horizontal, Vertical: -v.Vertical}
}

// Plunge returns the angle of the vector below horizontal, in degrees.
func (v LocationVector) Plunge() float64 {
	return math.Atan2(v.Vertical, v.Horizontal) * ToDeg
}

func (v LocationVector) String() string {
	return fmt.Sprintf("az=%.4f° horz=%.4fkm vert=%.4fkm", v.AzimuthDeg(), v.Horizontal, v.Vertical)
}
