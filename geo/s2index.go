/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"slices"

	"github.com/golang/geo/s2"
	"github.com/twpayne/go-geom"
)

const (
	// MinCellLevel is the smallest cell level (largest cell size) used by indexing
	MinCellLevel = 5 // Approx 250km x 380km
	// MaxCellLevel is the largest cell level (smallest cell size) used by indexing
	MaxCellLevel = 16 // Approx 120m x 180m
	// MaxCells is the maximum number of cells to use when covering regions.
	MaxCells = 18

	parentPrefix = "p/"
	coverPrefix  = "c/"
)

// Loop returns the border of r as an s2 loop. Interiors are not included, so
// the loop covers at least the area of r.
func (r *Region) Loop() *s2.Loop {
	return loopFromPolygon(r.Polygon())
}

// SphericalArea returns the area enclosed by the border of r in km², on a
// sphere of radius EarthRadiusMean. Interiors are not subtracted.
func (r *Region) SphericalArea() float64 {
	return EarthArea(r.Loop().Area())
}

// Covering returns at most maxCells s2 cells, between minLevel and maxLevel,
// that together cover the border of r.
func (r *Region) Covering(minLevel, maxLevel, maxCells int) (s2.CellUnion, error) {
	if minLevel < 0 || maxLevel > s2.MaxLevel || minLevel > maxLevel {
		return nil, invalidf("cell levels [%d, %d] are outside [0, %d]", minLevel, maxLevel, s2.MaxLevel)
	}
	if maxCells < 1 {
		return nil, invalidf("maxCells must be positive, got %d", maxCells)
	}
	rc := &s2.RegionCoverer{
		MinLevel: minLevel,
		MaxLevel: maxLevel,
		LevelMod: 0,
		MaxCells: maxCells,
	}
	return rc.Covering(r.Loop()), nil
}

// IndexCells returns two cell unions for r. The cover is the default Covering
// of r. The parents are every ancestor of the cover cells down to
// MinCellLevel, so that a "within" lookup only needs parents and an
// "intersects" lookup can use both.
func IndexCells(r *Region) (parents, cover s2.CellUnion, err error) {
	if r == nil {
		return nil, nil, missingf("region is nil")
	}
	cover, err = r.Covering(MinCellLevel, MaxCellLevel, MaxCells)
	if err != nil {
		return nil, nil, err
	}
	return parentCells(cover, MinCellLevel), cover, nil
}

// IndexTokens returns the index tokens for r: its parent cells prefixed with
// "p/" followed by its cover cells prefixed with "c/".
func IndexTokens(r *Region) ([]string, error) {
	parents, cover, err := IndexCells(r)
	if err != nil {
		return nil, err
	}
	toks := make([]string, 0, len(parents)+len(cover))
	toks = appendTokens(toks, parents, parentPrefix)
	return appendTokens(toks, cover, coverPrefix), nil
}

// LocationCells returns the cells holding loc from minLevel to maxLevel, both
// inclusive, and the single cover cell at maxLevel.
func LocationCells(loc Location, minLevel, maxLevel int) (parents, cover s2.CellUnion, err error) {
	if minLevel < 0 || maxLevel > s2.MaxLevel || minLevel > maxLevel {
		return nil, nil, invalidf("cell levels [%d, %d] are outside [0, %d]", minLevel, maxLevel, s2.MaxLevel)
	}
	c := s2.CellIDFromLatLng(loc.LatLng())
	parents = make(s2.CellUnion, maxLevel-minLevel+1)
	for l := minLevel; l <= maxLevel; l++ {
		parents[l-minLevel] = c.Parent(l)
	}
	return parents, s2.CellUnion{c.Parent(maxLevel)}, nil
}

// NodeCell returns the cell at the given level that holds node i. ok is false
// if i or level is out of range.
func (g *GriddedRegion) NodeCell(i, level int) (id s2.CellID, ok bool) {
	loc, ok := g.LocationForIndex(i)
	if !ok || level < 0 || level > s2.MaxLevel {
		return 0, false
	}
	return s2.CellIDFromLatLng(loc.LatLng()).Parent(level), true
}

// loopFromPolygon converts the outer ring of a polygon to an s2.Loop. s2
// loops are always counter-clockwise; regions are assumed to be smaller than
// a hemisphere, and the orientation is flipped if the loop comes out larger.
func loopFromPolygon(p *geom.Polygon) *s2.Loop {
	r := p.LinearRing(0)
	reverse := isClockwise(r)
	l := loopFromRing(r, reverse)

	// The clockwise test is planar, so confirm it on the sphere.
	if l.CapBound().Radius().Degrees() > 90 {
		l = loopFromRing(r, !reverse)
	}
	return l
}

// isClockwise uses the planar shoelace sum. It is wrong for rings around a
// pole or across the antimeridian, which a Region cannot hold anyway.
func isClockwise(r *geom.LinearRing) bool {
	var a float64
	n := r.NumCoords()
	for i := 0; i < n; i++ {
		p1 := r.Coord(i)
		p2 := r.Coord((i + 1) % n)
		a += (p2.X() - p1.X()) * (p1.Y() + p2.Y())
	}
	return a > 0
}

// loopFromRing skips the closing coordinate, which s2 does not repeat.
func loopFromRing(r *geom.LinearRing, reverse bool) *s2.Loop {
	n := r.NumCoords()
	pts := make([]s2.Point, n-1)
	for i := 0; i < n-1; i++ {
		var c geom.Coord
		if reverse {
			c = r.Coord(n - 1 - i)
		} else {
			c = r.Coord(i)
		}
		pts[i] = s2.PointFromLatLng(s2.LatLngFromDegrees(c.Y(), c.X()))
	}
	return s2.LoopFromPoints(pts)
}

func parentCells(cu s2.CellUnion, minLevel int) s2.CellUnion {
	parents := make(map[s2.CellID]struct{})
	for _, c := range cu {
		for l := c.Level(); l >= minLevel; l-- {
			parents[c.Parent(l)] = struct{}{}
		}
	}
	cells := make(s2.CellUnion, 0, len(parents))
	for k := range parents {
		cells = append(cells, k)
	}
	slices.Sort(cells)
	return cells
}

func appendTokens(toks []string, cu s2.CellUnion, prefix string) []string {
	for _, c := range cu {
		toks = append(toks, prefix+c.ToToken())
	}
	return toks
}
