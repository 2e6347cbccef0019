/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"cmp"
	"math"
	"slices"

	planar "github.com/ctessum/geom"
)

// The area of a Region is a planar polygon in (lon, lat) space: the outer
// border followed by any hole rings, filled with the even-odd rule. Rings are
// stored open, without a repeated closing vertex. Boolean operations are done
// by the Martinez clipper in ctessum/geom; everything it returns goes through
// clip before use.

// minRingArea is the smallest ring, in square degrees, kept after clipping.
// Anything smaller is a sliver left over from floating point noise.
const minRingArea = 1e-10

// edgeEpsilon is the distance, in degrees, under which a point is treated as
// lying on a ring edge when rings are being nested.
const edgeEpsilon = 1e-12

func pathFromList(l *LocationList) planar.Path {
	locs := l.items()
	path := make(planar.Path, len(locs))
	for i, loc := range locs {
		path[i] = planar.Point{X: loc.lon, Y: loc.lat}
	}
	return path
}

// listFromPath turns a ring back into a border, dropping consecutive
// duplicates including the wrap-around pair.
func listFromPath(p planar.Path) *LocationList {
	p = cleanRing(p)
	l := &LocationList{locs: make([]Location, 0, len(p))}
	for _, pt := range p {
		l.locs = append(l.locs, newLocation(pt.Y, pt.X, 0))
	}
	return l
}

func areaFromList(l *LocationList) planar.Polygon {
	return planar.Polygon{pathFromList(l)}
}

// cleanRing drops consecutive duplicate vertices. The closing vertex is a
// duplicate of the first one and goes too.
func cleanRing(r planar.Path) planar.Path {
	if len(r) == 0 {
		return nil
	}
	out := make(planar.Path, 0, len(r))
	prev := r[len(r)-1]
	for _, pt := range r {
		if pt == prev {
			continue
		}
		out = append(out, pt)
		prev = pt
	}
	return out
}

// ringArea returns the signed shoelace area of r, positive when r runs
// counter-clockwise.
func ringArea(r planar.Path) float64 {
	var a float64
	n := len(r)
	for i := 0; i < n; i++ {
		p1 := r[i]
		p2 := r[(i+1)%n]
		a += p1.X*p2.Y - p2.X*p1.Y
	}
	return a / 2
}

// normalize cleans every ring and drops the ones that enclose no area.
func normalize(p planar.Polygon) planar.Polygon {
	var out planar.Polygon
	for _, r := range p {
		r = cleanRing(r)
		if len(r) < 3 || math.Abs(ringArea(r)) < minRingArea {
			continue
		}
		out = append(out, r)
	}
	return out
}

// clip unwraps and normalizes the result of a boolean operation. Polygon
// operations in ctessum/geom return a Polygon behind the Polygonal interface;
// any other Polygonal is flattened ring by ring.
func clip(p planar.Polygonal) planar.Polygon {
	if p == nil {
		return nil
	}
	if poly, ok := p.(planar.Polygon); ok {
		return normalize(poly)
	}
	var out planar.Polygon
	for _, poly := range p.Polygons() {
		out = append(out, poly...)
	}
	return normalize(out)
}

// containsPoint is the even-odd crossing test over every ring of p, with
// half-open edges. A ray is cast toward +x and an edge is crossed when it
// straddles y with one end strictly above. The result is that a point on the
// boundary is inside iff the area immediately east of it (or immediately north
// of it, on a horizontal edge) is inside. West and south edges of a simple
// shape are therefore included and east and north edges are not.
func containsPoint(p planar.Polygon, x, y float64) bool {
	inside := false
	for _, r := range p {
		n := len(r)
		for i, j := 0, n-1; i < n; j, i = i, i+1 {
			xi, yi := r[i].X, r[i].Y
			xj, yj := r[j].X, r[j].Y
			if (yi > y) != (yj > y) && x < xi+(y-yi)*(xj-xi)/(yj-yi) {
				inside = !inside
			}
		}
	}
	return inside
}

func onSegment(a, b, p planar.Point) bool {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	if p.X < minX-edgeEpsilon || p.X > maxX+edgeEpsilon ||
		p.Y < minY-edgeEpsilon || p.Y > maxY+edgeEpsilon {
		return false
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y) <= edgeEpsilon
	}
	return math.Abs(dx*(p.Y-a.Y)-dy*(p.X-a.X))/length <= edgeEpsilon
}

func onRing(r planar.Path, p planar.Point) bool {
	n := len(r)
	for i := 0; i < n; i++ {
		if onSegment(r[i], r[(i+1)%n], p) {
			return true
		}
	}
	return false
}

// ringInside reports whether ring a lies inside ring b. Rings produced by the
// clipper never cross, so one vertex of a that is off b decides it.
func ringInside(a, b planar.Path) bool {
	for _, pt := range a {
		if onRing(b, pt) {
			continue
		}
		return containsPoint(planar.Polygon{b}, pt.X, pt.Y)
	}
	// Every vertex sits on b. Fall back to a point just inside an edge of a.
	if len(a) < 2 {
		return false
	}
	mid := planar.Point{X: (a[0].X + a[1].X) / 2, Y: (a[0].Y + a[1].Y) / 2}
	return containsPoint(planar.Polygon{b}, mid.X, mid.Y) && !onRing(b, mid)
}

// rings sorts the rings of a clipped polygon into outer shells and holes by
// how deeply each is nested. nested is true when a shell sits inside a hole,
// i.e. there are islands.
func rings(p planar.Polygon) (shells, holes []planar.Path, nested bool) {
	for i, r := range p {
		depth := 0
		for j, other := range p {
			if i != j && ringInside(r, other) {
				depth++
			}
		}
		switch {
		case depth == 0:
			shells = append(shells, r)
		case depth%2 == 1:
			holes = append(holes, r)
		default:
			shells = append(shells, r)
			nested = true
		}
	}
	// largest shell first
	slices.SortStableFunc(shells, func(a, b planar.Path) int {
		return cmp.Compare(math.Abs(ringArea(b)), math.Abs(ringArea(a)))
	})
	return shells, holes, nested
}

// isSingular reports whether p is one closed path: a single shell and no holes.
func isSingular(p planar.Polygon) bool {
	return len(p) == 1
}

// segmentsCross reports a proper crossing of segments a1-a2 and b1-b2, where
// each segment has its endpoints strictly on opposite sides of the other.
func segmentsCross(a1, a2, b1, b2 planar.Point) bool {
	d1 := orient(b1, b2, a1)
	d2 := orient(b1, b2, a2)
	d3 := orient(a1, a2, b1)
	d4 := orient(a1, a2, b2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func orient(a, b, c planar.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// selfIntersects reports whether any two non-adjacent edges of ring r cross.
func selfIntersects(r planar.Path) bool {
	n := len(r)
	for i := 0; i < n; i++ {
		a1, a2 := r[i], r[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if segmentsCross(a1, a2, r[j], r[(j+1)%n]) {
				return true
			}
		}
	}
	return false
}

// touchesItself reports whether a vertex of ring r lies on an edge that does
// not end at it, e.g. the ring passes through the same point twice. r must
// not hold consecutive duplicates.
func touchesItself(r planar.Path) bool {
	n := len(r)
	for i, pt := range r {
		for j := 0; j < n; j++ {
			if j == i || (j+1)%n == i {
				continue
			}
			if onSegment(r[j], r[(j+1)%n], pt) {
				return true
			}
		}
	}
	return false
}

func boundsOverlap(a, b planar.Polygon) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return a.Bounds().Overlaps(b.Bounds())
}

func sameRings(a, b planar.Polygon) bool {
	return slices.EqualFunc(a, b, func(r1, r2 planar.Path) bool {
		return slices.Equal(r1, r2)
	})
}

// sameArea reports whether a and b cover the same part of the plane.
func sameArea(a, b planar.Polygon) bool {
	if sameRings(a, b) {
		return true
	}
	ba, bb := a.Bounds(), b.Bounds()
	const eps = 1e-9
	if math.Abs(ba.Min.X-bb.Min.X) > eps || math.Abs(ba.Min.Y-bb.Min.Y) > eps ||
		math.Abs(ba.Max.X-bb.Max.X) > eps || math.Abs(ba.Max.Y-bb.Max.Y) > eps {
		return false
	}
	return len(clip(a.XOr(b))) == 0
}

// covers reports whether b has no area outside a.
func covers(a, b planar.Polygon) bool {
	if sameRings(a, b) {
		return true
	}
	if !boundsOverlap(a, b) {
		return false
	}
	return len(clip(b.Difference(a))) == 0
}

// overlaps reports whether a and b share any area.
func overlaps(a, b planar.Polygon) bool {
	if !boundsOverlap(a, b) {
		return false
	}
	return len(clip(a.Intersection(b))) > 0
}
