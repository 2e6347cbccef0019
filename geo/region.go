/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"fmt"
	"math"
	"slices"

	planar "github.com/ctessum/geom"
	"github.com/dgryski/go-farm"
	"github.com/twpayne/go-geom"
)

// DefaultRegionName is the name given to regions that were not named.
const DefaultRegionName = "Unnamed Region"

// Region is a polygonal area on the earth's surface. The border is an ordered
// ring of vertices without a repeated closing vertex. Holes may be punched
// into a region with WithInterior. A Region is never modified after it is
// returned, so it can be shared between goroutines.
//
// Geometry is evaluated in the (lon, lat) plane, so regions that span the
// ±180° meridian or contain a pole are not supported.
//
// A point exactly on the border is contained if the area immediately east of
// it is inside the region, or, on a horizontal edge, if the area immediately
// north of it is. West and south edges are inside, east and north edges are
// outside. Regions built from two corners nudge their north and east edges
// out by Tolerance, so all four edges of such a rectangle are inside.
type Region struct {
	name      string
	border    *LocationList
	interiors []*LocationList
	area      planar.Polygon

	minLat, maxLat float64
	minLon, maxLon float64
}

func newRegion(border *LocationList, area planar.Polygon) *Region {
	r := &Region{name: DefaultRegionName, border: border, area: area}
	b := area.Bounds()
	r.minLat, r.maxLat = b.Min.Y, b.Max.Y
	r.minLon, r.maxLon = b.Min.X, b.Max.X
	return r
}

// NewRectangularRegion returns the lat/lon aligned rectangle with opposite
// corners loc1 and loc2. The corners may not share a latitude or longitude.
func NewRectangularRegion(loc1, loc2 Location) (*Region, error) {
	if loc1.lat == loc2.lat || loc1.lon == loc2.lon {
		return nil, invalidf("corners %v and %v share a latitude or longitude", loc1, loc2)
	}
	minLat, maxLat := math.Min(loc1.lat, loc2.lat), math.Max(loc1.lat, loc2.lat)
	minLon, maxLon := math.Min(loc1.lon, loc2.lon), math.Max(loc1.lon, loc2.lon)
	if maxLat <= LatMax-Tolerance {
		maxLat += Tolerance
	}
	if maxLon <= LonMax-Tolerance {
		maxLon += Tolerance
	}
	border := NewLocationList(
		newLocation(minLat, minLon, 0),
		newLocation(minLat, maxLon, 0),
		newLocation(maxLat, maxLon, 0),
		newLocation(maxLat, minLon, 0),
	)
	return borderedRegion(border.locs, MercatorLinear)
}

// NewRegion returns the region enclosed by border. The border needs at least
// three vertices. If the last vertex repeats the first it is dropped. A
// GreatCircle border is densified, and the stored border then starts at the
// last input vertex.
func NewRegion(border *LocationList, typ BorderType) (*Region, error) {
	if border == nil {
		return nil, missingf("border is nil")
	}
	if border.Len() < 3 {
		return nil, invalidf("border must have at least 3 vertices, got %d", border.Len())
	}
	return borderedRegion(border.Slice(), typ)
}

func borderedRegion(locs []Location, typ BorderType) (*Region, error) {
	if n := len(locs); n > 1 && locs[n-1].Equal(locs[0]) {
		locs = locs[:n-1]
	}
	if typ == GreatCircle {
		locs = densify(locs)
	}
	border := &LocationList{locs: locs}
	area, err := borderArea(border)
	if err != nil {
		return nil, err
	}
	return newRegion(border, area), nil
}

func borderArea(border *LocationList) (planar.Polygon, error) {
	ring := pathFromList(border)
	clean := cleanRing(ring)
	if len(clean) < 3 || math.Abs(ringArea(ring)) < minRingArea {
		return nil, degeneratef("border encloses no area")
	}
	if selfIntersects(ring) || touchesItself(clean) {
		return nil, degeneratef("border is not a single closed path")
	}
	return planar.Polygon{ring}, nil
}

// NewCircularRegion approximates the circle of the given radius in km,
// 0 < radius <= 1000, with one vertex every WedgeWidth degrees.
func NewCircularRegion(center Location, radius float64) (*Region, error) {
	if !(radius > 0 && radius <= 1000) {
		return nil, invalidf("radius %v km is outside (0, 1000]", radius)
	}
	border := circleBorder(center, radius)
	area, err := borderArea(border)
	if err != nil {
		return nil, err
	}
	return newRegion(border, area), nil
}

// NewBufferedRegion returns every point within buffer km, 0 < buffer <= 500,
// of the polyline. It is the union of a circle around each vertex and a box
// around each segment. A line that crosses itself can enclose holes; they
// become interiors of the region.
func NewBufferedRegion(line *LocationList, buffer float64) (*Region, error) {
	if !(buffer > 0 && buffer <= 500) {
		return nil, invalidf("buffer %v km is outside (0, 500]", buffer)
	}
	if line == nil {
		return nil, missingf("line is nil")
	}
	if line.Len() == 0 {
		return nil, invalidf("line is empty")
	}
	var acc planar.Polygon
	var prev Location
	for i, loc := range line.All() {
		disk := areaFromList(circleBorder(loc, buffer))
		if i == 0 {
			acc = disk
			prev = loc
			continue
		}
		if !loc.Equal(prev) {
			acc = clip(acc.Union(areaFromList(boxBorder(prev, loc, buffer))))
			acc = clip(acc.Union(disk))
		}
		prev = loc
	}
	return regionFromArea(acc)
}

// NewGlobalRegion returns the region spanning every latitude and longitude.
func NewGlobalRegion() *Region {
	r, err := NewRegion(NewLocationList(
		newLocation(LatMin, LonMin, 0),
		newLocation(LatMin, LonMax, 0),
		newLocation(LatMax, LonMax, 0),
		newLocation(LatMax, LonMin, 0),
	), MercatorLinear)
	if err != nil {
		panic(err)
	}
	return r
}

// regionFromArea rebuilds a region from the output of the clipper. The area
// must be one shell, possibly with holes.
func regionFromArea(p planar.Polygon) (*Region, error) {
	p = normalize(p)
	shells, holes, nested := rings(p)
	switch {
	case len(shells) == 0:
		return nil, degeneratef("area is empty")
	case len(shells) > 1 || nested:
		return nil, degeneratef("area has %d separate parts", len(shells))
	}
	border := listFromPath(shells[0])
	area := planar.Polygon{pathFromList(border)}
	r := newRegion(border, area)
	for _, h := range holes {
		in := listFromPath(h)
		r.area = append(r.area, pathFromList(in))
		r.interiors = append(r.interiors, in.Unmodifiable())
	}
	return r, nil
}

// Clone returns a deep copy of r.
func (r *Region) Clone() *Region {
	c := *r
	c.border = r.border.Clone()
	c.interiors = make([]*LocationList, 0, len(r.interiors))
	for _, in := range r.interiors {
		c.interiors = append(c.interiors, in.Clone().Unmodifiable())
	}
	if len(c.interiors) == 0 {
		c.interiors = nil
	}
	c.area = make(planar.Polygon, len(r.area))
	for i, ring := range r.area {
		c.area[i] = slices.Clone(ring)
	}
	return &c
}

// Named returns a copy of r with the given name.
func (r *Region) Named(name string) *Region {
	c := r.Clone()
	c.name = name
	return c
}

// Name returns the region name, DefaultRegionName unless set with Named.
func (r *Region) Name() string { return r.name }

// Contains reports whether loc is inside r. See Region for the boundary rule.
func (r *Region) Contains(loc Location) bool {
	return containsPoint(r.area, loc.lon, loc.lat)
}

// ContainsRegion reports whether other lies entirely within r.
func (r *Region) ContainsRegion(other *Region) bool {
	if other == nil {
		return false
	}
	return covers(r.area, other.area)
}

// WithInterior returns a copy of r with interior cut out of it. The interior
// must have no holes of its own, must lie entirely within r and must not
// overlap any interior already present. r itself is unchanged.
func (r *Region) WithInterior(interior *Region) (*Region, error) {
	if err := checkSingular(interior); err != nil {
		return nil, err
	}
	if !r.ContainsRegion(interior) {
		return nil, invalidf("region must completely contain the interior")
	}
	hole := interior.border.Clone()
	holeArea := areaFromList(hole)
	for _, in := range r.interiors {
		if overlaps(areaFromList(in), holeArea) {
			return nil, invalidf("interior overlaps an existing interior")
		}
	}
	c := r.Clone()
	c.interiors = append(c.interiors, hole.Unmodifiable())
	c.area = append(c.area, pathFromList(hole))
	return c, nil
}

// Interiors returns read-only views of the holes, or nil if there are none.
func (r *Region) Interiors() []*LocationList {
	return slices.Clone(r.interiors)
}

// Border returns a read-only view of the border.
func (r *Region) Border() *LocationList {
	return r.border.Unmodifiable()
}

func (r *Region) MinLat() float64 { return r.minLat }
func (r *Region) MaxLat() float64 { return r.maxLat }
func (r *Region) MinLon() float64 { return r.minLon }
func (r *Region) MaxLon() float64 { return r.maxLon }

// DistanceToLocation returns 0 if loc is inside r and otherwise the shortest
// DistanceToLineFast from loc to any border segment, including the one that
// closes the ring.
func (r *Region) DistanceToLocation(loc Location) float64 {
	if r.Contains(loc) {
		return 0
	}
	d := r.border.MinDistToLine(loc)
	closing := DistanceToLineFast(r.border.Last(), r.border.First(), loc)
	return math.Min(d, closing)
}

// IsRectangular reports whether r is a single lat/lon aligned rectangle.
func (r *Region) IsRectangular() bool {
	if len(r.area) != 1 {
		return false
	}
	ring := cleanRing(r.area[0])
	if len(ring) != 4 {
		return false
	}
	for i := range ring {
		a, b := ring[i], ring[(i+1)%4]
		c := ring[(i+2)%4]
		if a.X != b.X && a.Y != b.Y {
			return false
		}
		// consecutive edges must turn
		if (a.X == b.X) == (b.X == c.X) {
			return false
		}
	}
	return true
}

// Area returns the planar area of r in square degrees, holes excluded.
func (r *Region) Area() float64 {
	return r.area.Area()
}

// EqualsRegion reports whether both regions cover the same area. Names are
// ignored.
func (r *Region) EqualsRegion(o *Region) bool {
	if o == nil {
		return false
	}
	return sameArea(r.area, o.area)
}

// Equal reports whether both regions have the same name and area.
func (r *Region) Equal(o *Region) bool {
	if r == o {
		return true
	}
	if o == nil || r.name != o.name {
		return false
	}
	return r.EqualsRegion(o)
}

// Hash returns a fingerprint of the name and border.
func (r *Region) Hash() uint64 {
	return r.border.Hash() ^ farm.Fingerprint64([]byte(r.name))
}

func (r *Region) String() string {
	return fmt.Sprintf("Region %q\n\tMinimum Lat: %v\n\tMinimum Lon: %v\n\tMaximum Lat: %v\n\tMaximum Lon: %v",
		r.name, r.minLat, r.minLon, r.maxLat, r.maxLon)
}

// Polygon returns r as a go-geom polygon with closed rings, the border first.
// Coordinates are (lon, lat).
func (r *Region) Polygon() *geom.Polygon {
	coords := make([][]geom.Coord, 0, 1+len(r.interiors))
	coords = append(coords, closedRing(r.border))
	for _, in := range r.interiors {
		coords = append(coords, closedRing(in))
	}
	return geom.NewPolygon(geom.XY).MustSetCoords(coords)
}

func closedRing(l *LocationList) []geom.Coord {
	locs := l.items()
	ring := make([]geom.Coord, 0, len(locs)+1)
	for _, loc := range locs {
		ring = append(ring, geom.Coord{loc.lon, loc.lat})
	}
	return append(ring, geom.Coord{locs[0].lon, locs[0].lat})
}

func checkSingular(r *Region) error {
	if r == nil {
		return missingf("region is nil")
	}
	if len(r.interiors) > 0 {
		return invalidf("region %q has interiors and is not singular", r.name)
	}
	return nil
}

// Intersect returns the area shared by r1 and r2, or nil if they do not
// overlap. Neither region may have interiors. An intersection that falls into
// more than one piece is reported as ErrDegenerate.
func Intersect(r1, r2 *Region) (*Region, error) {
	if err := checkSingular(r1); err != nil {
		return nil, err
	}
	if err := checkSingular(r2); err != nil {
		return nil, err
	}
	if sameRings(r1.area, r2.area) {
		return r1.Named(DefaultRegionName), nil
	}
	if !boundsOverlap(r1.area, r2.area) {
		return nil, nil
	}
	p := clip(r1.area.Intersection(r2.area))
	if len(p) == 0 {
		return nil, nil
	}
	return regionFromArea(p)
}

// Union returns the combined area of r1 and r2, or nil if it is not a single
// closed path, e.g. when the regions are disjoint, only touch at a point or
// enclose a hole between them. Neither region may have interiors.
func Union(r1, r2 *Region) (*Region, error) {
	if err := checkSingular(r1); err != nil {
		return nil, err
	}
	if err := checkSingular(r2); err != nil {
		return nil, err
	}
	if sameRings(r1.area, r2.area) {
		return r1.Named(DefaultRegionName), nil
	}
	p := clip(r1.area.Union(r2.area))
	if !isSingular(p) {
		return nil, nil
	}
	return regionFromArea(p)
}
