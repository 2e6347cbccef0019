/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/dgryski/go-farm"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

const (
	// NoNode is returned by IndexForLocation for locations that do not map to
	// a grid node.
	NoNode = -1
	// MaxSpacing is the widest grid spacing allowed, in degrees.
	MaxSpacing = 5.0
	// gridPrecision is the number of decimal places kept for anchor and node
	// coordinates.
	gridPrecision = 8
)

// Anchor00 aligns a grid so that (0, 0) would be a node.
var Anchor00 = newLocation(0, 0, 0)

// GriddedRegion is a Region sampled on a regular lat/lon lattice. The lattice
// is phased by an anchor and spans the bounding box of the region; the lattice
// points the region contains are its nodes. Nodes are numbered in order of
// increasing longitude within increasing latitude.
//
// IndexForLocation buckets a location into the cell around its nearest node
// and is not the same test as Contains. Near the border a location can map to
// a node while lying outside the region, and the reverse.
type GriddedRegion struct {
	*Region

	spacing float64
	anchor  Location

	lonNodes, latNodes []float64
	lonEdges, latEdges []float64

	// gridIndex maps latIndex*len(lonNodes)+lonIndex to a node index, or to
	// NoNode for lattice points outside the region.
	gridIndex []int
	nodes     *LocationList
}

// NewGriddedRegion grids a copy of region at the given spacing in degrees,
// 0 < spacing <= MaxSpacing. A nil anchor uses the region's (min lat, min lon).
// Otherwise the anchor is moved by whole multiples of spacing to the first
// position at or above the region's minimum on each axis, so that grids
// sharing an anchor line up.
func NewGriddedRegion(region *Region, spacing float64, anchor *Location) (*GriddedRegion, error) {
	if region == nil {
		return nil, missingf("region is nil")
	}
	return newGridded(region.Clone(), spacing, anchor)
}

// NewGriddedRectangle grids the rectangle built by NewRectangularRegion.
func NewGriddedRectangle(loc1, loc2 Location, spacing float64, anchor *Location) (*GriddedRegion, error) {
	r, err := NewRectangularRegion(loc1, loc2)
	if err != nil {
		return nil, err
	}
	return newGridded(r, spacing, anchor)
}

// NewGriddedRegionFromBorder grids the region built by NewRegion.
func NewGriddedRegionFromBorder(border *LocationList, typ BorderType, spacing float64,
	anchor *Location) (*GriddedRegion, error) {
	r, err := NewRegion(border, typ)
	if err != nil {
		return nil, err
	}
	return newGridded(r, spacing, anchor)
}

// NewGriddedCircle grids the region built by NewCircularRegion.
func NewGriddedCircle(center Location, radius, spacing float64, anchor *Location) (*GriddedRegion, error) {
	r, err := NewCircularRegion(center, radius)
	if err != nil {
		return nil, err
	}
	return newGridded(r, spacing, anchor)
}

// NewGriddedBuffer grids the region built by NewBufferedRegion.
func NewGriddedBuffer(line *LocationList, buffer, spacing float64, anchor *Location) (*GriddedRegion, error) {
	r, err := NewBufferedRegion(line, buffer)
	if err != nil {
		return nil, err
	}
	return newGridded(r, spacing, anchor)
}

func newGridded(r *Region, spacing float64, anchor *Location) (*GriddedRegion, error) {
	if !(spacing > 0 && spacing <= MaxSpacing) {
		return nil, invalidf("grid spacing %v is outside (0, %v]", spacing, MaxSpacing)
	}
	g := &GriddedRegion{Region: r, spacing: spacing}
	if anchor == nil {
		g.anchor = newLocation(r.minLat, r.minLon, 0)
	} else {
		g.anchor = newLocation(
			alignAnchor(r.minLat, anchor.lat, spacing),
			alignAnchor(r.minLon, anchor.lon, spacing),
			0)
	}
	g.lonNodes = nodeCenters(g.anchor.lon, r.maxLon, spacing)
	g.latNodes = nodeCenters(g.anchor.lat, r.maxLat, spacing)
	g.lonEdges = nodeEdges(g.anchor.lon, len(g.lonNodes), spacing)
	g.latEdges = nodeEdges(g.anchor.lat, len(g.latNodes), spacing)
	g.initNodes()

	glog.V(2).Infof("Gridded region %q at %v°: %d x %d lattice, %d nodes",
		r.name, spacing, len(g.lonNodes), len(g.latNodes), g.nodes.Len())
	return g, nil
}

// alignAnchor returns lo + ((anchor - lo) mod spacing), always >= lo.
func alignAnchor(lo, anchor, spacing float64) float64 {
	delta := anchor - lo
	offset := delta - math.Floor(delta/spacing)*spacing
	v := lo + offset
	if v < lo {
		v += spacing
	}
	return round(v, gridPrecision)
}

func nodeCenters(start, end, spacing float64) []float64 {
	count := int(math.Floor((end-start)/spacing)) + 1
	if count < 0 {
		count = 0
	}
	return steps(start, count, spacing)
}

// nodeEdges returns count+1 bin edges, offset half a bin below the centers.
func nodeEdges(start float64, count int, spacing float64) []float64 {
	if count == 0 {
		return nil
	}
	return steps(start-spacing/2, count+1, spacing)
}

func steps(start float64, count int, interval float64) []float64 {
	vals := make([]float64, count)
	v := start
	for i := range vals {
		vals[i] = round(v, gridPrecision)
		v += interval
	}
	return vals
}

func (g *GriddedRegion) initNodes() {
	g.gridIndex = make([]int, len(g.lonNodes)*len(g.latNodes))
	g.nodes = &LocationList{}
	i := 0
	for _, lat := range g.latNodes {
		for _, lon := range g.lonNodes {
			loc := newLocation(lat, lon, 0)
			if g.Contains(loc) {
				g.gridIndex[i] = len(g.nodes.locs)
				g.nodes.locs = append(g.nodes.locs, loc)
			} else {
				g.gridIndex[i] = NoNode
			}
			i++
		}
	}
}

// binIndex finds the bin of v among sorted edges. A value equal to an edge
// belongs to the bin above it. Values below the first edge, or at or above
// the last one, have no bin.
func binIndex(edges []float64, v float64) int {
	i, found := slices.BinarySearch(edges, v)
	if found {
		if i == len(edges)-1 {
			return NoNode
		}
		return i
	}
	if i == 0 || i == len(edges) {
		return NoNode
	}
	return i - 1
}

// IndexForLocation returns the index of the node whose cell holds loc, or
// NoNode.
func (g *GriddedRegion) IndexForLocation(loc Location) int {
	lonIdx := binIndex(g.lonEdges, loc.lon)
	if lonIdx == NoNode {
		return NoNode
	}
	latIdx := binIndex(g.latEdges, loc.lat)
	if latIdx == NoNode {
		return NoNode
	}
	return g.gridIndex[latIdx*len(g.lonNodes)+lonIdx]
}

// LocationForIndex returns the node at index i. ok is false if i is out of
// range.
func (g *GriddedRegion) LocationForIndex(i int) (loc Location, ok bool) {
	if i < 0 || i >= g.nodes.Len() {
		return Location{}, false
	}
	return g.nodes.Get(i), true
}

// SubRegion grids the intersection of g and region with g's spacing and
// anchor, so its nodes are a subset of g's. It returns nil if the two do not
// overlap. The result may have no nodes when the overlap is smaller than a
// cell. A region is always one piece, so an overlap that splits into several
// parts is not gridded and fails with ErrDegenerate.
func (g *GriddedRegion) SubRegion(region *Region) (*GriddedRegion, error) {
	inter, err := Intersect(g.Region, region)
	if err != nil || inter == nil {
		return nil, err
	}
	anchor := g.anchor
	return newGridded(inter, g.spacing, &anchor)
}

// WithInterior always fails. The lattice is fixed when the grid is built, so
// holes must be added to the Region before it is gridded.
func (g *GriddedRegion) WithInterior(*Region) (*Region, error) {
	return nil, errors.Wrapf(ErrUnsupported, "a gridded region may not have an interior added")
}

// Spacing returns the node spacing in degrees.
func (g *GriddedRegion) Spacing() float64 { return g.spacing }

// Anchor returns the aligned anchor, the lattice point at the grid's minimum
// latitude and longitude.
func (g *GriddedRegion) Anchor() Location { return g.anchor }

// NodeCount returns the number of nodes.
func (g *GriddedRegion) NodeCount() int { return g.nodes.Len() }

// IsEmpty reports whether the grid has no nodes.
func (g *GriddedRegion) IsEmpty() bool { return g.nodes.Len() == 0 }

// Nodes returns a read-only view of the nodes.
func (g *GriddedRegion) Nodes() *LocationList { return g.nodes.Unmodifiable() }

// All iterates over (index, node) pairs in index order.
func (g *GriddedRegion) All() iter.Seq2[int, Location] { return g.nodes.All() }

// LonNodes and LatNodes return copies of the lattice coordinates.
func (g *GriddedRegion) LonNodes() []float64 { return slices.Clone(g.lonNodes) }
func (g *GriddedRegion) LatNodes() []float64 { return slices.Clone(g.latNodes) }

// The lattice bounds are NaN for a lattice with no points on an axis.
func (g *GriddedRegion) MinGridLat() float64 { return first(g.latNodes) }
func (g *GriddedRegion) MaxGridLat() float64 { return last(g.latNodes) }
func (g *GriddedRegion) MinGridLon() float64 { return first(g.lonNodes) }
func (g *GriddedRegion) MaxGridLon() float64 { return last(g.lonNodes) }

func first(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	return vals[0]
}

func last(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	return vals[len(vals)-1]
}

// Named returns a copy of g with the given name.
func (g *GriddedRegion) Named(name string) *GriddedRegion {
	c := g.Clone()
	c.Region.name = name
	return c
}

// Clone returns a deep copy of g.
func (g *GriddedRegion) Clone() *GriddedRegion {
	c := *g
	c.Region = g.Region.Clone()
	c.lonNodes = slices.Clone(g.lonNodes)
	c.latNodes = slices.Clone(g.latNodes)
	c.lonEdges = slices.Clone(g.lonEdges)
	c.latEdges = slices.Clone(g.latEdges)
	c.gridIndex = slices.Clone(g.gridIndex)
	c.nodes = g.nodes.Clone()
	return &c
}

// EqualsRegion reports whether both grids cover the same area with the same
// spacing and anchor. Names are ignored.
func (g *GriddedRegion) EqualsRegion(o *GriddedRegion) bool {
	if o == nil {
		return false
	}
	return g.spacing == o.spacing && g.anchor.Equal(o.anchor) &&
		g.Region.EqualsRegion(o.Region)
}

// Equal reports whether both grids have the same name, area, spacing and
// anchor.
func (g *GriddedRegion) Equal(o *GriddedRegion) bool {
	if o == nil {
		return false
	}
	return g.name == o.name && g.EqualsRegion(o)
}

// Hash returns a fingerprint of the name, border, anchor and spacing.
func (g *GriddedRegion) Hash() uint64 {
	var buf [8]byte
	b := appendFloat(buf[:0], g.spacing)
	return g.Region.Hash() ^ g.anchor.Hash() ^ farm.Fingerprint64(b)
}

func (g *GriddedRegion) String() string {
	return fmt.Sprintf("%s\n\tSpacing: %v\n\tAnchor: %v\n\tNodes: %d",
		g.Region.String(), g.spacing, g.anchor, g.nodes.Len())
}
