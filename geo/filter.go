/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"math"

	"github.com/golang/geo/s2"
)

// QueryType selects how a Filter relates a stored region to the query.
type QueryType byte

const (
	// QueryTypeWithin matches regions that lie inside the query region.
	QueryTypeWithin QueryType = iota
	// QueryTypeContains matches regions that contain the query point.
	QueryTypeContains
	// QueryTypeIntersects matches regions that share area with the query region.
	QueryTypeIntersects
	// QueryTypeNear matches regions within MaxDistance km of the query point.
	QueryTypeNear
)

// Filter is a query against regions indexed with IndexTokens.
type Filter struct {
	Type QueryType
	// Region is used by within and intersects queries.
	Region *Region
	// Point and MaxDistance are used by contains and near queries.
	Point       Location
	MaxDistance float64
}

// QueryData holds what a candidate found through the index is checked
// against.
type QueryData struct {
	region *Region
	pt     Location
	maxDst float64
	qtype  QueryType
}

// QueryTokens returns the index tokens to look up for f, and the QueryData to
// filter the candidates with. Tokens only narrow the search; candidates must
// still be checked with MatchesFilter.
func QueryTokens(f *Filter) ([]string, *QueryData, error) {
	if f == nil {
		return nil, nil, missingf("filter is nil")
	}
	switch f.Type {
	case QueryTypeWithin, QueryTypeIntersects:
		parents, cover, err := IndexCells(f.Region)
		if err != nil {
			return nil, nil, err
		}
		// Stored regions inside a cover cell list it among their parents.
		toks := appendTokens(nil, cover, parentPrefix)
		if f.Type == QueryTypeIntersects {
			toks = appendTokens(toks, parents, coverPrefix)
		}
		return toks, &QueryData{region: f.Region, qtype: f.Type}, nil

	case QueryTypeContains:
		cells, _, err := LocationCells(f.Point, MinCellLevel, MaxCellLevel)
		if err != nil {
			return nil, nil, err
		}
		return appendTokens(nil, cells, coverPrefix), &QueryData{pt: f.Point, qtype: f.Type}, nil

	case QueryTypeNear:
		return nearQueryTokens(f.Point, f.MaxDistance)
	}
	return nil, nil, invalidf("unknown query type %d", f.Type)
}

func nearQueryTokens(pt Location, d float64) ([]string, *QueryData, error) {
	if d <= 0 {
		return nil, nil, invalidf("invalid max distance %v for a near query", d)
	}
	c := s2.CapFromCenterAngle(s2.PointFromLatLng(pt.LatLng()), EarthAngle(d))
	rc := &s2.RegionCoverer{
		MinLevel: MinCellLevel,
		MaxLevel: MaxCellLevel,
		LevelMod: 0,
		MaxCells: MaxCells,
	}
	cover := rc.Covering(c)
	toks := appendTokens(nil, cover, parentPrefix)
	toks = appendTokens(toks, parentCells(cover, MinCellLevel), coverPrefix)
	return toks, &QueryData{pt: pt, maxDst: d, qtype: QueryTypeNear}, nil
}

// MatchesFilter applies the query to a candidate region.
func (q *QueryData) MatchesFilter(r *Region) bool {
	if r == nil {
		return false
	}
	switch q.qtype {
	case QueryTypeWithin:
		return q.region.ContainsRegion(r)
	case QueryTypeContains:
		return r.Contains(q.pt)
	case QueryTypeIntersects:
		return overlaps(q.region.area, r.area)
	case QueryTypeNear:
		return greatCircleDistance(r, q.pt) <= q.maxDst
	}
	return false
}

// MatchesNode reports whether a grid node satisfies the query. Nodes are
// points, so a contains query never matches one.
func (q *QueryData) MatchesNode(loc Location) bool {
	switch q.qtype {
	case QueryTypeWithin, QueryTypeIntersects:
		return q.region.Contains(loc)
	case QueryTypeNear:
		return HorzDistance(q.pt, loc) <= q.maxDst
	}
	return false
}

// greatCircleDistance returns the distance in km from loc to the nearest edge
// of r, border or interior, or 0 if r contains loc. Unlike
// DistanceToLocation it holds at any range.
func greatCircleDistance(r *Region, loc Location) float64 {
	if r.Contains(loc) {
		return 0
	}
	d := math.Inf(1)
	for _, ring := range append([]*LocationList{r.border}, r.interiors...) {
		locs := ring.items()
		for i, p1 := range locs {
			p2 := locs[(i+1)%len(locs)]
			if p1.Equal(p2) {
				d = math.Min(d, HorzDistance(p1, loc))
				continue
			}
			d = math.Min(d, math.Abs(DistanceToLine(p1, p2, loc)))
		}
	}
	return d
}
