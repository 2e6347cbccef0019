/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

// Package export renders regions and grids for other tools: coordinate
// triples, GeoJSON, WKB and XML. It also reads regions back from GeoJSON and
// WKB. All coordinates are written in (lon, lat) order.
package export

import (
	"encoding/binary"
	"encoding/xml"

	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"

	"github.com/hypermodeinc/georegion/geo"
)

// Format names an output encoding.
type Format string

const (
	GeoJSON Format = "geojson"
	XML     Format = "xml"
	WKB     Format = "wkb"
)

// ParseFormat accepts the Format names, case sensitive.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case GeoJSON, XML, WKB:
		return f, nil
	}
	return "", errors.Errorf("unknown format %q, want one of geojson, xml, wkb", s)
}

// Triples returns every location in l as (lon, lat, depth).
func Triples(l *geo.LocationList) [][]float64 {
	out := make([][]float64, 0, l.Len())
	for _, loc := range l.All() {
		out = append(out, []float64{loc.Lon(), loc.Lat(), loc.Depth()})
	}
	return out
}

// Rings returns the border of r followed by its interiors as closed (lon, lat)
// rings.
func Rings(r *geo.Region) [][][]float64 {
	rings := [][][]float64{ring(r.Border())}
	for _, in := range r.Interiors() {
		rings = append(rings, ring(in))
	}
	return rings
}

func ring(l *geo.LocationList) [][]float64 {
	out := make([][]float64, 0, l.Len()+1)
	for _, loc := range l.All() {
		out = append(out, []float64{loc.Lon(), loc.Lat()})
	}
	first := l.First()
	return append(out, []float64{first.Lon(), first.Lat()})
}

// NodePoints returns the grid nodes as a go-geom multipoint.
func NodePoints(g *geo.GriddedRegion) *geom.MultiPoint {
	coords := make([]geom.Coord, 0, g.NodeCount())
	for _, loc := range g.All() {
		coords = append(coords, geom.Coord{loc.Lon(), loc.Lat()})
	}
	return geom.NewMultiPoint(geom.XY).MustSetCoords(coords)
}

// RegionWKB encodes the region polygon, holes included, as little endian WKB.
func RegionWKB(r *geo.Region) ([]byte, error) {
	return wkb.Marshal(r.Polygon(), binary.LittleEndian)
}

// Encode renders g in the given format. GeoJSON output is a feature
// collection with the region and its nodes, WKB is the region polygon alone
// and XML is the full grid document.
func Encode(g *geo.GriddedRegion, f Format) ([]byte, error) {
	switch f {
	case GeoJSON:
		return FeatureCollection(g).MarshalJSON()
	case WKB:
		return RegionWKB(g.Region)
	case XML:
		b, err := xml.MarshalIndent(g, "", "  ")
		if err != nil {
			return nil, errors.Wrapf(err, "while encoding %q as xml", g.Name())
		}
		return append([]byte(xml.Header), b...), nil
	}
	return nil, errors.Errorf("unknown format %q", f)
}

// RegionFromWKB decodes a WKB polygon. The first ring is the border and the
// others become interiors.
func RegionFromWKB(data []byte, typ geo.BorderType) (*geo.Region, error) {
	t, err := wkb.Unmarshal(data)
	if err != nil {
		return nil, errors.Wrapf(err, "while decoding wkb")
	}
	p, ok := t.(*geom.Polygon)
	if !ok {
		return nil, errors.Wrapf(geo.ErrUnsupported, "cannot build a region from %T", t)
	}
	return RegionFromPolygon(p, typ)
}

// RegionFromPolygon builds a region from a go-geom polygon in (lon, lat).
func RegionFromPolygon(p *geom.Polygon, typ geo.BorderType) (*geo.Region, error) {
	if p == nil || p.NumLinearRings() == 0 {
		return nil, errors.Wrapf(geo.ErrMissingArgument, "polygon has no rings")
	}
	rings := make([][][]float64, p.NumLinearRings())
	for i := range rings {
		for _, c := range p.LinearRing(i).Coords() {
			rings[i] = append(rings[i], []float64{c.X(), c.Y()})
		}
	}
	return regionFromRings(rings, typ)
}

func regionFromRings(rings [][][]float64, typ geo.BorderType) (*geo.Region, error) {
	if len(rings) == 0 {
		return nil, errors.Wrapf(geo.ErrMissingArgument, "polygon has no rings")
	}
	border, err := listFromRing(rings[0])
	if err != nil {
		return nil, err
	}
	r, err := geo.NewRegion(border, typ)
	if err != nil {
		return nil, err
	}
	for i, rc := range rings[1:] {
		l, err := listFromRing(rc)
		if err != nil {
			return nil, err
		}
		in, err := geo.NewRegion(l, typ)
		if err != nil {
			return nil, errors.Wrapf(err, "interior %d", i)
		}
		if r, err = r.WithInterior(in); err != nil {
			return nil, errors.Wrapf(err, "interior %d", i)
		}
	}
	return r, nil
}

func listFromRing(ring [][]float64) (*geo.LocationList, error) {
	l := geo.NewLocationList()
	for _, c := range ring {
		if len(c) < 2 {
			return nil, errors.Wrapf(geo.ErrInvalidArgument, "position %v has fewer than 2 values", c)
		}
		loc, err := geo.NewLocation(c[1], c[0])
		if err != nil {
			return nil, err
		}
		if err := l.Add(loc); err != nil {
			return nil, err
		}
	}
	return l, nil
}
