/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package export

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
	geomjson "github.com/twpayne/go-geom/encoding/geojson"

	"github.com/hypermodeinc/georegion/geo"
)

// Feature properties written by RegionFeature and FeatureCollection.
const (
	PropName    = "name"
	PropKind    = "kind"
	PropSpacing = "spacing"
	PropAnchor  = "anchor"
	PropCount   = "count"

	KindRegion = "region"
	KindNodes  = "nodes"
)

// RegionFeature returns r as a GeoJSON polygon feature named after r.
func RegionFeature(r *geo.Region) *geojson.Feature {
	f := geojson.NewPolygonFeature(Rings(r))
	f.SetProperty(PropName, r.Name())
	f.SetProperty(PropKind, KindRegion)
	f.BoundingBox = []float64{r.MinLon(), r.MinLat(), r.MaxLon(), r.MaxLat()}
	return f
}

// NodesFeature returns the nodes of g as a multipoint feature in index order.
func NodesFeature(g *geo.GriddedRegion) *geojson.Feature {
	pts := make([][]float64, 0, g.NodeCount())
	for _, loc := range g.All() {
		pts = append(pts, []float64{loc.Lon(), loc.Lat()})
	}
	f := geojson.NewMultiPointFeature(pts...)
	anchor := g.Anchor()
	f.SetProperty(PropName, g.Name())
	f.SetProperty(PropKind, KindNodes)
	f.SetProperty(PropSpacing, g.Spacing())
	f.SetProperty(PropAnchor, []float64{anchor.Lon(), anchor.Lat()})
	f.SetProperty(PropCount, g.NodeCount())
	return f
}

// FeatureCollection holds the region of g followed by its nodes.
func FeatureCollection(g *geo.GriddedRegion) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.AddFeature(RegionFeature(g.Region))
	fc.AddFeature(NodesFeature(g))
	return fc
}

// RegionGeometry encodes the polygon of r as a bare GeoJSON geometry.
func RegionGeometry(r *geo.Region) ([]byte, error) {
	return geomjson.Marshal(r.Polygon())
}

// RegionFromGeoJSON reads a region from a GeoJSON polygon. data may be a bare
// geometry, a feature, or a feature collection, in which case the first
// polygon feature is used. A "name" property names the region.
func RegionFromGeoJSON(data []byte, typ geo.BorderType) (*geo.Region, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrapf(err, "while decoding geojson")
	}
	switch fc.Type {
	case "FeatureCollection":
		for _, f := range fc.Features {
			if f.Geometry != nil && f.Geometry.IsPolygon() {
				return featureRegion(f, typ)
			}
		}
		return nil, errors.Wrapf(geo.ErrMissingArgument, "feature collection has no polygon")
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, errors.Wrapf(err, "while decoding geojson feature")
		}
		return featureRegion(f, typ)
	}

	var t geom.T
	if err := geomjson.Unmarshal(data, &t); err != nil {
		return nil, errors.Wrapf(err, "while decoding geojson geometry")
	}
	p, ok := t.(*geom.Polygon)
	if !ok {
		return nil, errors.Wrapf(geo.ErrUnsupported, "cannot build a region from %T", t)
	}
	return RegionFromPolygon(p, typ)
}

func featureRegion(f *geojson.Feature, typ geo.BorderType) (*geo.Region, error) {
	if f.Geometry == nil || !f.Geometry.IsPolygon() {
		return nil, errors.Wrapf(geo.ErrUnsupported, "feature is not a polygon")
	}
	r, err := regionFromRings(f.Geometry.Polygon, typ)
	if err != nil {
		return nil, err
	}
	if name := f.PropertyMustString(PropName); name != "" {
		r = r.Named(name)
	}
	return r, nil
}
