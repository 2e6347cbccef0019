/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"encoding/xml"

	"github.com/pkg/errors"
)

// XML element names. A document looks like
//
//	<GriddedRegion spacing="0.5" numPoints="12">
//	  <Anchor><Location Latitude="32" Longitude="112" Depth="0"/></Anchor>
//	  <Region name="LA">
//	    <LocationList><Location .../>...</LocationList>
//	    <Interiors><LocationList>...</LocationList></Interiors>
//	  </Region>
//	</GriddedRegion>
//
// numPoints is informational and is recomputed when the grid is decoded.
// Decoded borders are always joined as MercatorLinear.
const (
	XMLLocation      = "Location"
	XMLLocationList  = "LocationList"
	XMLRegion        = "Region"
	XMLGriddedRegion = "GriddedRegion"
)

type xmlLocation struct {
	Lat   float64 `xml:"Latitude,attr"`
	Lon   float64 `xml:"Longitude,attr"`
	Depth float64 `xml:"Depth,attr"`
}

type xmlLocationList struct {
	Locations []xmlLocation `xml:"Location"`
}

type xmlRegion struct {
	Name      string            `xml:"name,attr"`
	Border    xmlLocationList   `xml:"LocationList"`
	Interiors []xmlLocationList `xml:"Interiors>LocationList"`
}

type xmlGridded struct {
	Spacing   float64     `xml:"spacing,attr"`
	NumPoints int         `xml:"numPoints,attr"`
	Anchor    xmlLocation `xml:"Anchor>Location"`
	Region    xmlRegion   `xml:"Region"`
}

func toXMLLocation(l Location) xmlLocation {
	return xmlLocation{Lat: l.lat, Lon: l.lon, Depth: l.depth}
}

func (x xmlLocation) location() (Location, error) {
	return NewLocationDepth(x.Lat, x.Lon, x.Depth)
}

func toXMLLocationList(l *LocationList) xmlLocationList {
	locs := l.items()
	x := xmlLocationList{Locations: make([]xmlLocation, len(locs))}
	for i, loc := range locs {
		x.Locations[i] = toXMLLocation(loc)
	}
	return x
}

func (x xmlLocationList) list() (*LocationList, error) {
	l := &LocationList{locs: make([]Location, 0, len(x.Locations))}
	for _, xl := range x.Locations {
		loc, err := xl.location()
		if err != nil {
			return nil, err
		}
		l.locs = append(l.locs, loc)
	}
	return l, nil
}

func toXMLRegion(r *Region) xmlRegion {
	x := xmlRegion{Name: r.name, Border: toXMLLocationList(r.border)}
	for _, in := range r.interiors {
		x.Interiors = append(x.Interiors, toXMLLocationList(in))
	}
	return x
}

func (x xmlRegion) region() (*Region, error) {
	border, err := x.Border.list()
	if err != nil {
		return nil, err
	}
	r, err := NewRegion(border, MercatorLinear)
	if err != nil {
		return nil, err
	}
	for i, xi := range x.Interiors {
		l, err := xi.list()
		if err != nil {
			return nil, err
		}
		in, err := NewRegion(l, MercatorLinear)
		if err != nil {
			return nil, errors.Wrapf(err, "interior %d", i)
		}
		if r, err = r.WithInterior(in); err != nil {
			return nil, errors.Wrapf(err, "interior %d", i)
		}
	}
	if x.Name != "" {
		r.name = x.Name
	}
	return r, nil
}

func named(start xml.StartElement, local string) xml.StartElement {
	start.Name = xml.Name{Local: local}
	return start
}

// MarshalXML writes l as a Location element.
func (l Location) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return e.EncodeElement(toXMLLocation(l), named(start, XMLLocation))
}

// UnmarshalXML reads and validates a Location element.
func (l *Location) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var x xmlLocation
	if err := d.DecodeElement(&x, &start); err != nil {
		return err
	}
	loc, err := x.location()
	if err != nil {
		return errors.Wrapf(err, "while decoding %s", XMLLocation)
	}
	*l = loc
	return nil
}

// MarshalXML writes l as a LocationList element.
func (l *LocationList) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return e.EncodeElement(toXMLLocationList(l), named(start, XMLLocationList))
}

// UnmarshalXML replaces the contents of l, which must be writable.
func (l *LocationList) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	if err := l.writable(); err != nil {
		return err
	}
	var x xmlLocationList
	if err := d.DecodeElement(&x, &start); err != nil {
		return err
	}
	decoded, err := x.list()
	if err != nil {
		return errors.Wrapf(err, "while decoding %s", XMLLocationList)
	}
	l.locs = decoded.locs
	return nil
}

// MarshalXML writes r as a Region element holding its border and interiors.
func (r *Region) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return e.EncodeElement(toXMLRegion(r), named(start, XMLRegion))
}

// UnmarshalXML rebuilds a region from its border and interiors.
func (r *Region) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var x xmlRegion
	if err := d.DecodeElement(&x, &start); err != nil {
		return err
	}
	decoded, err := x.region()
	if err != nil {
		return errors.Wrapf(err, "while decoding %s", XMLRegion)
	}
	*r = *decoded
	return nil
}

// MarshalXML writes g as a GriddedRegion element.
func (g *GriddedRegion) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	x := xmlGridded{
		Spacing:   g.spacing,
		NumPoints: g.NodeCount(),
		Anchor:    toXMLLocation(g.anchor),
		Region:    toXMLRegion(g.Region),
	}
	return e.EncodeElement(x, named(start, XMLGriddedRegion))
}

// UnmarshalXML regrids the decoded region with the stored spacing and anchor.
func (g *GriddedRegion) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var x xmlGridded
	if err := d.DecodeElement(&x, &start); err != nil {
		return err
	}
	wrap := func(err error) error {
		return errors.Wrapf(err, "while decoding %s", XMLGriddedRegion)
	}
	r, err := x.Region.region()
	if err != nil {
		return wrap(err)
	}
	anchor, err := x.Anchor.location()
	if err != nil {
		return wrap(err)
	}
	decoded, err := newGridded(r, x.Spacing, &anchor)
	if err != nil {
		return wrap(err)
	}
	*g = *decoded
	return nil
}
