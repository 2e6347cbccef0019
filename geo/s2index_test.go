/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"math"
	"strings"
	"testing"

	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestLocationCells(t *testing.T) {
	loc := MustLocation(37.4249518, -122.082506)
	parents, cover, err := LocationCells(loc, MinCellLevel, MaxCellLevel)
	require.NoError(t, err)
	require.Len(t, parents, MaxCellLevel-MinCellLevel+1)
	require.Equal(t, MinCellLevel, parents[0].Level())
	require.Equal(t, "808c", parents[0].ToToken())
	last := parents[len(parents)-1]
	require.Equal(t, MaxCellLevel, last.Level())
	require.Equal(t, "808fb9f81", last.ToToken())
	require.Equal(t, s2.CellUnion{last}, cover)

	// check that all cell levels are different
	pc := parents[0]
	for _, c := range parents[1:] {
		require.Greater(t, c.Level(), pc.Level())
		pc = c
	}

	_, _, err = LocationCells(loc, 10, 5)
	require.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestRegionCovering(t *testing.T) {
	r := rect(t, 37, -122.5, 37.5, -122)
	center := s2.CellIDFromLatLng(MustLocation(37.25, -122.25).LatLng())

	cu, err := r.Covering(MinCellLevel, MaxCellLevel, MaxCells)
	require.NoError(t, err)
	require.NotEmpty(t, cu)
	require.LessOrEqual(t, len(cu), MaxCells)
	for _, c := range cu {
		require.True(t, c.Level() >= MinCellLevel && c.Level() <= MaxCellLevel, "level %d", c.Level())
	}
	require.True(t, cu.ContainsCellID(center))

	_, err = r.Covering(10, 5, MaxCells)
	require.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = r.Covering(0, 31, MaxCells)
	require.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = r.Covering(MinCellLevel, MaxCellLevel, 0)
	require.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestRegionLoopOrientation(t *testing.T) {
	ccw := NewLocationList(
		MustLocation(37, -122.5), MustLocation(37, -122),
		MustLocation(37.5, -122), MustLocation(37.5, -122.5),
	)
	cw := ccw.Clone()
	require.NoError(t, cw.Reverse())

	inside := s2.PointFromLatLng(MustLocation(37.25, -122.25).LatLng())
	outside := s2.PointFromLatLng(MustLocation(10, 10).LatLng())
	for _, border := range []*LocationList{ccw, cw} {
		r, err := NewRegion(border, MercatorLinear)
		require.NoError(t, err)
		l := r.Loop()
		require.Equal(t, 4, l.NumVertices())
		require.True(t, l.ContainsPoint(inside))
		require.False(t, l.ContainsPoint(outside))
	}
}

func TestIndexTokens(t *testing.T) {
	r, err := NewCircularRegion(MustLocation(37.42, -122.08), 20)
	require.NoError(t, err)

	parents, cover, err := IndexCells(r)
	require.NoError(t, err)
	toks, err := IndexTokens(r)
	require.NoError(t, err)
	require.Len(t, toks, len(parents)+len(cover))

	for i, tok := range toks {
		if i < len(parents) {
			require.True(t, strings.HasPrefix(tok, "p/"), tok)
		} else {
			require.True(t, strings.HasPrefix(tok, "c/"), tok)
		}
	}

	pset := make(map[s2.CellID]bool)
	for _, p := range parents {
		require.GreaterOrEqual(t, p.Level(), MinCellLevel)
		pset[p] = true
	}
	for _, c := range cover {
		require.True(t, pset[c.Parent(MinCellLevel)])
		require.True(t, pset[c])
	}

	_, err = IndexTokens(nil)
	require.True(t, errors.Is(err, ErrMissingArgument))
}

func TestNodeCell(t *testing.T) {
	anchor := Anchor00
	g := gridded(t, 10, 10, 15, 15, 1, &anchor)
	node, ok := g.LocationForIndex(7)
	require.True(t, ok)

	id, ok := g.NodeCell(7, MaxCellLevel)
	require.True(t, ok)
	require.Equal(t, MaxCellLevel, id.Level())
	require.True(t, id.Contains(s2.CellIDFromLatLng(node.LatLng())))

	_, ok = g.NodeCell(36, MaxCellLevel)
	require.False(t, ok)
	_, ok = g.NodeCell(0, s2.MaxLevel+1)
	require.False(t, ok)
}

func TestSphericalArea(t *testing.T) {
	r, err := NewCircularRegion(MustLocation(35, -118), 50)
	require.NoError(t, err)
	// A regular 36-gon inscribed in the circle.
	want := 18 * 50 * 50 * math.Sin(WedgeWidth*ToRad)
	require.InEpsilon(t, want, r.SphericalArea(), 0.01)
}
