/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package geo

import (
	"iter"
	"math"
	"slices"
	"strings"

	"github.com/dgryski/go-farm"
	"github.com/pkg/errors"
)

// LocationList is an ordered sequence of Locations. Duplicates are allowed and
// order is significant for equality and hashing.
//
// A list returned by Unmodifiable is a read-only view over another list: it
// sees later changes made through the original, and every write through the
// view fails with ErrReadOnly.
type LocationList struct {
	locs []Location
	// src is set on read-only views.
	src *LocationList
}

// NewLocationList returns an editable list holding a copy of locs.
func NewLocationList(locs ...Location) *LocationList {
	return &LocationList{locs: slices.Clone(locs)}
}

func (l *LocationList) items() []Location {
	for l.src != nil {
		l = l.src
	}
	return l.locs
}

func (l *LocationList) writable() error {
	if l.src != nil {
		return ErrReadOnly
	}
	return nil
}

// Len returns the number of locations.
func (l *LocationList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items())
}

// Get returns the location at index i. It panics if i is out of range.
func (l *LocationList) Get(i int) Location {
	return l.items()[i]
}

// First and Last panic on an empty list.
func (l *LocationList) First() Location { return l.items()[0] }
func (l *LocationList) Last() Location  { locs := l.items(); return locs[len(locs)-1] }

// Add appends loc.
func (l *LocationList) Add(loc Location) error {
	if err := l.writable(); err != nil {
		return err
	}
	l.locs = append(l.locs, loc)
	return nil
}

// Set replaces the location at index i.
func (l *LocationList) Set(i int, loc Location) error {
	if err := l.writable(); err != nil {
		return err
	}
	if i < 0 || i >= len(l.locs) {
		return invalidf("index %d out of range [0, %d)", i, len(l.locs))
	}
	l.locs[i] = loc
	return nil
}

// Remove deletes the location at index i.
func (l *LocationList) Remove(i int) error {
	if err := l.writable(); err != nil {
		return err
	}
	if i < 0 || i >= len(l.locs) {
		return invalidf("index %d out of range [0, %d)", i, len(l.locs))
	}
	l.locs = slices.Delete(l.locs, i, i+1)
	return nil
}

// Reverse reverses the list in place.
func (l *LocationList) Reverse() error {
	if err := l.writable(); err != nil {
		return err
	}
	slices.Reverse(l.locs)
	return nil
}

// All iterates over the list in order.
func (l *LocationList) All() iter.Seq2[int, Location] {
	return func(yield func(int, Location) bool) {
		for i, loc := range l.items() {
			if !yield(i, loc) {
				return
			}
		}
	}
}

// Slice returns a copy of the locations.
func (l *LocationList) Slice() []Location {
	return slices.Clone(l.items())
}

// Clone returns an editable copy. Cloning a read-only view also returns an
// editable list.
func (l *LocationList) Clone() *LocationList {
	return &LocationList{locs: slices.Clone(l.items())}
}

// SubList returns an editable copy of the locations in [from, to).
func (l *LocationList) SubList(from, to int) (*LocationList, error) {
	locs := l.items()
	if from < 0 || to > len(locs) || from > to {
		return nil, invalidf("sublist [%d, %d) out of range [0, %d]", from, to, len(locs))
	}
	return &LocationList{locs: slices.Clone(locs[from:to])}, nil
}

// Unmodifiable returns a read-only view of l.
func (l *LocationList) Unmodifiable() *LocationList {
	if l.src != nil {
		return l
	}
	return &LocationList{src: l}
}

// ReadOnly reports whether l is a read-only view.
func (l *LocationList) ReadOnly() bool {
	return l.src != nil
}

// Split breaks the list into consecutive chunks of at most size locations. The
// chunks are editable copies.
func (l *LocationList) Split(size int) ([]*LocationList, error) {
	if size < 1 {
		return nil, invalidf("split size %d must be positive", size)
	}
	var out []*LocationList
	for chunk := range slices.Chunk(l.items(), size) {
		out = append(out, &LocationList{locs: slices.Clone(chunk)})
	}
	return out, nil
}

// MinDistToLine returns the smallest DistanceToLineFast from loc to any
// segment of the open polyline through the list. A single-point list returns
// the fast distance to that point and an empty list returns +Inf.
func (l *LocationList) MinDistToLine(loc Location) float64 {
	locs := l.items()
	switch len(locs) {
	case 0:
		return math.Inf(1)
	case 1:
		return HorzDistanceFast(locs[0], loc)
	}
	best := math.Inf(1)
	for i := 1; i < len(locs); i++ {
		best = math.Min(best, DistanceToLineFast(locs[i-1], locs[i], loc))
	}
	return best
}

// MinDistToLocation returns the smallest HorzDistance from loc to any point in
// the list, or +Inf for an empty list.
func (l *LocationList) MinDistToLocation(loc Location) float64 {
	best := math.Inf(1)
	for _, p := range l.items() {
		best = math.Min(best, HorzDistance(p, loc))
	}
	return best
}

// Equal reports whether both lists hold equal locations in the same order.
func (l *LocationList) Equal(o *LocationList) bool {
	if l == nil || o == nil {
		return l == o
	}
	return slices.EqualFunc(l.items(), o.items(), Location.Equal)
}

// Hash returns a fingerprint over the ordered locations.
func (l *LocationList) Hash() uint64 {
	locs := l.items()
	buf := make([]byte, 0, 24*len(locs))
	for _, loc := range locs {
		buf = loc.appendKey(buf)
	}
	return farm.Fingerprint64(buf)
}

func (l *LocationList) String() string {
	var sb strings.Builder
	sb.WriteString("LocationList[")
	for i, loc := range l.items() {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(loc.String())
	}
	sb.WriteString("]")
	return sb.String()
}

// ParseLocationList parses locations separated by ';' in the ParseLocation
// format, e.g. "34,-118;35,-118;35,-117".
func ParseLocationList(s string) (*LocationList, error) {
	l := &LocationList{}
	for _, part := range strings.Split(s, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		loc, err := ParseLocation(part)
		if err != nil {
			return nil, errors.Wrapf(err, "while parsing location list")
		}
		l.locs = append(l.locs, loc)
	}
	return l, nil
}
