// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import (
	"fmt"
)

const (
	MaxLat Degrees = 90.0
	MaxLon Degrees = 180.0
	MinLat Degrees = -90.0
	MinLon Degrees = -180.0
)

// Bounds is the bounding box attached to an element of an augmented diff.
// A Bounds is owned by at most one element.
type Bounds struct {
	MinLat Degrees `json:"minlat"`
	MinLon Degrees `json:"minlon"`
	MaxLat Degrees `json:"maxlat"`
	MaxLon Degrees `json:"maxlon"`
}

// Contains checks if the bounds contain the lat lng point.
func (b *Bounds) Contains(lat Degrees, lng Degrees) bool {
	return b.MinLon <= lng && lng <= b.MaxLon && b.MinLat <= lat && lat <= b.MaxLat
}

// Valid reports whether the bounds lie within the world and are not inverted.
func (b *Bounds) Valid() bool {
	return MinLat <= b.MinLat && b.MinLat <= b.MaxLat && b.MaxLat <= MaxLat &&
		MinLon <= b.MinLon && b.MinLon <= b.MaxLon && b.MaxLon <= MaxLon
}

// extend grows the bounds to cover o.
func (b *Bounds) extend(o Bounds) {
	b.MinLat = min(b.MinLat, o.MinLat)
	b.MinLon = min(b.MinLon, o.MinLon)
	b.MaxLat = max(b.MaxLat, o.MaxLat)
	b.MaxLon = max(b.MaxLon, o.MaxLon)
}

func (b *Bounds) String() string {
	return fmt.Sprintf("[(%s, %s) (%s, %s)]", b.MinLat, b.MinLon, b.MaxLat, b.MaxLon)
}

// Extent returns the smallest bounds covering every valid element bounds and
// every located node of the diff, along with the number of elements whose
// bounds are not Valid.  The extent is nil when nothing in the diff is
// located.
func (d *Diff) Extent() (*Bounds, int) {
	var (
		extent  *Bounds
		invalid int
	)

	grow := func(o Bounds) {
		if extent == nil {
			extent = &o
		} else {
			extent.extend(o)
		}
	}

	for e := range d.Elements() {
		if b := e.GetBounds(); b != nil {
			if b.Valid() {
				grow(*b)
			} else {
				invalid++
			}
		}

		n, ok := e.(*Node)
		if !ok || !n.HasLocation() {
			continue
		}

		if extent == nil || !extent.Contains(*n.Lat, *n.Lon) {
			grow(Bounds{MinLat: *n.Lat, MinLon: *n.Lon, MaxLat: *n.Lat, MaxLon: *n.Lon})
		}
	}

	return extent, invalid
}
