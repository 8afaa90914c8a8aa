// Copyright 2025 the original author or authors.
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

package store

import (
	"math"

	"github.com/golang/geo/r2"

	"m4o.io/adiff/model"
)

const (
	// EarthRadius is the radius, in meters, of the sphere used by EPSG:3857.
	EarthRadius = 6378137.0

	// MaxMercatorLat is the latitude at which EPSG:3857 becomes square.
	MaxMercatorLat model.Degrees = 85.05112878
)

// Project returns the EPSG:3857 (Web Mercator) coordinates, in meters, of
// the location lat, lon.  Latitudes beyond MaxMercatorLat are clamped and
// longitudes are wrapped into (-180, 180].
func Project(lat, lon model.Degrees) r2.Point {
	lat = max(min(lat, MaxMercatorLat), -MaxMercatorLat)

	lambda := lon.Angle().Normalized()

	return r2.Point{
		X: EarthRadius * lambda.Radians(),
		Y: EarthRadius * math.Log(math.Tan(math.Pi/4+lat.Radians()/2)),
	}
}

// projectAttrs projects the location in attrs, if it carries both
// coordinates.
func projectAttrs(attrs ElementAttrs) *r2.Point {
	if attrs.Lat == nil || attrs.Lon == nil {
		return nil
	}

	p := Project(*attrs.Lat, *attrs.Lon)

	return &p
}
