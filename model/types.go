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
	"strconv"
	"strings"

	"github.com/golang/geo/s1"
)

const ftoaPrecision = 9

// Degrees is the decimal degree representation of a longitude or latitude.
type Degrees float64

// Angle returns the equivalent s1.Angle.
func (d Degrees) Angle() s1.Angle { return s1.Angle(d) * s1.Degree }

// Radians returns the angle in radians.
func (d Degrees) Radians() float64 { return d.Angle().Radians() }

// String formats d in decimal degrees without trailing zeros.
func (d Degrees) String() string {
	return ftoa(float64(d))
}

func (d Degrees) MarshalJSON() ([]byte, error) {
	return []byte(ftoa(float64(d))), nil
}

// ftoa formats a float with at most nine decimals and no trailing zeros.
func ftoa(f float64) string {
	s := strconv.FormatFloat(f, 'f', ftoaPrecision, 64)
	s = strings.TrimRight(s, "0")

	return strings.TrimSuffix(s, ".")
}

// ParseDegrees converts a string to a Degrees instance.
func ParseDegrees(s string) (Degrees, error) {
	u, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	return Degrees(u), nil
}
