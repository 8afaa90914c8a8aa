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

package decoder

import (
	"github.com/beevik/etree"

	"m4o.io/adiff/model"
)

const (
	attrMinLat = "minlat"
	attrMinLon = "minlon"
	attrMaxLat = "maxlat"
	attrMaxLon = "maxlon"
)

// parseBounds reads the optional <bounds> child of an element.  It returns
// nil when the element has no bounds.
func parseBounds(node *etree.Element) (*model.Bounds, error) {
	bn := node.SelectElement(tagBounds)
	if bn == nil {
		return nil, nil
	}

	b := &model.Bounds{}

	for _, f := range []struct {
		key string
		dst *model.Degrees
	}{
		{attrMinLat, &b.MinLat},
		{attrMinLon, &b.MinLon},
		{attrMaxLat, &b.MaxLat},
		{attrMaxLon, &b.MaxLon},
	} {
		s, err := requiredAttr(bn, f.key)
		if err != nil {
			return nil, err
		}

		if *f.dst, err = model.ParseDegrees(s); err != nil {
			return nil, model.WrapFormatError("invalid "+f.key+" attribute", s, err)
		}
	}

	return b, nil
}
